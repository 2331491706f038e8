package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/meherkandukuri/vegtrack/internal/common"
	"github.com/meherkandukuri/vegtrack/internal/server/models"
)

type signupReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResp struct {
	UserID int64  `json:"user_id"`
	Token  string `json:"token"`
}

func (h *Handlers) signup(w http.ResponseWriter, r *http.Request) {
	var req signupReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if err := models.ValidateEmail(req.Email); err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	if err := models.ValidatePassword(req.Password); err != nil {
		h.writeError(r.Context(), w, err)
		return
	}

	hash, err := h.auth.HashPassword(req.Password)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	id, err := h.store.CreateUser(r.Context(), req.Email, hash)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}

	token, err := h.auth.NewToken(id)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, signupResp{UserID: id, Token: token})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	Token string `json:"token"`
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	u, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.writeError(r.Context(), w, err)
		return
	}
	if !h.auth.CheckPassword(u.PasswordHash, req.Password) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.auth.NewToken(u.ID)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResp{Token: token})
}
