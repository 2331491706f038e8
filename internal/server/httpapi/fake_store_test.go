package httpapi

import (
	"context"
	"strings"
	"time"

	"github.com/meherkandukuri/vegtrack/internal/common"
	"github.com/meherkandukuri/vegtrack/internal/server/models"
	"github.com/meherkandukuri/vegtrack/internal/server/store"
)

// fakeStore is an in-memory store.Store for handler tests.
type fakeStore struct {
	users      []models.User
	vegetables []models.Vegetable
	prices     []models.PriceEntry
	alerts     []models.Alert

	nextID int64
}

var _ store.Store = (*fakeStore)(nil)

func (f *fakeStore) id() int64 { f.nextID++; return f.nextID }

func (f *fakeStore) CreateUser(_ context.Context, email, hash string) (int64, error) {
	u := models.User{ID: f.id(), Email: email, PasswordHash: hash, CreatedAt: time.Now()}
	f.users = append(f.users, u)
	return u.ID, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			return &f.users[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeStore) CreateVegetable(_ context.Context, v *models.Vegetable) (int64, error) {
	nv := *v
	nv.ID = f.id()
	f.vegetables = append(f.vegetables, nv)
	return nv.ID, nil
}

func (f *fakeStore) ListVegetables(_ context.Context, q string, limit, offset int) ([]models.Vegetable, error) {
	var out []models.Vegetable
	for _, v := range f.vegetables {
		if q != "" && !strings.Contains(strings.ToLower(v.Name), strings.ToLower(q)) {
			continue
		}
		out = append(out, v)
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) GetVegetable(_ context.Context, id int64) (*models.Vegetable, error) {
	for i := range f.vegetables {
		if f.vegetables[i].ID == id {
			return &f.vegetables[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeStore) UpdateVegetable(_ context.Context, v *models.Vegetable) error {
	for i := range f.vegetables {
		if f.vegetables[i].ID == v.ID {
			f.vegetables[i] = *v
			return nil
		}
	}
	return common.ErrNotFound
}

func (f *fakeStore) DeleteVegetable(_ context.Context, id int64) error {
	for i := range f.vegetables {
		if f.vegetables[i].ID == id {
			f.vegetables = append(f.vegetables[:i], f.vegetables[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

func (f *fakeStore) InsertPrice(_ context.Context, p *models.PriceEntry) (int64, error) {
	np := *p
	np.ID = f.id()
	f.prices = append(f.prices, np)
	return np.ID, nil
}

func (f *fakeStore) ListPrices(_ context.Context, vegID int64, from, to *time.Time, limit, offset int) ([]models.PriceEntry, error) {
	var out []models.PriceEntry
	for _, p := range f.prices {
		if p.VegetableID != vegID {
			continue
		}
		if from != nil && p.Date.Before(*from) {
			continue
		}
		if to != nil && p.Date.After(*to) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeStore) AggregatePrices(ctx context.Context, vegID int64, from, to *time.Time) (mn, mx, avg *float64, err error) {
	list, _ := f.ListPrices(ctx, vegID, from, to, 0, 0)
	if len(list) == 0 {
		return nil, nil, nil, nil
	}
	lo, hi, sum := list[0].Price, list[0].Price, 0.0
	for _, p := range list {
		if p.Price < lo {
			lo = p.Price
		}
		if p.Price > hi {
			hi = p.Price
		}
		sum += p.Price
	}
	mean := sum / float64(len(list))
	return &lo, &hi, &mean, nil
}

func (f *fakeStore) GetPriceEntry(_ context.Context, id int64) (*models.PriceEntry, error) {
	for i := range f.prices {
		if f.prices[i].ID == id {
			p := f.prices[i]
			return &p, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeStore) UpdatePriceEntry(_ context.Context, p *models.PriceEntry) error {
	for i := range f.prices {
		if f.prices[i].ID == p.ID {
			f.prices[i] = *p
			return nil
		}
	}
	return common.ErrNotFound
}

func (f *fakeStore) DeletePriceEntry(_ context.Context, id int64) error {
	for i := range f.prices {
		if f.prices[i].ID == id {
			f.prices = append(f.prices[:i], f.prices[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

func (f *fakeStore) CreateAlert(_ context.Context, a *models.Alert) (int64, error) {
	na := *a
	na.ID = f.id()
	f.alerts = append(f.alerts, na)
	return na.ID, nil
}

func (f *fakeStore) ListAlerts(_ context.Context, userID int64) ([]models.Alert, error) {
	var out []models.Alert
	for _, a := range f.alerts {
		if a.UserID == userID && a.Active {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) DeactivateAlert(_ context.Context, id, userID int64) error {
	for i := range f.alerts {
		if f.alerts[i].ID == id && f.alerts[i].UserID == userID {
			f.alerts[i].Active = false
			return nil
		}
	}
	return common.ErrNotFound
}
