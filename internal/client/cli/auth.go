package cli

import (
	"context"
	"fmt"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for an email and password and creates a new account. A
// successful signup logs the user in immediately, which kicks off the
// reconciliation of any offline entries.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	token, err := a.client.Signup(ctx, email, string(password))
	if err != nil {
		return err
	}

	a.sess.SetToken(token)
	fmt.Fprintln(a.out, "Account created.")
	return nil
}

// Login prompts for credentials and authenticates against the server. The
// unauth-to-auth session transition fires the sync trigger registered in
// NewApp.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	token, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	a.sess.SetToken(token)
	fmt.Fprintln(a.out, "Logged in.")
	return nil
}

// Logout drops the session token. Cached entries stay on disk and the next
// login reconciles anything recorded in the meantime.
func (a *App) Logout(ctx context.Context) error {
	a.sess.Clear()
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
