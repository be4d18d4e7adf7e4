package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/memorylane/internal/common"
)

var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

var errEmailRequired = errors.New("email is required")

type authFunc func(ctx context.Context, email, password string) error

func (a *App) credentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return "", nil, errEmailRequired
	}

	pw, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, pw, nil
}

func (a *App) authenticate(ctx context.Context, title string, fn authFunc) error {
	email, pw, err := a.credentials()
	if err != nil {
		notice(a.out, title, err)
		return err
	}
	defer common.WipeByteArray(pw)

	if err := fn(ctx, email, string(pw)); err != nil {
		notice(a.out, title, err)
		return err
	}
	return nil
}

// Register creates an account. The gate moves to the main screen on success.
func (a *App) Register(ctx context.Context) error {
	return a.authenticate(ctx, "Sign up failed", func(ctx context.Context, email, password string) error {
		_, err := a.auth.SignUp(ctx, email, password)
		return err
	})
}

// Login signs in with email and password.
func (a *App) Login(ctx context.Context) error {
	return a.authenticate(ctx, "Sign in failed", func(ctx context.Context, email, password string) error {
		_, err := a.auth.SignIn(ctx, email, password)
		return err
	})
}

// Whoami prints the account the server reports for the current session.
func (a *App) Whoami(ctx context.Context) error {
	u, err := a.auth.GetUser(ctx)
	if err != nil {
		notice(a.out, "Lookup failed", err)
		return err
	}
	fmt.Fprintf(a.out, "%s (%s)\n", u.Email, u.ID)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.SignOut(ctx); err != nil {
		notice(a.out, "Sign out failed", err)
		return err
	}
	return nil
}
