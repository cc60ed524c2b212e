package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fuel/internal/client/client"
	"github.com/dmitrijs2005/fuel/internal/client/models"
	"github.com/dmitrijs2005/fuel/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errAlreadySignedIn = errors.New("already signed in, logout first")

// Signup creates an account carrying the profile edited so far, then
// reloads it from the server.
func (a *App) Signup(ctx context.Context) error {
	if a.isLoggedIn() {
		return errAlreadySignedIn
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s := a.sync.State()
	profile := models.ProfileUpdate{Biometrics: s.Profile.Biometrics, Selections: s.Selections}

	rp, err := a.auth.Signup(ctx, email, string(password), name, &profile)
	if err != nil {
		return friendlyError(err)
	}
	a.setMode(ModeOnline)
	a.printf("Welcome, %s!\n", rp.Name)
	return a.reload(ctx)
}

// Login authenticates and replaces the local profile with the remote one.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		return errAlreadySignedIn
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, email, string(password)); err != nil {
		a.logger.Info(ctx, "login failed", "error", err)
		return friendlyError(err)
	}
	a.setMode(ModeOnline)
	a.printf("Login successful\n")
	return a.reload(ctx)
}

func (a *App) reload(ctx context.Context) error {
	if err := a.sync.Refresh(ctx); err != nil {
		return friendlyError(err)
	}
	return nil
}

// Logout drops any unsaved edits and ends the session. The local session is
// forgotten even when the server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.printf("Not signed in\n")
		return nil
	}
	a.sync.Logout()
	if err := a.auth.Logout(ctx); err != nil {
		a.logger.Warn(ctx, "server logout failed", "error", err)
	}
	a.printf("Logged out\n")
	return nil
}

func friendlyError(err error) error {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return fmt.Errorf("invalid email or password (%w)", err)
	case errors.Is(err, client.ErrUnavailable):
		return fmt.Errorf("server unavailable, try again later (%w)", err)
	case errors.Is(err, client.ErrConflict):
		return fmt.Errorf("an account with this email already exists (%w)", err)
	}
	return err
}
