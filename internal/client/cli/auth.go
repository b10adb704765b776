package cli

import (
	"context"
	"fmt"

	"github.com/mindcard/mindcard-cli/internal/client/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a name, email and password and attempts to create
// a new account. A successful registration also logs the user in, so on
// success the session is ready to use.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	a.auth.Register(ctx, name, email, password)
	return a.reportAuthOutcome(ctx)
}

// Login prompts for credentials and tries to authenticate.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	a.auth.Login(ctx, email, password)
	return a.reportAuthOutcome(ctx)
}

// Logout drops the stored session.
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// reportAuthOutcome prints the result of a login or register attempt and
// returns the authentication state back to idle after a failure so the
// user can retry.
func (a *App) reportAuthOutcome(ctx context.Context) error {
	st := a.auth.State()
	switch st.Phase {
	case services.PhaseSuccess:
		if u := a.auth.CurrentUser(); u != nil {
			fmt.Fprintf(a.out, "Logged in as %s\n", u.Name)
		}
		return nil
	case services.PhaseError:
		a.log.Warn(ctx, "authentication failed", "error", st.Err)
		fmt.Fprintln(a.out, st.Err)
		a.auth.ResetState()
		return fmt.Errorf("authentication failed: %s", st.Err)
	default:
		return nil
	}
}
