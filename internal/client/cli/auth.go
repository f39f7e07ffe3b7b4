package cli

import (
	"context"
	"fmt"

	"github.com/mvolkov/tastebook/internal/client/models"
)

func (a *App) cmdLogin(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Email:", a.out)
	if err != nil {
		a.log.Error(ctx, "failed to read email", "error", err)
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		a.log.Error(ctx, "failed to read password", "error", err)
		return
	}
	defer WipeBytes(password)

	if _, prob := a.api.Login(ctx, email, string(password)); prob != nil {
		a.printProblem(prob)
		return
	}
	if err := a.sessions.SaveEmail(ctx, email); err != nil {
		a.log.Warn(ctx, "failed to persist email", "error", err)
	}
	a.email = email
	a.loggedIn = true
	fmt.Fprintf(a.out, "Signed in as %s.\n", email)
}

func (a *App) cmdRegister(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Email:", a.out)
	if err != nil {
		a.log.Error(ctx, "failed to read email", "error", err)
		return
	}
	displayName, err := GetSimpleText(a.reader, "Display name:", a.out)
	if err != nil {
		a.log.Error(ctx, "failed to read display name", "error", err)
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		a.log.Error(ctx, "failed to read password", "error", err)
		return
	}
	defer WipeBytes(password)

	if prob := a.api.Register(ctx, email, string(password), displayName); prob != nil {
		a.printProblem(prob)
		return
	}
	fmt.Fprintln(a.out, "Account created. Use 'login' to sign in.")
}

func (a *App) cmdLogout(ctx context.Context) {
	if err := a.sessions.Clear(ctx); err != nil {
		a.log.Error(ctx, "failed to clear session", "error", err)
		fmt.Fprintln(a.out, "Could not wipe the local session.")
		return
	}
	a.email = ""
	a.loggedIn = false
	fmt.Fprintln(a.out, "Signed out.")
}

func (a *App) cmdWhoAmI(ctx context.Context) {
	if !a.loggedIn {
		fmt.Fprintln(a.out, "Not signed in.")
		return
	}
	name, prob := a.api.DisplayName(ctx)
	if prob != nil {
		a.printProblem(prob)
		return
	}
	fmt.Fprintf(a.out, "%s (%s)\n", name, a.email)
}

func (a *App) cmdRename(ctx context.Context, name string) {
	if name == "" {
		fmt.Fprintln(a.out, "usage: rename <display name>")
		return
	}
	if prob := a.api.UpdateUser(ctx, models.UserDraft{DisplayName: name}); prob != nil {
		a.printProblem(prob)
		return
	}
	fmt.Fprintf(a.out, "Display name changed to %q.\n", name)
}
