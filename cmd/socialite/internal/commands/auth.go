package commands

import (
	"context"
	"fmt"
)

// RegisterCmd creates an account and opens a session.
type RegisterCmd struct {
	Email    string `arg:"" help:"Email address for the new account"`
	Password string `help:"Account password" env:"SOCIALITE_PASSWORD" required:""`
}

func (r *RegisterCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals, false)
	if err != nil {
		return err
	}

	user, err := app.store.Register(ctx, r.Email, r.Password)
	if err != nil {
		return err
	}

	fmt.Printf("Registered and logged in as %s\n", user.Email)
	return nil
}

// LoginCmd opens a session for an existing account.
type LoginCmd struct {
	Email    string `arg:"" help:"Account email"`
	Password string `help:"Account password" env:"SOCIALITE_PASSWORD" required:""`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals, false)
	if err != nil {
		return err
	}

	user, err := app.store.Login(ctx, l.Email, l.Password)
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s\n", user.DisplayName())
	return nil
}

// LogoutCmd destroys the session and erases all local session material.
type LogoutCmd struct{}

func (l *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals, true)
	if err != nil {
		return err
	}

	if err := app.store.Logout(ctx); err != nil {
		return err
	}

	fmt.Println("Logged out.")
	return nil
}

// WhoamiCmd prints the session user, refreshed from the server.
type WhoamiCmd struct{}

func (w *WhoamiCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals, true)
	if err != nil {
		return err
	}

	user, err := app.store.GetProfile(ctx)
	if err != nil {
		return err
	}

	if app.output == "json" {
		return printJSON(user)
	}

	field("ID", user.ID)
	field("Email", user.Email)
	field("Name", user.DisplayName())
	if user.Organization != nil {
		field("Organization", user.Organization.Name)
	}
	return nil
}
