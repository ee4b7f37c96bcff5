package commands

import (
	"context"
	"fmt"
)

// ProfileCmd groups profile operations.
type ProfileCmd struct {
	Show   ProfileShowCmd   `cmd:"" default:"1" help:"Show the profile"`
	Update ProfileUpdateCmd `cmd:"" help:"Update the profile name"`
}

type ProfileShowCmd struct{}

func (p *ProfileShowCmd) Run(ctx context.Context, globals *Globals) error {
	whoami := WhoamiCmd{}
	return whoami.Run(ctx, globals)
}

type ProfileUpdateCmd struct {
	FirstName string `help:"First name" name:"first-name"`
	LastName  string `help:"Last name" name:"last-name"`
}

func (p *ProfileUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals, true)
	if err != nil {
		return err
	}

	user, err := app.store.UpdateProfile(ctx, p.FirstName, p.LastName)
	if err != nil {
		return err
	}

	fmt.Printf("Profile updated: %s\n", user.DisplayName())
	return nil
}

// AccountCmd groups account-level operations.
type AccountCmd struct {
	Delete AccountDeleteCmd `cmd:"" help:"Permanently delete the account"`
}

type AccountDeleteCmd struct {
	Yes bool `help:"Skip the confirmation prompt"`
}

func (a *AccountDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals, true)
	if err != nil {
		return err
	}

	if !a.Yes {
		fmt.Print("This permanently deletes the account and all its data. Type the account email to confirm: ")
		var confirmation string
		if _, err := fmt.Scanln(&confirmation); err != nil {
			return fmt.Errorf("confirmation aborted: %w", err)
		}
		current := app.store.State().User.User
		if current == nil || confirmation != current.Email {
			return fmt.Errorf("confirmation did not match the account email")
		}
	}

	if err := app.store.DeleteAccount(ctx); err != nil {
		return err
	}

	fmt.Println("Account deleted.")
	return nil
}
