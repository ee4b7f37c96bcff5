package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/mathenaangeles/socialite/cmd/socialite/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Register commands.RegisterCmd `cmd:"" help:"Register a new account"`
		Login    commands.LoginCmd    `cmd:"" help:"Log in and store the session"`
		Logout   commands.LogoutCmd   `cmd:"" help:"Log out and clear local state"`
		Whoami   commands.WhoamiCmd   `cmd:"" help:"Show the logged-in user"`
		Profile  commands.ProfileCmd  `cmd:"" help:"Show or update your profile"`
		Account  commands.AccountCmd  `cmd:"" help:"Manage your account"`
		Org      commands.OrgCmd      `cmd:"" help:"Manage organizations"`
		Product  commands.ProductCmd  `cmd:"" help:"Manage products"`
		Content  commands.ContentCmd  `cmd:"" help:"Manage marketing content"`

		Server   string `help:"Server base URL" env:"SOCIALITE_SERVER" placeholder:"URL"`
		StateDir string `name:"state-dir" help:"Directory for local state" env:"SOCIALITE_STATE_DIR" placeholder:"DIR"`
		Output   string `help:"Output format (table or json)" env:"SOCIALITE_OUTPUT"`
		Debug    bool   `help:"Enable debug mode."`
		Version  kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Name("socialite"),
		kong.Description("Console for the Socialite marketing platform."),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{
		Debug:    cli.Debug,
		Version:  version,
		Server:   cli.Server,
		StateDir: cli.StateDir,
		Output:   cli.Output,
	})
	cmd.FatalIfErrorf(err)
}
