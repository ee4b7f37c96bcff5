package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mathenaangeles/socialite/internal/api"
	"github.com/mathenaangeles/socialite/internal/models"
)

// OrgCmd groups organization operations.
type OrgCmd struct {
	Create        OrgCreateCmd        `cmd:"" help:"Create an organization"`
	Show          OrgShowCmd          `cmd:"" help:"Show an organization and its members"`
	Update        OrgUpdateCmd        `cmd:"" help:"Update an organization"`
	Delete        OrgDeleteCmd        `cmd:"" help:"Delete an organization"`
	List          OrgListCmd          `cmd:"" help:"List organizations"`
	AddMembers    OrgAddMembersCmd    `cmd:"" name:"add-members" help:"Add members by email"`
	RemoveMembers OrgRemoveMembersCmd `cmd:"" name:"remove-members" help:"Remove members by email"`
}

type OrgCreateCmd struct {
	Name        string `arg:"" help:"Organization name"`
	Description string `help:"Organization description"`
}

func (o *OrgCreateCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals, true)
	if err != nil {
		return err
	}

	org, err := app.store.CreateOrganization(ctx, api.OrganizationParams{
		Name:        o.Name,
		Description: o.Description,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Organization %s created with ID %s\n", org.Name, org.ID)
	return nil
}

type OrgShowCmd struct {
	ID string `arg:"" help:"Organization ID"`
}

func (o *OrgShowCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals, true)
	if err != nil {
		return err
	}

	org, err := app.store.GetOrganization(ctx, o.ID)
	if err != nil {
		return err
	}

	if app.output == "json" {
		return printJSON(org)
	}

	field("ID", org.ID)
	field("Name", org.Name)
	field("Description", org.Description)
	fmt.Println()
	printMembers(org.Members)
	return nil
}

func printMembers(members []models.Member) {
	if len(members) == 0 {
		fmt.Println("No members.")
		return
	}
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		name := m.FirstName
		if m.LastName != "" {
			if name != "" {
				name += " "
			}
			name += m.LastName
		}
		rows = append(rows, []string{m.ID, m.Email, name})
	}
	table([]string{"ID", "EMAIL", "NAME"}, rows)
	fmt.Printf("\n%s members\n", countStyle.Render(strconv.Itoa(len(members))))
}

type OrgUpdateCmd struct {
	ID          string `arg:"" help:"Organization ID"`
	Name        string `help:"New name"`
	Description string `help:"New description"`
}

func (o *OrgUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals, true)
	if err != nil {
		return err
	}

	// The server commits every key present in the payload, so start from the
	// stored record and overlay only the flags that were set.
	current, err := app.store.GetOrganization(ctx, o.ID)
	if err != nil {
		return err
	}

	params := api.OrganizationParams{
		Name:        current.Name,
		Description: current.Description,
	}
	if o.Name != "" {
		params.Name = o.Name
	}
	if o.Description != "" {
		params.Description = o.Description
	}

	org, err := app.store.UpdateOrganization(ctx, o.ID, params)
	if err != nil {
		return err
	}

	fmt.Printf("Organization %s updated\n", org.Name)
	return nil
}

type OrgDeleteCmd struct {
	ID string `arg:"" help:"Organization ID"`
}

func (o *OrgDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals, true)
	if err != nil {
		return err
	}

	if err := app.store.DeleteOrganization(ctx, o.ID); err != nil {
		return err
	}

	fmt.Printf("Organization %s deleted\n", o.ID)
	return nil
}

type OrgListCmd struct{}

func (o *OrgListCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals, true)
	if err != nil {
		return err
	}

	orgs, err := app.store.ListOrganizations(ctx)
	if err != nil {
		return err
	}

	if app.output == "json" {
		return printJSON(orgs)
	}

	if len(orgs) == 0 {
		fmt.Println("No organizations found.")
		return nil
	}

	rows := make([][]string, 0, len(orgs))
	for _, org := range orgs {
		rows = append(rows, []string{
			org.ID,
			org.Name,
			truncate(org.Description, 40),
			strconv.Itoa(len(org.Members)),
		})
	}
	table([]string{"ID", "NAME", "DESCRIPTION", "MEMBERS"}, rows)
	return nil
}

type OrgAddMembersCmd struct {
	ID     string   `arg:"" help:"Organization ID"`
	Emails []string `arg:"" help:"Member emails to add"`
}

func (o *OrgAddMembersCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals, true)
	if err != nil {
		return err
	}

	org, err := app.store.AddMembers(ctx, o.ID, o.Emails)
	if err != nil {
		return err
	}

	fmt.Printf("Added %d member(s) to %s\n", len(o.Emails), org.Name)
	printMembers(org.Members)
	return nil
}

type OrgRemoveMembersCmd struct {
	ID     string   `arg:"" help:"Organization ID"`
	Emails []string `arg:"" help:"Member emails to remove"`
}

func (o *OrgRemoveMembersCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals, true)
	if err != nil {
		return err
	}

	org, err := app.store.RemoveMembers(ctx, o.ID, o.Emails)
	if err != nil {
		return err
	}

	fmt.Printf("Removed %d member(s) from %s\n", len(o.Emails), org.Name)
	printMembers(org.Members)
	return nil
}
