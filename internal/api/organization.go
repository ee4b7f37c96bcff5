package api

import (
	"context"
	"net/http"

	"github.com/mathenaangeles/socialite/internal/models"
)

// OrganizationParams are the writable organization fields.
type OrganizationParams struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type memberEmails struct {
	Emails []string `json:"emails"`
}

// CreateOrganization creates an organization owned by the current user.
func (c *Client) CreateOrganization(ctx context.Context, params OrganizationParams) (*models.Organization, error) {
	var org models.Organization
	if err := c.doJSON(ctx, http.MethodPost, "/organization/create", params, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

// Organization fetches one organization with its member roster.
func (c *Client) Organization(ctx context.Context, id string) (*models.Organization, error) {
	var org models.Organization
	if err := c.doJSON(ctx, http.MethodGet, "/organization/"+id, nil, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

// UpdateOrganization updates an organization's fields.
func (c *Client) UpdateOrganization(ctx context.Context, id string, params OrganizationParams) (*models.Organization, error) {
	var org models.Organization
	if err := c.doJSON(ctx, http.MethodPut, "/organization/"+id, params, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

// DeleteOrganization deletes an organization and returns the deleted id.
func (c *Client) DeleteOrganization(ctx context.Context, id string) (string, error) {
	data, err := c.do(ctx, http.MethodDelete, "/organization/"+id, nil, "")
	if err != nil {
		return "", err
	}
	return idFromBody(data, id), nil
}

// AddMembers adds the users with the given emails to the organization and
// returns the updated roster.
func (c *Client) AddMembers(ctx context.Context, id string, emails []string) (*models.Organization, error) {
	var org models.Organization
	if err := c.doJSON(ctx, http.MethodPut, "/organization/members/"+id, memberEmails{Emails: emails}, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

// RemoveMembers removes the users with the given emails from the
// organization and returns the updated roster.
func (c *Client) RemoveMembers(ctx context.Context, id string, emails []string) (*models.Organization, error) {
	var org models.Organization
	if err := c.doJSON(ctx, http.MethodDelete, "/organization/members/"+id, memberEmails{Emails: emails}, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

// Organizations lists all organizations visible to the current user.
func (c *Client) Organizations(ctx context.Context) ([]models.Organization, error) {
	var orgs []models.Organization
	if err := c.doJSON(ctx, http.MethodGet, "/organizations", nil, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}
