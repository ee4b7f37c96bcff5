package api

import (
	"context"
	"net/http"

	"github.com/mathenaangeles/socialite/internal/models"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and opens a session for it.
func (c *Client) Register(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := c.doJSON(ctx, http.MethodPost, "/register", credentials{Email: email, Password: password}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login opens a session for an existing account.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := c.doJSON(ctx, http.MethodPost, "/login", credentials{Email: email, Password: password}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout destroys the server-side session. The local cookie purge is the
// caller's responsibility so it can be sequenced with the state purge.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/logout", struct{}{}, nil)
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, http.MethodGet, "/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile updates the authenticated user's name fields.
func (c *Client) UpdateProfile(ctx context.Context, firstName, lastName string) (*models.User, error) {
	payload := struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}{FirstName: firstName, LastName: lastName}

	var user models.User
	if err := c.doJSON(ctx, http.MethodPut, "/profile", payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteAccount permanently deletes the authenticated user's account and
// ends the session.
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodDelete, "/delete_account", nil, nil)
}
