// Package models holds the wire representations of the resources served by
// the Socialite API. These are cache records mirrored from the server, not
// authoritative state; all tolerant decoding of loosely shaped fields lives
// here so nothing downstream re-parses payloads.
package models

// User is the profile representation returned by the session and profile
// endpoints.
type User struct {
	ID           string        `json:"id"`
	Type         string        `json:"type,omitempty"`
	Email        string        `json:"email"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	Organization *Organization `json:"organization,omitempty"`
}

// DisplayName returns the user's full name, falling back to the email when
// no name has been set on the profile.
func (u *User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}
