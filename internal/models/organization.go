package models

// Member is the denormalized member entry embedded in an organization.
// Membership is associated by email, so this is a weak copy of the user
// record, not a reference to it.
type Member struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Organization is an organization with its member roster.
type Organization struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Members     []Member `json:"members,omitempty"`
}

// HasMember reports whether the roster contains a member with the given email.
func (o *Organization) HasMember(email string) bool {
	for _, m := range o.Members {
		if m.Email == email {
			return true
		}
	}
	return false
}
