package models

// Product is a catalog entry owned by an organization.
type Product struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	Price          float64    `json:"price"`
	Currency       string     `json:"currency"`
	Category       string     `json:"category,omitempty"`
	Sales          int        `json:"sales"`
	Stocks         int        `json:"stocks"`
	Images         StringList `json:"images,omitempty"`
	OrganizationID string     `json:"organization_id,omitempty"`
}
