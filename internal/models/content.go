package models

// Content is a marketing content item: the authored fields, its delivery
// metadata, engagement counters, and the optional AI evaluation block.
type Content struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Channel   string     `json:"channel"`
	Type      string     `json:"type"`
	Objective string     `json:"objective,omitempty"`
	Audience  string     `json:"audience,omitempty"`
	Status    string     `json:"status"`
	Link      string     `json:"link,omitempty"`
	Text      string     `json:"text,omitempty"`
	Tags      StringList `json:"tags,omitempty"`
	Media     StringList `json:"media,omitempty"`

	Likes       int `json:"likes"`
	Shares      int `json:"shares"`
	Clicks      int `json:"clicks"`
	Comments    int `json:"comments"`
	Impressions int `json:"impressions"`

	ScheduledAt *Timestamp `json:"scheduled_at,omitempty"`
	PublishedAt *Timestamp `json:"published_at,omitempty"`
	CreatedAt   *Timestamp `json:"created_at,omitempty"`
	UpdatedAt   *Timestamp `json:"updated_at,omitempty"`

	OrganizationID string `json:"organization_id,omitempty"`
	ProductID      string `json:"product_id,omitempty"`

	// Evaluation fields populated by the server's generation pipeline.
	Score           *int       `json:"score,omitempty"`
	Analysis        string     `json:"analysis,omitempty"`
	Recommendations StringList `json:"recommendations,omitempty"`
}

// Engagement returns the sum of the interaction counters. Impressions are
// reach, not engagement, and are excluded.
func (c *Content) Engagement() int {
	return c.Likes + c.Shares + c.Clicks + c.Comments
}
