package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/mathenaangeles/socialite/internal/models"
)

// GenerateParams are the AI-generation parameters accepted alongside a
// content create/update. When set, the server generates the caption and
// media instead of requiring them up front.
type GenerateParams struct {
	Mode         string
	Instructions string
	Style        string
	Dimensions   string
	KeyElements  string
	ImageCount   int
}

// ContentParams are the writable content fields. Media holds local file
// paths to upload; content writes are always multipart, matching the form
// the original client submits.
type ContentParams struct {
	Title     string
	Channel   string
	Type      string
	Objective string
	Audience  string
	Status    string
	Link      string
	Text      string
	Tags      []string
	ProductID string

	ScheduledAt time.Time
	PublishedAt time.Time

	Media    []string
	Generate *GenerateParams
}

// fields flattens the params into the wire form field names. The text field
// travels as "caption" and tags as a JSON-encoded list, both legacies of the
// original form encoding that the server expects verbatim.
func (p ContentParams) fields() (map[string]string, error) {
	fields := map[string]string{
		"title":   p.Title,
		"channel": p.Channel,
		"type":    p.Type,
		"status":  p.Status,
	}
	if p.Objective != "" {
		fields["objective"] = p.Objective
	}
	if p.Audience != "" {
		fields["audience"] = p.Audience
	}
	if p.Link != "" {
		fields["link"] = p.Link
	}
	if p.Text != "" {
		fields["caption"] = p.Text
	}
	if p.ProductID != "" {
		fields["productId"] = p.ProductID
	}
	if len(p.Tags) > 0 {
		encoded, err := json.Marshal(p.Tags)
		if err != nil {
			return nil, err
		}
		fields["tags"] = string(encoded)
	}
	if !p.ScheduledAt.IsZero() {
		fields["scheduled_at"] = p.ScheduledAt.UTC().Format(time.RFC3339)
	}
	if !p.PublishedAt.IsZero() {
		fields["published_at"] = p.PublishedAt.UTC().Format(time.RFC3339)
	}
	if p.Generate != nil {
		fields["mode"] = p.Generate.Mode
		if p.Generate.Instructions != "" {
			fields["instructions"] = p.Generate.Instructions
		}
		if p.Generate.Style != "" {
			fields["style"] = p.Generate.Style
		}
		if p.Generate.Dimensions != "" {
			fields["dimensions"] = p.Generate.Dimensions
		}
		if p.Generate.KeyElements != "" {
			fields["key_elements"] = p.Generate.KeyElements
		}
		if p.Generate.ImageCount > 0 {
			fields["number_of_images"] = strconv.Itoa(p.Generate.ImageCount)
		}
	}
	return fields, nil
}

// CreateContent creates a content item, uploading attached media and passing
// through any generation parameters.
func (c *Client) CreateContent(ctx context.Context, params ContentParams) (*models.Content, error) {
	return c.writeContent(ctx, http.MethodPost, "/content/create", params)
}

// Content fetches one content item including its analytics fields.
func (c *Client) Content(ctx context.Context, id string) (*models.Content, error) {
	var content models.Content
	if err := c.doJSON(ctx, http.MethodGet, "/content/"+id, nil, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

// UpdateContent updates a content item.
func (c *Client) UpdateContent(ctx context.Context, id string, params ContentParams) (*models.Content, error) {
	return c.writeContent(ctx, http.MethodPut, "/content/"+id, params)
}

// DeleteContent deletes a content item and returns the deleted id.
func (c *Client) DeleteContent(ctx context.Context, id string) (string, error) {
	data, err := c.do(ctx, http.MethodDelete, "/content/"+id, nil, "")
	if err != nil {
		return "", err
	}
	return idFromBody(data, id), nil
}

// Contents lists the organization's content items.
func (c *Client) Contents(ctx context.Context) ([]models.Content, error) {
	var contents []models.Content
	if err := c.doJSON(ctx, http.MethodGet, "/contents", nil, &contents); err != nil {
		return nil, err
	}
	return contents, nil
}

func (c *Client) writeContent(ctx context.Context, method, path string, params ContentParams) (*models.Content, error) {
	fields, err := params.fields()
	if err != nil {
		return nil, err
	}
	body, contentType, err := multipartBody(fields, map[string][]string{"media": params.Media})
	if err != nil {
		return nil, err
	}
	data, err := c.do(ctx, method, path, body, contentType)
	if err != nil {
		return nil, err
	}
	var content models.Content
	if err := decodeBody(method, path, data, &content); err != nil {
		return nil, err
	}
	return &content, nil
}
