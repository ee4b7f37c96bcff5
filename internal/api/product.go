package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mathenaangeles/socialite/internal/models"
)

// ProductParams are the writable product fields. Images holds local file
// paths to upload; when present the request is encoded as multipart form
// data, otherwise plain JSON.
type ProductParams struct {
	Name        string
	Description string
	Price       float64
	Currency    string
	Category    string
	Stocks      int
	Images      []string
}

func (p ProductParams) fields() map[string]string {
	fields := map[string]string{
		"name":  p.Name,
		"price": strconv.FormatFloat(p.Price, 'f', -1, 64),
	}
	if p.Currency != "" {
		fields["currency"] = p.Currency
	}
	if p.Description != "" {
		fields["description"] = p.Description
	}
	if p.Category != "" {
		fields["category"] = p.Category
	}
	if p.Stocks != 0 {
		fields["stocks"] = strconv.Itoa(p.Stocks)
	}
	return fields
}

func (p ProductParams) jsonBody() map[string]any {
	body := map[string]any{
		"name":  p.Name,
		"price": p.Price,
	}
	if p.Currency != "" {
		body["currency"] = p.Currency
	}
	if p.Description != "" {
		body["description"] = p.Description
	}
	if p.Category != "" {
		body["category"] = p.Category
	}
	if p.Stocks != 0 {
		body["stocks"] = p.Stocks
	}
	return body
}

// CreateProduct creates a product, uploading any attached images.
func (c *Client) CreateProduct(ctx context.Context, params ProductParams) (*models.Product, error) {
	return c.writeProduct(ctx, http.MethodPost, "/product/create", params)
}

// Product fetches one product.
func (c *Client) Product(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := c.doJSON(ctx, http.MethodGet, "/product/"+id, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct updates a product, uploading any newly attached images.
func (c *Client) UpdateProduct(ctx context.Context, id string, params ProductParams) (*models.Product, error) {
	return c.writeProduct(ctx, http.MethodPut, "/product/"+id, params)
}

// DeleteProduct deletes a product and returns the deleted id.
func (c *Client) DeleteProduct(ctx context.Context, id string) (string, error) {
	data, err := c.do(ctx, http.MethodDelete, "/product/"+id, nil, "")
	if err != nil {
		return "", err
	}
	return idFromBody(data, id), nil
}

// Products lists the organization's products.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) writeProduct(ctx context.Context, method, path string, params ProductParams) (*models.Product, error) {
	var product models.Product
	if len(params.Images) == 0 {
		if err := c.doJSON(ctx, method, path, params.jsonBody(), &product); err != nil {
			return nil, err
		}
		return &product, nil
	}

	body, contentType, err := multipartBody(params.fields(), map[string][]string{"images": params.Images})
	if err != nil {
		return nil, err
	}
	data, err := c.do(ctx, method, path, body, contentType)
	if err != nil {
		return nil, err
	}
	if err := decodeBody(method, path, data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}
