// Package client is a typed Go client for the catalog HTTP API, used by
// catalogctl and by anything else that talks to a running server.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/guonaihong/gout"

	"catalog/internal/models"
)

type Client struct {
	baseURL string
}

func New(baseURL string) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/")}
}

// APIError is a non-success response decoded from the server's {error} body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog api: status %d: %s", e.Status, e.Message)
}

type errorBody struct {
	Error string `json:"error"`
}

// CreateParams are the writable fields of a new product; the server assigns
// the id.
type CreateParams struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}

func (c *Client) Create(ctx context.Context, params CreateParams) (models.Product, error) {
	var (
		raw  []byte
		code int
	)
	err := gout.POST(c.baseURL + "/products").
		WithContext(ctx).
		SetJSON(params).
		BindBody(&raw).
		Code(&code).
		Do()
	if err != nil {
		return models.Product{}, fmt.Errorf("create product: %w", err)
	}

	var created models.Product
	if err := decodeResponse(code, http.StatusCreated, raw, &created); err != nil {
		return models.Product{}, err
	}
	return created, nil
}

// List fetches every product, or only one category when the filter is
// neither empty nor the "All Category" sentinel.
func (c *Client) List(ctx context.Context, category string) ([]models.Product, error) {
	df := gout.GET(c.baseURL + "/products").WithContext(ctx)
	if category != "" && category != models.AllCategorySentinel {
		df = df.SetQuery(gout.H{"category": category})
	}

	var (
		raw  []byte
		code int
	)
	if err := df.BindBody(&raw).Code(&code).Do(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]models.Product, 0)
	if err := decodeResponse(code, http.StatusOK, raw, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Search(ctx context.Context, q string) ([]models.Product, error) {
	var (
		raw  []byte
		code int
	)
	err := gout.GET(c.baseURL + "/products/search").
		WithContext(ctx).
		SetQuery(gout.H{"q": q}).
		BindBody(&raw).
		Code(&code).
		Do()
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	products := make([]models.Product, 0)
	if err := decodeResponse(code, http.StatusOK, raw, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Update(ctx context.Context, id string, fields models.ProductUpdate) (models.Product, error) {
	var (
		raw  []byte
		code int
	)
	err := gout.PUT(c.baseURL + "/products/" + id).
		WithContext(ctx).
		SetJSON(fields).
		BindBody(&raw).
		Code(&code).
		Do()
	if err != nil {
		return models.Product{}, fmt.Errorf("update product: %w", err)
	}

	var updated models.Product
	if err := decodeResponse(code, http.StatusOK, raw, &updated); err != nil {
		return models.Product{}, err
	}
	return updated, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	var (
		raw  []byte
		code int
	)
	err := gout.DELETE(c.baseURL + "/products/" + id).
		WithContext(ctx).
		BindBody(&raw).
		Code(&code).
		Do()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return decodeResponse(code, http.StatusOK, raw, nil)
}

func decodeResponse(code, want int, raw []byte, out interface{}) error {
	if code != want {
		var body errorBody
		if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
			return &APIError{Status: code, Message: body.Error}
		}
		return &APIError{Status: code, Message: strings.TrimSpace(string(raw))}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
