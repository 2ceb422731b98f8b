// Package webui holds the catalog page's view state in one explicit store
// object. Rendering reads from State; all mutation goes through its
// methods, and derived data (the category pills) is recomputed by the pure
// DeriveCategories instead of being patched in place.
package webui

import (
	"context"
	"strconv"
	"strings"

	"catalog/internal/client"
	"catalog/internal/models"
)

// API is what the state container needs from the catalog backend.
type API interface {
	Create(ctx context.Context, params client.CreateParams) (models.Product, error)
	List(ctx context.Context, category string) ([]models.Product, error)
}

// FormFields mirrors the add-product modal inputs. Price stays a string
// until submit, like any text input.
type FormFields struct {
	Name        string
	Price       string
	Category    string
	Description string
	Image       string
}

type State struct {
	Products         []models.Product
	Categories       []string
	SelectedCategory string
	SearchText       string
	Form             FormFields
	ModalOpen        bool
	LastError        string

	// latest issued fetch token; responses carrying an older token are
	// stale and must not overwrite Products.
	latestToken uint64
}

func NewState() *State {
	return &State{
		Products:         make([]models.Product, 0),
		Categories:       []string{models.AllCategorySentinel},
		SelectedCategory: models.AllCategorySentinel,
	}
}

// DeriveCategories returns the sentinel followed by the distinct categories
// of products in first-seen order.
func DeriveCategories(products []models.Product) []string {
	categories := []string{models.AllCategorySentinel}
	seen := map[string]struct{}{}
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}

// BeginFetch issues the token for a new in-flight fetch. Issuing a newer
// token supersedes every earlier one.
func (s *State) BeginFetch() uint64 {
	s.latestToken++
	return s.latestToken
}

// ApplyFetch installs a fetch result. A response whose token is not the
// latest issued is dropped, so an out-of-order response can never overwrite
// fresher state. The category set is only recomputed after an unfiltered
// fetch, matching how the page behaves.
func (s *State) ApplyFetch(token uint64, forCategory string, products []models.Product) bool {
	if token != s.latestToken {
		return false
	}
	s.Products = products
	if forCategory == models.AllCategorySentinel || forCategory == "" {
		s.Categories = DeriveCategories(products)
	}
	return true
}

// VisibleProducts applies the client-side search filter on top of the
// server-filtered product set: case-insensitive substring of name or
// category.
func (s *State) VisibleProducts() []models.Product {
	needle := strings.ToLower(strings.TrimSpace(s.SearchText))
	if needle == "" {
		return s.Products
	}
	visible := make([]models.Product, 0, len(s.Products))
	for _, p := range s.Products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) {
			visible = append(visible, p)
		}
	}
	return visible
}

// SelectCategory switches the active filter. The caller is expected to
// follow up with Refresh.
func (s *State) SelectCategory(category string) {
	s.SelectedCategory = category
}

// Refresh fetches the selected category and installs the result under a
// fresh token. On error the previous product set stays on screen.
func (s *State) Refresh(ctx context.Context, api API) error {
	token := s.BeginFetch()
	category := s.SelectedCategory

	products, err := api.List(ctx, category)
	if err != nil {
		return err
	}

	s.ApplyFetch(token, category, products)
	return nil
}

func (s *State) OpenModal() {
	s.ModalOpen = true
	s.LastError = ""
}

// CloseModal dismisses the modal without touching the entered fields, the
// backdrop-click behavior.
func (s *State) CloseModal() {
	s.ModalOpen = false
}

// Submit sends the form as a create. On success the modal closes, the form
// clears and the selected category is re-fetched, so the grid always shows
// server state rather than an optimistic insert. On failure the modal stays
// open with the fields intact and LastError carries the server's message.
func (s *State) Submit(ctx context.Context, api API) error {
	price, err := strconv.ParseFloat(strings.TrimSpace(s.Form.Price), 64)
	if err != nil {
		s.LastError = "price must be a number"
		return err
	}

	_, err = api.Create(ctx, client.CreateParams{
		Name:        strings.TrimSpace(s.Form.Name),
		Price:       price,
		Category:    s.Form.Category,
		Description: s.Form.Description,
		Image:       strings.TrimSpace(s.Form.Image),
	})
	if err != nil {
		s.LastError = err.Error()
		return err
	}

	s.ModalOpen = false
	s.Form = FormFields{}
	s.LastError = ""

	return s.Refresh(ctx, api)
}
