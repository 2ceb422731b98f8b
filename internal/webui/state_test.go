package webui

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"catalog/internal/client"
	"catalog/internal/models"
)

type fakeAPI struct {
	products  map[string][]models.Product // keyed by category filter
	createErr error
	created   []client.CreateParams
	listCalls []string
}

func (f *fakeAPI) Create(_ context.Context, params client.CreateParams) (models.Product, error) {
	if f.createErr != nil {
		return models.Product{}, f.createErr
	}
	f.created = append(f.created, params)
	return models.Product{ID: primitive.NewObjectID(), Name: params.Name}, nil
}

func (f *fakeAPI) List(_ context.Context, category string) ([]models.Product, error) {
	f.listCalls = append(f.listCalls, category)
	return f.products[category], nil
}

func sampleProducts() []models.Product {
	return []models.Product{
		{Name: "Desk Lamp", Category: "Furniture"},
		{Name: "Go Novel", Category: "Books"},
		{Name: "Floor Lamp", Category: "Furniture"},
	}
}

func TestDeriveCategories(t *testing.T) {
	categories := DeriveCategories(sampleProducts())
	assert.Equal(t, []string{models.AllCategorySentinel, "Furniture", "Books"}, categories,
		"sentinel first, then distinct categories in first-seen order")

	assert.Equal(t, []string{models.AllCategorySentinel}, DeriveCategories(nil))
}

func TestVisibleProductsFiltersBySearchText(t *testing.T) {
	s := NewState()
	s.Products = sampleProducts()

	s.SearchText = "lamp"
	names := []string{}
	for _, p := range s.VisibleProducts() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Desk Lamp", "Floor Lamp"}, names)

	s.SearchText = "BOOKS"
	visible := s.VisibleProducts()
	require.Len(t, visible, 1, "search also matches category, case-insensitively")
	assert.Equal(t, "Go Novel", visible[0].Name)

	s.SearchText = "   "
	assert.Len(t, s.VisibleProducts(), 3, "blank search shows everything")
}

func TestApplyFetchDropsStaleResponses(t *testing.T) {
	s := NewState()

	first := s.BeginFetch()  // fetch for "All Category"
	second := s.BeginFetch() // user switched to "Books" before the first resolved

	applied := s.ApplyFetch(second, "Books", []models.Product{{Name: "Go Novel", Category: "Books"}})
	assert.True(t, applied)

	// the older fetch resolves late; it must not overwrite the Books view
	applied = s.ApplyFetch(first, models.AllCategorySentinel, sampleProducts())
	assert.False(t, applied)
	require.Len(t, s.Products, 1)
	assert.Equal(t, "Go Novel", s.Products[0].Name)
}

func TestApplyFetchRecomputesCategoriesOnlyWhenUnfiltered(t *testing.T) {
	s := NewState()

	token := s.BeginFetch()
	s.ApplyFetch(token, "Books", []models.Product{{Name: "Go Novel", Category: "Books"}})
	assert.Equal(t, []string{models.AllCategorySentinel}, s.Categories,
		"filtered fetches keep the existing category set")

	token = s.BeginFetch()
	s.ApplyFetch(token, models.AllCategorySentinel, sampleProducts())
	assert.Equal(t, []string{models.AllCategorySentinel, "Furniture", "Books"}, s.Categories)
}

func TestRefreshFetchesSelectedCategory(t *testing.T) {
	api := &fakeAPI{products: map[string][]models.Product{
		"Books": {{Name: "Go Novel", Category: "Books"}},
	}}

	s := NewState()
	s.SelectCategory("Books")
	require.NoError(t, s.Refresh(context.Background(), api))

	assert.Equal(t, []string{"Books"}, api.listCalls)
	require.Len(t, s.Products, 1)
	assert.Equal(t, "Go Novel", s.Products[0].Name)
}

func TestSubmitSuccessClosesModalAndRefetches(t *testing.T) {
	api := &fakeAPI{products: map[string][]models.Product{
		models.AllCategorySentinel: sampleProducts(),
	}}

	s := NewState()
	s.OpenModal()
	s.Form = FormFields{Name: "Bookshelf", Price: "49.9", Category: "Furniture", Description: "d"}

	require.NoError(t, s.Submit(context.Background(), api))

	assert.False(t, s.ModalOpen)
	assert.Equal(t, FormFields{}, s.Form, "fields clear on success")
	assert.Empty(t, s.LastError)
	require.Len(t, api.created, 1)
	assert.Equal(t, 49.9, api.created[0].Price)
	assert.Equal(t, []string{models.AllCategorySentinel}, api.listCalls,
		"success triggers a re-fetch instead of a local insert")
	assert.Len(t, s.Products, 3)
}

func TestSubmitFailureKeepsModalAndFields(t *testing.T) {
	api := &fakeAPI{createErr: errors.New("product with this name already exists")}

	s := NewState()
	s.OpenModal()
	form := FormFields{Name: "Desk Lamp", Price: "20", Category: "Furniture", Description: "d"}
	s.Form = form

	err := s.Submit(context.Background(), api)
	require.Error(t, err)

	assert.True(t, s.ModalOpen)
	assert.Equal(t, form, s.Form, "entered data stays intact")
	assert.Equal(t, "product with this name already exists", s.LastError)
	assert.Empty(t, api.listCalls, "no re-fetch on failure")
}

func TestSubmitRejectsNonNumericPrice(t *testing.T) {
	api := &fakeAPI{}

	s := NewState()
	s.OpenModal()
	s.Form = FormFields{Name: "Bookshelf", Price: "cheap", Category: "Furniture", Description: "d"}

	err := s.Submit(context.Background(), api)
	require.Error(t, err)
	assert.Equal(t, "price must be a number", s.LastError)
	assert.Empty(t, api.created)
}

func TestCloseModalKeepsFields(t *testing.T) {
	s := NewState()
	s.OpenModal()
	s.Form.Name = "Half-typed"

	s.CloseModal()

	assert.False(t, s.ModalOpen)
	assert.Equal(t, "Half-typed", s.Form.Name)
}
