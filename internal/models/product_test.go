package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestIsValidCategory(t *testing.T) {
	for _, category := range Categories {
		if !IsValidCategory(category) {
			t.Fatalf("expected %q to be valid", category)
		}
	}

	for _, invalid := range []string{"", "Gadgets", "electronics", AllCategorySentinel} {
		if IsValidCategory(invalid) {
			t.Fatalf("expected %q to be invalid", invalid)
		}
	}
}

func TestProductJSONShape(t *testing.T) {
	body, err := json.Marshal(Product{Name: "Desk Lamp", Price: 20, Category: "Furniture", Description: "d"})
	if err != nil {
		t.Fatalf("json marshal failed: %v", err)
	}

	jsonBody := string(body)
	for _, key := range []string{"\"id\"", "\"name\"", "\"price\"", "\"category\"", "\"description\"", "\"image\""} {
		if !strings.Contains(jsonBody, key) {
			t.Fatalf("expected %s in product json, got %s", key, jsonBody)
		}
	}
}
