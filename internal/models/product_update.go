package models

// ProductUpdate carries the updatable fields of a product; nil means the
// field keeps its stored value.
type ProductUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty" binding:"omitempty,category"`
	Description *string  `json:"description,omitempty"`
	Image       *string  `json:"image,omitempty"`
}
