package models

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AllCategorySentinel is the category filter value meaning "no filter".
const AllCategorySentinel = "All Category"

// Categories is the fixed set a product may belong to.
var Categories = []string{
	"Electronics",
	"Homes & Kitchen",
	"Furniture",
	"Clothing",
	"Books",
	"Sports",
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image" json:"image"`
}

func IsValidCategory(value string) bool {
	for _, category := range Categories {
		if category == value {
			return true
		}
	}
	return false
}

// CategoryValidation is registered with gin's binding engine under the
// "category" tag so bound payloads reject values outside Categories.
func CategoryValidation(fl validator.FieldLevel) bool {
	return IsValidCategory(fl.Field().String())
}
