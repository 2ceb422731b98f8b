package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"catalog/internal/database"
	"catalog/internal/models"
)

var (
	ErrDuplicateName = errors.New("product with this name already exists")
	ErrNotFound      = errors.New("product not found")
	ErrValidation    = errors.New("product failed schema validation")
)

// documentValidationFailure is the server code raised when a write violates
// the collection's $jsonSchema validator.
const documentValidationFailure = 121

// Products owns all access to the products collection. The name unique
// index is the sole duplicate check: create performs a single insert and
// translates the constraint violation, so there is no find-then-insert
// window.
type Products struct {
	db *mongo.Database
}

func NewProducts(db *mongo.Database) *Products {
	return &Products{db: db}
}

func (s *Products) collection() *mongo.Collection {
	return s.db.Collection(database.ProductCollection)
}

func (s *Products) Create(ctx context.Context, p models.Product) (models.Product, error) {
	res, err := s.collection().InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Product{}, ErrDuplicateName
		}
		if isSchemaViolation(err) {
			return models.Product{}, fmt.Errorf("%w: %s", ErrValidation, err)
		}
		return models.Product{}, fmt.Errorf("insert product: %w", err)
	}

	p.ID = res.InsertedID.(primitive.ObjectID)
	return p, nil
}

// List returns every product, narrowed to an exact category match unless
// the filter is empty or the "All Category" sentinel.
func (s *Products) List(ctx context.Context, category string) ([]models.Product, error) {
	filter := bson.M{}
	if category = strings.TrimSpace(category); category != "" && category != models.AllCategorySentinel {
		filter["category"] = category
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := s.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// Search matches q as a case-insensitive substring of name or category.
// The pattern is regex-escaped, so q is always treated literally; an empty
// q matches every document.
func (s *Products) Search(ctx context.Context, q string) ([]models.Product, error) {
	pattern := regexp.QuoteMeta(strings.TrimSpace(q))
	regex := primitive.Regex{Pattern: pattern, Options: "i"}

	filter := bson.M{"$or": []bson.M{
		{"name": regex},
		{"category": regex},
	}}

	cursor, err := s.collection().Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// Update merges the non-nil fields onto the stored document and returns the
// post-update product. Renaming onto an existing name trips the unique
// index and reports ErrDuplicateName.
func (s *Products) Update(ctx context.Context, id primitive.ObjectID, fields models.ProductUpdate) (models.Product, error) {
	set := bson.M{}
	if fields.Name != nil {
		set["name"] = strings.TrimSpace(*fields.Name)
	}
	if fields.Price != nil {
		set["price"] = *fields.Price
	}
	if fields.Category != nil {
		set["category"] = *fields.Category
	}
	if fields.Description != nil {
		set["description"] = *fields.Description
	}
	if fields.Image != nil {
		set["image"] = strings.TrimSpace(*fields.Image)
	}

	if len(set) == 0 {
		var current models.Product
		err := s.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&current)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Product{}, ErrNotFound
		}
		if err != nil {
			return models.Product{}, fmt.Errorf("find product: %w", err)
		}
		return current, nil
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Product
	err := s.collection().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Product{}, ErrDuplicateName
		}
		if isSchemaViolation(err) {
			return models.Product{}, fmt.Errorf("%w: %s", ErrValidation, err)
		}
		return models.Product{}, fmt.Errorf("update product: %w", err)
	}
	return updated, nil
}

func (s *Products) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Products) Ping(ctx context.Context) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return s.db.Client().Ping(checkCtx, readpref.Primary())
}

func isSchemaViolation(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, writeErr := range we.WriteErrors {
			if writeErr.Code == documentValidationFailure {
				return true
			}
		}
	}
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && cmdErr.Code == documentValidationFailure
}
