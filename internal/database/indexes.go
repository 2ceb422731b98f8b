package database

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"catalog/internal/models"
)

// ProductCollection is the single collection backing the catalog.
const ProductCollection = "products"

func EnsureProductIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection(ProductCollection).Indexes()

	nameIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
		Options: options.Index().
			SetName("name_unique").
			SetUnique(true),
	}

	log.Println("EnsureProductIndexes: creating name_unique index")
	_, err := indexes.CreateOne(ctx, nameIndex)
	if err != nil {
		log.Println("EnsureProductIndexes: name index error:", err)
		return err
	}
	log.Println("EnsureProductIndexes: name_unique index created")
	return nil
}

// EnsureProductSchema installs the collection validator so field presence,
// types and the category enum are enforced by the store itself. The image
// field is deliberately absent from required: it is optional.
func EnsureProductSchema(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := db.CreateCollection(ctx, ProductCollection,
		options.CreateCollection().SetValidator(productSchema()))
	if err == nil {
		log.Println("EnsureProductSchema: products collection created with validator")
		return nil
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Name == "NamespaceExists" {
		log.Println("EnsureProductSchema: products exists, updating validator")
		return db.RunCommand(ctx, bson.D{
			{Key: "collMod", Value: ProductCollection},
			{Key: "validator", Value: productSchema()},
		}).Err()
	}

	log.Println("EnsureProductSchema: create collection error:", err)
	return err
}

func productSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"name", "price", "category", "description"},
			"properties": bson.M{
				"name":        bson.M{"bsonType": "string"},
				"price":       bson.M{"bsonType": []string{"double", "int", "long", "decimal"}},
				"category":    bson.M{"enum": models.Categories},
				"description": bson.M{"bsonType": "string"},
				"image":       bson.M{"bsonType": "string"},
			},
		},
	}
}
