package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-storefront/models"
)

const (
	productCollection  = "products"
	categoryCollection = "categories"
)

// MongoSource reads the catalog from the products and categories collections
// of a MongoDB database
type MongoSource struct {
	Products   *mongo.Collection
	Categories *mongo.Collection
}

// NewMongoSource creates a source over the given database
func NewMongoSource(db *mongo.Database) *MongoSource {
	return &MongoSource{
		Products:   db.Collection(productCollection),
		Categories: db.Collection(categoryCollection),
	}
}

type productDocument struct {
	ID          interface{}   `bson:"_id"`
	Name        string        `bson:"name"`
	Description string        `bson:"description"`
	Price       bson.RawValue `bson:"price"`
	Images      []string      `bson:"images"`
	Category    string        `bson:"category"`
	Tags        []string      `bson:"tags"`
	Stock       int           `bson:"stock"`
	Rating      float64       `bson:"rating"`
	Featured    bool          `bson:"featured"`
}

type categoryDocument struct {
	ID          interface{} `bson:"_id"`
	Name        string      `bson:"name"`
	Description string      `bson:"description"`
	Image       string      `bson:"image"`
}

// Load reads both collections in _id order, which is insertion order for
// generated ObjectIDs
func (s *MongoSource) Load(ctx context.Context) ([]models.Product, []models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	var productDocs []productDocument
	if err := findAll(ctx, s.Products, opts, &productDocs); err != nil {
		return nil, nil, err
	}
	var categoryDocs []categoryDocument
	if err := findAll(ctx, s.Categories, opts, &categoryDocs); err != nil {
		return nil, nil, err
	}

	products := make([]models.Product, 0, len(productDocs))
	for _, d := range productDocs {
		price, err := documentPrice(d.Price)
		if err != nil {
			return nil, nil, fmt.Errorf("product %s: %w", documentID(d.ID), err)
		}
		products = append(products, models.Product{
			ID:          documentID(d.ID),
			Name:        d.Name,
			Description: d.Description,
			Price:       price,
			Images:      d.Images,
			Category:    d.Category,
			Tags:        d.Tags,
			Stock:       d.Stock,
			Rating:      d.Rating,
			Featured:    d.Featured,
		})
	}

	categories := make([]models.Category, 0, len(categoryDocs))
	for _, d := range categoryDocs {
		categories = append(categories, models.Category{
			ID:          documentID(d.ID),
			Name:        d.Name,
			Description: d.Description,
			Image:       d.Image,
		})
	}
	return products, categories, nil
}

func findAll(ctx context.Context, coll *mongo.Collection, opts *options.FindOptions, out interface{}) error {
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return fmt.Errorf("find %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("read %s: %w", coll.Name(), err)
	}
	return nil
}

// documentPrice accepts prices stored as Decimal128, double, integer or
// string. A missing price is zero.
func documentPrice(raw bson.RawValue) (decimal.Decimal, error) {
	if d, ok := raw.Decimal128OK(); ok {
		return decimal.NewFromString(d.String())
	}
	if f, ok := raw.DoubleOK(); ok {
		return decimal.NewFromFloat(f), nil
	}
	if n, ok := raw.Int32OK(); ok {
		return decimal.NewFromInt(int64(n)), nil
	}
	if n, ok := raw.Int64OK(); ok {
		return decimal.NewFromInt(n), nil
	}
	if s, ok := raw.StringValueOK(); ok {
		return decimal.NewFromString(s)
	}
	if raw.IsZero() || raw.Type == bson.TypeNull {
		return decimal.Zero, nil
	}
	return decimal.Decimal{}, fmt.Errorf("unsupported price type %s", raw.Type)
}

func documentID(v interface{}) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}
