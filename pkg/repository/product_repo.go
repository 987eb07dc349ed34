package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mustafasafdar1/mern-ecommerce-mobile/pkg/models"
)

const productCollectionName = "products"

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(m *MongoRepository) *ProductRepository {
	return &ProductRepository{collection: m.Collection(productCollectionName)}
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	if product.Reviews == nil {
		product.Reviews = []models.Review{}
	}
	product.Rating = 0
	product.NumReviews = 0

	_, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("product %q: %w", id, models.ErrNotFound)
	}

	var product models.Product
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("product %q: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

// Search runs a filtered, sorted, paginated catalog query and returns the
// page plus the total match count.
func (r *ProductRepository) Search(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]*models.Product, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	findOptions := options.Find().SetSort(sort).SetSkip(skip).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []*models.Product{}
	if err = cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, total, nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, set bson.M) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("product %q: %w", id, models.ErrNotFound)
	}

	set["updatedAt"] = time.Now()

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var updated models.Product
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("product %q: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &updated, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("product %q: %w", id, models.ErrNotFound)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("product %q: %w", id, models.ErrNotFound)
	}
	return nil
}

func (r *ProductRepository) Featured(ctx context.Context, limit int64) ([]*models.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"isFeatured": true}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to find featured products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []*models.Product{}
	if err = cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode featured products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) Brands(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "brand", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}

	brands := []string{}
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			brands = append(brands, s)
		}
	}
	return brands, nil
}

// AddReview appends a review and recomputes the rating aggregate in a
// single update. The filter excludes documents already reviewed by the
// same user, so the duplicate check, the append and the recompute cannot
// interleave with a concurrent submission.
func (r *ProductRepository) AddReview(ctx context.Context, id string, review models.Review) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("product %q: %w", id, models.ErrNotFound)
	}

	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now()

	filter := bson.M{
		"_id":          oid,
		"reviews.user": bson.M{"$ne": review.User},
	}
	update := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.M{
			"reviews": bson.M{"$concatArrays": bson.A{
				bson.M{"$ifNull": bson.A{"$reviews", bson.A{}}},
				bson.M{"$literal": bson.A{review}},
			}},
			"updatedAt": review.CreatedAt,
		}}},
		bson.D{{Key: "$set", Value: bson.M{
			"numReviews": bson.M{"$size": "$reviews"},
			"rating":     bson.M{"$avg": "$reviews.rating"},
		}}},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to add review: %w", err)
	}
	if result.MatchedCount == 0 {
		// Nothing matched: either the product is gone or this user has
		// already reviewed it.
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return fmt.Errorf("failed to check product: %w", err)
		}
		if count == 0 {
			return fmt.Errorf("product %q: %w", id, models.ErrNotFound)
		}
		return models.ErrAlreadyReviewed
	}
	return nil
}
