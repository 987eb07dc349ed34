package catalog

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/mustafasafdar1/mern-ecommerce-mobile/pkg/models"
)

const (
	featuredLimit = 8

	productCacheTTL  = 5 * time.Minute
	listingCacheTTL  = 2 * time.Minute
	featuredCacheKey = "products:featured"
	brandsCacheKey   = "products:brands"
)

// ProductStore is the persistent catalog collection.
type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Search(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]*models.Product, int64, error)
	Update(ctx context.Context, id string, set bson.M) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	Featured(ctx context.Context, limit int64) ([]*models.Product, error)
	Brands(ctx context.Context) ([]string, error)
	AddReview(ctx context.Context, id string, review models.Review) error
}

// Cache is a read-through cache for hot catalog lookups. Cache failures
// degrade to a store read.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Audit records admin mutations.
type Audit interface {
	Record(ctx context.Context, actor, action, entityID string, data map[string]interface{}) error
}

type Service struct {
	store  ProductStore
	cache  Cache
	audit  Audit
	logger *zap.Logger
}

func NewService(store ProductStore, cache Cache, audit Audit, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		audit:  audit,
		logger: logger,
	}
}

// List runs a catalog query and returns one page plus the page math.
func (s *Service) List(ctx context.Context, q Query) (*models.ProductPage, error) {
	products, total, err := s.store.Search(ctx, q.Filter(), q.SortSpec(), q.Skip(), q.Limit())
	if err != nil {
		return nil, err
	}

	return &models.ProductPage{
		Products: products,
		Page:     q.Page,
		Pages:    Pages(total, q.PageSize),
		Total:    total,
	}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Product, error) {
	key := productCacheKey(id)
	if s.cache != nil {
		var cached models.Product
		if err := s.cache.GetJSON(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	product, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, product, productCacheTTL); err != nil {
			s.logger.Warn("Failed to cache product", zap.String("id", id), zap.Error(err))
		}
	}
	return product, nil
}

func (s *Service) Featured(ctx context.Context) ([]*models.Product, error) {
	if s.cache != nil {
		var cached []*models.Product
		if err := s.cache.GetJSON(ctx, featuredCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	products, err := s.store.Featured(ctx, featuredLimit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, featuredCacheKey, products, listingCacheTTL); err != nil {
			s.logger.Warn("Failed to cache featured products", zap.Error(err))
		}
	}
	return products, nil
}

func (s *Service) Brands(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		var cached []string
		if err := s.cache.GetJSON(ctx, brandsCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	brands, err := s.store.Brands(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, brandsCacheKey, brands, listingCacheTTL); err != nil {
			s.logger.Warn("Failed to cache brands", zap.Error(err))
		}
	}
	return brands, nil
}

func (s *Service) CreateProduct(ctx context.Context, actor string, product *models.Product) (*models.Product, error) {
	if product.Category == "" {
		product.Category = "Smartphone"
	}

	if err := s.store.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", zap.Error(err))
		return nil, err
	}

	s.invalidateListings(ctx)
	s.recordAudit(actor, "create_product", product.ID.Hex(), map[string]interface{}{
		"name": product.Name, "brand": product.Brand, "price": product.Price,
	})
	return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, actor, id string, update models.ProductUpdate) (*models.Product, error) {
	set := updateSet(update)
	if len(set) == 0 {
		return s.store.GetByID(ctx, id)
	}

	product, err := s.store.Update(ctx, id, set)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.recordAudit(actor, "update_product", id, map[string]interface{}{"fields": fieldNames(set)})
	return product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, actor, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	s.recordAudit(actor, "delete_product", id, nil)
	return nil
}

func (s *Service) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, productCacheKey(id), featuredCacheKey, brandsCacheKey); err != nil {
		s.logger.Warn("Failed to invalidate product cache", zap.String("id", id), zap.Error(err))
	}
}

func (s *Service) invalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, featuredCacheKey, brandsCacheKey); err != nil {
		s.logger.Warn("Failed to invalidate listing cache", zap.Error(err))
	}
}

func (s *Service) recordAudit(actor, action, entityID string, data map[string]interface{}) {
	if s.audit == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.audit.Record(ctx, actor, action, entityID, data); err != nil {
			s.logger.Warn("Failed to record audit entry",
				zap.String("action", action),
				zap.String("entity_id", entityID),
				zap.Error(err))
		}
	}()
}

func productCacheKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

// updateSet translates the non-nil fields of a partial update into a
// mongo $set document.
func updateSet(update models.ProductUpdate) bson.M {
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Brand != nil {
		set["brand"] = *update.Brand
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.OriginalPrice != nil {
		set["originalPrice"] = *update.OriginalPrice
	}
	if update.Discount != nil {
		set["discount"] = *update.Discount
	}
	if update.Images != nil {
		set["images"] = update.Images
	}
	if update.MobileImages != nil {
		set["mobileImages"] = update.MobileImages
	}
	if update.OutOfStock != nil {
		set["outOfStock"] = *update.OutOfStock
	}
	if update.CountInStock != nil {
		set["countInStock"] = *update.CountInStock
	}
	if update.IsFeatured != nil {
		set["isFeatured"] = *update.IsFeatured
	}
	if update.IsNewArrival != nil {
		set["isNewArrival"] = *update.IsNewArrival
	}
	if update.Specs != nil {
		set["specs"] = *update.Specs
	}
	if update.Tags != nil {
		set["tags"] = update.Tags
	}
	return set
}

func fieldNames(set bson.M) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	return names
}
