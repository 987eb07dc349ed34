package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is embedded in its product document. Name is a denormalized copy
// of the reviewer's name at submission time. Reviews are immutable once
// written.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	User      string             `bson:"user" json:"user"`
	Name      string             `bson:"name" json:"name"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type ProductSpecs struct {
	Display   string   `bson:"display,omitempty" json:"display,omitempty"`
	Processor string   `bson:"processor,omitempty" json:"processor,omitempty"`
	RAM       string   `bson:"ram,omitempty" json:"ram,omitempty"`
	Storage   string   `bson:"storage,omitempty" json:"storage,omitempty"`
	Battery   string   `bson:"battery,omitempty" json:"battery,omitempty"`
	Camera    string   `bson:"camera,omitempty" json:"camera,omitempty"`
	OS        string   `bson:"os,omitempty" json:"os,omitempty"`
	Color     []string `bson:"color,omitempty" json:"color,omitempty"`
}

// Product is a catalog document. Rating and NumReviews are derived from
// the embedded reviews and recomputed on every review append.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name          string             `bson:"name" json:"name" binding:"required"`
	Brand         string             `bson:"brand" json:"brand" binding:"required"`
	Category      string             `bson:"category" json:"category"`
	Description   string             `bson:"description" json:"description"`
	Price         float64            `bson:"price" json:"price" binding:"gte=0"`
	OriginalPrice float64            `bson:"originalPrice" json:"originalPrice"`
	Discount      float64            `bson:"discount" json:"discount"`
	Images        []string           `bson:"images" json:"images"`
	MobileImages  []string           `bson:"mobileImages" json:"mobileImages"`
	OutOfStock    bool               `bson:"outOfStock" json:"outOfStock"`
	CountInStock  int                `bson:"countInStock" json:"countInStock" binding:"gte=0"`
	Rating        float64            `bson:"rating" json:"rating"`
	NumReviews    int                `bson:"numReviews" json:"numReviews"`
	Reviews       []Review           `bson:"reviews" json:"reviews"`
	IsFeatured    bool               `bson:"isFeatured" json:"isFeatured"`
	IsNewArrival  bool               `bson:"isNewArrival" json:"isNewArrival"`
	Specs         ProductSpecs       `bson:"specs" json:"specs"`
	Tags          []string           `bson:"tags" json:"tags"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductUpdate carries the updatable fields of a product. Nil pointers
// leave the stored value unchanged.
type ProductUpdate struct {
	Name          *string       `json:"name,omitempty"`
	Brand         *string       `json:"brand,omitempty"`
	Category      *string       `json:"category,omitempty"`
	Description   *string       `json:"description,omitempty"`
	Price         *float64      `json:"price,omitempty"`
	OriginalPrice *float64      `json:"originalPrice,omitempty"`
	Discount      *float64      `json:"discount,omitempty"`
	Images        []string      `json:"images,omitempty"`
	MobileImages  []string      `json:"mobileImages,omitempty"`
	OutOfStock    *bool         `json:"outOfStock,omitempty"`
	CountInStock  *int          `json:"countInStock,omitempty"`
	IsFeatured    *bool         `json:"isFeatured,omitempty"`
	IsNewArrival  *bool         `json:"isNewArrival,omitempty"`
	Specs         *ProductSpecs `json:"specs,omitempty"`
	Tags          []string      `json:"tags,omitempty"`
}

// ProductPage is one page of catalog results.
type ProductPage struct {
	Products []*Product `json:"products"`
	Page     int        `json:"page"`
	Pages    int        `json:"pages"`
	Total    int64      `json:"total"`
}
