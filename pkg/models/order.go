package models

import (
	"time"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// OrderItem is a point-in-time snapshot of a catalog product, not a live
// join. Product holds the catalog id the snapshot was taken from.
type OrderItem struct {
	Product  string  `json:"product" binding:"required"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity" binding:"required,gt=0"`
}

type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// PaymentResult records an external payment reference. It is accepted and
// stored but unused by the in-scope flows.
type PaymentResult struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	EmailAddress string `json:"email_address"`
}

// Order rows live in MySQL; the item snapshot, shipping address and payment
// result are stored as JSON text columns.
type Order struct {
	ID              string          `gorm:"primaryKey;type:varchar(36)" json:"_id"`
	UserID          string          `gorm:"type:varchar(36);not null;index" json:"user"`
	OrderItems      []OrderItem     `gorm:"serializer:json;type:text" json:"orderItems"`
	ShippingAddress ShippingAddress `gorm:"serializer:json;type:text" json:"shippingAddress"`
	PaymentMethod   string          `gorm:"type:varchar(50);not null;default:'Cash on Delivery'" json:"paymentMethod"`
	PaymentResult   PaymentResult   `gorm:"serializer:json;type:text" json:"paymentResult"`
	ItemsPrice      float64         `gorm:"type:decimal(10,2)" json:"itemsPrice"`
	ShippingPrice   float64         `gorm:"type:decimal(10,2)" json:"shippingPrice"`
	TaxPrice        float64         `gorm:"type:decimal(10,2)" json:"taxPrice"`
	TotalPrice      float64         `gorm:"type:decimal(10,2)" json:"totalPrice"`
	IsPaid          bool            `gorm:"not null;default:false" json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	IsDelivered     bool            `gorm:"not null;default:false" json:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderUser is the owner projection joined onto admin order listings.
type OrderUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderDetail is an order with its owner joined for display. The outer
// User field shadows the embedded order's user id in the JSON output.
type OrderDetail struct {
	Order
	User OrderUser `json:"user"`
}
