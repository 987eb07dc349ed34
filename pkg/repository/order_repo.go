package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mustafasafdar1/mern-ecommerce-mobile/pkg/models"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %q: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// GetDetail returns an order with its owner's name and email joined on.
func (r *OrderRepository) GetDetail(ctx context.Context, id string) (*models.OrderDetail, error) {
	order, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &models.OrderDetail{Order: *order}
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", order.UserID).First(&user).Error; err == nil {
		detail.User = models.OrderUser{ID: user.ID, Name: user.Name, Email: user.Email}
	}
	return detail, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	var orders []*models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user %s: %w", userID, err)
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	return orders, nil
}

// ListAll returns every order newest-first with owner projections joined
// for the admin dashboard.
func (r *OrderRepository) ListAll(ctx context.Context) ([]*models.OrderDetail, error) {
	var orders []*models.Order
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	userIDs := make([]string, 0, len(orders))
	seen := make(map[string]bool, len(orders))
	for _, o := range orders {
		if !seen[o.UserID] {
			seen[o.UserID] = true
			userIDs = append(userIDs, o.UserID)
		}
	}

	usersByID := make(map[string]models.OrderUser, len(userIDs))
	if len(userIDs) > 0 {
		var users []models.User
		if err := r.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
			return nil, fmt.Errorf("failed to join users onto orders: %w", err)
		}
		for _, u := range users {
			usersByID[u.ID] = models.OrderUser{ID: u.ID, Name: u.Name, Email: u.Email}
		}
	}

	details := make([]*models.OrderDetail, len(orders))
	for i, o := range orders {
		details[i] = &models.OrderDetail{Order: *o, User: usersByID[o.UserID]}
	}
	return details, nil
}

// Transition runs apply against the order inside a transaction holding a
// row lock, so concurrent transitions on the same order serialize.
func (r *OrderRepository) Transition(ctx context.Context, id string, apply func(*models.Order) error) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("order %q: %w", id, models.ErrNotFound)
			}
			return fmt.Errorf("failed to get order: %w", err)
		}

		if err := apply(&order); err != nil {
			return err
		}

		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
