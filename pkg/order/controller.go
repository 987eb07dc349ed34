package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mustafasafdar1/mern-ecommerce-mobile/pkg/models"
)

// Store is the persistent order collection. Transition must run apply
// under per-order serialization so concurrent status changes on the same
// order cannot interleave.
type Store interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetDetail(ctx context.Context, id string) (*models.OrderDetail, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Order, error)
	ListAll(ctx context.Context) ([]*models.OrderDetail, error)
	Transition(ctx context.Context, id string, apply func(*models.Order) error) (*models.Order, error)
}

// Audit records admin mutations.
type Audit interface {
	Record(ctx context.Context, actor, action, entityID string, data map[string]interface{}) error
}

type Controller struct {
	store  Store
	audit  Audit
	logger *zap.Logger
}

func NewController(store Store, audit Audit, logger *zap.Logger) *Controller {
	return &Controller{
		store:  store,
		audit:  audit,
		logger: logger,
	}
}

// CreateInput is a checkout snapshot. Prices are trusted as supplied and
// not recomputed against the catalog; stock is left untouched.
type CreateInput struct {
	OrderItems      []models.OrderItem     `json:"orderItems" binding:"omitempty,dive"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	ItemsPrice      float64                `json:"itemsPrice"`
	ShippingPrice   float64                `json:"shippingPrice"`
	TaxPrice        float64                `json:"taxPrice"`
	TotalPrice      float64                `json:"totalPrice"`
}

func (c *Controller) Create(ctx context.Context, userID string, input CreateInput) (*models.Order, error) {
	if len(input.OrderItems) == 0 {
		return nil, models.ErrNoOrderItems
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "Cash on Delivery"
	}

	order := &models.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		OrderItems:      input.OrderItems,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   paymentMethod,
		ItemsPrice:      input.ItemsPrice,
		ShippingPrice:   input.ShippingPrice,
		TaxPrice:        input.TaxPrice,
		TotalPrice:      input.TotalPrice,
		Status:          models.StatusPending,
	}

	if err := c.store.Create(ctx, order); err != nil {
		c.logger.Error("Failed to create order", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	c.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("user_id", userID),
		zap.Float64("total", order.TotalPrice))
	return order, nil
}

// Pay moves an order into Processing and marks it paid. Paying an order
// that is already paid is a no-op.
func (c *Controller) Pay(ctx context.Context, id string) (*models.Order, error) {
	return c.store.Transition(ctx, id, func(o *models.Order) error {
		if o.IsPaid {
			return nil
		}
		return applyTransition(o, models.StatusProcessing)
	})
}

// Deliver moves an order into Delivered. Delivering an order that is
// already delivered is a no-op; payment is not a precondition.
func (c *Controller) Deliver(ctx context.Context, actor, id string) (*models.Order, error) {
	order, err := c.store.Transition(ctx, id, func(o *models.Order) error {
		if o.IsDelivered {
			return nil
		}
		return applyTransition(o, models.StatusDelivered)
	})
	if err != nil {
		return nil, err
	}

	c.recordAudit(actor, "deliver_order", id, nil)
	return order, nil
}

// SetStatus is the admin override. It consults the same transition table
// as the pay and deliver events, so backward or otherwise illegal moves
// are rejected.
func (c *Controller) SetStatus(ctx context.Context, actor, id string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, models.ErrInvalidStatus
	}

	order, err := c.store.Transition(ctx, id, func(o *models.Order) error {
		return applyTransition(o, status)
	})
	if err != nil {
		return nil, err
	}

	c.recordAudit(actor, "set_order_status", id, map[string]interface{}{"status": string(status)})
	return order, nil
}

func (c *Controller) Get(ctx context.Context, id string) (*models.OrderDetail, error) {
	return c.store.GetDetail(ctx, id)
}

func (c *Controller) ListByUser(ctx context.Context, userID string) ([]*models.Order, error) {
	return c.store.ListByUser(ctx, userID)
}

func (c *Controller) ListAll(ctx context.Context) ([]*models.OrderDetail, error) {
	return c.store.ListAll(ctx)
}

func (c *Controller) recordAudit(actor, action, entityID string, data map[string]interface{}) {
	if c.audit == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.audit.Record(ctx, actor, action, entityID, data); err != nil {
			c.logger.Warn("Failed to record audit entry",
				zap.String("action", action),
				zap.String("entity_id", entityID),
				zap.Error(err))
		}
	}()
}
