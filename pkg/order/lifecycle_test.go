package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mustafasafdar1/mern-ecommerce-mobile/pkg/models"
)

// fakeStore holds orders in memory. Transition applies the closure to the
// stored order directly, matching the serialized read-apply-save the real
// store performs inside a transaction.
type fakeStore struct {
	orders map[string]*models.Order
}

func newFakeStore() *fakeStore {
	return &fakeStore{orders: map[string]*models.Order{}}
}

func (f *fakeStore) Create(_ context.Context, order *models.Order) error {
	f.orders[order.ID] = order
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*models.Order, error) {
	if o, ok := f.orders[id]; ok {
		return o, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeStore) GetDetail(_ context.Context, id string) (*models.OrderDetail, error) {
	o, err := f.GetByID(nil, id)
	if err != nil {
		return nil, err
	}
	return &models.OrderDetail{Order: *o}, nil
}

func (f *fakeStore) ListByUser(_ context.Context, userID string) ([]*models.Order, error) {
	orders := []*models.Order{}
	for _, o := range f.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (f *fakeStore) ListAll(_ context.Context) ([]*models.OrderDetail, error) {
	details := []*models.OrderDetail{}
	for _, o := range f.orders {
		details = append(details, &models.OrderDetail{Order: *o})
	}
	return details, nil
}

func (f *fakeStore) Transition(_ context.Context, id string, apply func(*models.Order) error) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if err := apply(o); err != nil {
		return nil, err
	}
	return o, nil
}

func newTestController(store *fakeStore) *Controller {
	return NewController(store, nil, zap.NewNop())
}

func testInput() CreateInput {
	return CreateInput{
		OrderItems: []models.OrderItem{
			{Product: "p1", Name: "Phone", Price: 499, Quantity: 1},
		},
		PaymentMethod: "PayPal",
		ItemsPrice:    499,
		TotalPrice:    509,
	}
}

func createOrder(t *testing.T, ctrl *Controller) *models.Order {
	t.Helper()
	order, err := ctrl.Create(context.Background(), "user-1", testInput())
	if err != nil {
		t.Fatal(err)
	}
	return order
}

func TestCreateRejectsEmptyItems(t *testing.T) {
	ctrl := newTestController(newFakeStore())

	input := testInput()
	input.OrderItems = nil
	_, err := ctrl.Create(context.Background(), "user-1", input)
	if !errors.Is(err, models.ErrNoOrderItems) {
		t.Fatalf("error = %v, want ErrNoOrderItems", err)
	}
}

func TestCreateDefaults(t *testing.T) {
	ctrl := newTestController(newFakeStore())

	input := testInput()
	input.PaymentMethod = ""
	order, err := ctrl.Create(context.Background(), "user-1", input)
	if err != nil {
		t.Fatal(err)
	}

	if order.Status != models.StatusPending {
		t.Errorf("Status = %q, want %q", order.Status, models.StatusPending)
	}
	if order.PaymentMethod != "Cash on Delivery" {
		t.Errorf("PaymentMethod = %q, want Cash on Delivery", order.PaymentMethod)
	}
	if order.IsPaid || order.IsDelivered {
		t.Error("new order must start unpaid and undelivered")
	}
	if order.ID == "" {
		t.Error("order was not assigned an id")
	}
}

func TestPayMarksProcessing(t *testing.T) {
	store := newFakeStore()
	ctrl := newTestController(store)
	order := createOrder(t, ctrl)

	paid, err := ctrl.Pay(context.Background(), order.ID)
	if err != nil {
		t.Fatal(err)
	}

	if paid.Status != models.StatusProcessing {
		t.Errorf("Status = %q, want %q", paid.Status, models.StatusProcessing)
	}
	if !paid.IsPaid {
		t.Error("IsPaid = false, want true")
	}
	if paid.PaidAt == nil {
		t.Error("PaidAt was not set")
	}
}

func TestPayIsIdempotent(t *testing.T) {
	store := newFakeStore()
	ctrl := newTestController(store)
	order := createOrder(t, ctrl)

	first, err := ctrl.Pay(context.Background(), order.ID)
	if err != nil {
		t.Fatal(err)
	}
	firstPaidAt := *first.PaidAt

	time.Sleep(time.Millisecond)
	second, err := ctrl.Pay(context.Background(), order.ID)
	if err != nil {
		t.Fatal(err)
	}

	if !second.PaidAt.Equal(firstPaidAt) {
		t.Errorf("PaidAt moved on repeat pay: %v -> %v", firstPaidAt, second.PaidAt)
	}
	if second.Status != models.StatusProcessing {
		t.Errorf("Status = %q, want %q", second.Status, models.StatusProcessing)
	}
}

func TestPayAfterShipDoesNotRegress(t *testing.T) {
	store := newFakeStore()
	ctrl := newTestController(store)
	order := createOrder(t, ctrl)

	if _, err := ctrl.SetStatus(context.Background(), "admin", order.ID, models.StatusShipped); err != nil {
		t.Fatal(err)
	}

	// The order shipped without payment; Processing is no longer
	// reachable, so the payment must be rejected rather than moving the
	// order backwards.
	_, err := ctrl.Pay(context.Background(), order.ID)
	if !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("error = %v, want ErrInvalidTransition", err)
	}
	if store.orders[order.ID].Status != models.StatusShipped {
		t.Errorf("Status = %q, want %q", store.orders[order.ID].Status, models.StatusShipped)
	}
}

func TestDeliverMarksDelivered(t *testing.T) {
	store := newFakeStore()
	ctrl := newTestController(store)
	order := createOrder(t, ctrl)

	delivered, err := ctrl.Deliver(context.Background(), "admin", order.ID)
	if err != nil {
		t.Fatal(err)
	}

	if delivered.Status != models.StatusDelivered {
		t.Errorf("Status = %q, want %q", delivered.Status, models.StatusDelivered)
	}
	if !delivered.IsDelivered || delivered.DeliveredAt == nil {
		t.Error("delivery flags were not set")
	}
	// Delivery does not imply payment.
	if delivered.IsPaid {
		t.Error("IsPaid = true, want false")
	}
}

func TestDeliverIsIdempotent(t *testing.T) {
	store := newFakeStore()
	ctrl := newTestController(store)
	order := createOrder(t, ctrl)

	first, err := ctrl.Deliver(context.Background(), "admin", order.ID)
	if err != nil {
		t.Fatal(err)
	}
	firstAt := *first.DeliveredAt

	second, err := ctrl.Deliver(context.Background(), "admin", order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !second.DeliveredAt.Equal(firstAt) {
		t.Errorf("DeliveredAt moved on repeat delivery: %v -> %v", firstAt, second.DeliveredAt)
	}
}

func TestSetStatusShippedLeavesFlags(t *testing.T) {
	store := newFakeStore()
	ctrl := newTestController(store)
	order := createOrder(t, ctrl)

	shipped, err := ctrl.SetStatus(context.Background(), "admin", order.ID, models.StatusShipped)
	if err != nil {
		t.Fatal(err)
	}

	if shipped.Status != models.StatusShipped {
		t.Errorf("Status = %q, want %q", shipped.Status, models.StatusShipped)
	}
	if shipped.IsPaid || shipped.PaidAt != nil {
		t.Error("shipping must not mark the order paid")
	}
	if shipped.IsDelivered || shipped.DeliveredAt != nil {
		t.Error("shipping must not mark the order delivered")
	}
}

func TestSetStatusTransitionTable(t *testing.T) {
	tests := []struct {
		name string
		from models.OrderStatus
		to   models.OrderStatus
		ok   bool
	}{
		{"pending to processing", models.StatusPending, models.StatusProcessing, true},
		{"pending to cancelled", models.StatusPending, models.StatusCancelled, true},
		{"processing to shipped", models.StatusProcessing, models.StatusShipped, true},
		{"processing to cancelled", models.StatusProcessing, models.StatusCancelled, true},
		{"shipped to delivered", models.StatusShipped, models.StatusDelivered, true},
		{"shipped to cancelled", models.StatusShipped, models.StatusCancelled, false},
		{"shipped to pending", models.StatusShipped, models.StatusPending, false},
		{"delivered to pending", models.StatusDelivered, models.StatusPending, false},
		{"delivered to shipped", models.StatusDelivered, models.StatusShipped, false},
		{"cancelled to processing", models.StatusCancelled, models.StatusProcessing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			ctrl := newTestController(store)
			order := createOrder(t, ctrl)
			store.orders[order.ID].Status = tt.from

			_, err := ctrl.SetStatus(context.Background(), "admin", order.ID, tt.to)
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if store.orders[order.ID].Status != tt.to {
					t.Errorf("Status = %q, want %q", store.orders[order.ID].Status, tt.to)
				}
				return
			}
			if !errors.Is(err, models.ErrInvalidTransition) {
				t.Fatalf("error = %v, want ErrInvalidTransition", err)
			}
			if store.orders[order.ID].Status != tt.from {
				t.Errorf("rejected transition changed status to %q", store.orders[order.ID].Status)
			}
		})
	}
}

func TestSetStatusSameStatusIsNoOp(t *testing.T) {
	store := newFakeStore()
	ctrl := newTestController(store)
	order := createOrder(t, ctrl)

	same, err := ctrl.SetStatus(context.Background(), "admin", order.ID, models.StatusPending)
	if err != nil {
		t.Fatal(err)
	}
	if same.Status != models.StatusPending {
		t.Errorf("Status = %q, want %q", same.Status, models.StatusPending)
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	store := newFakeStore()
	ctrl := newTestController(store)
	order := createOrder(t, ctrl)

	_, err := ctrl.SetStatus(context.Background(), "admin", order.ID, models.OrderStatus("Archived"))
	if !errors.Is(err, models.ErrInvalidStatus) {
		t.Fatalf("error = %v, want ErrInvalidStatus", err)
	}
}

func TestSetStatusMissingOrder(t *testing.T) {
	ctrl := newTestController(newFakeStore())

	_, err := ctrl.SetStatus(context.Background(), "admin", "missing", models.StatusShipped)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
