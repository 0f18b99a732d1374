package ordersvc

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/bwaremarkt/storefront/internal/dal/interfaces/iorderrepo"
	"github.com/bwaremarkt/storefront/internal/service/models/address"
	"github.com/bwaremarkt/storefront/internal/service/models/cart"
	"github.com/bwaremarkt/storefront/internal/service/models/order"
	"github.com/bwaremarkt/storefront/internal/service/models/product"
	"github.com/bwaremarkt/storefront/internal/service/models/user"
)

var (
	// ErrOrderNotFound is returned when an order id or number does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderTerminal is returned when a transition is requested on an
	// order that is already in a terminal state.
	ErrOrderTerminal = errors.New("order is in a terminal state")
)

// ValidationError reports a malformed order draft or checkout form. It is
// the only error class surfaced to callers for corrective action; storage
// and notification trouble is logged and swallowed.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid order draft: " + e.Reason
}

// addressBook saves the shipping address of a new order as a reusable
// record. The order keeps its own copy either way.
type addressBook interface {
	Add(ctx context.Context, d address.Draft) address.Address
}

// cartAccess is the slice of the cart manager checkout needs.
type cartAccess interface {
	Items(ctx context.Context) []cart.Item
	Clear(ctx context.Context)
}

// productCatalog is the read-only lookup used to snapshot title and price
// at order-item creation time.
type productCatalog interface {
	ProductByID(id string) (product.Product, bool)
}

// sessionReader supplies the email for the confirmation message.
type sessionReader interface {
	Get(ctx context.Context) (user.UserData, bool)
}

// confirmationSender hands a finished order to the outbound notification
// pipeline. Failures must never roll back order creation.
type confirmationSender interface {
	SendOrderConfirmation(ctx context.Context, o order.Order, email string) error
}

// OrderService creates orders, answers lookups and drives the automatic
// status progression.
type OrderService struct {
	mu            sync.Mutex
	orderRepo     iorderrepo.IOrderRepository
	addressBook   addressBook
	cart          cartAccess
	catalog       productCatalog
	session       sessionReader
	confirmations confirmationSender
	validate      *validator.Validate
	dwell         map[order.Status]time.Duration
	shippingFee   float64
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService. Dwell times and the flat
// shipping fee can be overridden through configuration.
func MustNewOrderService(opts ...option) *OrderService {
	dwell := order.DefaultDwell()
	if m := viper.GetInt("orders.status.dwell_minutes.bezahlt"); m > 0 {
		dwell[order.StatusPaid] = time.Duration(m) * time.Minute
	}
	if m := viper.GetInt("orders.status.dwell_minutes.bestaetigt"); m > 0 {
		dwell[order.StatusConfirmed] = time.Duration(m) * time.Minute
	}
	if m := viper.GetInt("orders.status.dwell_minutes.wird_zusammengestellt"); m > 0 {
		dwell[order.StatusAssembly] = time.Duration(m) * time.Minute
	}

	s := &OrderService{
		validate:    validator.New(),
		dwell:       dwell,
		shippingFee: viper.GetFloat64("checkout.shipping_fee"),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithOrderRepository sets the order repository for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo iorderrepo.IOrderRepository) option {
	return func(s *OrderService) {
		s.orderRepo = repo
	}
}

// WithAddressBook sets the address book for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAddressBook(book addressBook) option {
	return func(s *OrderService) {
		s.addressBook = book
	}
}

// WithCart sets the cart accessor for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCart(c cartAccess) option {
	return func(s *OrderService) {
		s.cart = c
	}
}

// WithCatalog sets the product catalog for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCatalog(c productCatalog) option {
	return func(s *OrderService) {
		s.catalog = c
	}
}

// WithSession sets the session reader for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithSession(r sessionReader) option {
	return func(s *OrderService) {
		s.session = r
	}
}

// WithConfirmationSender sets the outbound confirmation pipeline.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithConfirmationSender(c confirmationSender) option {
	return func(s *OrderService) {
		s.confirmations = c
	}
}

// Create validates the draft, materializes the order and persists it by
// prepending to the order collection in a single write. The shipping
// address is additionally saved into the address book, and a confirmation
// is handed to the notification pipeline; neither of those can fail the
// creation.
func (s *OrderService) Create(ctx context.Context, draft order.Draft) (order.Order, error) {
	if err := s.validate.Struct(draft); err != nil {
		return order.Order{}, &ValidationError{Reason: err.Error()}
	}
	if _, err := order.ParsePaymentMethod(draft.PaymentMethod.String()); err != nil {
		return order.Order{}, &ValidationError{Reason: "unknown payment method " + draft.PaymentMethod.String()}
	}
	if cents(draft.Total) != cents(draft.Subtotal)+cents(draft.Shipping) {
		return order.Order{}, &ValidationError{Reason: "total does not equal subtotal plus shipping"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.orderRepo.List(ctx)
	if err != nil {
		slog.Error("Failed to read orders before create", "error", err)
	}

	now := time.Now()
	o := order.Order{
		ID:              uuid.NewString(),
		OrderNumber:     s.newUniqueOrderNumber(now, existing),
		Date:            order.FormatGermanDate(now),
		Status:          order.StatusPaid,
		Items:           append([]order.Item(nil), draft.Items...),
		Subtotal:        draft.Subtotal,
		Shipping:        draft.Shipping,
		Total:           draft.Total,
		Phone:           draft.Phone,
		DeliveryTime:    draft.DeliveryTime,
		PaymentMethod:   draft.PaymentMethod,
		CreatedAt:       now.UnixMilli(),
		StatusChangedAt: now.UnixMilli(),
		ShippingAddress: draft.ShippingAddress,
	}

	if err := s.orderRepo.SaveAll(ctx, append([]order.Order{o}, existing...)); err != nil {
		slog.Error("Failed to persist new order", "order_number", o.OrderNumber, "error", err)
	}

	if s.addressBook != nil {
		s.addressBook.Add(ctx, address.Draft{
			Name:       o.ShippingAddress.Name,
			Street:     o.ShippingAddress.Street,
			City:       o.ShippingAddress.City,
			PostalCode: o.ShippingAddress.PostalCode,
		})
	}

	s.sendConfirmation(ctx, o)

	return o, nil
}

// CheckoutForm carries what the checkout page collects; the order items
// come from the live cart.
type CheckoutForm struct {
	FirstName     string `json:"firstName"     validate:"required"`
	LastName      string `json:"lastName"      validate:"required"`
	Street        string `json:"street"        validate:"required"`
	PostalCode    string `json:"postalCode"    validate:"required"`
	City          string `json:"city"          validate:"required"`
	Phone         string `json:"phone"         validate:"required"`
	DeliveryTime  string `json:"deliveryTime"  validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

// Checkout builds an order draft from the current cart and the catalog,
// creates the order and clears the cart on success. Cart lines whose
// product no longer exists in the catalog are dropped.
func (s *OrderService) Checkout(ctx context.Context, form CheckoutForm) (order.Order, error) {
	if err := s.validate.Struct(form); err != nil {
		return order.Order{}, &ValidationError{Reason: err.Error()}
	}

	method, err := order.ParsePaymentMethod(form.PaymentMethod)
	if err != nil {
		return order.Order{}, &ValidationError{Reason: "unknown payment method " + form.PaymentMethod}
	}

	var items []order.Item
	subtotal := 0.0
	for _, line := range s.cart.Items(ctx) {
		p, ok := s.catalog.ProductByID(line.ProductID)
		if !ok {
			slog.Warn("Dropping cart line for unknown product", "product_id", line.ProductID)
			continue
		}
		items = append(items, order.Item{
			ProductID: p.ID,
			Title:     p.Title,
			Quantity:  line.Quantity,
			UnitPrice: p.PriceSale,
		})
		subtotal += p.PriceSale * float64(line.Quantity)
	}
	if len(items) == 0 {
		return order.Order{}, &ValidationError{Reason: "cart is empty"}
	}

	subtotal = round2(subtotal)
	shipping := round2(s.shippingFee)

	o, err := s.Create(ctx, order.Draft{
		Items:         items,
		Subtotal:      subtotal,
		Shipping:      shipping,
		Total:         round2(subtotal + shipping),
		Phone:         form.Phone,
		DeliveryTime:  form.DeliveryTime,
		PaymentMethod: method,
		ShippingAddress: order.ShippingAddress{
			Name:       form.FirstName + " " + form.LastName,
			Street:     form.Street,
			City:       form.City,
			PostalCode: form.PostalCode,
		},
	})
	if err != nil {
		return order.Order{}, err
	}

	s.cart.Clear(ctx)

	return o, nil
}

// List returns orders newest first, optionally filtered by status and
// truncated to a limit.
func (s *OrderService) List(ctx context.Context, q order.Query) []order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.list(ctx)
	if q.Status != "" {
		filtered := orders[:0]
		for _, o := range orders {
			if o.Status.String() == q.Status {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}
	if q.Limit > 0 && len(orders) > q.Limit {
		orders = orders[:q.Limit]
	}

	return orders
}

// GetByID looks an order up by its opaque id.
func (s *OrderService) GetByID(ctx context.Context, id string) (order.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, found, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		slog.Error("Failed to read orders", "error", err)
	}

	return o, found
}

// GetByOrderNumber looks an order up by its human-facing number.
func (s *OrderService) GetByOrderNumber(ctx context.Context, number string) (order.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, found, err := s.orderRepo.GetByOrderNumber(ctx, number)
	if err != nil {
		slog.Error("Failed to read orders", "error", err)
	}

	return o, found
}

// Cancel moves an order into the Storniert terminal state. This is the
// externally triggered support action; automatic advancement never cancels.
func (s *OrderService) Cancel(ctx context.Context, id string) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.list(ctx)
	for i := range orders {
		if orders[i].ID != id {
			continue
		}
		if orders[i].Status.Terminal() {
			return order.Order{}, ErrOrderTerminal
		}

		orders[i].Status = order.StatusCancelled
		orders[i].StatusChangedAt = time.Now().UnixMilli()
		if err := s.orderRepo.SaveAll(ctx, orders); err != nil {
			slog.Error("Failed to persist cancellation", "order_id", id, "error", err)
		}

		return orders[i], nil
	}

	return order.Order{}, ErrOrderNotFound
}

// AdvanceStatuses runs one scheduler tick: every non-terminal order whose
// dwell time has elapsed moves exactly one state forward, no matter how long
// it has been dormant. The collection is written back once, and only when
// at least one order changed, so an idle tick emits no change event.
// Records with an unknown status or a missing status timestamp are inert.
func (s *OrderService) AdvanceStatuses(ctx context.Context, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := s.list(ctx)
	changed := 0
	for i := range orders {
		st := orders[i].Status
		if !st.Known() || orders[i].StatusChangedAt <= 0 {
			continue
		}

		next, ok := st.Next()
		if !ok {
			continue
		}

		if now.Sub(time.UnixMilli(orders[i].StatusChangedAt)) < s.dwell[st] {
			continue
		}

		orders[i].Status = next
		orders[i].StatusChangedAt = now.UnixMilli()
		changed++

		slog.Info("Order status advanced",
			"order_number", orders[i].OrderNumber,
			"status", next,
		)
	}

	if changed > 0 {
		if err := s.orderRepo.SaveAll(ctx, orders); err != nil {
			slog.Error("Failed to persist advanced statuses", "error", err)
		}
	}

	return changed
}

func (s *OrderService) list(ctx context.Context) []order.Order {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		slog.Error("Failed to read orders, treating as empty", "error", err)
	}

	return orders
}

// newUniqueOrderNumber regenerates until the number collides with nothing
// in the stored collection.
func (s *OrderService) newUniqueOrderNumber(now time.Time, existing []order.Order) string {
	for {
		number := order.NewOrderNumber(now)
		taken := false
		for _, o := range existing {
			if o.OrderNumber == number {
				taken = true
				break
			}
		}
		if !taken {
			return number
		}
	}
}

func (s *OrderService) sendConfirmation(ctx context.Context, o order.Order) {
	if s.confirmations == nil || s.session == nil {
		return
	}

	u, found := s.session.Get(ctx)
	if !found || u.Email == "" {
		return
	}

	if err := s.confirmations.SendOrderConfirmation(ctx, o, u.Email); err != nil {
		slog.Error("Failed to send order confirmation",
			"order_number", o.OrderNumber,
			"error", err,
		)
	}
}

func cents(v float64) int64 {
	return int64(math.Round(v * 100))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
