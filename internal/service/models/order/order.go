package order

import (
	"fmt"
	"time"
)

// Item is a line of an order. Title and unit price are copied from the
// catalog at creation time and never re-read afterwards, so later catalog
// changes cannot alter what the customer bought.
type Item struct {
	ProductID string  `json:"productId" validate:"required"`
	Title     string  `json:"title"     validate:"required"`
	Quantity  int     `json:"quantity"  validate:"gte=1"`
	UnitPrice float64 `json:"price"     validate:"gte=0"`
}

// ShippingAddress is a denormalized copy of the delivery address. It is a
// snapshot, not a pointer into the address book.
type ShippingAddress struct {
	Name       string `json:"name"       validate:"required"`
	Street     string `json:"street"     validate:"required"`
	City       string `json:"city"       validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
}

// Order represents a placed order.
type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	Date            string          `json:"date"`
	Status          Status          `json:"status"`
	Items           []Item          `json:"items"`
	Subtotal        float64         `json:"subtotal"`
	Shipping        float64         `json:"shipping"`
	Total           float64         `json:"total"`
	Phone           string          `json:"phone"`
	DeliveryTime    string          `json:"deliveryTime"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	CreatedAt       int64           `json:"createdAt"`
	StatusChangedAt int64           `json:"statusChangedAt"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}

// Draft is what checkout hands to the repository: everything an order needs
// except the identifiers, timestamps and initial status.
type Draft struct {
	Items           []Item          `validate:"required,min=1,dive"`
	Subtotal        float64         `validate:"gte=0"`
	Shipping        float64         `validate:"gte=0"`
	Total           float64         `validate:"gte=0"`
	Phone           string          `validate:"required"`
	DeliveryTime    string          `validate:"required"`
	PaymentMethod   PaymentMethod   `validate:"required"`
	ShippingAddress ShippingAddress `validate:"required"`
}

var germanMonths = [...]string{
	"Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

// FormatGermanDate renders a timestamp the way the storefront displays order
// dates, e.g. "30. August 2026".
func FormatGermanDate(t time.Time) string {
	return fmt.Sprintf("%d. %s %d", t.Day(), germanMonths[t.Month()-1], t.Year())
}
