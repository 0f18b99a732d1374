package order

import "errors"

// PaymentMethod identifies how an order was paid.
type PaymentMethod string

const (
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCard         PaymentMethod = "card"
	PaymentPaypal       PaymentMethod = "paypal"
)

var ErrInvalidPaymentMethod = errors.New("invalid payment method")

func (p PaymentMethod) String() string {
	return string(p)
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch s {
	case PaymentBankTransfer.String():
		return PaymentBankTransfer, nil
	case PaymentCard.String():
		return PaymentCard, nil
	case PaymentPaypal.String():
		return PaymentPaypal, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}
