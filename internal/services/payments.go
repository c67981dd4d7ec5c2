package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// PaymentIntents creates card payment intents with the payment processor.
type PaymentIntents interface {
	CreatePaymentIntent(ctx context.Context, amountCents int64) (clientSecret string, err error)
}

type StripePayments struct {
	api *client.API
}

func NewStripePayments(secretKey string) *StripePayments {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripePayments{api: api}
}

func (s *StripePayments) CreatePaymentIntent(ctx context.Context, amountCents int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}

// MaxAmountCents is the largest USD charge the processor accepts ($999,999.99).
const MaxAmountCents = 99_999_999

var ErrInvalidAmount = errors.New("amount must be a positive number no larger than 999999.99")

// AmountInCents converts a dollar price to the smallest currency unit. Prices
// that round to zero cents or exceed MaxAmountCents are rejected.
func AmountInCents(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, ErrInvalidAmount
	}
	cents := math.Round(price * 100)
	if cents < 1 || cents > MaxAmountCents {
		return 0, ErrInvalidAmount
	}
	return int64(cents), nil
}
