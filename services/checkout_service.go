package services

import (
	"context"
	"errors"
	"strconv"

	"danstore_server/payments"
	"danstore_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart       = errors.New("empty cart")
	ErrInvalidCartItem = errors.New("invalid cart item")
)

// PreferenceClient is the outbound payment surface the checkout service
// depends on. The payments package provides the production implementation.
type PreferenceClient interface {
	CreatePreference(ctx context.Context, pref *payments.PreferenceRequest) (*payments.Preference, error)
}

type CheckoutService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client PreferenceClient
}

func NewCheckoutService(cfg *structs.Config, logger *gecho.Logger, client PreferenceClient) *CheckoutService {
	return &CheckoutService{
		logger: logger,
		cfg:    cfg,
		client: client,
	}
}

// CreatePreference converts a cart into a checkout preference and returns the
// processor's redirect URL.
func (cs *CheckoutService) CreatePreference(ctx context.Context, items []structs.CartItem) (string, error) {
	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	checkout := cs.cfg.Checkout
	prefItems := make([]payments.Item, 0, len(items))
	for _, item := range items {
		price, err := coercePrice(item.Price)
		if err != nil {
			cs.logger.Debug("Rejected cart item with bad price", gecho.Field("name", item.Name), gecho.Field("error", err))
			return "", ErrInvalidCartItem
		}

		quantity, err := coerceQuantity(item.Quantity)
		if err != nil {
			cs.logger.Debug("Rejected cart item with bad quantity", gecho.Field("name", item.Name), gecho.Field("error", err))
			return "", ErrInvalidCartItem
		}

		prefItems = append(prefItems, payments.Item{
			Title:      item.Name,
			Quantity:   quantity,
			UnitPrice:  price.Round(2).InexactFloat64(),
			CurrencyID: checkout.Currency,
		})
	}

	preference, err := cs.client.CreatePreference(ctx, &payments.PreferenceRequest{
		Items: prefItems,
		BackURLs: payments.BackURLs{
			Success: checkout.SuccessURL,
			Failure: checkout.FailureURL,
			Pending: checkout.PendingURL,
		},
		AutoReturn:          "approved",
		StatementDescriptor: checkout.StatementDescriptor,
		ExternalReference:   checkout.ExternalReference,
	})
	if err != nil {
		return "", err
	}

	return preference.InitPoint, nil
}

// coercePrice accepts the price as a JSON number or a numeric string.
func coercePrice(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case string:
		return decimal.NewFromString(v)
	default:
		return decimal.Zero, ErrInvalidCartItem
	}
}

// coerceQuantity accepts the quantity as a JSON number or a numeric string.
// A missing quantity means one unit.
func coerceQuantity(raw any) (int, error) {
	switch v := raw.(type) {
	case nil:
		return 1, nil
	case float64:
		if v != float64(int(v)) || int(v) < 1 {
			return 0, ErrInvalidCartItem
		}
		return int(v), nil
	case int:
		if v < 1 {
			return 0, ErrInvalidCartItem
		}
		return v, nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return 0, ErrInvalidCartItem
		}
		return n, nil
	default:
		return 0, ErrInvalidCartItem
	}
}
