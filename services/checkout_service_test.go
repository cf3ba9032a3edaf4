package services

import (
	"context"
	"testing"

	"danstore_server/payments"
	"danstore_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePreferenceClient struct {
	lastRequest *payments.PreferenceRequest
	preference  *payments.Preference
	err         error
}

var _ PreferenceClient = (*fakePreferenceClient)(nil)

func (f *fakePreferenceClient) CreatePreference(ctx context.Context, pref *payments.PreferenceRequest) (*payments.Preference, error) {
	f.lastRequest = pref
	if f.err != nil {
		return nil, f.err
	}
	return f.preference, nil
}

func checkoutTestConfig() *structs.Config {
	return &structs.Config{
		Checkout: &structs.CheckoutConfig{
			Currency:            "PEN",
			SuccessURL:          "http://localhost:5173/success",
			FailureURL:          "http://localhost:5173/failure",
			PendingURL:          "http://localhost:5173/pending",
			StatementDescriptor: "DAN STORE",
			ExternalReference:   "PRUEBA-001",
		},
	}
}

func newCheckoutService(client PreferenceClient) *CheckoutService {
	return NewCheckoutService(checkoutTestConfig(), gecho.NewDefaultLogger(), client)
}

func TestCreatePreferenceEmptyCart(t *testing.T) {
	cs := newCheckoutService(&fakePreferenceClient{})

	_, err := cs.CreatePreference(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = cs.CreatePreference(context.Background(), []structs.CartItem{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreatePreferenceBuildsRequest(t *testing.T) {
	client := &fakePreferenceClient{preference: &payments.Preference{ID: "pref-1", InitPoint: "https://mp.example/init"}}
	cs := newCheckoutService(client)

	initPoint, err := cs.CreatePreference(context.Background(), []structs.CartItem{
		{Name: "Audífonos", Price: 149.9, Quantity: float64(2)},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://mp.example/init", initPoint)

	require.NotNil(t, client.lastRequest)
	require.Len(t, client.lastRequest.Items, 1)
	item := client.lastRequest.Items[0]
	assert.Equal(t, "Audífonos", item.Title)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 149.9, item.UnitPrice)
	assert.Equal(t, "PEN", item.CurrencyID)

	assert.Equal(t, "http://localhost:5173/success", client.lastRequest.BackURLs.Success)
	assert.Equal(t, "http://localhost:5173/failure", client.lastRequest.BackURLs.Failure)
	assert.Equal(t, "http://localhost:5173/pending", client.lastRequest.BackURLs.Pending)
	assert.Equal(t, "approved", client.lastRequest.AutoReturn)
	assert.Equal(t, "DAN STORE", client.lastRequest.StatementDescriptor)
	assert.Equal(t, "PRUEBA-001", client.lastRequest.ExternalReference)
}

func TestCreatePreferenceCoercesStringValues(t *testing.T) {
	client := &fakePreferenceClient{preference: &payments.Preference{InitPoint: "https://mp.example/init"}}
	cs := newCheckoutService(client)

	_, err := cs.CreatePreference(context.Background(), []structs.CartItem{
		{Name: "Mouse", Price: "10.555", Quantity: "3"},
	})
	require.NoError(t, err)

	item := client.lastRequest.Items[0]
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 10.56, item.UnitPrice)
}

func TestCreatePreferenceDefaultsQuantity(t *testing.T) {
	client := &fakePreferenceClient{preference: &payments.Preference{InitPoint: "https://mp.example/init"}}
	cs := newCheckoutService(client)

	_, err := cs.CreatePreference(context.Background(), []structs.CartItem{
		{Name: "Teclado", Price: "59.90"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, client.lastRequest.Items[0].Quantity)
}

func TestCreatePreferenceRejectsBadItems(t *testing.T) {
	cs := newCheckoutService(&fakePreferenceClient{})

	cases := []structs.CartItem{
		{Name: "Sin precio"},
		{Name: "Precio texto", Price: "gratis"},
		{Name: "Precio booleano", Price: true, Quantity: float64(1)},
		{Name: "Cantidad fraccionaria", Price: 10.0, Quantity: 1.5},
		{Name: "Cantidad cero", Price: 10.0, Quantity: float64(0)},
		{Name: "Cantidad negativa", Price: 10.0, Quantity: "-2"},
	}
	for _, item := range cases {
		_, err := cs.CreatePreference(context.Background(), []structs.CartItem{item})
		assert.ErrorIs(t, err, ErrInvalidCartItem, item.Name)
	}
}

func TestCreatePreferencePropagatesClientError(t *testing.T) {
	rejected := &payments.RejectedError{Status: 400, Body: []byte(`{"message":"invalid items"}`)}
	cs := newCheckoutService(&fakePreferenceClient{err: rejected})

	_, err := cs.CreatePreference(context.Background(), []structs.CartItem{
		{Name: "Laptop", Price: 2999.0, Quantity: float64(1)},
	})

	var got *payments.RejectedError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, 400, got.Status)
}
