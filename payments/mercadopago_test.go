package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"danstore_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	return NewClient(&structs.CheckoutConfig{
		AccessToken:    "test-token",
		BaseURL:        baseURL,
		RequestTimeout: 5 * time.Second,
	}, gecho.NewDefaultLogger())
}

func TestCreatePreference(t *testing.T) {
	var received PreferenceRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/checkout/preferences", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"pref-1","init_point":"https://mp.example/init"}`))
	}))
	defer server.Close()

	preference, err := testClient(server.URL).CreatePreference(context.Background(), &PreferenceRequest{
		Items:      []Item{{Title: "Polo", Quantity: 2, UnitPrice: 49.9, CurrencyID: "PEN"}},
		AutoReturn: "approved",
	})
	require.NoError(t, err)

	assert.Equal(t, "pref-1", preference.ID)
	assert.Equal(t, "https://mp.example/init", preference.InitPoint)
	require.Len(t, received.Items, 1)
	assert.Equal(t, "Polo", received.Items[0].Title)
	assert.Equal(t, "approved", received.AutoReturn)
}

func TestCreatePreferenceRejected(t *testing.T) {
	body := `{"message":"invalid items","status":400}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	_, err := testClient(server.URL).CreatePreference(context.Background(), &PreferenceRequest{})

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, http.StatusBadRequest, rejected.Status)
	assert.JSONEq(t, body, string(rejected.Body))
}
