package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/massfitdev/massfit-bot/pkg/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.GeocodeConfig{
		BaseURL:   server.URL,
		Language:  "uz",
		UserAgent: "massfit-bot-test",
		Timeout:   2 * time.Second,
	})
}

func TestReverseBuildsShortFragment(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "uz", r.URL.Query().Get("accept-language"))
		assert.Equal(t, "massfit-bot-test", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"display_name": "12, Amir Temur shoh ko'chasi, Mirobod, Tashkent",
			"address": {
				"house_number": "12",
				"road": "Amir Temur shoh ko'chasi",
				"neighbourhood": "Mirobod mahallasi",
				"city_district": "Mirobod tumani"
			}
		}`))
	})

	got, err := client.Reverse(context.Background(), 41.311081, 69.240562)
	require.NoError(t, err)
	assert.Equal(t, "12, Amir Temur shoh ko'chasi, Mirobod mahallasi, Mirobod tumani", got)
}

func TestReverseFallsBackToAlternateFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"address": {
				"street": "Bobur ko'chasi",
				"suburb": "Yakkasaroy",
				"city": "Tashkent"
			}
		}`))
	})

	got, err := client.Reverse(context.Background(), 41.3, 69.2)
	require.NoError(t, err)
	assert.Equal(t, "Bobur ko'chasi, Yakkasaroy, Tashkent", got)
}

func TestReverseUsesDisplayNameWhenComponentsMissing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"display_name": "Somewhere in Tashkent", "address": {}}`))
	})

	got, err := client.Reverse(context.Background(), 41.3, 69.2)
	require.NoError(t, err)
	assert.Equal(t, "Somewhere in Tashkent", got)
}

func TestReverseOrFallbackSwallowsErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	got := client.ReverseOrFallback(context.Background(), 41.3, 69.2)
	assert.Equal(t, AddressNotFound, got)
}

func TestReverseOrFallbackOnEmptyResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})

	got := client.ReverseOrFallback(context.Background(), 41.3, 69.2)
	assert.Equal(t, AddressNotFound, got)
}
