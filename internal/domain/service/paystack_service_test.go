package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPaystackService(url string) *PaystackService {
	svc := NewPaystackService("sk_test_xxx")
	svc.baseURL = url
	return svc
}

func TestPaystackInitiatePayment(t *testing.T) {
	var gotAuth string
	var gotBody paystackInitRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]interface{}{
				"authorization_url": "https://checkout.paystack.com/abc123",
				"reference":         gotBody.Reference,
			},
		})
	}))
	defer server.Close()

	svc := newTestPaystackService(server.URL)
	resp, err := svc.InitiatePayment(context.Background(), GatewayRequest{
		Reference: "pay-1",
		Amount:    150.50,
		Currency:  "NGN",
		Customer:  GatewayCustomer{Email: "donor@example.com"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer sk_test_xxx", gotAuth)
	assert.Equal(t, int64(15050), gotBody.Amount, "amount is sent in subunits")
	assert.Equal(t, "https://checkout.paystack.com/abc123", resp.RedirectURL)
	assert.Equal(t, "pending", resp.Status)
}

func TestPaystackVerifyPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transaction/verify/pay-1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": true,
			"data": map[string]interface{}{
				"reference": "pay-1",
				"status":    "success",
			},
		})
	}))
	defer server.Close()

	svc := newTestPaystackService(server.URL)
	resp, err := svc.VerifyPayment(context.Background(), "pay-1")
	require.NoError(t, err)

	assert.Equal(t, "successful", resp.Status, "paystack 'success' normalizes to 'successful'")
	assert.Equal(t, "success", resp.RawStatus)
}

func TestPaystackVerifyPaymentFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": true,
			"data":   map[string]interface{}{"status": "abandoned"},
		})
	}))
	defer server.Close()

	svc := newTestPaystackService(server.URL)
	resp, err := svc.VerifyPayment(context.Background(), "pay-1")
	require.NoError(t, err)
	assert.Equal(t, "failed", resp.Status)
}

func TestPaystackAPIErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":false,"message":"Invalid key"}`))
	}))
	defer server.Close()

	svc := newTestPaystackService(server.URL)
	_, err := svc.VerifyPayment(context.Background(), "pay-1")
	assert.Error(t, err)
}
