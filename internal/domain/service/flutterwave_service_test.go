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

func newTestFlutterwaveService(url string) *FlutterwaveService {
	svc := NewFlutterwaveService("FLWSECK_TEST-xxx")
	svc.baseURL = url
	return svc
}

func TestFlutterwaveInitiatePayment(t *testing.T) {
	var gotBody flutterwaveInitRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/payments", r.URL.Path)
		require.Equal(t, "Bearer FLWSECK_TEST-xxx", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "success",
			"message": "Hosted Link",
			"data": map[string]interface{}{
				"link": "https://checkout.flutterwave.com/pay/xyz",
			},
		})
	}))
	defer server.Close()

	svc := newTestFlutterwaveService(server.URL)
	resp, err := svc.InitiatePayment(context.Background(), GatewayRequest{
		Reference: "pay-2",
		Amount:    75,
		Currency:  "KES",
		Customer:  GatewayCustomer{Email: "donor@example.com", Name: "Chidi"},
	})
	require.NoError(t, err)

	assert.Equal(t, "pay-2", gotBody.TxRef)
	assert.Equal(t, 75.0, gotBody.Amount, "amount is sent in major units")
	assert.Equal(t, "https://checkout.flutterwave.com/pay/xyz", resp.RedirectURL)
	assert.Equal(t, "pending", resp.Status)
}

func TestFlutterwaveVerifyPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transactions/verify_by_reference", r.URL.Path)
		require.Equal(t, "pay-2", r.URL.Query().Get("tx_ref"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"data": map[string]interface{}{
				"tx_ref": "pay-2",
				"status": "successful",
			},
		})
	}))
	defer server.Close()

	svc := newTestFlutterwaveService(server.URL)
	resp, err := svc.VerifyPayment(context.Background(), "pay-2")
	require.NoError(t, err)
	assert.Equal(t, "successful", resp.Status)
}

func TestFlutterwaveVerifyCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"data":   map[string]interface{}{"status": "cancelled"},
		})
	}))
	defer server.Close()

	svc := newTestFlutterwaveService(server.URL)
	resp, err := svc.VerifyPayment(context.Background(), "pay-2")
	require.NoError(t, err)
	assert.Equal(t, "failed", resp.Status)
}

func TestFlutterwaveErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "error",
			"message": "Invalid currency",
		})
	}))
	defer server.Close()

	svc := newTestFlutterwaveService(server.URL)
	_, err := svc.InitiatePayment(context.Background(), GatewayRequest{Reference: "pay-3", Amount: 10, Currency: "???"})
	assert.Error(t, err)
}
