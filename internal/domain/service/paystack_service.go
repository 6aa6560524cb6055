package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"carebridge/pkg/logger"
)

// PaystackService talks to the Paystack transaction API over HTTP.
type PaystackService struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

func NewPaystackService(secretKey string) *PaystackService {
	return &PaystackService{
		secretKey:  secretKey,
		baseURL:    "https://api.paystack.co",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type paystackInitRequest struct {
	Email       string `json:"email"`
	Amount      int64  `json:"amount"` // subunits (kobo/pesewas)
	Currency    string `json:"currency,omitempty"`
	Reference   string `json:"reference"`
	CallbackURL string `json:"callback_url,omitempty"`
}

type paystackResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		Reference        string `json:"reference"`
		Status           string `json:"status"`
	} `json:"data"`
}

func (s *PaystackService) InitiatePayment(ctx context.Context, req GatewayRequest) (*GatewayResponse, error) {
	logger.Info("Initiating Paystack payment, reference: %s, amount: %.2f %s", req.Reference, req.Amount, req.Currency)

	initReq := paystackInitRequest{
		Email:       req.Customer.Email,
		Amount:      int64(math.Round(req.Amount * 100)),
		Currency:    req.Currency,
		Reference:   req.Reference,
		CallbackURL: req.RedirectURL,
	}

	body, err := s.post(ctx, "/transaction/initialize", initReq)
	if err != nil {
		return nil, err
	}

	var resp paystackResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse paystack response: %w", err)
	}
	if !resp.Status {
		return nil, fmt.Errorf("paystack error: %s", resp.Message)
	}

	return &GatewayResponse{
		Reference:   req.Reference,
		RedirectURL: resp.Data.AuthorizationURL,
		Status:      "pending",
	}, nil
}

func (s *PaystackService) VerifyPayment(ctx context.Context, reference string) (*GatewayResponse, error) {
	logger.Info("Verifying Paystack payment, reference: %s", reference)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.secretKey)

	body, err := s.do(httpReq)
	if err != nil {
		return nil, err
	}

	var resp paystackResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse paystack response: %w", err)
	}
	if !resp.Status {
		return nil, fmt.Errorf("paystack error: %s", resp.Message)
	}

	return &GatewayResponse{
		Reference: reference,
		Status:    normalizePaystackStatus(resp.Data.Status),
		RawStatus: resp.Data.Status,
	}, nil
}

func normalizePaystackStatus(status string) string {
	switch status {
	case "success":
		return "successful"
	case "failed", "abandoned", "reversed":
		return "failed"
	default:
		return "pending"
	}
}

func (s *PaystackService) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.secretKey)

	return s.do(httpReq)
}

func (s *PaystackService) do(req *http.Request) ([]byte, error) {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		logger.Error("Paystack API error: %s", string(body))
		return nil, fmt.Errorf("paystack API error: %s", string(body))
	}

	return body, nil
}
