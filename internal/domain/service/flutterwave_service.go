package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"carebridge/pkg/logger"
)

// FlutterwaveService talks to the Flutterwave v3 payments API over HTTP.
type FlutterwaveService struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

func NewFlutterwaveService(secretKey string) *FlutterwaveService {
	return &FlutterwaveService{
		secretKey:  secretKey,
		baseURL:    "https://api.flutterwave.com/v3",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type flutterwaveInitRequest struct {
	TxRef       string                `json:"tx_ref"`
	Amount      float64               `json:"amount"`
	Currency    string                `json:"currency"`
	RedirectURL string                `json:"redirect_url"`
	Customer    flutterwaveCustomer   `json:"customer"`
	Custom      flutterwaveCustomizer `json:"customizations"`
}

type flutterwaveCustomer struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phonenumber,omitempty"`
}

type flutterwaveCustomizer struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

type flutterwaveResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Link   string `json:"link"`
		TxRef  string `json:"tx_ref"`
		Status string `json:"status"`
	} `json:"data"`
}

func (s *FlutterwaveService) InitiatePayment(ctx context.Context, req GatewayRequest) (*GatewayResponse, error) {
	logger.Info("Initiating Flutterwave payment, reference: %s, amount: %.2f %s", req.Reference, req.Amount, req.Currency)

	initReq := flutterwaveInitRequest{
		TxRef:       req.Reference,
		Amount:      req.Amount,
		Currency:    req.Currency,
		RedirectURL: req.RedirectURL,
		Customer: flutterwaveCustomer{
			Email: req.Customer.Email,
			Name:  req.Customer.Name,
			Phone: req.Customer.Phone,
		},
		Custom: flutterwaveCustomizer{
			Title:       "CareBridge",
			Description: req.Description,
		},
	}

	jsonData, err := json.Marshal(initReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/payments", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.secretKey)

	body, err := s.do(httpReq)
	if err != nil {
		return nil, err
	}

	var resp flutterwaveResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse flutterwave response: %w", err)
	}
	if resp.Status != "success" {
		return nil, fmt.Errorf("flutterwave error: %s", resp.Message)
	}

	return &GatewayResponse{
		Reference:   req.Reference,
		RedirectURL: resp.Data.Link,
		Status:      "pending",
	}, nil
}

func (s *FlutterwaveService) VerifyPayment(ctx context.Context, reference string) (*GatewayResponse, error) {
	logger.Info("Verifying Flutterwave payment, reference: %s", reference)

	verifyURL := s.baseURL + "/transactions/verify_by_reference?tx_ref=" + url.QueryEscape(reference)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, verifyURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.secretKey)

	body, err := s.do(httpReq)
	if err != nil {
		return nil, err
	}

	var resp flutterwaveResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse flutterwave response: %w", err)
	}
	if resp.Status != "success" {
		return nil, fmt.Errorf("flutterwave error: %s", resp.Message)
	}

	return &GatewayResponse{
		Reference: reference,
		Status:    normalizeFlutterwaveStatus(resp.Data.Status),
		RawStatus: resp.Data.Status,
	}, nil
}

func normalizeFlutterwaveStatus(status string) string {
	switch status {
	case "successful":
		return "successful"
	case "failed", "cancelled":
		return "failed"
	default:
		return "pending"
	}
}

func (s *FlutterwaveService) do(req *http.Request) ([]byte, error) {
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
		logger.Error("Flutterwave API error: %s", string(body))
		return nil, fmt.Errorf("flutterwave API error: %s", string(body))
	}

	return body, nil
}
