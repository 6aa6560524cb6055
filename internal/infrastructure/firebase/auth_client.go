package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
)

// FirebaseAuthClient wraps the Admin SDK auth client plus the Identity
// Toolkit REST API (password sign-in is not exposed by the Admin SDK).
type FirebaseAuthClient struct {
	client     *auth.Client
	apiKey     string
	httpClient *http.Client
}

func NewFirebaseAuthClient(client *auth.Client, apiKey string) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client:     client,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (f *FirebaseAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	user, err := f.client.CreateUser(ctx, params)
	if err != nil {
		return "", err
	}

	return user.UID, nil
}

func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}

	return result.UID, nil
}

// IsEmailVerified reports the email_verified claim of the user record.
func (f *FirebaseAuthClient) IsEmailVerified(ctx context.Context, uid string) (bool, error) {
	user, err := f.client.GetUser(ctx, uid)
	if err != nil {
		return false, err
	}
	return user.EmailVerified, nil
}

// EmailVerificationLink generates a verification link for the given address;
// delivery is the caller's concern.
func (f *FirebaseAuthClient) EmailVerificationLink(ctx context.Context, email string) (string, error) {
	return f.client.EmailVerificationLink(ctx, email)
}

func (f *FirebaseAuthClient) UpdateUserPassword(ctx context.Context, uid, newPassword string) error {
	params := (&auth.UserToUpdate{}).
		Password(newPassword)

	_, err := f.client.UpdateUser(ctx, uid, params)
	return err
}

func (f *FirebaseAuthClient) DisableUser(ctx context.Context, uid string) error {
	params := (&auth.UserToUpdate{}).
		Disabled(true)

	_, err := f.client.UpdateUser(ctx, uid, params)
	return err
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// SignInWithEmailPassword exchanges credentials for an ID token and a refresh
// token via the Identity Toolkit REST API.
func (f *FirebaseAuthClient) SignInWithEmailPassword(email, password string) (string, string, error) {
	url := "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword?key=" + f.apiKey

	payload, err := json.Marshal(signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return "", "", err
	}

	resp, err := f.httpClient.Post(url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}

	var result signInResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", "", err
	}
	if result.Error != nil {
		return "", "", fmt.Errorf("sign-in failed: %s", result.Error.Message)
	}

	return result.IDToken, result.RefreshToken, nil
}

type refreshResponse struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// RefreshIdToken exchanges a refresh token for a fresh ID token.
func (f *FirebaseAuthClient) RefreshIdToken(refreshToken string) (string, string, error) {
	url := "https://securetoken.googleapis.com/v1/token?key=" + f.apiKey

	payload := []byte("grant_type=refresh_token&refresh_token=" + refreshToken)
	resp, err := f.httpClient.Post(url, "application/x-www-form-urlencoded", bytes.NewBuffer(payload))
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}

	var result refreshResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", "", err
	}
	if result.Error != nil {
		return "", "", fmt.Errorf("token refresh failed: %s", result.Error.Message)
	}

	return result.IDToken, result.RefreshToken, nil
}
