package usecase

import (
	"context"
	"time"

	"carebridge/internal/domain/entity"
	"carebridge/internal/domain/repository"
	"carebridge/pkg/errors"
	"carebridge/pkg/logger"
)

type AuthUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
}

func NewAuthUseCase(userRepo repository.UserRepository, firebaseAuth FirebaseAuthClient) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
	}
}

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	Phone       string
	Role        string
	OrphanageID string
}

type AuthResult struct {
	User         *entity.User `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	existingUser, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existingUser != nil {
		return nil, errors.BadRequest("Email already in use", nil)
	}

	uid, err := uc.firebaseAuth.CreateUser(ctx, input.Email, input.Password, input.DisplayName)
	if err != nil {
		return nil, errors.Internal("Failed to create user in authentication provider", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:          uid,
		Email:       input.Email,
		DisplayName: input.DisplayName,
		Phone:       input.Phone,
		Role:        input.Role,
		Status:      entity.UserStatusActive,
		OrphanageID: input.OrphanageID,
		LastSeen:    now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Internal("Failed to create user record", err)
	}

	if link, err := uc.firebaseAuth.EmailVerificationLink(ctx, input.Email); err != nil {
		logger.Warn("Failed to generate verification link for %s: %v", input.Email, err)
	} else {
		logger.Info("Verification link generated for %s: %s", input.Email, link)
	}

	token, refreshToken, err := uc.firebaseAuth.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	return &AuthResult{
		User:         user,
		Token:        token,
		RefreshToken: refreshToken,
	}, nil
}

// Login authenticates and enforces the role the caller claims to hold. Role
// mismatch and unverified email both fail closed; the client is expected to
// discard its session on either.
func (uc *AuthUseCase) Login(ctx context.Context, email, password, expectedRole string) (*AuthResult, error) {
	token, refreshToken, err := uc.firebaseAuth.SignInWithEmailPassword(email, password)
	if err != nil {
		logger.Warn("Login failed for %s: %v", email, err)
		return nil, errors.Unauthorized("Invalid credentials", err)
	}

	uid, err := uc.firebaseAuth.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Internal("Failed to verify token", err)
	}

	verified, err := uc.firebaseAuth.IsEmailVerified(ctx, uid)
	if err != nil {
		return nil, errors.Internal("Failed to check email verification", err)
	}
	if !verified {
		return nil, errors.Unauthorized("Email is not verified", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	if expectedRole != "" && user.Role != expectedRole {
		logger.Warn("Role mismatch on login for %s: have %s, want %s", uid, user.Role, expectedRole)
		return nil, errors.Unauthorized("Account does not hold the requested role", nil)
	}
	if user.Status == entity.UserStatusDismissed {
		return nil, errors.Unauthorized("Account has been deactivated", nil)
	}

	return &AuthResult{
		User:         user,
		Token:        token,
		RefreshToken: refreshToken,
	}, nil
}

func (uc *AuthUseCase) RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error) {
	token, newRefreshToken, err := uc.firebaseAuth.RefreshIdToken(refreshToken)
	if err != nil {
		return nil, errors.Unauthorized("Invalid refresh token", err)
	}

	uid, err := uc.firebaseAuth.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Internal("Failed to verify refreshed token", err)
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	return &AuthResult{
		User:         user,
		Token:        token,
		RefreshToken: newRefreshToken,
	}, nil
}

// ResendVerification generates a fresh email-verification link.
func (uc *AuthUseCase) ResendVerification(ctx context.Context, email string) (string, error) {
	link, err := uc.firebaseAuth.EmailVerificationLink(ctx, email)
	if err != nil {
		return "", errors.Internal("Failed to generate verification link", err)
	}
	return link, nil
}

// SessionFor builds the explicit session object for a verified user ID.
func (uc *AuthUseCase) SessionFor(ctx context.Context, uid string) (*Session, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	return &Session{UserID: user.ID, Role: user.Role}, nil
}
