package usecase

import "context"

// FirebaseAuthClient is the slice of the auth provider this layer depends on.
type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	IsEmailVerified(ctx context.Context, uid string) (bool, error)
	EmailVerificationLink(ctx context.Context, email string) (string, error)
	SignInWithEmailPassword(email, password string) (string, string, error)
	RefreshIdToken(refreshToken string) (string, string, error)
	UpdateUserPassword(ctx context.Context, uid, newPassword string) error
	DisableUser(ctx context.Context, uid string) error
}

// Session is the explicit per-request identity object threaded through the
// resolver and chat layers. It is built once from the verified token plus the
// stored profile and torn down with the request; nothing ambient.
type Session struct {
	UserID string
	Role   string
}
