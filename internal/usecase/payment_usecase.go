package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carebridge/internal/domain/entity"
	"carebridge/internal/domain/repository"
	"carebridge/internal/domain/service"
	"carebridge/pkg/errors"
	"carebridge/pkg/logger"
)

// PaymentUseCase records donations and sponsorships and drives them through
// the configured payment gateways.
type PaymentUseCase struct {
	paymentRepo   repository.PaymentRepository
	orphanageRepo repository.OrphanageRepository
	childRepo     repository.ChildRepository
	userRepo      repository.UserRepository
	gateways      map[string]service.PaymentGatewayService
	baseURL       string
}

func NewPaymentUseCase(
	paymentRepo repository.PaymentRepository,
	orphanageRepo repository.OrphanageRepository,
	childRepo repository.ChildRepository,
	userRepo repository.UserRepository,
	gateways map[string]service.PaymentGatewayService,
	baseURL string,
) *PaymentUseCase {
	return &PaymentUseCase{
		paymentRepo:   paymentRepo,
		orphanageRepo: orphanageRepo,
		childRepo:     childRepo,
		userRepo:      userRepo,
		gateways:      gateways,
		baseURL:       baseURL,
	}
}

type PaymentInput struct {
	Kind        string  `json:"kind" validate:"required,oneof=donation sponsorship"`
	OrphanageID string  `json:"orphanage_id" validate:"required"`
	ChildID     string  `json:"child_id"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Currency    string  `json:"currency" validate:"required,len=3"`
	Purpose     string  `json:"purpose"`
	Frequency   string  `json:"frequency" validate:"omitempty,oneof=once monthly"`
	Gateway     string  `json:"gateway" validate:"required,oneof=paystack flutterwave"`
}

type InitiatedPayment struct {
	Payment     *entity.Payment `json:"payment"`
	RedirectURL string          `json:"redirect_url"`
}

// Initiate records a pending payment, then hands the donor off to the chosen
// gateway's checkout page.
func (uc *PaymentUseCase) Initiate(ctx context.Context, session *Session, input PaymentInput) (*InitiatedPayment, error) {
	if session.Role != entity.RoleDonor {
		return nil, errors.Forbidden("Only donors can make payments", nil)
	}

	gateway, ok := uc.gateways[input.Gateway]
	if !ok {
		return nil, errors.BadRequest("Unknown payment gateway: "+input.Gateway, nil)
	}

	if _, err := uc.orphanageRepo.GetByID(ctx, input.OrphanageID); err != nil {
		return nil, err
	}

	if input.Kind == entity.PaymentKindSponsorship {
		if input.ChildID == "" {
			return nil, errors.BadRequest("Sponsorship requires a child", nil)
		}
		child, err := uc.childRepo.GetByID(ctx, input.ChildID)
		if err != nil {
			return nil, err
		}
		if child.OrphanageID != input.OrphanageID {
			return nil, errors.BadRequest("Child does not belong to this orphanage", nil)
		}
	}

	donor, err := uc.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	payment := &entity.Payment{
		ID:          uuid.New().String(),
		Kind:        input.Kind,
		DonorID:     donor.ID,
		OrphanageID: input.OrphanageID,
		ChildID:     input.ChildID,
		Amount:      input.Amount,
		Currency:    input.Currency,
		Purpose:     input.Purpose,
		Frequency:   input.Frequency,
		Status:      entity.PaymentStatusPending,
		Gateway:     input.Gateway,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	payment.Reference = payment.ID

	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	resp, err := gateway.InitiatePayment(ctx, service.GatewayRequest{
		Reference:   payment.Reference,
		Amount:      payment.Amount,
		Currency:    payment.Currency,
		Description: payment.Purpose,
		Customer: service.GatewayCustomer{
			Name:  donor.DisplayName,
			Email: donor.Email,
			Phone: donor.Phone,
		},
		RedirectURL: uc.baseURL + "/payments/" + payment.ID + "/callback",
	})
	if err != nil {
		payment.Status = entity.PaymentStatusFailed
		payment.UpdatedAt = time.Now()
		if updateErr := uc.paymentRepo.Update(ctx, payment); updateErr != nil {
			logger.Error("Failed to mark payment %s failed: %v", payment.ID, updateErr)
		}
		return nil, errors.Internal("Payment gateway rejected the request", err)
	}

	return &InitiatedPayment{
		Payment:     payment,
		RedirectURL: resp.RedirectURL,
	}, nil
}

// Verify asks the gateway for the transaction's final state and flips the
// stored status accordingly. Verifying an already-settled payment is a no-op.
func (uc *PaymentUseCase) Verify(ctx context.Context, reference string) (*entity.Payment, error) {
	payment, err := uc.paymentRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	if payment.Status != entity.PaymentStatusPending {
		return payment, nil
	}

	gateway, ok := uc.gateways[payment.Gateway]
	if !ok {
		return nil, errors.Internal("Payment recorded against unknown gateway: "+payment.Gateway, nil)
	}

	resp, err := gateway.VerifyPayment(ctx, payment.Reference)
	if err != nil {
		return nil, errors.Internal("Failed to verify payment with gateway", err)
	}

	switch resp.Status {
	case entity.PaymentStatusSuccessful:
		payment.Status = entity.PaymentStatusSuccessful
	case entity.PaymentStatusFailed:
		payment.Status = entity.PaymentStatusFailed
	default:
		// Still pending at the gateway; leave it alone.
		return payment, nil
	}

	payment.UpdatedAt = time.Now()
	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	logger.Info("Payment %s settled as %s via %s", payment.ID, payment.Status, payment.Gateway)
	return payment, nil
}

func (uc *PaymentUseCase) GetByID(ctx context.Context, session *Session, id string) (*entity.Payment, error) {
	payment, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Role == entity.RoleDonor && payment.DonorID != session.UserID {
		return nil, errors.Forbidden("Not your payment", nil)
	}
	return payment, nil
}

// ListOwn returns the donor's payment history.
func (uc *PaymentUseCase) ListOwn(ctx context.Context, session *Session) ([]*entity.Payment, error) {
	return uc.paymentRepo.ListByDonor(ctx, session.UserID)
}

// ListForOrphanage returns payments received by the admin's orphanage.
func (uc *PaymentUseCase) ListForOrphanage(ctx context.Context, session *Session) ([]*entity.Payment, error) {
	orphanage, err := uc.orphanageRepo.GetByAdminID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	return uc.paymentRepo.ListByOrphanage(ctx, orphanage.ID)
}
