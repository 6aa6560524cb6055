package entity

import "time"

const (
	PaymentKindDonation    = "donation"
	PaymentKindSponsorship = "sponsorship"
)

const (
	PaymentStatusPending    = "pending"
	PaymentStatusSuccessful = "successful"
	PaymentStatusFailed     = "failed"
)

const (
	GatewayPaystack    = "paystack"
	GatewayFlutterwave = "flutterwave"
)

type Payment struct {
	ID          string  `json:"id" firestore:"id"`
	Kind        string  `json:"kind" firestore:"kind"`
	DonorID     string  `json:"donor_id" firestore:"donorId"`
	OrphanageID string  `json:"orphanage_id" firestore:"orphanageId"`
	ChildID     string  `json:"child_id,omitempty" firestore:"childId,omitempty"` // sponsorships only
	Amount      float64 `json:"amount" firestore:"amount"`
	Currency    string  `json:"currency" firestore:"currency"`
	Purpose     string  `json:"purpose,omitempty" firestore:"purpose,omitempty"`
	Frequency   string  `json:"frequency,omitempty" firestore:"frequency,omitempty"` // "once", "monthly"
	Status      string  `json:"status" firestore:"status"`
	Gateway     string  `json:"gateway" firestore:"gateway"`

	// Gateway transaction reference used for verification.
	Reference string `json:"reference" firestore:"reference"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
