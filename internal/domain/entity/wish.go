package entity

import "time"

const (
	WishStatusPending    = "pending"
	WishStatusInProgress = "in-progress"
	WishStatusFulfilled  = "fulfilled"
)

type Wish struct {
	ID          string `json:"id" firestore:"id"`
	ChildID     string `json:"child_id" firestore:"childId"`
	ChildName   string `json:"child_name" firestore:"childName"` // denormalized for listings
	OrphanageID string `json:"orphanage_id" firestore:"orphanageId"`
	Item        string `json:"item" firestore:"item"`
	Description string `json:"description,omitempty" firestore:"description,omitempty"`
	Quantity    int    `json:"quantity" firestore:"quantity"`
	Status      string `json:"status" firestore:"status"`

	// Empty until exactly one donor claims the wish.
	DonorID   string `json:"donor_id,omitempty" firestore:"donorId,omitempty"`
	DonorName string `json:"donor_name,omitempty" firestore:"donorName,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
