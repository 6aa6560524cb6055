package entity

import "time"

const (
	RoleAdmin     = "admin"
	RoleDonor     = "donor"
	RoleVolunteer = "volunteer"
)

const (
	UserStatusActive    = "active"
	UserStatusDismissed = "dismissed"
)

type User struct {
	ID          string `json:"id" firestore:"id"`
	Email       string `json:"email" firestore:"email"`
	DisplayName string `json:"display_name" firestore:"displayName"`
	Phone       string `json:"phone,omitempty" firestore:"phone,omitempty"`
	Role        string `json:"role" firestore:"role"`
	Status      string `json:"status" firestore:"status"`
	PhotoURL    string `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`

	// Set for admins (the orphanage they run) and volunteers (the orphanage
	// they are assigned to). Empty for donors.
	OrphanageID string `json:"orphanage_id,omitempty" firestore:"orphanageId,omitempty"`

	// Volunteer application fields
	CVURL  string `json:"cv_url,omitempty" firestore:"cvUrl,omitempty"`
	Skills string `json:"skills,omitempty" firestore:"skills,omitempty"`

	// Presence; written best-effort by the presence tracker.
	Online   bool      `json:"online" firestore:"online"`
	LastSeen time.Time `json:"last_seen" firestore:"lastSeen"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
