package entity

import "time"

type Orphanage struct {
	ID          string   `json:"id" firestore:"id"`
	Name        string   `json:"name" firestore:"name"`
	Address     string   `json:"address" firestore:"address"`
	City        string   `json:"city" firestore:"city"`
	Country     string   `json:"country" firestore:"country"`
	Description string   `json:"description,omitempty" firestore:"description,omitempty"`
	PhotoURL    string   `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`
	Needs       []string `json:"needs,omitempty" firestore:"needs,omitempty"`

	// Declared capacity; adding a child beyond this is rejected.
	ChildrenCount int `json:"children_count" firestore:"childrenCount"`

	AdminID   string    `json:"admin_id" firestore:"adminId"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
