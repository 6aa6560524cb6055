package entity

import "time"

type ChildDocument struct {
	ID   string `json:"id" firestore:"id"`
	Name string `json:"name" firestore:"name"`
	Type string `json:"type" firestore:"type"`
	URL  string `json:"url" firestore:"url"`
}

type Child struct {
	ID          string          `json:"id" firestore:"id"`
	OrphanageID string          `json:"orphanage_id" firestore:"orphanageId"`
	Name        string          `json:"name" firestore:"name"`
	DateOfBirth time.Time       `json:"date_of_birth" firestore:"dateOfBirth"`
	Gender      string          `json:"gender" firestore:"gender"`
	PhotoURL    string          `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`
	Documents   []ChildDocument `json:"documents,omitempty" firestore:"documents,omitempty"`
	CreatedAt   time.Time       `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time       `json:"updated_at" firestore:"updatedAt"`
}
