package entity

import "time"

const (
	HoursStatusPending  = "pending"
	HoursStatusApproved = "approved"
)

// Task is a volunteer opportunity published by an orphanage admin.
type Task struct {
	ID           string    `json:"id" firestore:"id"`
	OrphanageID  string    `json:"orphanage_id" firestore:"orphanageId"`
	Title        string    `json:"title" firestore:"title"`
	Description  string    `json:"description,omitempty" firestore:"description,omitempty"`
	Date         time.Time `json:"date" firestore:"date"`
	Slots        int       `json:"slots" firestore:"slots"`
	VolunteerIDs []string  `json:"volunteer_ids" firestore:"volunteerIds"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt"`
}

// HoursEntry records volunteer hours logged against a task.
type HoursEntry struct {
	ID          string    `json:"id" firestore:"id"`
	VolunteerID string    `json:"volunteer_id" firestore:"volunteerId"`
	TaskID      string    `json:"task_id" firestore:"taskId"`
	OrphanageID string    `json:"orphanage_id" firestore:"orphanageId"`
	Hours       float64   `json:"hours" firestore:"hours"`
	Date        time.Time `json:"date" firestore:"date"`
	Status      string    `json:"status" firestore:"status"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}
