package entity

import "time"

const (
	SOSStatusActive     = "active"
	SOSStatusInProgress = "in-progress"
	SOSStatusResolved   = "resolved"
	SOSStatusFalseAlarm = "false-alarm"
)

type SOSLocation struct {
	Lat     float64 `json:"lat" firestore:"lat"`
	Lng     float64 `json:"lng" firestore:"lng"`
	Address string  `json:"address,omitempty" firestore:"address,omitempty"`
}

type SOSAlert struct {
	ID          string      `json:"id" firestore:"id"`
	UserID      string      `json:"user_id" firestore:"userId"`
	UserName    string      `json:"user_name" firestore:"userName"`
	UserRole    string      `json:"user_role" firestore:"userRole"`
	Message     string      `json:"message" firestore:"message"`
	PhoneNumber string      `json:"phone_number,omitempty" firestore:"phoneNumber,omitempty"`
	Location    SOSLocation `json:"location" firestore:"location"`
	Status      string      `json:"status" firestore:"status"`
	CreatedAt   time.Time   `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time   `json:"updated_at" firestore:"updatedAt"`
}
