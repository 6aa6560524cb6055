package entity

import "time"

// Message is immutable once created except for ReadBy appends.
type Message struct {
	ID        string    `json:"id" firestore:"id"`
	ChatID    string    `json:"chat_id" firestore:"chatId"`
	SenderID  string    `json:"sender_id" firestore:"senderId"`
	Content   string    `json:"content" firestore:"content"`
	ReadBy    []string  `json:"read_by" firestore:"readBy"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// ReadByUser reports whether userID already appears in ReadBy.
func (m *Message) ReadByUser(userID string) bool {
	for _, id := range m.ReadBy {
		if id == userID {
			return true
		}
	}
	return false
}
