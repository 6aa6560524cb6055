package entity

import (
	"sort"
	"time"
)

// Chat is the two-party conversation container. Its document ID is the
// canonical sorted participant pair, so creation from either side converges
// on the same record without any scan-and-filter dedup.
type Chat struct {
	ID                  string         `json:"id" firestore:"id"`
	Participants        []string       `json:"participants" firestore:"participants"` // always sorted, length 2
	LastMessage         string         `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageSenderID string         `json:"last_message_sender_id,omitempty" firestore:"lastMessageSenderId,omitempty"`
	LastMessageAt       time.Time      `json:"last_message_at" firestore:"lastMessageAt"`
	UnreadCount         map[string]int `json:"unread_count" firestore:"unreadCount"`
	CreatedAt           time.Time      `json:"created_at" firestore:"createdAt"`
	UpdatedAt           time.Time      `json:"updated_at" firestore:"updatedAt"`
}

// ChatID returns the canonical conversation ID for an unordered user pair.
func ChatID(userA, userB string) string {
	pair := []string{userA, userB}
	sort.Strings(pair)
	return pair[0] + "_" + pair[1]
}

// SortedPair returns the two user IDs in canonical order.
func SortedPair(userA, userB string) []string {
	pair := []string{userA, userB}
	sort.Strings(pair)
	return pair
}
