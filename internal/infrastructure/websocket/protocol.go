package websocket

// Frame types exchanged with clients.
const (
	TypePing        = "ping"
	TypePong        = "pong"
	TypeJoinRoom    = "join_room"
	TypeLeaveRoom   = "leave_room"
	TypeSendMessage = "send_message"
	TypeMarkRead    = "mark_read"
	TypeNewMessage  = "new_message"
	TypeChatUpdate  = "chat_update"
	TypePresence    = "presence"
	TypeError       = "error"
)

// Frame is the envelope for every client/server WebSocket exchange.
type Frame struct {
	Type      string      `json:"type"`
	ChatID    string      `json:"chat_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
}

// SendMessageData is the client payload for send_message frames.
type SendMessageData struct {
	ChatID  string `json:"chat_id"`
	Content string `json:"content"`
}

// PresenceData is the server payload for presence frames.
type PresenceData struct {
	UserID   string `json:"user_id"`
	Online   bool   `json:"online"`
	LastSeen string `json:"last_seen"`
}
