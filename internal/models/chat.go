package models

// Role identifies the author of a chat turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether the role is one the completion API accepts.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// ChatTurn is a single entry in a conversation. History is supplied entirely
// by the client on each request; nothing is stored server side.
type ChatTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Coordinates is a latitude/longitude pair pulled out of a chat message.
// Values are taken as-is; out-of-range coordinates are not rejected here.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
