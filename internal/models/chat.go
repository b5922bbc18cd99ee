package models

// ChatMessage is the client-side message shape. The server never
// stores these; the browser keeps its own append-only list for the
// session. Kept here so the API contract is documented in one place.
type ChatMessage struct {
	ID        string `json:"id"`
	Role      string `json:"role"` // "user" or "bot"
	Text      string `json:"text"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Timestamp string `json:"timestamp"`
}
