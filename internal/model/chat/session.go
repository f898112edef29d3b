package chat

import "time"

// Session captures one transient widget conversation. It lives only while
// the widget is open and is never persisted.
type Session struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	LastActive time.Time `json:"lastActive"`
}
