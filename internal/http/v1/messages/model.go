package messages

import (
	"github.com/linkdeck/linkdeck/internal/platform/timeutil"
)

// Message is the owner-facing view of a guestbook entry.
type Message struct {
	ID        string        `json:"id"        doc:"Message ID"`
	Name      string        `json:"name"      doc:"Author display name"`
	Body      string        `json:"body"      doc:"Message text"`
	Public    bool          `json:"public"    doc:"Whether the message shows on the public page"`
	FromOwner bool          `json:"fromOwner" doc:"True for the owner's own replies"`
	CreatedAt timeutil.Time `json:"createdAt" doc:"Creation timestamp" example:"2024-01-15T10:30:00.000Z"`
}

// ListData is the body of a message list response.
type ListData struct {
	Messages []Message `json:"messages" doc:"Messages on this page, newest first"`
	Total    int       `json:"total"    doc:"Total number of messages"`
}
