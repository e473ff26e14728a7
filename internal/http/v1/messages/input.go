package messages

import (
	"github.com/linkdeck/linkdeck/internal/platform/pagination"
)

// MessagesListInput for GET /messages
type MessagesListInput struct {
	pagination.Params
}

// MessageReplyInput for POST /messages/reply
type MessageReplyInput struct {
	Body struct {
		Body   string `json:"body"   minLength:"1" maxLength:"1000" required:"true" doc:"Reply text"`
		Public bool   `json:"public,omitempty"                                      doc:"Whether the reply shows on the public page"`
	}
}

// MessageDeleteInput for DELETE /messages/{id}
type MessageDeleteInput struct {
	ID string `path:"id" doc:"Message ID"`
}
