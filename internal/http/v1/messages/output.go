package messages

// MessagesListOutput for GET /messages
type MessagesListOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body ListData
}

// MessageReplyOutput for POST /messages/reply (201 Created)
type MessageReplyOutput struct {
	Body Message
}
