package pages

// PageGetOutput for GET /pages/{slug}
type PageGetOutput struct {
	Body Page
}

// MessageCreateOutput for POST /pages/{slug}/messages (201 Created)
type MessageCreateOutput struct {
	Body PageMessage
}

// MessagesListData is the body of a public message list response.
type MessagesListData struct {
	Messages []PageMessage `json:"messages" doc:"Public messages, newest first"`
	Total    int       `json:"total"    doc:"Number of public messages"`
}

// MessagesListOutput for GET /pages/{slug}/messages
type MessagesListOutput struct {
	Body MessagesListData
}
