package pages

// PageGetInput for GET /pages/{slug}
type PageGetInput struct {
	Slug string `path:"slug" minLength:"3" maxLength:"30" doc:"Page slug" example:"jane"`
}

// ClickInput for POST /pages/{slug}/clicks
type ClickInput struct {
	Slug    string `path:"slug"         doc:"Page slug"`
	Country string `header:"CF-IPCountry" doc:"Visitor country code injected by the edge proxy"`
	Body    struct {
		BlockID  string `json:"blockId"            required:"true" doc:"ID of the clicked block"`
		Referrer string `json:"referrer,omitempty" maxLength:"500" doc:"Referring page URL"`
	}
}

// MessageCreateInput for POST /pages/{slug}/messages
type MessageCreateInput struct {
	Slug string `path:"slug" doc:"Page slug"`
	Body struct {
		Name   string `json:"name"   minLength:"1" maxLength:"100"  required:"true" doc:"Author display name"`
		Body   string `json:"body"   minLength:"1" maxLength:"1000" required:"true" doc:"Message text"`
		Public bool   `json:"public,omitempty"                                      doc:"Whether the message shows on the public page"`
	}
}

// MessagesListInput for GET /pages/{slug}/messages
type MessagesListInput struct {
	Slug string `path:"slug" doc:"Page slug"`
}
