package profile

// ProfileCreateInput for POST /profile
type ProfileCreateInput struct {
	Body struct {
		Slug        string `json:"slug"        minLength:"3" maxLength:"30" pattern:"^[a-z0-9][a-z0-9-]{1,28}[a-z0-9]$" required:"true" doc:"URL slug for the public page" example:"jane"`
		DisplayName string `json:"displayName" minLength:"1" maxLength:"100"                                                 required:"true" doc:"Name shown on the page"       example:"Jane Doe"`
	}
}

// ProfileGetInput for GET /profile (no body needed)
type ProfileGetInput struct{}

// SettingsSaveInput for PUT /profile/settings
type SettingsSaveInput struct {
	Body Settings
}
