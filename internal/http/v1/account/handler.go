package account

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/linkdeck/linkdeck/internal/platform/auth"
	accountsvc "github.com/linkdeck/linkdeck/internal/service/account"
)

var security = []map[string][]string{
	{"bearerAuth": {}},
}

// EmailChangeInput for POST /account/email
type EmailChangeInput struct {
	Body struct {
		CurrentPassword string `json:"currentPassword" minLength:"1"   required:"true" doc:"Current sign-in password"`
		NewEmail        string `json:"newEmail"        format:"email"  required:"true" doc:"New sign-in email"`
	}
}

// PasswordChangeInput for POST /account/password
type PasswordChangeInput struct {
	Body struct {
		CurrentPassword string `json:"currentPassword" minLength:"1" required:"true" doc:"Current sign-in password"`
		NewPassword     string `json:"newPassword"     minLength:"8" required:"true" doc:"New sign-in password"`
	}
}

// AccountDeleteInput for DELETE /account
type AccountDeleteInput struct {
	Body struct {
		CurrentPassword string `json:"currentPassword" minLength:"1" required:"true" doc:"Current sign-in password"`
		Confirmation    string `json:"confirmation"                  required:"true" doc:"Must be the literal word DELETE" example:"DELETE"`
	}
}

// Register registers the sensitive account endpoints. Each one re-verifies the
// caller's password before acting; a valid bearer token alone is not enough.
func Register(api huma.API, svc *accountsvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID:   "change-email",
		Method:        http.MethodPost,
		Path:          "/account/email",
		Summary:       "Change the sign-in email",
		Description:   "Verifies the current password, then updates the sign-in email.",
		Tags:          []string{"Account"},
		DefaultStatus: http.StatusNoContent,
		Security:      security,
	}, func(ctx context.Context, input *EmailChangeInput) (*struct{}, error) {
		user := auth.UserFromContext(ctx)

		if err := svc.ChangeEmail(ctx, user.UID, input.Body.CurrentPassword, input.Body.NewEmail); err != nil {
			return nil, mapServiceError(err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "change-password",
		Method:        http.MethodPost,
		Path:          "/account/password",
		Summary:       "Change the sign-in password",
		Description:   "Verifies the current password, then replaces it.",
		Tags:          []string{"Account"},
		DefaultStatus: http.StatusNoContent,
		Security:      security,
	}, func(ctx context.Context, input *PasswordChangeInput) (*struct{}, error) {
		user := auth.UserFromContext(ctx)

		if err := svc.ChangePassword(ctx, user.UID, input.Body.CurrentPassword, input.Body.NewPassword); err != nil {
			return nil, mapServiceError(err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-account",
		Method:        http.MethodDelete,
		Path:          "/account",
		Summary:       "Delete the account",
		Description:   "Verifies the password and the typed confirmation phrase, then removes the account with everything it owns: blocks, messages, click history, the profile and its slug.",
		Tags:          []string{"Account"},
		DefaultStatus: http.StatusNoContent,
		Security:      security,
	}, func(ctx context.Context, input *AccountDeleteInput) (*struct{}, error) {
		user := auth.UserFromContext(ctx)

		err := svc.Delete(ctx, user.UID, input.Body.CurrentPassword, input.Body.Confirmation)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return nil, nil
	})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, accountsvc.ErrReauthFailed):
		return huma.Error403Forbidden("current password is incorrect")
	case errors.Is(err, accountsvc.ErrConfirmationMismatch):
		return huma.Error422UnprocessableEntity("confirmation phrase does not match")
	case errors.Is(err, accountsvc.ErrUserNotFound):
		return huma.Error404NotFound("account not found")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}
