package profile

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/linkdeck/linkdeck/internal/platform/auth"
	"github.com/linkdeck/linkdeck/internal/platform/timeutil"
	profilesvc "github.com/linkdeck/linkdeck/internal/service/profile"
)

// Register registers profile endpoints.
func Register(api huma.API, svc profilesvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-profile",
		Method:        http.MethodPost,
		Path:          "/profile",
		Summary:       "Create the user's profile",
		Description:   "Claims a slug and creates the profile for the authenticated user. Each account owns exactly one profile.",
		Tags:          []string{"Profile"},
		DefaultStatus: http.StatusCreated,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ProfileCreateInput) (*ProfileCreateOutput, error) {
		user := auth.UserFromContext(ctx)

		p, err := svc.Create(ctx, user.UID, input.Body.Slug, input.Body.DisplayName)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ProfileCreateOutput{
			Location: "/v1/profile",
			Body:     toHTTPProfile(p),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/profile",
		Summary:     "Get the user's profile",
		Description: "Retrieves the profile owned by the authenticated user.",
		Tags:        []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *ProfileGetInput) (*ProfileGetOutput, error) {
		user := auth.UserFromContext(ctx)

		p, err := svc.GetByOwner(ctx, user.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ProfileGetOutput{
			Body: toHTTPProfile(p),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "save-settings",
		Method:      http.MethodPut,
		Path:        "/profile/settings",
		Summary:     "Replace profile settings",
		Description: "Replaces the profile's settings with the submitted document. Fields left out of the request become empty.",
		Tags:        []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *SettingsSaveInput) (*SettingsSaveOutput, error) {
		user := auth.UserFromContext(ctx)

		p, err := svc.SaveSettings(ctx, user.UID, toServiceSettings(input.Body))
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &SettingsSaveOutput{
			Body: toHTTPProfile(p),
		}, nil
	})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, profilesvc.ErrNotFound):
		return huma.Error404NotFound("profile not found")
	case errors.Is(err, profilesvc.ErrAlreadyExists):
		return huma.Error409Conflict("profile already exists")
	case errors.Is(err, profilesvc.ErrSlugTaken):
		return huma.Error409Conflict("slug is already taken")
	case errors.Is(err, profilesvc.ErrInvalidSlug):
		return huma.Error422UnprocessableEntity("slug is invalid or reserved")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toServiceSettings(s Settings) profilesvc.Settings {
	return profilesvc.Settings{
		DisplayName: s.DisplayName,
		Description: s.Description,
		AvatarURL:   s.AvatarURL,
		Appearance: profilesvc.Appearance{
			Background:  s.Appearance.Background,
			ButtonStyle: s.Appearance.ButtonStyle,
			ButtonShape: s.Appearance.ButtonShape,
			Font:        s.Appearance.Font,
			FontColor:   s.Appearance.FontColor,
		},
		SEO: profilesvc.SEO{
			Title:       s.SEO.Title,
			Description: s.SEO.Description,
			ShareImage:  s.SEO.ShareImage,
		},
		AnalyticsID: s.AnalyticsID,
		Theme:       s.Theme,
	}
}

func toHTTPSettings(s profilesvc.Settings) Settings {
	return Settings{
		DisplayName: s.DisplayName,
		Description: s.Description,
		AvatarURL:   s.AvatarURL,
		Appearance: Appearance{
			Background:  s.Appearance.Background,
			ButtonStyle: s.Appearance.ButtonStyle,
			ButtonShape: s.Appearance.ButtonShape,
			Font:        s.Appearance.Font,
			FontColor:   s.Appearance.FontColor,
		},
		SEO: SEO{
			Title:       s.SEO.Title,
			Description: s.SEO.Description,
			ShareImage:  s.SEO.ShareImage,
		},
		AnalyticsID: s.AnalyticsID,
		Theme:       s.Theme,
	}
}

func toHTTPProfile(p *profilesvc.Profile) Profile {
	return Profile{
		Slug:      p.Slug,
		Settings:  toHTTPSettings(p.Settings),
		CreatedAt: timeutil.Time{Time: p.CreatedAt},
		UpdatedAt: timeutil.Time{Time: p.UpdatedAt},
	}
}
