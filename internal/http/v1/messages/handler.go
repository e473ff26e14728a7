package messages

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/linkdeck/linkdeck/internal/platform/auth"
	"github.com/linkdeck/linkdeck/internal/platform/pagination"
	"github.com/linkdeck/linkdeck/internal/platform/timeutil"
	messagesvc "github.com/linkdeck/linkdeck/internal/service/message"
	profilesvc "github.com/linkdeck/linkdeck/internal/service/profile"
)

const cursorType = "message"

var security = []map[string][]string{
	{"bearerAuth": {}},
}

// Register registers the owner-facing guestbook endpoints.
func Register(api huma.API, svc messagesvc.Service, profiles profilesvc.Service, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID: "list-messages",
		Method:      http.MethodGet,
		Path:        "/messages",
		Summary:     "List guestbook messages",
		Description: "Returns every message including private ones, newest first, with cursor-based pagination via the Link header.",
		Tags:        []string{"Messages"},
		Security:    security,
	}, func(ctx context.Context, input *MessagesListInput) (*MessagesListOutput, error) {
		user := auth.UserFromContext(ctx)

		cursor, err := pagination.DecodeCursor(input.Cursor)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid cursor format")
		}
		if cursor.Type != "" && cursor.Type != cursorType {
			return nil, huma.Error400BadRequest("cursor type mismatch")
		}

		list, err := svc.List(ctx, user.UID)
		if err != nil {
			return nil, huma.Error500InternalServerError("internal error")
		}

		result := pagination.Paginate(
			list,
			cursor,
			input.DefaultLimit(),
			cursorType,
			func(m messagesvc.Message) string { return m.ID },
			prefix+"/messages",
			url.Values{},
		)

		out := make([]Message, len(result.Items))
		for i, m := range result.Items {
			out[i] = toHTTPMessage(m)
		}
		return &MessagesListOutput{
			Link: result.LinkHeader,
			Body: ListData{Messages: out, Total: result.Total},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "reply-message",
		Method:        http.MethodPost,
		Path:          "/messages/reply",
		Summary:       "Post an owner reply",
		Description:   "Stores a reply in the guestbook under the owner's display name. Replies are always marked as coming from the owner.",
		Tags:          []string{"Messages"},
		DefaultStatus: http.StatusCreated,
		Security:      security,
	}, func(ctx context.Context, input *MessageReplyInput) (*MessageReplyOutput, error) {
		user := auth.UserFromContext(ctx)

		p, err := profiles.GetByOwner(ctx, user.UID)
		if err != nil {
			if errors.Is(err, profilesvc.ErrNotFound) {
				return nil, huma.Error404NotFound("profile not found")
			}
			return nil, huma.Error500InternalServerError("internal error")
		}

		m, err := svc.Reply(ctx, user.UID, messagesvc.CreateParams{
			Name:   p.Settings.DisplayName,
			Body:   input.Body.Body,
			Public: input.Body.Public,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &MessageReplyOutput{Body: toHTTPMessage(*m)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-message",
		Method:        http.MethodDelete,
		Path:          "/messages/{id}",
		Summary:       "Delete a guestbook message",
		Description:   "Removes one message from the guestbook.",
		Tags:          []string{"Messages"},
		DefaultStatus: http.StatusNoContent,
		Security:      security,
	}, func(ctx context.Context, input *MessageDeleteInput) (*struct{}, error) {
		user := auth.UserFromContext(ctx)

		if err := svc.Delete(ctx, user.UID, input.ID); err != nil {
			return nil, mapServiceError(err)
		}
		return nil, nil
	})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, messagesvc.ErrNotFound):
		return huma.Error404NotFound("message not found")
	case errors.Is(err, messagesvc.ErrEmptyName), errors.Is(err, messagesvc.ErrEmptyBody):
		return huma.Error422UnprocessableEntity("message text must not be empty after sanitization")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPMessage(m messagesvc.Message) Message {
	return Message{
		ID:        m.ID,
		Name:      m.Name,
		Body:      m.Body,
		Public:    m.Public,
		FromOwner: m.FromOwner,
		CreatedAt: timeutil.Time{Time: m.CreatedAt},
	}
}
