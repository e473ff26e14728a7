package pages

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/linkdeck/linkdeck/internal/platform/logging"
	"github.com/linkdeck/linkdeck/internal/platform/timeutil"
	"github.com/linkdeck/linkdeck/internal/service/analytics"
	blocksvc "github.com/linkdeck/linkdeck/internal/service/block"
	"github.com/linkdeck/linkdeck/internal/service/embed"
	messagesvc "github.com/linkdeck/linkdeck/internal/service/message"
	profilesvc "github.com/linkdeck/linkdeck/internal/service/profile"
)

// Handler serves the public page surface. No authentication: everything here
// is reachable by any visitor who knows the slug.
type Handler struct {
	profiles profilesvc.Service
	blocks   blocksvc.Service
	messages messagesvc.Service
	clicks   analytics.Service
	resolver *embed.Resolver
}

// NewHandler wires the public page handler to its collaborators.
func NewHandler(
	profiles profilesvc.Service,
	blocks blocksvc.Service,
	messages messagesvc.Service,
	clicks analytics.Service,
	resolver *embed.Resolver,
) *Handler {
	return &Handler{
		profiles: profiles,
		blocks:   blocks,
		messages: messages,
		clicks:   clicks,
		resolver: resolver,
	}
}

// Register registers the public page endpoints.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-page",
		Method:      http.MethodGet,
		Path:        "/pages/{slug}",
		Summary:     "Get a public page",
		Description: "Returns the page settings and its enabled blocks in position order, with media embeds resolved.",
		Tags:        []string{"Pages"},
	}, h.getPage)

	huma.Register(api, huma.Operation{
		OperationID:   "record-click",
		Method:        http.MethodPost,
		Path:          "/pages/{slug}/clicks",
		Summary:       "Record a block click",
		Description:   "Accepts the click immediately. Recording happens in the background; a storage failure never reaches the visitor.",
		Tags:          []string{"Pages"},
		DefaultStatus: http.StatusAccepted,
	}, h.recordClick)

	huma.Register(api, huma.Operation{
		OperationID:   "create-page-message",
		Method:        http.MethodPost,
		Path:          "/pages/{slug}/messages",
		Summary:       "Leave a guestbook message",
		Description:   "Stores a visitor message for the page owner. All markup is stripped from the name and body.",
		Tags:          []string{"Pages"},
		DefaultStatus: http.StatusCreated,
	}, h.createMessage)

	huma.Register(api, huma.Operation{
		OperationID: "list-page-messages",
		Method:      http.MethodGet,
		Path:        "/pages/{slug}/messages",
		Summary:     "List public guestbook messages",
		Description: "Returns only the messages marked public, newest first.",
		Tags:        []string{"Pages"},
	}, h.listMessages)
}

func (h *Handler) getPage(ctx context.Context, input *PageGetInput) (*PageGetOutput, error) {
	p, err := h.profiles.GetBySlug(ctx, input.Slug)
	if err != nil {
		return nil, mapProfileError(err)
	}

	list, err := h.blocks.List(ctx, p.OwnerID)
	if err != nil {
		return nil, huma.Error500InternalServerError("internal error")
	}

	pageBlocks := make([]PageBlock, 0, len(list))
	for _, b := range list {
		if !b.Enabled {
			continue
		}
		payload, err := blocksvc.MarshalPayload(b.Payload)
		if err != nil {
			continue
		}
		pb := PageBlock{
			ID:      b.ID,
			Kind:    string(b.Kind),
			Payload: payload,
		}
		if e := h.resolver.Resolve(ctx, b); e != nil {
			pb.Embed = &Embed{
				VideoID:  e.VideoID,
				EmbedURL: e.EmbedURL,
				HTML:     e.HTML,
				Error:    e.Error,
			}
		}
		pageBlocks = append(pageBlocks, pb)
	}

	return &PageGetOutput{Body: Page{
		Slug:        p.Slug,
		DisplayName: p.Settings.DisplayName,
		Description: p.Settings.Description,
		AvatarURL:   p.Settings.AvatarURL,
		Appearance: PageAppearance{
			Background:  p.Settings.Appearance.Background,
			ButtonStyle: p.Settings.Appearance.ButtonStyle,
			ButtonShape: p.Settings.Appearance.ButtonShape,
			Font:        p.Settings.Appearance.Font,
			FontColor:   p.Settings.Appearance.FontColor,
		},
		SEO: PageSEO{
			Title:       p.Settings.SEO.Title,
			Description: p.Settings.SEO.Description,
			ShareImage:  p.Settings.SEO.ShareImage,
		},
		AnalyticsID: p.Settings.AnalyticsID,
		Blocks:      pageBlocks,
	}}, nil
}

func (h *Handler) recordClick(ctx context.Context, input *ClickInput) (*struct{}, error) {
	p, err := h.profiles.GetBySlug(ctx, input.Slug)
	if err != nil {
		return nil, mapProfileError(err)
	}

	click := analytics.Click{
		OwnerID:  p.OwnerID,
		BlockID:  input.Body.BlockID,
		Referrer: input.Body.Referrer,
		Country:  input.Country,
		At:       time.Now().UTC(),
	}

	// Fire and forget: the visitor gets 202 now, storage runs detached
	// from the request lifecycle.
	bg := context.WithoutCancel(ctx)
	go func() {
		if err := h.clicks.RecordClick(bg, click); err != nil {
			logging.LogWarn(bg, "click recording failed",
				zap.String("slug", input.Slug),
				zap.String("block_id", click.BlockID),
				zap.Error(err),
			)
		}
	}()

	return nil, nil
}

func (h *Handler) createMessage(ctx context.Context, input *MessageCreateInput) (*MessageCreateOutput, error) {
	p, err := h.profiles.GetBySlug(ctx, input.Slug)
	if err != nil {
		return nil, mapProfileError(err)
	}

	m, err := h.messages.Create(ctx, p.OwnerID, messagesvc.CreateParams{
		Name:   input.Body.Name,
		Body:   input.Body.Body,
		Public: input.Body.Public,
	})
	if err != nil {
		return nil, mapMessageError(err)
	}
	return &MessageCreateOutput{Body: toHTTPMessage(*m)}, nil
}

func (h *Handler) listMessages(ctx context.Context, input *MessagesListInput) (*MessagesListOutput, error) {
	p, err := h.profiles.GetBySlug(ctx, input.Slug)
	if err != nil {
		return nil, mapProfileError(err)
	}

	list, err := h.messages.ListPublic(ctx, p.OwnerID)
	if err != nil {
		return nil, huma.Error500InternalServerError("internal error")
	}
	out := make([]PageMessage, len(list))
	for i, m := range list {
		out[i] = toHTTPMessage(m)
	}
	return &MessagesListOutput{Body: MessagesListData{Messages: out, Total: len(out)}}, nil
}

func mapProfileError(err error) error {
	if errors.Is(err, profilesvc.ErrNotFound) {
		return huma.Error404NotFound("page not found")
	}
	return huma.Error500InternalServerError("internal error")
}

func mapMessageError(err error) error {
	switch {
	case errors.Is(err, messagesvc.ErrEmptyName), errors.Is(err, messagesvc.ErrEmptyBody):
		return huma.Error422UnprocessableEntity("name and body must not be empty after sanitization")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPMessage(m messagesvc.Message) PageMessage {
	return PageMessage{
		ID:        m.ID,
		Name:      m.Name,
		Body:      m.Body,
		FromOwner: m.FromOwner,
		CreatedAt: timeutil.Time{Time: m.CreatedAt},
	}
}
