package routes

import (
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	accounthandler "github.com/linkdeck/linkdeck/internal/http/v1/account"
	analyticshandler "github.com/linkdeck/linkdeck/internal/http/v1/analytics"
	"github.com/linkdeck/linkdeck/internal/http/v1/blocks"
	"github.com/linkdeck/linkdeck/internal/http/v1/messages"
	"github.com/linkdeck/linkdeck/internal/http/v1/pages"
	profilehandler "github.com/linkdeck/linkdeck/internal/http/v1/profile"
	"github.com/linkdeck/linkdeck/internal/http/v1/uploads"
	"github.com/linkdeck/linkdeck/internal/platform/auth"
	accountsvc "github.com/linkdeck/linkdeck/internal/service/account"
	analyticssvc "github.com/linkdeck/linkdeck/internal/service/analytics"
	blocksvc "github.com/linkdeck/linkdeck/internal/service/block"
	"github.com/linkdeck/linkdeck/internal/service/embed"
	messagesvc "github.com/linkdeck/linkdeck/internal/service/message"
	profilesvc "github.com/linkdeck/linkdeck/internal/service/profile"
	uploadsvc "github.com/linkdeck/linkdeck/internal/service/upload"
)

// Services bundles every service the v1 API depends on.
type Services struct {
	Profiles  profilesvc.Service
	Blocks    blocksvc.Service
	Messages  messagesvc.Service
	Analytics analyticssvc.Service
	Account   *accountsvc.Service
	Uploader  uploadsvc.Uploader
	Resolver  *embed.Resolver
}

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API, verifier auth.Verifier, svcs Services) {
	prefix := apiPrefix(api)

	// Apply auth middleware for protected endpoints
	api.UseMiddleware(auth.NewMiddleware(api, verifier))

	pages.NewHandler(svcs.Profiles, svcs.Blocks, svcs.Messages, svcs.Analytics, svcs.Resolver).Register(api)
	profilehandler.Register(api, svcs.Profiles)
	blocks.Register(api, svcs.Blocks)
	messages.Register(api, svcs.Messages, svcs.Profiles, prefix)
	analyticshandler.Register(api, svcs.Analytics)
	accounthandler.Register(api, svcs.Account)
	uploads.Register(api, svcs.Uploader)
}

func apiPrefix(api huma.API) string {
	for _, s := range api.OpenAPI().Servers {
		if u, err := url.Parse(s.URL); err == nil && u.Path != "" {
			return u.Path
		}
	}
	return ""
}
