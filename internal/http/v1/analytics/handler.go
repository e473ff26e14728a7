package analytics

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/linkdeck/linkdeck/internal/platform/auth"
	analyticssvc "github.com/linkdeck/linkdeck/internal/service/analytics"
)

var security = []map[string][]string{
	{"bearerAuth": {}},
}

// SummaryInput for GET /analytics/summary
type SummaryInput struct {
	Range string `query:"range" enum:"7d,30d,90d,all" default:"30d" doc:"Range to aggregate over"`
}

// SummaryOutput for GET /analytics/summary
type SummaryOutput struct {
	Body Summary
}

// BlockStatsInput for GET /analytics/blocks (no parameters)
type BlockStatsInput struct{}

// BlockStatsOutput for GET /analytics/blocks
type BlockStatsOutput struct {
	Body BlockStats
}

// Register registers the analytics endpoints.
func Register(api huma.API, svc analyticssvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "get-block-stats",
		Method:      http.MethodGet,
		Path:        "/analytics/blocks",
		Summary:     "Get per-block click counts",
		Description: "Returns the all-time click count for every block that has recorded at least one click.",
		Tags:        []string{"Analytics"},
		Security:    security,
	}, func(ctx context.Context, _ *BlockStatsInput) (*BlockStatsOutput, error) {
		user := auth.UserFromContext(ctx)

		stats, err := svc.BlockStats(ctx, user.UID)
		if err != nil {
			return nil, huma.Error500InternalServerError("internal error")
		}
		return &BlockStatsOutput{Body: BlockStats{Stats: stats}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-analytics-summary",
		Method:      http.MethodGet,
		Path:        "/analytics/summary",
		Summary:     "Get an activity summary",
		Description: "Aggregates clicks over the requested range: totals, a daily series, country and referrer breakdowns, and the top blocks.",
		Tags:        []string{"Analytics"},
		Security:    security,
	}, func(ctx context.Context, input *SummaryInput) (*SummaryOutput, error) {
		user := auth.UserFromContext(ctx)

		s, err := svc.Summary(ctx, user.UID, analyticssvc.Range(input.Range))
		if err != nil {
			if errors.Is(err, analyticssvc.ErrInvalidRange) {
				return nil, huma.Error422UnprocessableEntity("unknown range")
			}
			return nil, huma.Error500InternalServerError("internal error")
		}

		daily := make([]DailyCount, len(s.Daily))
		for i, d := range s.Daily {
			daily[i] = DailyCount{Date: d.Date, Count: d.Count}
		}
		top := make([]BlockCount, len(s.TopBlocks))
		for i, b := range s.TopBlocks {
			top[i] = BlockCount{BlockID: b.BlockID, Count: b.Count}
		}
		return &SummaryOutput{Body: Summary{
			Range:       input.Range,
			TotalClicks: s.TotalClicks,
			ActiveDays:  s.ActiveDays,
			Daily:       daily,
			Countries:   s.Countries,
			Referrers:   s.Referrers,
			TopBlocks:   top,
		}}, nil
	})
}
