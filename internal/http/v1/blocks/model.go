package blocks

import (
	"encoding/json"

	"github.com/linkdeck/linkdeck/internal/platform/timeutil"
)

// Block represents a content block response. The payload shape depends on the
// kind tag.
type Block struct {
	ID        string          `json:"id"        doc:"Unique identifier"                     example:"f81d4fae-7dec-11d0-a765-00a0c91e6bf6"`
	Kind      string          `json:"kind"      doc:"Block kind tag"                        example:"link"`
	Payload   json.RawMessage `json:"payload"   doc:"Kind-specific payload"`
	Enabled   bool            `json:"enabled"   doc:"Whether the block renders on the page" example:"true"`
	Position  int             `json:"position"  doc:"Zero-based position in the list"       example:"0"`
	CreatedAt timeutil.Time   `json:"createdAt" doc:"Creation timestamp"                    example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt timeutil.Time   `json:"updatedAt" doc:"Last update timestamp"                 example:"2024-01-15T10:30:00.000Z"`
}

// ListData is the body of a block list response.
type ListData struct {
	Blocks []Block `json:"blocks" doc:"Blocks in position order"`
	Total  int     `json:"total"  doc:"Total number of blocks"   example:"4"`
}
