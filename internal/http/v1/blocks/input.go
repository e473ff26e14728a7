package blocks

import "encoding/json"

// BlocksListInput for GET /blocks (no body needed)
type BlocksListInput struct{}

// BlockCreateInput for POST /blocks
type BlockCreateInput struct {
	Body struct {
		Kind    string          `json:"kind"    enum:"link,header,image,faq,youtube,spotify,soundcloud,tiktok" required:"true" doc:"Block kind tag" example:"link"`
		Payload json.RawMessage `json:"payload"                                                                required:"true" doc:"Kind-specific payload"`
		Enabled *bool           `json:"enabled,omitempty"                                                                      doc:"Initial enabled state (default true)"`
	}
}

// BlockEditInput for PATCH /blocks/{id}
type BlockEditInput struct {
	ID   string `path:"id" doc:"Block ID"`
	Body struct {
		Payload json.RawMessage `json:"payload" required:"true" doc:"Replacement payload; its kind must match the block's kind"`
	}
}

// BlockToggleInput for PATCH /blocks/{id}/enabled
type BlockToggleInput struct {
	ID   string `path:"id" doc:"Block ID"`
	Body struct {
		Enabled bool `json:"enabled" required:"true" doc:"New enabled state" example:"false"`
	}
}

// BlockReorderInput for POST /blocks/reorder
type BlockReorderInput struct {
	Body struct {
		IDs []string `json:"ids" minItems:"1" required:"true" doc:"Every block ID in the desired order"`
	}
}

// BlockMoveInput for POST /blocks/{id}/move
type BlockMoveInput struct {
	ID   string `path:"id" doc:"Block ID to move"`
	Body struct {
		TargetID string `json:"targetId" required:"true" doc:"ID of the block whose position to take"`
	}
}

// BlockBulkInput for POST /blocks/bulk
type BlockBulkInput struct {
	Body struct {
		Action string   `json:"action" enum:"enable,disable,delete" required:"true" doc:"Action applied to every selected block" example:"disable"`
		IDs    []string `json:"ids"    minItems:"1"                 required:"true" doc:"Selected block IDs"`
	}
}

// BlockDeleteInput for DELETE /blocks/{id}
type BlockDeleteInput struct {
	ID string `path:"id" doc:"Block ID"`
}
