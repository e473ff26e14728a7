package blocks

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/linkdeck/linkdeck/internal/platform/auth"
	"github.com/linkdeck/linkdeck/internal/platform/timeutil"
	blocksvc "github.com/linkdeck/linkdeck/internal/service/block"
)

var security = []map[string][]string{
	{"bearerAuth": {}},
}

// Register registers block endpoints. Every mutation is atomic: on failure
// the stored list is untouched and the error response carries no partial
// state.
func Register(api huma.API, svc blocksvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "list-blocks",
		Method:      http.MethodGet,
		Path:        "/blocks",
		Summary:     "List the user's blocks",
		Description: "Returns every block in position order, including disabled ones.",
		Tags:        []string{"Blocks"},
		Security:    security,
	}, func(ctx context.Context, _ *BlocksListInput) (*BlocksListOutput, error) {
		user := auth.UserFromContext(ctx)

		list, err := svc.List(ctx, user.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &BlocksListOutput{Body: toListData(list)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-block",
		Method:        http.MethodPost,
		Path:          "/blocks",
		Summary:       "Add a block",
		Description:   "Appends a block at the end of the list. The payload shape must match the kind tag.",
		Tags:          []string{"Blocks"},
		DefaultStatus: http.StatusCreated,
		Security:      security,
	}, func(ctx context.Context, input *BlockCreateInput) (*BlockCreateOutput, error) {
		user := auth.UserFromContext(ctx)

		kind := blocksvc.Kind(input.Body.Kind)
		payload, err := blocksvc.UnmarshalPayload(kind, input.Body.Payload)
		if err != nil {
			return nil, mapServiceError(err)
		}
		enabled := true
		if input.Body.Enabled != nil {
			enabled = *input.Body.Enabled
		}

		b, err := svc.Add(ctx, user.UID, kind, payload, enabled)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &BlockCreateOutput{
			Location: "/v1/blocks/" + b.ID,
			Body:     toHTTPBlock(*b),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "edit-block",
		Method:      http.MethodPatch,
		Path:        "/blocks/{id}",
		Summary:     "Edit a block's payload",
		Description: "Replaces the payload. The block's kind, position and enabled state are untouched.",
		Tags:        []string{"Blocks"},
		Security:    security,
	}, func(ctx context.Context, input *BlockEditInput) (*BlockOutput, error) {
		user := auth.UserFromContext(ctx)

		current, err := svc.List(ctx, user.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		kind, ok := findKind(current, input.ID)
		if !ok {
			return nil, huma.Error404NotFound("block not found")
		}
		payload, err := blocksvc.UnmarshalPayload(kind, input.Body.Payload)
		if err != nil {
			return nil, mapServiceError(err)
		}

		b, err := svc.Edit(ctx, user.UID, input.ID, payload)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &BlockOutput{Body: toHTTPBlock(*b)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "toggle-block",
		Method:      http.MethodPatch,
		Path:        "/blocks/{id}/enabled",
		Summary:     "Enable or disable a block",
		Description: "Sets the enabled flag. Disabled blocks keep their position but do not render on the public page.",
		Tags:        []string{"Blocks"},
		Security:    security,
	}, func(ctx context.Context, input *BlockToggleInput) (*BlockOutput, error) {
		user := auth.UserFromContext(ctx)

		b, err := svc.ToggleEnabled(ctx, user.UID, input.ID, input.Body.Enabled)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &BlockOutput{Body: toHTTPBlock(*b)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "reorder-blocks",
		Method:      http.MethodPost,
		Path:        "/blocks/reorder",
		Summary:     "Reorder the block list",
		Description: "Replaces the list order. The submitted IDs must be an exact permutation of the current list.",
		Tags:        []string{"Blocks"},
		Security:    security,
	}, func(ctx context.Context, input *BlockReorderInput) (*BlockListMutationOutput, error) {
		user := auth.UserFromContext(ctx)

		list, err := svc.Reorder(ctx, user.UID, input.Body.IDs)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &BlockListMutationOutput{Body: toListData(list)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "move-block",
		Method:      http.MethodPost,
		Path:        "/blocks/{id}/move",
		Summary:     "Move a block to another block's position",
		Description: "Splices the block out of its slot and reinserts it at the target block's position. Every other block keeps its relative order.",
		Tags:        []string{"Blocks"},
		Security:    security,
	}, func(ctx context.Context, input *BlockMoveInput) (*BlockListMutationOutput, error) {
		user := auth.UserFromContext(ctx)

		current, err := svc.List(ctx, user.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		ids := make([]string, len(current))
		for i, b := range current {
			ids[i] = b.ID
		}
		if !contains(ids, input.ID) || !contains(ids, input.Body.TargetID) {
			return nil, huma.Error404NotFound("block not found")
		}

		moved := blocksvc.SpliceMove(ids, input.ID, input.Body.TargetID)
		list, err := svc.Reorder(ctx, user.UID, moved)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &BlockListMutationOutput{Body: toListData(list)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "bulk-blocks",
		Method:      http.MethodPost,
		Path:        "/blocks/bulk",
		Summary:     "Apply a bulk action",
		Description: "Enables, disables or deletes every selected block in one atomic step. An unknown ID in the selection fails the whole action.",
		Tags:        []string{"Blocks"},
		Security:    security,
	}, func(ctx context.Context, input *BlockBulkInput) (*BlockListMutationOutput, error) {
		user := auth.UserFromContext(ctx)

		list, err := svc.Bulk(ctx, user.UID, blocksvc.BulkAction(input.Body.Action), input.Body.IDs)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &BlockListMutationOutput{Body: toListData(list)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-block",
		Method:        http.MethodDelete,
		Path:          "/blocks/{id}",
		Summary:       "Delete a block",
		Description:   "Removes the block and reindexes the remainder.",
		Tags:          []string{"Blocks"},
		DefaultStatus: http.StatusNoContent,
		Security:      security,
	}, func(ctx context.Context, input *BlockDeleteInput) (*struct{}, error) {
		user := auth.UserFromContext(ctx)

		if err := svc.Delete(ctx, user.UID, input.ID); err != nil {
			return nil, mapServiceError(err)
		}
		return nil, nil
	})
}

func findKind(list []blocksvc.Block, id string) (blocksvc.Kind, bool) {
	for _, b := range list {
		if b.ID == id {
			return b.Kind, true
		}
	}
	return "", false
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, blocksvc.ErrNotFound):
		return huma.Error404NotFound("block not found")
	case errors.Is(err, blocksvc.ErrUnknownKind):
		return huma.Error422UnprocessableEntity("unknown block kind")
	case errors.Is(err, blocksvc.ErrInvalidPayload):
		return huma.Error422UnprocessableEntity("payload does not match the block kind")
	case errors.Is(err, blocksvc.ErrKindMismatch):
		return huma.Error422UnprocessableEntity("payload kind must match the block kind")
	case errors.Is(err, blocksvc.ErrOrderMismatch):
		return huma.Error409Conflict("submitted order does not match the current block list")
	case errors.Is(err, blocksvc.ErrEmptySelection):
		return huma.Error422UnprocessableEntity("selection must not be empty")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPBlock(b blocksvc.Block) Block {
	payload, err := blocksvc.MarshalPayload(b.Payload)
	if err != nil {
		payload = []byte("{}")
	}
	return Block{
		ID:        b.ID,
		Kind:      string(b.Kind),
		Payload:   payload,
		Enabled:   b.Enabled,
		Position:  b.Position,
		CreatedAt: timeutil.Time{Time: b.CreatedAt},
		UpdatedAt: timeutil.Time{Time: b.UpdatedAt},
	}
}

func toListData(list []blocksvc.Block) ListData {
	out := make([]Block, len(list))
	for i, b := range list {
		out[i] = toHTTPBlock(b)
	}
	return ListData{Blocks: out, Total: len(list)}
}
