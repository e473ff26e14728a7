package blocks

// BlocksListOutput for GET /blocks
type BlocksListOutput struct {
	Body ListData
}

// BlockCreateOutput for POST /blocks (201 Created)
type BlockCreateOutput struct {
	Location string `header:"Location" doc:"URL of created block"`
	Body     Block
}

// BlockOutput for single-block mutations
type BlockOutput struct {
	Body Block
}

// BlockListMutationOutput for mutations that return the full resulting list
type BlockListMutationOutput struct {
	Body ListData
}
