package circuit

import "errors"

// Model-level errors. Mutators fail with these rather than silently
// dropping data.
var (
	// ErrDuplicateID indicates a node or branch id that already exists.
	ErrDuplicateID = errors.New("circuit: duplicate identifier")

	// ErrUnknownNode indicates a node id that is not in the model.
	ErrUnknownNode = errors.New("circuit: unknown node")

	// ErrUnknownBranch indicates a branch id that is not in the model.
	ErrUnknownBranch = errors.New("circuit: unknown branch")

	// ErrDanglingReference indicates a branch endpoint naming a node
	// that does not exist.
	ErrDanglingReference = errors.New("circuit: branch references missing node")
)
