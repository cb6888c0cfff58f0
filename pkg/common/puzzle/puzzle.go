package puzzle

import "context"

// Operation names an entry point of the puzzle store.
type Operation string

const (
	OpGetPuzzleNumber Operation = "get_puzzle_number"
	OpInitialize      Operation = "new"
	OpSetSolution     Operation = "set_solution"
	OpGetSolution     Operation = "get_solution"
	OpGuessSolution   Operation = "guess_solution"
)

// Mutating reports whether the host classifies op as a state-changing call.
// GuessSolution is mutating because it emits a log record, not because it
// writes state.
func (op Operation) Mutating() bool {
	switch op {
	case OpInitialize, OpSetSolution, OpGuessSolution:
		return true
	default:
		return false
	}
}

// Store is the single puzzle instance: a commitment and the operations that
// read, replace and check guesses against it.
type Store interface {
	PuzzleNumber() uint8
	Initialize(ctx context.Context, solution string) (*State, error)
	SetSolution(ctx context.Context, solution string) error
	GetSolution(ctx context.Context) (string, error)
	GuessSolution(ctx context.Context, candidate string) (bool, error)
}

// State is the persisted puzzle record.
type State struct {
	// Commitment is the plaintext answer or the hex digest of it, depending
	// on the scheme the store was built with.
	Commitment string `cbor:"1,keyasint"`
}

// Authorizer decides whether caller may invoke op.
type Authorizer interface {
	Authorize(ctx context.Context, op Operation, caller string) error
}
