package puzzle

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	comm_puzzle "github.com/mr-shifu/puzzle-lib/pkg/common/puzzle"
)

// The persisted record is a CBOR map with integer keys, {1: commitment}.
// Decoding ignores keys it does not know, so later fields must take new keys.
var (
	stateEncMode cbor.EncMode
	stateDecMode cbor.DecMode
)

func init() {
	var err error
	if stateEncMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(fmt.Sprintf("puzzle: cbor encoder: %v", err))
	}
	if stateDecMode, err = (cbor.DecOptions{}).DecMode(); err != nil {
		panic(fmt.Sprintf("puzzle: cbor decoder: %v", err))
	}
}

// EncodeState returns the canonical persisted form of state.
func EncodeState(state *comm_puzzle.State) ([]byte, error) {
	return stateEncMode.Marshal(state)
}

// DecodeState parses a persisted record. Any failure wraps ErrCorruptState.
func DecodeState(data []byte) (*comm_puzzle.State, error) {
	state := &comm_puzzle.State{}
	if err := stateDecMode.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return state, nil
}
