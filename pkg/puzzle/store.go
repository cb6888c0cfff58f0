package puzzle

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mr-shifu/puzzle-lib/core/commitment"
	comm_puzzle "github.com/mr-shifu/puzzle-lib/pkg/common/puzzle"
	comm_vault "github.com/mr-shifu/puzzle-lib/pkg/common/vault"
	"github.com/mr-shifu/puzzle-lib/pkg/execution"
	"github.com/mr-shifu/puzzle-lib/pkg/vault"
	"go.uber.org/zap"
)

// PuzzleNumber identifies this puzzle release.
const PuzzleNumber uint8 = 1

const DefaultInstanceID = "puzzle"

// Log records appended by GuessSolution.
const (
	MsgCorrect  = "You guessed right"
	MsgTryAgain = "Try again"
)

// Store holds one puzzle instance in a vault. Every operation runs under a
// single lock, so operations on one Store form a total order.
type Store struct {
	lock sync.Mutex

	vault      comm_vault.Vault
	key        string
	scheme     commitment.Scheme
	authorizer comm_puzzle.Authorizer
	logger     *zap.Logger
}

var _ comm_puzzle.Store = (*Store)(nil)

type Option func(*Store)

// WithVault sets where the state record lives. Defaults to a fresh InMemoryVault.
func WithVault(v comm_vault.Vault) Option {
	return func(s *Store) { s.vault = v }
}

// WithInstanceID sets the vault key of the state record.
func WithInstanceID(id string) Option {
	return func(s *Store) { s.key = id }
}

// WithAuthorizer guards Initialize and SetSolution. Defaults to Open.
func WithAuthorizer(a comm_puzzle.Authorizer) Option {
	return func(s *Store) { s.authorizer = a }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore returns a store that evaluates guesses under scheme.
func NewStore(scheme commitment.Scheme, opts ...Option) (*Store, error) {
	if !scheme.Valid() {
		return nil, fmt.Errorf("%w: %s", commitment.ErrUnknownScheme, scheme)
	}
	s := &Store{
		scheme:     scheme,
		key:        DefaultInstanceID,
		authorizer: Open(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.vault == nil {
		s.vault = vault.NewInMemoryVault()
	}
	s.logger = s.logger.With(
		zap.String("instance", s.key),
		zap.Stringer("scheme", s.scheme),
		zap.Bool("hashed", s.scheme.Hashed()),
	)
	return s, nil
}

func (s *Store) Scheme() commitment.Scheme {
	return s.scheme
}

func (s *Store) PuzzleNumber() uint8 {
	return PuzzleNumber
}

// Initialize stores solution as the commitment. The value is not validated,
// and calling Initialize again simply overwrites the previous state.
func (s *Store) Initialize(ctx context.Context, solution string) (*comm_puzzle.State, error) {
	env := execution.From(ctx)
	if err := s.admit(ctx, env, comm_puzzle.OpInitialize); err != nil {
		return nil, err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	state := &comm_puzzle.State{Commitment: solution}
	if err := s.save(state); err != nil {
		return nil, err
	}
	s.logger.Info("puzzle initialized", envFields(env)...)

	return &comm_puzzle.State{Commitment: state.Commitment}, nil
}

// SetSolution replaces the commitment unconditionally.
func (s *Store) SetSolution(ctx context.Context, solution string) error {
	env := execution.From(ctx)
	if err := s.admit(ctx, env, comm_puzzle.OpSetSolution); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.save(&comm_puzzle.State{Commitment: solution}); err != nil {
		return err
	}
	s.logger.Info("solution replaced", envFields(env)...)
	return nil
}

// GetSolution returns the stored commitment verbatim, or "" before the
// store is initialized. Under Plaintext this is the secret itself.
func (s *Store) GetSolution(ctx context.Context) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	state, _, err := s.load()
	if err != nil {
		return "", err
	}
	return state.Commitment, nil
}

// GuessSolution reports whether candidate matches the commitment and appends
// one record to the execution log. A wrong guess is not an error.
func (s *Store) GuessSolution(ctx context.Context, candidate string) (bool, error) {
	env := execution.From(ctx)
	if err := s.admit(ctx, env, comm_puzzle.OpGuessSolution); err != nil {
		return false, err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	state, initialized, err := s.load()
	if err != nil {
		return false, err
	}

	// Nothing has been committed yet, so no candidate can match.
	matched := initialized && commitment.Evaluate(s.scheme, state.Commitment, candidate)

	msg := MsgTryAgain
	if matched {
		msg = MsgCorrect
	}
	env.Log.Append(msg)
	s.logger.Info(msg, append(envFields(env), zap.Bool("matched", matched))...)

	return matched, nil
}

func (s *Store) admit(ctx context.Context, env *execution.Env, op comm_puzzle.Operation) error {
	if op.Mutating() && env.ReadOnly {
		return fmt.Errorf("%w: %s", ErrReadOnlyCall, op)
	}
	if op == comm_puzzle.OpInitialize || op == comm_puzzle.OpSetSolution {
		if err := s.authorizer.Authorize(ctx, op, env.Caller); err != nil {
			s.logger.Warn("call rejected", append(envFields(env), zap.String("op", string(op)), zap.Error(err))...)
			return err
		}
	}
	return nil
}

// load returns the stored record and whether one exists. A missing record
// reads as the zero State.
func (s *Store) load() (*comm_puzzle.State, bool, error) {
	data, err := s.vault.Get(s.key)
	if errors.Is(err, vault.ErrKeyNotFound) {
		return &comm_puzzle.State{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("puzzle: load state: %w", err)
	}
	state, err := DecodeState(data)
	if err != nil {
		return nil, false, err
	}
	return state, true, nil
}

func (s *Store) save(state *comm_puzzle.State) error {
	data, err := EncodeState(state)
	if err != nil {
		return fmt.Errorf("puzzle: encode state: %w", err)
	}
	if err := s.vault.Import(s.key, data); err != nil {
		return fmt.Errorf("puzzle: save state: %w", err)
	}
	return nil
}

func envFields(env *execution.Env) []zap.Field {
	return []zap.Field{
		zap.String("execution", env.ID),
		zap.String("caller", env.Caller),
	}
}
