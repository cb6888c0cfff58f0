package execution

import (
	"context"

	"github.com/google/uuid"
)

// Env describes the call being executed: who made it, whether it may change
// state, and where its log records go.
type Env struct {
	ID       string
	Caller   string
	ReadOnly bool
	Log      *Log
}

type Option func(*Env)

// WithCaller sets the account the call is attributed to.
func WithCaller(caller string) Option {
	return func(e *Env) { e.Caller = caller }
}

// ReadOnly marks the call as a view: it may read state but not pay for a
// state-changing call.
func ReadOnly() Option {
	return func(e *Env) { e.ReadOnly = true }
}

// WithLog shares log between several calls, so their records accumulate.
func WithLog(log *Log) Option {
	return func(e *Env) { e.Log = log }
}

func NewEnv(opts ...Option) *Env {
	env := &Env{ID: uuid.New().String()}
	for _, opt := range opts {
		opt(env)
	}
	if env.Log == nil {
		env.Log = NewLog()
	}
	return env
}

type envKey struct{}

func With(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

// From returns the env attached to ctx. A bare context yields a fresh
// anonymous env with a private log.
func From(ctx context.Context) *Env {
	if env, ok := ctx.Value(envKey{}).(*Env); ok && env != nil {
		return env
	}
	return NewEnv()
}
