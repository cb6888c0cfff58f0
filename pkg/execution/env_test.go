package execution

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnv(t *testing.T) {
	env := NewEnv()
	_, err := uuid.Parse(env.ID)
	require.NoError(t, err)
	assert.Empty(t, env.Caller)
	assert.False(t, env.ReadOnly)
	require.NotNil(t, env.Log)

	log := NewLog()
	env = NewEnv(WithCaller("alice.testnet"), ReadOnly(), WithLog(log))
	assert.Equal(t, "alice.testnet", env.Caller)
	assert.True(t, env.ReadOnly)
	assert.Same(t, log, env.Log)
	assert.NotEqual(t, NewEnv().ID, NewEnv().ID)
}

func TestFrom(t *testing.T) {
	env := NewEnv(WithCaller("bob.testnet"))
	ctx := With(context.Background(), env)
	assert.Same(t, env, From(ctx))

	anon := From(context.Background())
	require.NotNil(t, anon)
	assert.Empty(t, anon.Caller)
	assert.NotNil(t, anon.Log)
}

func TestLog_Order(t *testing.T) {
	log := NewLog()
	log.Append("Try again")
	log.Append("You guessed right")
	assert.Equal(t, []string{"Try again", "You guessed right"}, log.Records())

	recs := log.Records()
	recs[0] = "changed"
	assert.Equal(t, "Try again", log.Records()[0], "Records should return a copy")
}

func TestLog_ConcurrentAppend(t *testing.T) {
	log := NewLog()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Append("x")
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, log.Len())
}
