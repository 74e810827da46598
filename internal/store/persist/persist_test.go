package persist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "eval_studio_data_alice", Key("alice"))
	assert.Equal(t, "eval_studio_data_alice", Key("Alice"))
	assert.Equal(t, "eval_studio_data_dr. who", Key("Dr. Who"))
}

func TestFilePersister_RoundTrip(t *testing.T) {
	p, err := NewFilePersister(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	// Absent key loads as nil with no error.
	data, err := p.Load(ctx, Key("alice"))
	require.NoError(t, err)
	assert.Nil(t, data)

	payload := []byte(`{"1":{"2":{"timestamp":1700000000000}}}`)
	require.NoError(t, p.Save(ctx, Key("alice"), payload))

	got, err := p.Load(ctx, Key("alice"))
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	// Saving again overwrites.
	require.NoError(t, p.Save(ctx, Key("alice"), []byte(`{}`)))
	got, err = p.Load(ctx, Key("alice"))
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), got)

	// Other users' keys stay independent.
	got, err = p.Load(ctx, Key("bob"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInMemPersister_RoundTrip(t *testing.T) {
	p := NewInMemPersister()
	ctx := context.Background()

	data, err := p.Load(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, data)

	payload := []byte(`{"a":1}`)
	require.NoError(t, p.Save(ctx, "k", payload))

	got, err := p.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	// The persister keeps its own copy.
	payload[0] = 'X'
	got, err = p.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), got)
}

func TestNew_Factory(t *testing.T) {
	ctx := context.Background()

	t.Run("file", func(t *testing.T) {
		p, err := New(ctx, Config{Type: File, Dir: t.TempDir()})
		require.NoError(t, err)
		assert.IsType(t, &FilePersister{}, p)
	})

	t.Run("inmem", func(t *testing.T) {
		p, err := New(ctx, Config{Type: InMem})
		require.NoError(t, err)
		assert.IsType(t, &InMemPersister{}, p)
	})

	t.Run("es without config", func(t *testing.T) {
		_, err := New(ctx, Config{Type: ES})
		assert.Error(t, err)
	})

	t.Run("pg without connection string", func(t *testing.T) {
		_, err := New(ctx, Config{Type: PG})
		assert.Error(t, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := New(ctx, Config{Type: "redis"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported")
	})
}
