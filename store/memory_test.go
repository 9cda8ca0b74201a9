package store

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/they4kman/gosweep/game"
)

func TestMemoryStoreSaveGetPrune(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	session, err := game.NewSession(9, 10, nil)
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, st.Save(ctx, &Entry{ID: "old", Session: session, StartedAt: now.Add(-time.Hour)}))
	require.NoError(t, st.Save(ctx, &Entry{ID: "new", Session: session, StartedAt: now}))

	entry, err := st.Get(ctx, "new")
	require.NoError(t, err)
	require.Same(t, session, entry.Session)

	pruned, err := st.Prune(ctx, now.Add(-time.Minute))
	require.NoError(t, err)
	require.Equal(t, 1, pruned)

	_, err = st.Get(ctx, "old")
	require.True(t, errors.Is(err, ErrNotFound))
	_, err = st.Get(ctx, "new")
	require.NoError(t, err)
}
