package audit_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicboard/tenantkit/pkg/audit"
)

func TestLogger(t *testing.T) {
	t.Parallel()

	t.Run("records success events", func(t *testing.T) {
		t.Parallel()

		store := audit.NewMemoryStorage()
		log := audit.NewLogger(store)

		require.NoError(t, log.Log(context.Background(), "tenant.override",
			audit.WithTenant("9"),
			audit.WithMetadata("source", "session"),
		))

		events := store.Events()
		require.Len(t, events, 1)
		assert.Equal(t, "tenant.override", events[0].Action)
		assert.Equal(t, audit.ResultSuccess, events[0].Result)
		assert.Equal(t, "9", events[0].TenantID)
		assert.Equal(t, "session", events[0].Metadata["source"])
		assert.NotZero(t, events[0].ID)
		assert.False(t, events[0].CreatedAt.IsZero())
	})

	t.Run("records failures with error message", func(t *testing.T) {
		t.Parallel()

		store := audit.NewMemoryStorage()
		log := audit.NewLogger(store)

		require.NoError(t, log.LogError(context.Background(), "tenant.provision", errors.New("slug taken")))

		events := store.Events()
		require.Len(t, events, 1)
		assert.Equal(t, audit.ResultFailure, events[0].Result)
		assert.Equal(t, "slug taken", events[0].Error)
	})

	t.Run("extracts actor and tenant from context", func(t *testing.T) {
		t.Parallel()

		type actorKey struct{}
		store := audit.NewMemoryStorage()
		log := audit.NewLogger(store,
			audit.WithActorExtractor(func(ctx context.Context) (string, bool) {
				v, ok := ctx.Value(actorKey{}).(string)
				return v, ok
			}),
		)

		ctx := context.WithValue(context.Background(), actorKey{}, "user-1")
		require.NoError(t, log.Log(ctx, "scope.bypass"))

		events := store.Events()
		require.Len(t, events, 1)
		assert.Equal(t, "user-1", events[0].ActorID)
	})

	t.Run("rejects events without action", func(t *testing.T) {
		t.Parallel()

		log := audit.NewLogger(audit.NewMemoryStorage())
		err := log.Log(context.Background(), "")
		assert.ErrorIs(t, err, audit.ErrEventValidation)
	})

	t.Run("nil storage panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { audit.NewLogger(nil) })
	})
}

func TestSlogStorage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	store := audit.NewSlogStorage(log)
	trail := audit.NewLogger(store)

	require.NoError(t, trail.Log(context.Background(), "tenant.override", audit.WithTenant("3")))

	out := buf.String()
	assert.Contains(t, out, "tenant.override")
	assert.Contains(t, out, `"tenant_id":"3"`)
}
