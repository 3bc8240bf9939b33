package capture

import (
	"context"
	"testing"

	"github.com/MiracleSNeko/dapper-alco-boost/internal/inmemorystore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapture(t *testing.T) {
	ctx := context.Background()
	store := inmemorystore.New()

	rec, err := New(store).Capture(ctx, "Execute(ctx context.Context) error")
	require.NoError(t, err)
	assert.Equal(t, "func (_ _) _(_ context.Context) error", rec.Raw)

	stored, err := store.GetInterface(ctx)
	require.NoError(t, err)
	assert.Equal(t, rec, stored)
}

func TestCapture_Overwrites(t *testing.T) {
	ctx := context.Background()
	store := inmemorystore.New()
	stage := New(store)

	_, err := stage.Capture(ctx, "Execute() error")
	require.NoError(t, err)
	_, err = stage.Capture(ctx, "Execute(n int)")
	require.NoError(t, err)

	stored, err := store.GetInterface(ctx)
	require.NoError(t, err)
	assert.Equal(t, "func (_ _) _(_ int)", stored.Raw)
}

func TestCaptureFromInterface(t *testing.T) {
	ctx := context.Background()
	store := inmemorystore.New()

	src := `type WgseCommandInterface interface {
	// summary doc here
	Execute() error
}`
	rec, err := New(store).CaptureFromInterface(ctx, src, "Execute")
	require.NoError(t, err)
	assert.Equal(t, "func (_ _) _() error", rec.Raw)
}

func TestCapture_InvalidSource(t *testing.T) {
	store := inmemorystore.New()

	_, err := New(store).Capture(context.Background(), "not a method at all (")
	require.Error(t, err)

	_, err = store.GetInterface(context.Background())
	require.Error(t, err, "nothing must be stored on failure")
}
