package staging

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestStore_StageOpenRelease(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	ref, err := s.Stage(context.Background(), "/photos/front.jpg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.True(t, models.IsEphemeralRef(ref))
	assert.Equal(t, 1, s.Len())

	rc, name, err := s.Open(ref)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "front.jpg", name)
	assert.Equal(t, "jpeg-bytes", string(data))

	require.NoError(t, s.Release(ref))
	assert.Equal(t, 0, s.Len())

	_, _, err = s.Open(ref)
	require.ErrorIs(t, err, ErrUnknownRef)
	require.ErrorIs(t, s.Release(ref), ErrUnknownRef)

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_StageFailureLeavesNothing(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Stage(context.Background(), "a.png", failingReader{})
	require.Error(t, err)
	assert.Equal(t, 0, s.Len())

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_StageCancelledContext(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Stage(ctx, "a.png", strings.NewReader("x"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestStore_CloseRemovesDir(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Stage(context.Background(), "a.png", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, s.Close())
	assert.Equal(t, 0, s.Len())
	_, err = os.Stat(s.Dir())
	assert.True(t, os.IsNotExist(err))
}
