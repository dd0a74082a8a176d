package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrManifestLoad, "failed to load manifest")
	assert.Equal(t, ErrManifestLoad, err.Code)
	assert.Equal(t, "failed to load manifest", err.Message)
	assert.Contains(t, err.Error(), "MANIFEST_LOAD")
}

func TestWrap(t *testing.T) {
	inner := fmt.Errorf("permission denied")
	err := Wrap(inner, ErrFileAccess, "cannot read entry")
	require.NotNil(t, err)

	assert.Equal(t, ErrFileAccess, err.Code)
	assert.Equal(t, inner, stderrors.Unwrap(err))
	assert.Contains(t, err.Error(), "permission denied")
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrFileAccess, "ignored"))
	assert.Nil(t, Wrapf(nil, ErrFileAccess, "ignored %d", 1))
}

func TestIs(t *testing.T) {
	err := Newf(ErrBundlerRun, "exit status %d", 3)
	assert.True(t, stderrors.Is(err, New(ErrBundlerRun, "anything")))
	assert.False(t, stderrors.Is(err, New(ErrPostBuild, "anything")))
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", New(ErrEntryInvalid, "bad entry"))
	assert.Equal(t, ErrEntryInvalid, GetCode(wrapped))
	assert.Equal(t, ErrUnknown, GetCode(fmt.Errorf("plain")))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrOpExecute, "copy failed").
		WithDetail("source", "/tmp/a").
		WithDetail("dest", "/tmp/b")
	assert.Equal(t, "/tmp/a", err.Details["source"])
	assert.Equal(t, "/tmp/b", err.Details["dest"])
}
