package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dupkeep/pkg/errors"
)

func TestNew(t *testing.T) {
	err := errors.New(errors.ErrListOpen, "cannot open list")

	assert.Equal(t, "[LIST_OPEN] cannot open list", err.Error())
	assert.Equal(t, errors.ErrListOpen, errors.GetErrorCode(err))
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := errors.Wrap(cause, errors.ErrDirOpen, "cannot open directory")

	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "DIR_OPEN")
	assert.Contains(t, err.Error(), "permission denied")
	assert.ErrorIs(t, err, cause)
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrDirOpen, "msg"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrDirOpen, "msg %d", 1))
}

func TestIsErrorCode(t *testing.T) {
	err := errors.Newf(errors.ErrActionCopy, "cannot copy %s", "a.txt")

	assert.True(t, errors.IsErrorCode(err, errors.ErrActionCopy))
	assert.False(t, errors.IsErrorCode(err, errors.ErrActionMove))
	assert.False(t, errors.IsErrorCode(stderrors.New("plain"), errors.ErrActionCopy))
}

func TestIsErrorCode_Wrapped(t *testing.T) {
	inner := errors.New(errors.ErrListOpen, "inner")
	outer := fmt.Errorf("outer: %w", inner)

	assert.True(t, errors.IsErrorCode(outer, errors.ErrListOpen))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrFileRead, "read failed").
		WithDetail("path", "/some/file")

	assert.Equal(t, "/some/file", err.Details["path"])
}

func TestGetErrorCode_Unknown(t *testing.T) {
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
}
