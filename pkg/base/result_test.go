package base

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultError(t *testing.T) {
	err := resultError(ErrInitFailed, "IPluginBase.initialize", KInternalError)
	assert.True(t, errors.Is(err, ErrInitFailed))
	assert.False(t, errors.Is(err, ErrBadCast))
	assert.Equal(t, "IPluginBase.initialize: IPluginBase initialization failed (kInternalError)", err.Error())

	wrapped := fmt.Errorf("load: %w", err)
	code, ok := Code(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KInternalError, code)

	_, ok = Code(ErrBadQuery)
	assert.False(t, ok)
}

func TestTResultString(t *testing.T) {
	assert.Equal(t, "kResultOk", KResultOk.String())
	assert.Equal(t, "kNoInterface", KNoInterface.String())
	assert.Equal(t, "tresult(99)", TResult(99).String())
	assert.True(t, KResultTrue.OK())
	assert.False(t, KResultFalse.OK())
}

func TestEInterfaceMessages(t *testing.T) {
	for _, e := range []EInterface{ErrBadCast, ErrBadQuery, ErrNullTarget, ErrInitFailed, ErrCallFailed} {
		assert.NotEqual(t, "unknown interface error", e.Error())
	}
	assert.Equal(t, "tried to write interface to null pointer", ErrNullTarget.Error())
}
