package pageturner_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/pageturner"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := pageturner.Errorf(pageturner.ENOTFOUND, "pattern not found in %q", "https://x.test")

	assert.Equal(t, pageturner.ENOTFOUND, pageturner.ErrorCode(err))
	assert.Equal(t, "pattern not found in \"https://x.test\"", pageturner.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pageturner.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, pageturner.EINTERNAL, pageturner.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pageturner.ErrorMessage(nil))
}
