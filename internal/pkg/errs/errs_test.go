//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"stayhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestIsSeesMarkedIdentity(t *testing.T) {
	sentinel := errs.New("sentinel")
	marked := errs.Mark(errors.New("cause"), sentinel)

	assert.True(t, errs.Is(marked, sentinel))
	assert.False(t, errors.Is(marked, sentinel), "marks are invisible to the standard library")
}

func TestIsPlainChains(t *testing.T) {
	sentinel := errs.New("sentinel")

	assert.True(t, errs.Is(sentinel, sentinel))
	assert.True(t, errs.Is(errs.Wrap(sentinel, "context"), sentinel))
	assert.False(t, errs.Is(nil, sentinel))
	assert.False(t, errs.Is(errs.New("other"), sentinel))
}
