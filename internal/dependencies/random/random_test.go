package random_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/forceteam/internal/dependencies/random"
)

func TestStringUsesAlphabet(t *testing.T) {
	r := random.New()

	s := r.String(64, "ab")
	assert.Len(t, s, 64)
	assert.Empty(t, strings.Trim(s, "ab"))
}

func TestStringDegenerateInputs(t *testing.T) {
	r := random.New()

	assert.Empty(t, r.String(0, "abc"))
	assert.Empty(t, r.String(-1, "abc"))
	assert.Empty(t, r.String(8, ""))
	assert.Equal(t, "zzzz", r.String(4, "z"))
}
