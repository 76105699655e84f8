package ident

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var idShape = regexp.MustCompile(`^evt-[a-z0-9]{4}$`)

func TestNewShape(t *testing.T) {
	for i := 0; i < 200; i++ {
		id, err := New()
		require.NoError(t, err)
		assert.Regexp(t, idShape, id)
	}
}

func TestUniqueAvoidsExisting(t *testing.T) {
	existing := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		id, err := Unique(existing)
		require.NoError(t, err)
		_, taken := existing[id]
		require.False(t, taken)
		existing[id] = struct{}{}
	}
}
