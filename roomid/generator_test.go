package roomid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator_Distinct_Identifiers(t *testing.T) {
	req := require.New(t)
	generator := NewUUIDGenerator()

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := generator.Generate()
		req.True(strings.HasPrefix(id, Prefix))

		_, duplicate := seen[id]
		req.False(duplicate, "identifier %s generated twice", id)
		seen[id] = struct{}{}
	}
}
