package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseKeyIsNamespaced(t *testing.T) {
	key := responseKey("deadbeef")

	assert.Equal(t, "aidebug:response:deadbeef", key)
	assert.True(t, strings.HasPrefix(key, keyPrefix))
}
