package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordService(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("secret123")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", hash)

	assert.True(t, svc.Verify(hash, "secret123"))
	assert.False(t, svc.Verify(hash, "wrong"))
	assert.False(t, svc.Verify("not a hash", "secret123"))
}
