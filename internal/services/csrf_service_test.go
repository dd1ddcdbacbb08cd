package services_test

import (
	"errors"
	"testing"

	"locgm/internal/services"
	"locgm/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSRFGuard_IssueIsStablePerSession(t *testing.T) {
	guard := services.NewCSRFGuard()
	s := session.NewMemory()

	assert.Empty(t, guard.Current(s))

	tok, err := guard.Issue(s)
	require.NoError(t, err)
	assert.Len(t, tok, 64) // 32 bytes, hex encoded

	again, err := guard.Issue(s)
	require.NoError(t, err)
	assert.Equal(t, tok, again)
	assert.Equal(t, tok, guard.Current(s))

	other, err := guard.Issue(session.NewMemory())
	require.NoError(t, err)
	assert.NotEqual(t, tok, other)
}

func TestCSRFGuard_Validate(t *testing.T) {
	guard := services.NewCSRFGuard()
	s := session.NewMemory()

	assert.False(t, guard.Validate(s, ""), "no token issued yet")
	assert.False(t, guard.Validate(s, "anything"), "no token issued yet")

	tok, err := guard.Issue(s)
	require.NoError(t, err)

	assert.True(t, guard.Validate(s, tok))
	assert.False(t, guard.Validate(s, ""))
	assert.False(t, guard.Validate(s, tok[:len(tok)-1]))
	assert.False(t, guard.Validate(s, tok+"0"))
	assert.False(t, guard.Validate(nil, tok))

	fresh, err := guard.Reissue(s)
	require.NoError(t, err)
	assert.NotEqual(t, tok, fresh)
	assert.False(t, guard.Validate(s, tok))
	assert.True(t, guard.Validate(s, fresh))
}

func TestCSRFGuard_IgnoresNonStringValues(t *testing.T) {
	guard := services.NewCSRFGuard()
	s := session.NewMemory()
	s.Set("csrf_token", errors.New("not a token"))

	assert.Empty(t, guard.Current(s))
	assert.False(t, guard.Validate(s, "not a token"))
}
