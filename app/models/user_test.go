package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPassword(t *testing.T) {
	user := &User{Username: "alice"}
	require.NoError(t, user.SetPassword("s3cretpass"))
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotContains(t, string(user.PasswordHash), "s3cretpass")

	ok, err := user.PasswordMatches("s3cretpass")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = user.PasswordMatches("wrongpass")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserFullName(t *testing.T) {
	assert.Equal(t, "Alice Smith", (&User{FirstName: "Alice", LastName: "Smith"}).FullName())
	assert.Equal(t, "Alice", (&User{FirstName: "Alice"}).FullName())
	assert.Equal(t, "alice", (&User{Username: "alice"}).FullName())
}
