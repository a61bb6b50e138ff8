package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOwnProfileMissing(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "new@example.com")

	res, err := ResolveProfile(db, user.ID, "")
	require.NoError(t, err)
	assert.Equal(t, ActionRedirectCreate, res.Action)
	assert.Nil(t, res.Profile)
}

func TestResolveOwnProfile(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "ada@example.com")
	createProfile(t, db, user.ID, "Ada", "Lovelace")

	res, err := ResolveProfile(db, user.ID, "")
	require.NoError(t, err)
	assert.Equal(t, ActionRender, res.Action)
	assert.True(t, res.IsOwner)
	require.NotNil(t, res.Profile)
	assert.Equal(t, "ada-lovelace", res.Profile.Identifier)
}

func TestResolveOwnSlugRedirects(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "ada@example.com")
	createProfile(t, db, user.ID, "Ada", "Lovelace")

	res, err := ResolveProfile(db, user.ID, "ada-lovelace")
	require.NoError(t, err)
	assert.Equal(t, ActionRedirectOwn, res.Action)
	assert.True(t, res.IsOwner)
}

func TestResolveOtherProfile(t *testing.T) {
	db := openTestDB(t)
	owner := createUser(t, db, "ada@example.com")
	createProfile(t, db, owner.ID, "Ada", "Lovelace")
	visitor := createUser(t, db, "grace@example.com")
	createProfile(t, db, visitor.ID, "Grace", "Hopper")

	res, err := ResolveProfile(db, visitor.ID, "ada-lovelace")
	require.NoError(t, err)
	assert.Equal(t, ActionRender, res.Action)
	assert.False(t, res.IsOwner)
	require.NotNil(t, res.Profile)
	assert.Equal(t, owner.ID, res.Profile.UserID)
}

func TestResolveUnknownIdentifier(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "ada@example.com")

	res, err := ResolveProfile(db, user.ID, "nobody-here")
	require.NoError(t, err)
	assert.Equal(t, ActionNotFound, res.Action)
}
