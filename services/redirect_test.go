package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextTargetWithoutProfile(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "new@example.com")

	next, err := NextTarget(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, RouteNewProfile, next)
}

func TestNextTargetWithProfile(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "ada@example.com")
	createProfile(t, db, user.ID, "Ada", "Lovelace")

	next, err := NextTarget(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, RouteMyProfile, next)
}
