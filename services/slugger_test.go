package services

import (
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUniqueProfileIdentifier(t *testing.T) {
	db := openTestDB(t)

	id, err := UniqueProfileIdentifier(db, "Ada", "Lovelace")
	require.NoError(t, err)
	assert.Equal(t, "ada-lovelace", id)

	user := createUser(t, db, "ada@example.com")
	createProfile(t, db, user.ID, "Ada", "Lovelace")

	id, err = UniqueProfileIdentifier(db, "Ada", "Lovelace")
	require.NoError(t, err)
	assert.Equal(t, "ada-lovelace-1", id)
}

func TestUniqueProfileIdentifierSuffixChain(t *testing.T) {
	db := openTestDB(t)

	for i, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		user := createUser(t, db, email)
		p := createProfile(t, db, user.ID, "Grace", "Hopper")
		switch i {
		case 0:
			assert.Equal(t, "grace-hopper", p.Identifier)
		case 1:
			assert.Equal(t, "grace-hopper-1", p.Identifier)
		case 2:
			assert.Equal(t, "grace-hopper-2", p.Identifier)
		}
	}
}

func TestUniqueProfileIdentifierEmptyNames(t *testing.T) {
	db := openTestDB(t)

	id, err := UniqueProfileIdentifier(db, "", "")
	require.NoError(t, err)
	assert.Equal(t, "user", id)

	id, err = UniqueProfileIdentifier(db, "!!!", "???")
	require.NoError(t, err)
	assert.Equal(t, "user", id)
}

func TestUniquePostSlug(t *testing.T) {
	db := openTestDB(t)

	slug, err := UniquePostSlug(db, "Ada Lovelace", "My First Post!")
	require.NoError(t, err)
	assert.Equal(t, "ada-lovelace-my-first-post", slug)
}

func TestIsDuplicateKey(t *testing.T) {
	assert.False(t, IsDuplicateKey(nil))
	assert.False(t, IsDuplicateKey(errors.New("boom")))
	assert.True(t, IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKey(&mysql.MySQLError{Number: 1062}))
	assert.False(t, IsDuplicateKey(&mysql.MySQLError{Number: 1045}))
}
