package services

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"gogramm/models"
	"gogramm/utils"
)

// UniqueProfileIdentifier derives the profile URL identifier from the name
// pair. Collisions with existing profiles get a deterministic numeric suffix
// (ada-lovelace, ada-lovelace-1, ...). Empty names still yield a usable token.
func UniqueProfileIdentifier(db *gorm.DB, firstName, lastName string) (string, error) {
	base := utils.Slugify(firstName+" "+lastName, "user")
	return uniqueSlug(db, &models.Profile{}, "identifier", base)
}

// UniquePostSlug derives the post slug from the owning profile's display name
// and the post title, with the same disambiguation rule.
func UniquePostSlug(db *gorm.DB, displayName, title string) (string, error) {
	base := utils.Slugify(displayName+" "+title, "post")
	return uniqueSlug(db, &models.Post{}, "slug", base)
}

func uniqueSlug(db *gorm.DB, model interface{}, column, base string) (string, error) {
	candidate := base
	for i := 1; ; i++ {
		var n int64
		if err := db.Model(model).Where(column+" = ?", candidate).Count(&n).Error; err != nil {
			return "", err
		}
		if n == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// IsDuplicateKey reports whether err is a uniqueness violation from the
// database. The slug assignment paths treat it as "probe again with the next
// suffix"; the email path treats it as a hard conflict.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
