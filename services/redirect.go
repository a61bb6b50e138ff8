package services

import (
	"gorm.io/gorm"

	"gogramm/models"
)

// Client navigation routes used as post-action targets.
const (
	RouteMyProfile  = "/profile/me"
	RouteNewProfile = "/profile/new"
	RoutePeople     = "/people"
)

// NextTarget is the post-action redirect policy: a requester without a
// profile is sent to profile creation, everyone else to their own profile.
// It is the single decision reused after login, profile creation and post
// creation.
func NextTarget(db *gorm.DB, userID uint) (string, error) {
	var n int64
	if err := db.Model(&models.Profile{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return "", err
	}
	if n == 0 {
		return RouteNewProfile, nil
	}
	return RouteMyProfile, nil
}
