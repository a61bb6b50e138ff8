package services

import (
	"errors"

	"gorm.io/gorm"

	"gogramm/models"
)

// Action is the outcome of resolving a profile request.
type Action int

const (
	// ActionRender means the resolved profile should be rendered.
	ActionRender Action = iota
	// ActionRedirectOwn means the requester addressed their own profile by
	// slug; exactly one URL form is authoritative for self-view.
	ActionRedirectOwn
	// ActionRedirectCreate means the requester has no profile yet and must
	// be sent to profile creation.
	ActionRedirectCreate
	// ActionNotFound means the path identifier matched no profile.
	ActionNotFound
)

// Resolution is the read-only result of ResolveProfile.
type Resolution struct {
	Action  Action
	Profile *models.Profile
	IsOwner bool
}

// ResolveProfile determines which profile a request addresses. An empty
// identifier means "the requester's own profile"; a non-empty identifier is
// matched against profile slugs. The decision has no side effects.
func ResolveProfile(db *gorm.DB, requesterID uint, identifier string) (Resolution, error) {
	var profile models.Profile

	if identifier == "" {
		err := db.Where("user_id = ?", requesterID).First(&profile).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Resolution{Action: ActionRedirectCreate}, nil
		}
		if err != nil {
			return Resolution{}, err
		}
		return Resolution{Action: ActionRender, Profile: &profile, IsOwner: true}, nil
	}

	err := db.Where("identifier = ?", identifier).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Resolution{Action: ActionNotFound}, nil
	}
	if err != nil {
		return Resolution{}, err
	}
	if profile.UserID == requesterID {
		return Resolution{Action: ActionRedirectOwn, Profile: &profile, IsOwner: true}, nil
	}
	return Resolution{Action: ActionRender, Profile: &profile, IsOwner: false}, nil
}
