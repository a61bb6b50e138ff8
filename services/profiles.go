package services

import (
	"errors"

	"gorm.io/gorm"

	"gogramm/models"
	"gogramm/utils"
)

const (
	// MaxNameLen bounds first and last name length in runes.
	MaxNameLen = 64
	// MaxBioLen bounds the biography length in runes.
	MaxBioLen = 1023
)

// ProfileInput carries the user supplied profile fields. Avatar is optional.
type ProfileInput struct {
	FirstName string
	LastName  string
	Bio       string
	Avatar    *PhotoUpload
}

// CreateProfile creates the single profile for a user. The URL identifier is
// computed here, before the entity reaches the persistence layer, and is
// never recomputed afterwards.
func CreateProfile(db *gorm.DB, media *MediaStore, userID uint, in ProfileInput) (*models.Profile, error) {
	firstName, lastName, bio, err := cleanProfileInput(in)
	if err != nil {
		return nil, err
	}

	var n int64
	if err := db.Model(&models.Profile{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrProfileExists
	}

	profile := models.Profile{
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
		Bio:       bio,
	}

	var avatar StoredImage
	if in.Avatar != nil {
		avatar, err = media.SaveAvatar(profile.DisplayName(), in.Avatar.Filename, in.Avatar.Reader)
		if err != nil {
			return nil, err
		}
		profile.AvatarURL = avatar.URL
		profile.AvatarThumbURL = avatar.ThumbURL
	}

	for attempt := 0; attempt < slugCreateAttempts; attempt++ {
		err = db.Transaction(func(tx *gorm.DB) error {
			identifier, err := UniqueProfileIdentifier(tx, firstName, lastName)
			if err != nil {
				return err
			}
			profile.Identifier = identifier
			return tx.Create(&profile).Error
		})
		if err == nil {
			return &profile, nil
		}
		profile.ID = 0
		if !IsDuplicateKey(err) {
			break
		}
	}
	if in.Avatar != nil {
		media.Remove(avatar)
	}
	return nil, err
}

// UpdateProfile applies the settings flow to the requester's own profile.
// Names and bio are replaced; the identifier stays untouched no matter how
// the names change.
func UpdateProfile(db *gorm.DB, media *MediaStore, userID uint, in ProfileInput) (*models.Profile, error) {
	var profile models.Profile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	firstName, lastName, bio, err := cleanProfileInput(in)
	if err != nil {
		return nil, err
	}
	profile.FirstName = firstName
	profile.LastName = lastName
	profile.Bio = bio

	if in.Avatar != nil {
		avatar, err := media.SaveAvatar(profile.DisplayName(), in.Avatar.Filename, in.Avatar.Reader)
		if err != nil {
			return nil, err
		}
		profile.AvatarURL = avatar.URL
		profile.AvatarThumbURL = avatar.ThumbURL
	}

	if err := db.Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func cleanProfileInput(in ProfileInput) (firstName, lastName, bio string, err error) {
	firstName = utils.Sanitize(in.FirstName)
	lastName = utils.Sanitize(in.LastName)
	bio = utils.Sanitize(in.Bio)

	if firstName == "" {
		return "", "", "", &ValidationError{Field: "first_name", Message: "this field is required"}
	}
	if lastName == "" {
		return "", "", "", &ValidationError{Field: "last_name", Message: "this field is required"}
	}
	if len([]rune(firstName)) > MaxNameLen {
		return "", "", "", &ValidationError{Field: "first_name", Message: "name must be at most 64 characters"}
	}
	if len([]rune(lastName)) > MaxNameLen {
		return "", "", "", &ValidationError{Field: "last_name", Message: "name must be at most 64 characters"}
	}
	if len([]rune(bio)) > MaxBioLen {
		return "", "", "", &ValidationError{Field: "bio", Message: "biography must be at most 1023 characters"}
	}
	return firstName, lastName, bio, nil
}
