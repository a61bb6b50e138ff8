package models

import "time"

// Profile is the one-to-one public extension of a User. The Identifier is the
// URL slug derived from the name pair at creation time; it is never
// regenerated afterwards, even when the names change.
type Profile struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	FirstName      string    `gorm:"size:64;not null" json:"first_name"`
	LastName       string    `gorm:"size:64;not null" json:"last_name"`
	Bio            string    `gorm:"size:1023" json:"bio"`
	AvatarURL      string    `gorm:"size:512" json:"avatar_url"`
	AvatarThumbURL string    `gorm:"size:512" json:"avatar_thumb_url"`
	Identifier     string    `gorm:"size:128;uniqueIndex;not null" json:"identifier"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"-"`
	User           User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Posts          []Post    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// DisplayName returns "First Last", the human-readable form used for media
// paths and post slug derivation.
func (p *Profile) DisplayName() string {
	return p.FirstName + " " + p.LastName
}
