package models

import "time"

// Post is authored content owned by a Profile. Posts are immutable after
// creation; there is no edit flow. The slug is derived from the owning
// profile's display name plus the title and is globally unique.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProfileID uint      `gorm:"index;not null" json:"profile_id"`
	Title     string    `gorm:"size:64;not null" json:"title"`
	Slug      string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	Profile   Profile   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Photos    []Photo   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"photos"`
}
