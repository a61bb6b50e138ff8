package models

import "time"

// Photo is a media attachment belonging to exactly one Post. Each photo has a
// stored original plus a generated thumbnail variant. Photos are created in a
// batch alongside their post and removed via cascade when the post goes.
type Photo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	URL       string    `gorm:"size:512;not null" json:"url"`
	ThumbURL  string    `gorm:"size:512" json:"thumb_url"`
	CreatedAt time.Time `json:"created_at"`
	Post      Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
