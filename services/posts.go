package services

import (
	"io"

	"gorm.io/gorm"

	"gogramm/models"
	"gogramm/utils"
)

const (
	// MaxPhotosPerPost bounds the media batch accepted with one post.
	MaxPhotosPerPost = 10
	// MaxPostTitleLen bounds the post title length in runes.
	MaxPostTitleLen = 64

	// slugPrefixSegments is how many slug segments name the photo directory.
	slugPrefixSegments = 3

	// slugCreateAttempts bounds retries when a concurrent insert steals the
	// probed slug between the uniqueness check and the create.
	slugCreateAttempts = 3
)

// PhotoUpload is one media item submitted with a post.
type PhotoUpload struct {
	Filename string
	Reader   io.Reader
}

// CreatePost validates a post submission and persists the post together with
// its 1..10 photos in one transaction. Nothing is persisted when validation
// or storage fails; media files written before a rollback are removed.
func CreatePost(db *gorm.DB, media *MediaStore, profile *models.Profile, title string, photos []PhotoUpload) (*models.Post, error) {
	title = utils.Sanitize(title)
	if title == "" {
		return nil, &ValidationError{Field: "title", Message: "this field is required"}
	}
	if len([]rune(title)) > MaxPostTitleLen {
		return nil, &ValidationError{Field: "title", Message: "title must be at most 64 characters"}
	}
	if len(photos) == 0 {
		return nil, &ValidationError{Field: "photos", Message: "this field is required"}
	}
	if len(photos) > MaxPhotosPerPost {
		return nil, &ValidationError{Field: "photos", Message: "the number of photos in a post is limited to 10"}
	}

	var err error
	for attempt := 0; attempt < slugCreateAttempts; attempt++ {
		var post *models.Post
		post, err = createPostOnce(db, media, profile, title, photos)
		if err == nil {
			return post, nil
		}
		// Uniqueness violations mean another request took the slug after the
		// probe; probing again yields the next free suffix.
		if !IsDuplicateKey(err) {
			return nil, err
		}
	}
	return nil, err
}

func createPostOnce(db *gorm.DB, media *MediaStore, profile *models.Profile, title string, photos []PhotoUpload) (*models.Post, error) {
	var post models.Post
	var stored []StoredImage

	err := db.Transaction(func(tx *gorm.DB) error {
		slug, err := UniquePostSlug(tx, profile.DisplayName(), title)
		if err != nil {
			return err
		}

		post = models.Post{ProfileID: profile.ID, Title: title, Slug: slug}
		if err := tx.Create(&post).Error; err != nil {
			return err
		}

		prefix := utils.SlugPrefix(utils.Slugify(title, "post"), slugPrefixSegments)
		for _, up := range photos {
			img, err := media.SavePostPhoto(profile.DisplayName(), prefix, up.Filename, up.Reader)
			if err != nil {
				return err
			}
			stored = append(stored, img)

			photo := models.Photo{PostID: post.ID, URL: img.URL, ThumbURL: img.ThumbURL}
			if err := tx.Create(&photo).Error; err != nil {
				return err
			}
			post.Photos = append(post.Photos, photo)
		}
		return nil
	})
	if err != nil {
		for _, img := range stored {
			media.Remove(img)
		}
		return nil, err
	}
	return &post, nil
}
