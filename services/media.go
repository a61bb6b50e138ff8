package services

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"gogramm/utils"
)

// ThumbSize is the bounding box of generated thumbnail variants.
const ThumbSize = 250

// MediaStore persists uploaded images on local disk and derives a thumbnail
// variant for each. Storage failures are fatal for the triggering request;
// the caller is responsible for rolling back any database state.
type MediaStore struct {
	dir     string
	baseURL string
}

// NewMediaStore creates a store rooted at dir, serving files under baseURL.
func NewMediaStore(dir, baseURL string) *MediaStore {
	return &MediaStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// StoredImage describes a persisted original plus its thumbnail variant.
type StoredImage struct {
	URL       string
	ThumbURL  string
	Path      string
	ThumbPath string
}

// SaveAvatar stores a profile avatar under profiles/<owner-name>/avatar/.
func (m *MediaStore) SaveAvatar(ownerName, filename string, r io.Reader) (StoredImage, error) {
	return m.save(filepath.Join("profiles", ownerDir(ownerName), "avatar"), filename, r)
}

// SavePostPhoto stores a post photo under
// profiles/<owner-name>/post-photos/<year>/<month>/<day>/<slug-prefix>/.
func (m *MediaStore) SavePostPhoto(ownerName, slugPrefix, filename string, r io.Reader) (StoredImage, error) {
	now := time.Now()
	rel := filepath.Join("profiles", ownerDir(ownerName), "post-photos",
		now.Format("2006"), now.Format("01"), now.Format("02"), slugPrefix)
	return m.save(rel, filename, r)
}

// ownerDir keeps media paths URL-safe regardless of what the display name
// contains.
func ownerDir(ownerName string) string {
	return utils.Slugify(ownerName, "user")
}

// Remove deletes a stored image and its thumbnail. Best effort.
func (m *MediaStore) Remove(img StoredImage) {
	if img.Path != "" {
		_ = os.Remove(img.Path)
	}
	if img.ThumbPath != "" {
		_ = os.Remove(img.ThumbPath)
	}
}

func (m *MediaStore) save(relDir, filename string, r io.Reader) (StoredImage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return StoredImage{}, fmt.Errorf("read upload: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return StoredImage{}, &ValidationError{Field: "photo", Message: "unsupported image format"}
	}

	dir := filepath.Join(m.dir, relDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return StoredImage{}, fmt.Errorf("create media directory: %w", err)
	}

	name := storedName(filename, format)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return StoredImage{}, fmt.Errorf("write image: %w", err)
	}

	thumbName := thumbnailName(name)
	thumbPath := filepath.Join(dir, thumbName)
	if err := writeThumbnail(thumbPath, img, format); err != nil {
		_ = os.Remove(path)
		return StoredImage{}, fmt.Errorf("write thumbnail: %w", err)
	}

	urlDir := filepath.ToSlash(relDir)
	return StoredImage{
		URL:       m.baseURL + "/" + urlDir + "/" + name,
		ThumbURL:  m.baseURL + "/" + urlDir + "/" + thumbName,
		Path:      path,
		ThumbPath: thumbPath,
	}, nil
}

// storedName derives a collision-free on-disk name keeping a recognizable
// slug of the original filename.
func storedName(filename, format string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = "." + format
	}
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return fmt.Sprintf("%s_%s%s", uuid.NewString()[:8], utils.Slugify(base, "image"), ext)
}

// thumbnailName inserts the variant marker before the extension,
// e.g. photo.jpg -> photo.thumbnail.jpg.
func thumbnailName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".thumbnail" + ext
}

func writeThumbnail(path string, src image.Image, format string) error {
	dst := scaleToFit(src, ThumbSize)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if format == "png" {
		return png.Encode(f, dst)
	}
	return jpeg.Encode(f, dst, &jpeg.Options{Quality: 85})
}

// scaleToFit shrinks src to fit inside a max x max box preserving aspect
// ratio. Images already inside the box are returned unchanged.
func scaleToFit(src image.Image, max int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= max && h <= max {
		return src
	}
	if w > h {
		h = h * max / w
		w = max
	} else {
		w = w * max / h
		h = max
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
