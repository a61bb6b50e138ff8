package services

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return &buf
}

func TestSaveAvatar(t *testing.T) {
	media := NewMediaStore(t.TempDir(), "/static/media")

	img, err := media.SaveAvatar("Ada Lovelace", "portrait.png", encodePNG(t, 600, 400))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(img.URL, "/static/media/profiles/ada-lovelace/avatar/"))
	assert.Contains(t, img.ThumbURL, ".thumbnail.")
	assert.FileExists(t, img.Path)
	assert.FileExists(t, img.ThumbPath)
}

func TestSaveRejectsNonImage(t *testing.T) {
	media := NewMediaStore(t.TempDir(), "/static/media")

	_, err := media.SaveAvatar("Ada Lovelace", "notes.txt", strings.NewReader("plain text"))
	verr, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "photo", verr.Field)
}

func TestRemove(t *testing.T) {
	media := NewMediaStore(t.TempDir(), "/static/media")

	img, err := media.SaveAvatar("Ada Lovelace", "portrait.png", encodePNG(t, 50, 50))
	require.NoError(t, err)

	media.Remove(img)
	_, err = os.Stat(img.Path)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(img.ThumbPath)
	assert.True(t, os.IsNotExist(err))
}

func TestScaleToFit(t *testing.T) {
	wide := scaleToFit(image.NewRGBA(image.Rect(0, 0, 1000, 500)), ThumbSize)
	assert.Equal(t, 250, wide.Bounds().Dx())
	assert.Equal(t, 125, wide.Bounds().Dy())

	tall := scaleToFit(image.NewRGBA(image.Rect(0, 0, 500, 1000)), ThumbSize)
	assert.Equal(t, 125, tall.Bounds().Dx())
	assert.Equal(t, 250, tall.Bounds().Dy())

	// small images are never upscaled
	small := scaleToFit(image.NewRGBA(image.Rect(0, 0, 100, 80)), ThumbSize)
	assert.Equal(t, 100, small.Bounds().Dx())
	assert.Equal(t, 80, small.Bounds().Dy())
}
