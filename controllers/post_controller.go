package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gogramm/config"
	"gogramm/models"
	"gogramm/services"
	"gogramm/utils"
)

// PostController handles publishing and reading posts.
type PostController struct {
	db    *gorm.DB
	media *services.MediaStore
}

// NewPostController creates a PostController backed by the configured media
// storage.
func NewPostController(db *gorm.DB) *PostController {
	cfg := config.Get()
	return &PostController{
		db:    db,
		media: services.NewMediaStore(cfg.MediaDir, cfg.MediaBaseURL),
	}
}

// Create publishes a post with its photo batch from a multipart form. The
// post and all its photos are stored together or not at all.
func (p *PostController) Create(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	var profile models.Profile
	if err := p.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusForbidden, 40302, "create a profile before posting")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to load profile")
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid multipart form")
		return
	}

	title := ""
	if v, ok := form.Value["title"]; ok && len(v) > 0 {
		title = v[0]
	}

	files := form.File["photos"]
	uploads := make([]services.PhotoUpload, 0, len(files))
	closers := make([]func(), 0, len(files))
	defer func() {
		for _, c := range closers {
			c()
		}
	}()
	for _, fh := range files {
		if tooLarge(fh) {
			utils.Error(ctx, http.StatusBadRequest, 40022, "uploaded file is too large")
			return
		}
		f, err := fh.Open()
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40021, "failed to read uploaded file")
			return
		}
		closers = append(closers, func() { f.Close() })
		uploads = append(uploads, services.PhotoUpload{Filename: fh.Filename, Reader: f})
	}

	post, err := services.CreatePost(p.db, p.media, &profile, title, uploads)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	next, err := services.NextTarget(p.db, userID)
	if err != nil {
		next = services.RouteMyProfile
	}

	utils.InvalidateByPrefix(profileCachePrefix)
	utils.Respond(ctx, http.StatusCreated, 0, "success", gin.H{"post": post, "next": next})
}

// Detail returns one post by its slug, with photos and author profile.
func (p *PostController) Detail(ctx *gin.Context) {
	slug := strings.TrimSpace(ctx.Param("slug"))
	if slug == "" {
		utils.Error(ctx, http.StatusBadRequest, 40031, "missing post slug")
		return
	}

	var post models.Post
	err := p.db.Preload("Photos").Preload("Profile").
		Where("slug = ?", slug).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40430, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to retrieve post")
		return
	}

	utils.Success(ctx, gin.H{"post": post, "author": post.Profile})
}
