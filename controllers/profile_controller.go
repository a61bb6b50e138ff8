package controllers

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gogramm/config"
	"gogramm/middleware"
	"gogramm/models"
	"gogramm/services"
	"gogramm/utils"
)

const profileCachePrefix = "cache:profiles:"

// ProfileController handles profile creation, settings and browsing.
type ProfileController struct {
	db    *gorm.DB
	media *services.MediaStore
}

// NewProfileController creates a ProfileController backed by the configured
// media storage.
func NewProfileController(db *gorm.DB) *ProfileController {
	cfg := config.Get()
	return &ProfileController{
		db:    db,
		media: services.NewMediaStore(cfg.MediaDir, cfg.MediaBaseURL),
	}
}

// Create builds the requester's profile from a multipart form. A user gets
// exactly one profile; the URL identifier is assigned here and never changes.
func (p *ProfileController) Create(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	input, cleanup, ok := bindProfileForm(ctx)
	if !ok {
		return
	}
	defer cleanup()

	profile, err := services.CreateProfile(p.db, p.media, userID, input)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix(profileCachePrefix)
	next, err := services.NextTarget(p.db, userID)
	if err != nil {
		next = services.RouteMyProfile
	}
	utils.Respond(ctx, http.StatusCreated, 0, "success", gin.H{
		"profile": profile,
		"next":    next,
	})
}

// Me renders the requester's own profile with posts. Without a profile the
// client is redirected to the creation route.
func (p *ProfileController) Me(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	res, err := services.ResolveProfile(p.db, userID, "")
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to resolve profile")
		return
	}
	if res.Action == services.ActionRedirectCreate {
		ctx.Redirect(http.StatusSeeOther, services.RouteNewProfile)
		return
	}

	p.renderProfile(ctx, res.Profile, true)
}

// Update applies the settings form to the requester's profile. Names and bio
// change; the identifier does not.
func (p *ProfileController) Update(ctx *gin.Context) {
	userID := currentUserID(ctx)
	if userID == 0 {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	input, cleanup, ok := bindProfileForm(ctx)
	if !ok {
		return
	}
	defer cleanup()

	profile, err := services.UpdateProfile(p.db, p.media, userID, input)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.InvalidateByPrefix(profileCachePrefix)
	utils.Success(ctx, gin.H{"profile": profile})
}

// Detail renders a profile addressed by its URL identifier. A requester who
// addresses their own profile by slug is redirected to the self-view route.
func (p *ProfileController) Detail(ctx *gin.Context) {
	userID := currentUserID(ctx)
	identifier := strings.TrimSpace(ctx.Param("identifier"))

	res, err := services.ResolveProfile(p.db, userID, identifier)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to resolve profile")
		return
	}

	switch res.Action {
	case services.ActionRedirectOwn:
		ctx.Redirect(http.StatusSeeOther, "/api/v1/profiles/me")
	case services.ActionNotFound:
		utils.Error(ctx, http.StatusNotFound, 40420, "profile not found")
	default:
		p.renderProfile(ctx, res.Profile, res.IsOwner)
	}
}

// People lists every profile except the requester's own, newest first.
func (p *ProfileController) People(ctx *gin.Context) {
	userID := currentUserID(ctx)
	page, pageSize := 1, 20
	if v := strings.TrimSpace(ctx.Query("page")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := strings.TrimSpace(ctx.Query("page_size")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			pageSize = n
		}
	}

	cacheKey := profileCachePrefix + "people:" + strconv.Itoa(int(userID)) + ":" + strconv.Itoa(page) + ":" + strconv.Itoa(pageSize)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var total int64
	if err := p.db.Model(&models.Profile{}).Where("user_id <> ?", userID).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to count profiles")
		return
	}

	var profiles []models.Profile
	if err := p.db.Where("user_id <> ?", userID).Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&profiles).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to retrieve profiles")
		return
	}

	payload := gin.H{
		"items": profiles,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
		},
	}
	wrapper := struct {
		Code    int         `json:"code"`
		Message string      `json:"message"`
		Data    interface{} `json:"data"`
	}{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, 5*time.Minute)

	utils.Success(ctx, payload)
}

func (p *ProfileController) renderProfile(ctx *gin.Context, profile *models.Profile, isOwner bool) {
	var posts []models.Post
	if err := p.db.Preload("Photos").
		Where("profile_id = ?", profile.ID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to retrieve posts")
		return
	}

	utils.Success(ctx, gin.H{
		"profile":  profile,
		"posts":    posts,
		"is_owner": isOwner,
	})
}

// bindProfileForm reads the multipart profile form. The returned cleanup
// closes the avatar file and must run after the service call.
func bindProfileForm(ctx *gin.Context) (services.ProfileInput, func(), bool) {
	input := services.ProfileInput{
		FirstName: ctx.PostForm("first_name"),
		LastName:  ctx.PostForm("last_name"),
		Bio:       ctx.PostForm("bio"),
	}
	cleanup := func() {}

	fh, err := ctx.FormFile("avatar")
	if err == nil && fh != nil {
		if tooLarge(fh) {
			utils.Error(ctx, http.StatusBadRequest, 40022, "uploaded file is too large")
			return input, cleanup, false
		}
		f, err := fh.Open()
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40021, "failed to read uploaded file")
			return input, cleanup, false
		}
		input.Avatar = &services.PhotoUpload{Filename: fh.Filename, Reader: f}
		cleanup = func() { f.Close() }
	}

	return input, cleanup, true
}

func tooLarge(fh *multipart.FileHeader) bool {
	limit := int64(config.Get().MaxUploadMB) << 20
	return limit > 0 && fh.Size > limit
}

func currentUserID(ctx *gin.Context) uint {
	v, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0
	}
	id, ok := v.(uint)
	if !ok {
		return 0
	}
	return id
}

func respondServiceError(ctx *gin.Context, err error) {
	if verr, ok := services.AsValidation(err); ok {
		utils.Error(ctx, http.StatusBadRequest, 40020, verr.Error())
		return
	}
	switch err {
	case services.ErrProfileExists:
		utils.Error(ctx, http.StatusConflict, 40902, "profile already exists")
	case services.ErrNotFound:
		utils.Error(ctx, http.StatusNotFound, 40420, "profile not found")
	default:
		utils.Error(ctx, http.StatusInternalServerError, 50024, "operation failed")
	}
}
