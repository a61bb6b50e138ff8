package controllers_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gogramm/config"
	"gogramm/models"
	"gogramm/routes"
	"gogramm/utils"
)

func TestMain(m *testing.M) {
	mediaDir, err := os.MkdirTemp("", "gogramm-media-*")
	if err != nil {
		panic(err)
	}

	config.SetForTesting(config.AppConfig{
		AppPort:            "8080",
		BaseURL:            "http://localhost:8080",
		JWTSecret:          "handler-test-secret",
		GinMode:            "test",
		AllowedOrigins:     []string{"*"},
		RateLimitPerMinute: 10000,
		ActivationTTLHours: 72,
		MediaDir:           mediaDir,
		MediaBaseURL:       "/static/media",
		MaxUploadMB:        20,
		Menu: []config.MenuItem{
			{Title: "My profile", URL: "/profile/me"},
			{Title: "New post", URL: "/post/new"},
			{Title: "People", URL: "/people"},
			{Title: "Log out", URL: "/logout"},
		},
	})
	gin.SetMode(gin.TestMode)

	code := m.Run()
	os.RemoveAll(mediaDir)
	os.Exit(code)
}

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Profile{}, &models.Post{}, &models.Photo{}))

	return routes.SetupRouter(db), db
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func doJSON(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type filePart struct {
	field string
	name  string
	data  []byte
}

func doMultipart(r *gin.Engine, method, path string, fields map[string]string, files []filePart, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	for _, fp := range files {
		part, _ := mw.CreateFormFile(fp.field, fp.name)
		_, _ = part.Write(fp.data)
	}
	_ = mw.Close()

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func createActiveUser(t *testing.T, db *gorm.DB, email string) (*models.User, string) {
	t.Helper()
	hash, err := utils.HashPassword("sup3rsecret")
	require.NoError(t, err)
	user := &models.User{Email: email, PasswordHash: hash, IsActive: true}
	require.NoError(t, db.Create(user).Error)

	token, err := utils.GenerateToken(user.ID, user.Email, time.Hour)
	require.NoError(t, err)
	return user, token
}

func createProfileFor(t *testing.T, r *gin.Engine, token, firstName, lastName string) string {
	t.Helper()
	w := doMultipart(r, http.MethodPost, "/api/v1/profiles", map[string]string{
		"first_name": firstName,
		"last_name":  lastName,
	}, nil, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var data struct {
		Profile models.Profile `json:"profile"`
	}
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.Profile.Identifier
}
