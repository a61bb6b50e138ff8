package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gogramm/models"
	"gogramm/services"
)

func TestCreateProfileEndpoint(t *testing.T) {
	r, db := newTestServer(t)
	_, token := createActiveUser(t, db, "ada@example.com")

	w := doMultipart(r, http.MethodPost, "/api/v1/profiles", map[string]string{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"bio":        "Analytical engines.",
	}, []filePart{{field: "avatar", name: "portrait.png", data: pngBytes(t, 300, 300)}}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var data struct {
		Profile models.Profile `json:"profile"`
		Next    string         `json:"next"`
	}
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "ada-lovelace", data.Profile.Identifier)
	assert.Equal(t, services.RouteMyProfile, data.Next)
	assert.NotEmpty(t, data.Profile.AvatarURL)
	assert.NotEmpty(t, data.Profile.AvatarThumbURL)
}

func TestCreateProfileTwiceConflicts(t *testing.T) {
	r, db := newTestServer(t)
	_, token := createActiveUser(t, db, "ada@example.com")
	createProfileFor(t, r, token, "Ada", "Lovelace")

	w := doMultipart(r, http.MethodPost, "/api/v1/profiles", map[string]string{
		"first_name": "Ada",
		"last_name":  "Byron",
	}, nil, token)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestIdentifierDisambiguation(t *testing.T) {
	r, db := newTestServer(t)

	_, first := createActiveUser(t, db, "ada1@example.com")
	_, second := createActiveUser(t, db, "ada2@example.com")

	assert.Equal(t, "ada-lovelace", createProfileFor(t, r, first, "Ada", "Lovelace"))
	assert.Equal(t, "ada-lovelace-1", createProfileFor(t, r, second, "Ada", "Lovelace"))
}

func TestMyProfileRedirectsWhenMissing(t *testing.T) {
	r, db := newTestServer(t)
	_, token := createActiveUser(t, db, "new@example.com")

	w := doJSON(r, http.MethodGet, "/api/v1/profiles/me", nil, token)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, services.RouteNewProfile, w.Header().Get("Location"))
}

func TestMyProfileRendersOwnPage(t *testing.T) {
	r, db := newTestServer(t)
	_, token := createActiveUser(t, db, "ada@example.com")
	createProfileFor(t, r, token, "Ada", "Lovelace")

	w := doJSON(r, http.MethodGet, "/api/v1/profiles/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Profile models.Profile `json:"profile"`
		IsOwner bool           `json:"is_owner"`
	}
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data.IsOwner)
	assert.Equal(t, "ada-lovelace", data.Profile.Identifier)
}

func TestOwnSlugRedirectsToSelfView(t *testing.T) {
	r, db := newTestServer(t)
	_, token := createActiveUser(t, db, "ada@example.com")
	identifier := createProfileFor(t, r, token, "Ada", "Lovelace")

	w := doJSON(r, http.MethodGet, "/api/v1/profiles/"+identifier, nil, token)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/api/v1/profiles/me", w.Header().Get("Location"))
}

func TestVisitAnotherProfile(t *testing.T) {
	r, db := newTestServer(t)

	_, owner := createActiveUser(t, db, "ada@example.com")
	identifier := createProfileFor(t, r, owner, "Ada", "Lovelace")

	_, visitor := createActiveUser(t, db, "grace@example.com")
	createProfileFor(t, r, visitor, "Grace", "Hopper")

	w := doJSON(r, http.MethodGet, "/api/v1/profiles/"+identifier, nil, visitor)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Profile models.Profile `json:"profile"`
		IsOwner bool           `json:"is_owner"`
	}
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.False(t, data.IsOwner)
	assert.Equal(t, "ada-lovelace", data.Profile.Identifier)
}

func TestUnknownProfileIs404(t *testing.T) {
	r, db := newTestServer(t)
	_, token := createActiveUser(t, db, "ada@example.com")

	w := doJSON(r, http.MethodGet, "/api/v1/profiles/nobody-here", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProfileKeepsIdentifierEndpoint(t *testing.T) {
	r, db := newTestServer(t)
	_, token := createActiveUser(t, db, "ada@example.com")
	require.Equal(t, "ada-lovelace", createProfileFor(t, r, token, "Ada", "Lovelace"))

	w := doMultipart(r, http.MethodPatch, "/api/v1/profiles/me", map[string]string{
		"first_name": "Augusta",
		"last_name":  "King",
	}, nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Profile models.Profile `json:"profile"`
	}
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "Augusta", data.Profile.FirstName)
	assert.Equal(t, "ada-lovelace", data.Profile.Identifier)
}

func TestPeopleListing(t *testing.T) {
	r, db := newTestServer(t)

	_, a := createActiveUser(t, db, "ada@example.com")
	createProfileFor(t, r, a, "Ada", "Lovelace")
	_, g := createActiveUser(t, db, "grace@example.com")
	createProfileFor(t, r, g, "Grace", "Hopper")

	w := doJSON(r, http.MethodGet, "/api/v1/profiles", nil, a)
	require.Equal(t, http.StatusOK, w.Code)

	// the requester's own profile is not part of the directory
	var data struct {
		Items      []models.Profile `json:"items"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Items, 1)
	assert.Equal(t, "grace-hopper", data.Items[0].Identifier)
	assert.EqualValues(t, 1, data.Pagination.Total)
}

func TestProfileEndpointsRequireAuth(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(r, http.MethodGet, "/api/v1/profiles/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doMultipart(r, http.MethodPost, "/api/v1/profiles", map[string]string{
		"first_name": "Ada", "last_name": "Lovelace",
	}, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
