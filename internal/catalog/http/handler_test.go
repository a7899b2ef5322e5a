package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stkrfx/digitaloffices-1/internal/auth"
	"github.com/stkrfx/digitaloffices-1/internal/catalog"
	"github.com/stkrfx/digitaloffices-1/internal/provider"
)

type stubCatalog struct {
	catalog.Catalog
	created catalog.CreateRequest
	deleted bool
}

func (s *stubCatalog) Create(_ context.Context, req catalog.CreateRequest) (*catalog.Service, error) {
	s.created = req
	return &catalog.Service{
		ID: uuid.NewString(), Title: req.Title, Price: req.Price, DurationMin: req.DurationMin,
		IsActive: true, Owner: req.Owner, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}, nil
}

func (s *stubCatalog) Delete(_ context.Context, _ string, _ provider.Owner) (bool, error) {
	return s.deleted, nil
}

func (s *stubCatalog) GetByID(_ context.Context, _ string) (*catalog.Service, error) {
	return nil, catalog.ErrNotFound
}

func setup(t *testing.T, c catalog.Catalog) (*gin.Engine, *auth.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jm := auth.NewJWTManager("test-secret", time.Hour)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(c), auth.AuthRequired(jm))
	return r, jm
}

func do(r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
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

func TestCreateServiceAsExpert(t *testing.T) {
	stub := &stubCatalog{}
	r, jm := setup(t, stub)
	expertID := uuid.NewString()
	token, err := jm.GenerateAccessToken(expertID, auth.RoleExpert)
	require.NoError(t, err)

	w := do(r, http.MethodPost, "/v1/services", map[string]any{
		"title": "Mentoring", "price": "60.00", "durationMin": 30,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp ServiceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Mentoring", resp.Title)
	require.NotNil(t, resp.ExpertID)
	assert.Equal(t, expertID, *resp.ExpertID)
	assert.Nil(t, resp.OrganizationID)
	assert.Equal(t, provider.Expert(expertID), stub.created.Owner)
	assert.True(t, decimal.NewFromInt(60).Equal(stub.created.Price))
}

func TestCreateServiceRejectsUsers(t *testing.T) {
	r, jm := setup(t, &stubCatalog{})
	token, err := jm.GenerateAccessToken(uuid.NewString(), auth.RoleUser)
	require.NoError(t, err)

	w := do(r, http.MethodPost, "/v1/services", map[string]any{"title": "x", "durationMin": 30}, token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodPost, "/v1/services", map[string]any{"title": "x", "durationMin": 30}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateServiceBindingFailure(t *testing.T) {
	r, jm := setup(t, &stubCatalog{})
	token, err := jm.GenerateAccessToken(uuid.NewString(), auth.RoleOrganization)
	require.NoError(t, err)

	w := do(r, http.MethodPost, "/v1/services", map[string]any{"title": "x", "durationMin": 2}, token)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "DurationMin")
}

func TestDeleteServiceReportsDeactivation(t *testing.T) {
	r, jm := setup(t, &stubCatalog{deleted: true})
	token, err := jm.GenerateAccessToken(uuid.NewString(), auth.RoleExpert)
	require.NoError(t, err)

	w := do(r, http.MethodDelete, "/v1/services/"+uuid.NewString(), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deactivated":true}`, w.Body.String())
}

func TestGetServiceNotFound(t *testing.T) {
	r, _ := setup(t, &stubCatalog{})

	w := do(r, http.MethodGet, "/v1/services/"+uuid.NewString(), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/v1/services/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
