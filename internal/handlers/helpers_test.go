package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vacatio/backend/internal/live"
	"github.com/vacatio/backend/internal/models"
	"github.com/vacatio/backend/internal/router"
	"github.com/vacatio/backend/internal/storage"
	"github.com/vacatio/backend/validators"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type testEnv struct {
	e          *echo.Echo
	db         *gorm.DB
	hub        *live.Hub
	uploadsDir string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	uploadsDir := t.TempDir()
	imageStore, err := storage.NewImageStore(uploadsDir)
	require.NoError(t, err)

	hub := live.NewHub()
	go hub.Run()
	t.Cleanup(hub.Shutdown)

	e := echo.New()
	e.Validator = validators.NewValidator()
	require.NoError(t, router.SetupRoutes(e, db, imageStore, hub, nil, testSecret))

	return &testEnv{e: e, db: db, hub: hub, uploadsDir: uploadsDir}
}

// seedUser inserts a user directly and returns a token obtained through the
// login endpoint
func (env *testEnv) seedUser(t *testing.T, email, password, role string) (*models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &models.User{
		ID:        fmt.Sprintf("00000000-0000-4000-8000-%012d", env.userSeq()),
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  string(hash),
		Role:      role,
	}
	require.NoError(t, env.db.Create(user).Error)

	rec := env.doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return user, resp.Token
}

var userSeqCounter int

func (env *testEnv) userSeq() int {
	userSeqCounter++
	return userSeqCounter
}

func (env *testEnv) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

// vacationForm builds a multipart vacation payload with an optional image
func vacationForm(t *testing.T, fields map[string]string, imageName string, imageBody []byte) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	if imageName != "" {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, imageName))
		header.Set("Content-Type", "image/png")
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(imageBody)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

// vacationFormWithImageType is vacationForm with an arbitrary image MIME type
func vacationFormWithImageType(t *testing.T, fields map[string]string, imageName, mimeType string) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, imageName))
	header.Set("Content-Type", mimeType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("not-an-image"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func (env *testEnv) doMultipart(t *testing.T, method, path, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, contentType)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Message
}

// testDay returns today+offset formatted as a wire date
func testDay(offset int) string {
	return time.Now().AddDate(0, 0, offset).Format(models.DateLayout)
}

func validVacationFields(startOffset, endOffset int) map[string]string {
	return map[string]string{
		"destination": "Paris",
		"description": "Springtime in Paris",
		"startDate":   testDay(startOffset),
		"endDate":     testDay(endOffset),
		"price":       "500",
	}
}
