package handlers_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/jobdesk-dev/jobdesk/db"
	"github.com/jobdesk-dev/jobdesk/internal/auth"
	"github.com/jobdesk-dev/jobdesk/internal/handlers"
	"github.com/jobdesk-dev/jobdesk/internal/router"
	"github.com/jobdesk-dev/jobdesk/internal/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestApp wires the full router against a throwaway sqlite
// database, seeded exactly like production (two roles, two companies,
// admin1/admin2 employer accounts with the default password).
func setupTestApp(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, auth.InitJWTSecret())

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "jobdesk.db")), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	db.DB = gdb
	require.NoError(t, db.MigrateDatabase())
	require.NoError(t, db.SeedDatabase())

	cvs, err := storage.NewCVStore(t.TempDir())
	require.NoError(t, err)
	handlers.CVs = cvs

	return router.NewRouter()
}

func performRequest(r http.Handler, method, path string, body io.Reader, contentType string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(r http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return performRequest(r, http.MethodPost, path, strings.NewReader(form.Encode()),
		"application/x-www-form-urlencoded", cookies...)
}

func registerApplicant(t *testing.T, r http.Handler, name, email, password string) {
	t.Helper()

	w := postForm(r, "/register", url.Values{
		"name":     {name},
		"email":    {email},
		"password": {password},
	})

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))
}

func login(t *testing.T, r http.Handler, email, password string) *http.Cookie {
	t.Helper()

	w := postForm(r, "/login", url.Values{
		"email":    {email},
		"password": {password},
	})

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))

	for _, c := range w.Result().Cookies() {
		if c.Name == "token" && c.Value != "" {
			return c
		}
	}

	t.Fatal("login did not set a session cookie")
	return nil
}

type flashMessage struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// popFlash decodes the one-shot flash cookie set on a response, failing
// the test when none is present.
func popFlash(t *testing.T, w *httptest.ResponseRecorder) flashMessage {
	t.Helper()

	for _, c := range w.Result().Cookies() {
		if c.Name != "flash" || c.MaxAge < 0 || c.Value == "" {
			continue
		}

		payload, err := base64.RawURLEncoding.DecodeString(c.Value)
		require.NoError(t, err)

		var msg flashMessage
		require.NoError(t, json.Unmarshal(payload, &msg))
		return msg
	}

	t.Fatal("no flash cookie on response")
	return flashMessage{}
}

func jsonBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// multipartForm builds a multipart body with the given fields plus, when
// fileName is non-empty, a "cv" file part holding content.
func multipartForm(t *testing.T, fields map[string]string, fileName, content string) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	if fileName != "" {
		fw, err := mw.CreateFormFile("cv", fileName)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}
