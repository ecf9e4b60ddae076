package app

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"board/internal/entity"
	"board/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, *gin.Engine, string) {
	t.Helper()

	uploadDir := t.TempDir()
	cfg := &config.Config{
		ServerPort:         "0",
		GinMode:            gin.TestMode,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		RateLimitPerMinute: 100,
		DBDriver:           config.DriverSQLite,
		SQLitePath:         ":memory:",
		FileStore:          config.FileStoreLocal,
		UploadDir:          uploadDir,
	}

	application, err := NewApp(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { application.Shutdown() })

	router, err := application.Router()
	require.NoError(t, err)

	return application, router, uploadDir
}

func postMultipart(t *testing.T, router *gin.Engine, target string, fields map[string]string, filename, content string) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest("POST", target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", target, nil)
	router.ServeHTTP(w, req)
	return w
}

func getPost(t *testing.T, router *gin.Engine, id string) *entity.Post {
	t.Helper()

	w := get(router, "/api/v1/posts/"+id)
	require.Equal(t, http.StatusOK, w.Code)

	var post entity.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	return &post
}

func TestHealthAndRoot(t *testing.T) {
	_, router, _ := newTestApp(t)

	w := get(router, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	w = get(router, "/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/board/list", w.Header().Get("Location"))
}

func TestBoardLifecycle(t *testing.T) {
	_, router, uploadDir := newTestApp(t)

	w := postMultipart(t, router, "/board/writepro",
		map[string]string{"title": "Old", "content": "body"}, "notes.txt", "first")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Post has been written.")

	post := getPost(t, router, "1")
	assert.Equal(t, "Old", post.Title)
	assert.True(t, strings.HasSuffix(post.Filename, "_notes.txt"))
	assert.Equal(t, "/files/"+post.Filename, post.Filepath)

	stored, err := os.ReadFile(filepath.Join(uploadDir, post.Filename))
	require.NoError(t, err)
	assert.Equal(t, "first", string(stored))

	w = get(router, post.Filepath)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "first", w.Body.String())

	w = get(router, "/board/list")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<a href="/board/view?id=1">Old</a>`)

	w = get(router, "/board/view?id=1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>Old</h1>")

	w = postMultipart(t, router, "/board/update/1",
		map[string]string{"title": "New", "content": "body"}, "notes.txt", "second")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Post has been updated.")

	updated := getPost(t, router, "1")
	assert.Equal(t, 1, updated.ID)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "body", updated.Content)
	assert.NotEqual(t, post.Filename, updated.Filename)

	_, err = os.Stat(filepath.Join(uploadDir, post.Filename))
	assert.True(t, os.IsNotExist(err))

	w = get(router, "/board/delete?id=1")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/board/list", w.Header().Get("Location"))

	assert.Equal(t, http.StatusNotFound, get(router, "/board/view?id=1").Code)
	assert.Equal(t, http.StatusFound, get(router, "/board/delete?id=1").Code)

	_, err = os.Stat(filepath.Join(uploadDir, updated.Filename))
	assert.True(t, os.IsNotExist(err))
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	_, router, _ := newTestApp(t)

	for _, title := range []string{"apple pie", "banana", "Apple tart"} {
		w := postMultipart(t, router, "/board/writepro", map[string]string{"title": title, "content": "c"}, "", "")
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := get(router, "/api/v1/posts?searchKeyword=APPLE")
	require.Equal(t, http.StatusOK, w.Code)

	var page entity.Page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(2), page.TotalElements)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Apple tart", page.Items[0].Title)
	assert.Equal(t, "apple pie", page.Items[1].Title)

	w = get(router, "/api/v1/posts?searchKeyword=zzz")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(0), page.TotalElements)
	assert.Empty(t, page.Items)
}

func TestMetricsEndpoint(t *testing.T) {
	_, router, _ := newTestApp(t)

	get(router, "/board/list")

	w := get(router, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `board_http_requests_total{method="GET",route="/board/list",status="200"} 1`)
}

func TestSwaggerDocs(t *testing.T) {
	_, router, _ := newTestApp(t)

	w := get(router, "/swagger/doc.json")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/posts/{id}"`)
}
