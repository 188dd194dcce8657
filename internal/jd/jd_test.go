package jd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jobPage = `<!DOCTYPE html>
<html>
<head><title>Job</title><style>body { color: red; }</style></head>
<body>
<nav>Home | Jobs | About</nav>
<div class="job-description">
  <h1>Senior Software Engineer</h1>
  <p>Build search   infrastructure in Rust.</p>
</div>
<footer>Copyright</footer>
</body>
</html>`

func TestFromURLExtractsJobText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(jobPage))
	}))
	defer server.Close()

	text, err := FromURL(context.Background(), server.URL, nil)

	require.NoError(t, err)
	assert.Contains(t, text, "Senior Software Engineer")
	assert.Contains(t, text, "Build search infrastructure in Rust.")
	assert.NotContains(t, text, "Home | Jobs")
	assert.NotContains(t, text, "Copyright")
	assert.NotContains(t, text, "color: red")
}

func TestFromURLNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := FromURL(context.Background(), server.URL, nil)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "404")
}

func TestFromFilePlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jd.txt")
	require.NoError(t, os.WriteFile(path, []byte("We are hiring.\n\n\n\nApply   now.\n"), 0o644))

	text, err := FromFile(path)

	require.NoError(t, err)
	assert.Equal(t, "We are hiring.\n\nApply now.", text)
}

func TestFromFileHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jd.html")
	require.NoError(t, os.WriteFile(path, []byte(jobPage), 0o644))

	text, err := FromFile(path)

	require.NoError(t, err)
	assert.Contains(t, text, "Senior Software Engineer")
	assert.NotContains(t, text, "<div")
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "nope.txt"))

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/jobs/123"))
	assert.True(t, IsURL("http://example.com"))
	assert.False(t, IsURL("jobs/jd.txt"))
	assert.False(t, IsURL("/tmp/jd.txt"))
	assert.False(t, IsURL("ftp://example.com/jd.txt"))
}

func TestLoadDispatchesOnSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jd.txt")
	require.NoError(t, os.WriteFile(path, []byte("local text"), 0o644))

	text, err := Load(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, "local text", text)
}
