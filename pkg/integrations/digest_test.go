package integrations

import (
	"archive/zip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kerbaras/jeffbot/pkg/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func readEPubText(t *testing.T, path string) string {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	var all strings.Builder
	for _, f := range r.File {
		if !strings.HasSuffix(f.Name, ".xhtml") {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		all.Write(content)
	}
	return all.String()
}

func TestDigestBuilderRejectsEmpty(t *testing.T) {
	b := NewDigestBuilder(t.TempDir(), nil, zap.NewNop())
	_, err := b.Build(context.Background(), nil, time.Now())
	assert.Error(t, err)
}

func TestDigestBuilderBuild(t *testing.T) {
	cover := pngBytes(t, 40, 60)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "broken") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write(cover)
	}))
	defer server.Close()

	withCover := testComic()
	withCover.CoverURL = server.URL + "/dd7/portrait_uncanny.png"
	brokenCover := data.Comic{Title: "Venom <30>", CoverURL: server.URL + "/broken.jpg"}

	outputDir := filepath.Join(t.TempDir(), "digests")
	b := NewDigestBuilder(outputDir, NewCoverProcessor(300, 450), zap.NewNop())

	week := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	path, err := b.Build(context.Background(), []data.Comic{withCover, brokenCover}, week)
	require.NoError(t, err)

	assert.Equal(t, outputDir, filepath.Dir(path))
	assert.Equal(t, "New Comics_ Week of January 10_ 2024.epub", filepath.Base(path))
	_, err = os.Stat(path)
	require.NoError(t, err)

	text := readEPubText(t, path)
	assert.Contains(t, text, "Daredevil (2023) #7")
	assert.Contains(t, text, "Saladin Ahmed")
	assert.Contains(t, text, "Venom &lt;30&gt;")
	assert.Contains(t, text, "cover-000.jpg")
	assert.NotContains(t, text, "cover-001.jpg")
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "a_b_c", sanitizeFilename("a/b:c"))
	assert.Equal(t, "name", sanitizeFilename(" .name. "))
}
