package integrations

import (
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-shiori/go-epub"
	"github.com/kerbaras/jeffbot/pkg/data"
	"github.com/kerbaras/jeffbot/pkg/services"
	"go.uber.org/zap"
)

// DigestBuilder compiles a week's comics into a single EPUB.
type DigestBuilder struct {
	outputDir string
	covers    *CoverProcessor
	logger    *zap.Logger
}

func NewDigestBuilder(outputDir string, covers *CoverProcessor, logger *zap.Logger) *DigestBuilder {
	return &DigestBuilder{outputDir: outputDir, covers: covers, logger: logger}
}

// Build writes the digest and returns its path. A cover that cannot be
// fetched is left out of its section.
func (b *DigestBuilder) Build(ctx context.Context, comics []data.Comic, week time.Time) (string, error) {
	if len(comics) == 0 {
		return "", fmt.Errorf("no comics to compile")
	}

	if err := os.MkdirAll(b.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	workDir, err := os.MkdirTemp("", "jeffbot-digest-*")
	if err != nil {
		return "", fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	title := fmt.Sprintf("New Comics, Week of %s", week.Format("January 2, 2006"))
	e, err := epub.NewEpub(title)
	if err != nil {
		return "", fmt.Errorf("failed to create EPub: %w", err)
	}
	e.SetAuthor("jeffbot")
	e.SetDescription(services.WeekList(comics))
	e.SetLang("en")

	for i := range comics {
		comic := &comics[i]
		coverPath := b.addCover(ctx, e, workDir, i, comic)
		if _, err := e.AddSection(sectionBody(comic, coverPath), comic.Title, "", ""); err != nil {
			return "", fmt.Errorf("failed to add section for %s: %w", comic.Title, err)
		}
	}

	outputPath := filepath.Join(b.outputDir, sanitizeFilename(title)+".epub")
	if err := e.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write EPub: %w", err)
	}
	return outputPath, nil
}

func (b *DigestBuilder) addCover(ctx context.Context, e *epub.Epub, workDir string, index int, comic *data.Comic) string {
	if comic.CoverURL == "" || b.covers == nil {
		return ""
	}

	content, err := b.covers.Fetch(ctx, comic.CoverURL)
	if err != nil {
		b.logger.Warn("Skipping cover", zap.String("title", comic.Title), zap.Error(err))
		return ""
	}

	local := filepath.Join(workDir, fmt.Sprintf("cover-%03d.jpg", index))
	if err := os.WriteFile(local, content, 0644); err != nil {
		b.logger.Warn("Skipping cover", zap.String("title", comic.Title), zap.Error(err))
		return ""
	}

	internal, err := e.AddImage(local, filepath.Base(local))
	if err != nil {
		b.logger.Warn("Skipping cover", zap.String("title", comic.Title), zap.Error(err))
		return ""
	}
	return internal
}

func sectionBody(comic *data.Comic, coverPath string) string {
	var body strings.Builder
	fmt.Fprintf(&body, "<h1>%s</h1>\n", html.EscapeString(comic.Title))
	if coverPath != "" {
		fmt.Fprintf(&body, `<div class="cover"><img src="%s" alt="Cover" style="max-width:100%%;height:auto;"/></div>%s`, coverPath, "\n")
	}
	fmt.Fprintf(&body, "<p><strong>On sale:</strong> %s</p>\n", html.EscapeString(services.ReleaseDate(comic)))
	fmt.Fprintf(&body, "<p><strong>Writer:</strong> %s</p>\n", html.EscapeString(services.WriterName(comic)))
	if comic.Description != "" {
		fmt.Fprintf(&body, "<p>%s</p>\n", html.EscapeString(comic.Description))
	}
	if comic.DetailURL != "" {
		fmt.Fprintf(&body, `<p><a href="%s">Details</a></p>%s`, html.EscapeString(comic.DetailURL), "\n")
	}
	return body.String()
}

// sanitizeFilename removes characters that are invalid in filenames
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|", ","}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".")
	return result
}
