// Package artifacts saves failure diagnostics from the live browser
// session: a screenshot and the page source, named after the route.
package artifacts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/sabbir-hossain/flight-scraper/models"
)

// Store writes failure artifacts under a directory. An empty directory
// disables capture entirely.
type Store struct {
	dir string
	log *zap.Logger
	now func() time.Time
}

func NewStore(dir string, log *zap.Logger) *Store {
	return &Store{dir: dir, log: log, now: time.Now}
}

// CaptureFailure dumps a screenshot and the page source for the route.
// Best-effort: capture errors are logged and dropped so diagnostics
// never mask the route failure that triggered them.
func (s *Store) CaptureFailure(ctx context.Context, rt models.Route) {
	if s.dir == "" {
		return
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.log.Warn("artifacts dir unavailable", zap.String("dir", s.dir), zap.Error(err))

		return
	}

	stamp := s.now().Format("20060102_150405")

	var shot []byte
	if err := chromedp.Run(ctx, chromedp.CaptureScreenshot(&shot)); err != nil {
		s.log.Warn("screenshot capture failed", zap.Error(err))
	} else {
		s.write(s.fileName(rt, stamp, "png"), shot)
	}

	var source string
	if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &source, chromedp.ByQuery)); err != nil {
		s.log.Warn("page source capture failed", zap.Error(err))
	} else {
		s.write(s.fileName(rt, stamp, "html"), []byte(source))
	}
}

func (s *Store) fileName(rt models.Route, stamp, ext string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s.%s", rt.Slug(), stamp, ext))
}

func (s *Store) write(path string, data []byte) {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.log.Warn("artifact write failed", zap.String("path", path), zap.Error(err))

		return
	}

	s.log.Info("failure artifact saved", zap.String("path", path))
}
