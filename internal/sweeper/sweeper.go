package sweeper

import (
	"os"
	"path/filepath"
	"time"

	"go-procure/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// maxUploadAge is how long a spreadsheet may sit in the upload directory
// before the sweeper removes it. Bulk uploads delete their own file after
// processing, so anything older than this is an orphan from a crashed
// request.
const maxUploadAge = time.Hour

// Sweeper periodically purges stale files from the transient upload
// directory.
type Sweeper struct {
	config    *config.Config
	logger    *zap.Logger
	scheduler *cron.Cron
}

func NewSweeper(cfg *config.Config, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		config:    cfg,
		logger:    logger,
		scheduler: cron.New(),
	}
}

// Start schedules the hourly sweep and runs one immediately to clear
// leftovers from a previous run.
func (s *Sweeper) Start() error {
	if _, err := s.scheduler.AddFunc("@hourly", func() {
		s.Sweep(time.Now())
	}); err != nil {
		return err
	}
	s.scheduler.Start()
	go s.Sweep(time.Now())
	return nil
}

func (s *Sweeper) Stop() {
	ctx := s.scheduler.Stop()
	<-ctx.Done()
}

// Sweep removes regular files under the upload directory whose modification
// time is older than maxUploadAge relative to now. It returns the number of
// files removed.
func (s *Sweeper) Sweep(now time.Time) int {
	entries, err := os.ReadDir(s.config.UploadPath)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read upload directory", zap.Error(err))
		}
		return 0
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) < maxUploadAge {
			continue
		}
		path := filepath.Join(s.config.UploadPath, entry.Name())
		if err := os.Remove(path); err != nil {
			s.logger.Warn("failed to remove stale upload", zap.String("file", path), zap.Error(err))
			continue
		}
		removed++
	}
	if removed > 0 {
		s.logger.Info("removed stale uploads", zap.Int("count", removed))
	}
	return removed
}
