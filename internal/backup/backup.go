// Package backup snapshots the members table to CSV on a schedule and
// uploads each snapshot to an OSS bucket. A missing bucket configuration
// disables the whole package; nothing here is required for the intake
// surface to run.
package backup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/zugloev/tagregiszter/internal/config"
	"github.com/zugloev/tagregiszter/internal/intake"
)

// Exporter supplies the rows to snapshot. Satisfied by *store.Members.
type Exporter interface {
	ExportAll(ctx context.Context) (columns []string, rows [][]any, err error)
}

// ObjectPutter uploads one object. Satisfied by *oss.Bucket.
type ObjectPutter interface {
	PutObject(key string, reader io.Reader, options ...oss.Option) error
}

// Dial connects to the configured OSS bucket.
func Dial(cfg config.BackupConfig) (ObjectPutter, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, fmt.Errorf("oss client: %w", err)
	}
	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, fmt.Errorf("oss bucket %s: %w", cfg.OSSBucket, err)
	}
	return bucket, nil
}

// Service runs the scheduled backup job.
type Service struct {
	exporter Exporter
	bucket   ObjectPutter
	schedule string

	// afterRun, when set, is called after every successful upload.
	afterRun func(ctx context.Context)

	cron *cron.Cron
	now  func() time.Time
}

// NewService creates a backup service. schedule is a five-field cron
// expression.
func NewService(exporter Exporter, bucket ObjectPutter, schedule string) *Service {
	return &Service{
		exporter: exporter,
		bucket:   bucket,
		schedule: schedule,
		now:      time.Now,
	}
}

// AfterRun registers a hook invoked after each successful backup.
func (s *Service) AfterRun(fn func(ctx context.Context)) {
	s.afterRun = fn
}

// Run performs one backup: export everything, render CSV, upload. It
// returns the object key it wrote.
func (s *Service) Run(ctx context.Context) (string, error) {
	jobID := uuid.NewString()
	logger := slog.With("job_id", jobID)
	start := s.now()

	columns, rows, err := s.exporter.ExportAll(ctx)
	if err != nil {
		return "", fmt.Errorf("export members: %w", err)
	}

	var buf bytes.Buffer
	if err := intake.WriteCSV(&buf, columns, rows); err != nil {
		return "", fmt.Errorf("render csv: %w", err)
	}

	key := fmt.Sprintf("d1_backup_%s.csv", start.UTC().Format(time.RFC3339))
	if err := s.bucket.PutObject(key, &buf); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	logger.Info("backup uploaded",
		"key", key,
		"rows", len(rows),
		"duration", s.now().Sub(start),
	)

	if s.afterRun != nil {
		s.afterRun(ctx)
	}
	return key, nil
}

// Start schedules the job. Overlapping runs are skipped rather than
// stacked.
func (s *Service) Start() error {
	s.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if _, err := s.Run(ctx); err != nil {
			slog.Error("backup run failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	slog.Info("backup scheduled", "schedule", s.schedule)
	return nil
}

// Stop halts the scheduler. The returned context is done once any
// in-flight run finishes.
func (s *Service) Stop() context.Context {
	if s.cron == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	return s.cron.Stop()
}
