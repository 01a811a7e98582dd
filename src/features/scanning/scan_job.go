package scanning

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"tunesleuth/src/features/jobs"
	"tunesleuth/src/infra/watcher"
)

// JobTypeScan is the job type registered for library scans.
const JobTypeScan = "scan"

// ScanTask runs a library scan as a background job.
type ScanTask struct {
	service *Service
}

// NewScanTask creates a new ScanTask.
func NewScanTask(service *Service) *ScanTask {
	return &ScanTask{service: service}
}

// MetadataKeys returns the metadata keys required to start this task.
func (t *ScanTask) MetadataKeys() []string {
	return nil
}

// Execute runs the scan, reporting progress per file.
func (t *ScanTask) Execute(ctx context.Context, job *jobs.Job, progressUpdater func(int, string)) (map[string]any, error) {
	_, report, err := t.service.Scan(ctx, func(done, total int, path string) {
		if total == 0 {
			return
		}
		progressUpdater(done*100/total, filepath.Base(path))
	})
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"tracks":          report.TracksFound,
		"tag_errors":      report.TagErrors,
		"duration_errors": report.DurationErrors,
		"msg":             fmt.Sprintf("Scanned %d tracks", report.TracksFound),
	}, nil
}

// Cleanup runs after the job completes.
func (t *ScanTask) Cleanup(job *jobs.Job) error {
	return nil
}

// WatchLoop consumes debounced watcher events and queues a rescan for each.
// It returns when the context is cancelled or the event channel closes.
func WatchLoop(ctx context.Context, events <-chan watcher.LibraryEvent, jobService jobs.JobService) {
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			slog.Info("Library changed, queuing rescan", "path", event.Path, "change", event.Change)
			if _, err := jobService.StartJob(JobTypeScan, "Library rescan", nil); err != nil {
				slog.Error("Could not queue rescan job", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
