package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/dgallion1/outliner/internal/parser"
)

// BatchStats aggregates the outcome of one directory run.
type BatchStats struct {
	Processed     int `json:"processed"`
	Successful    int `json:"successful"`
	Failed        int `json:"failed"`
	TotalSections int `json:"total_sections"`
}

// RunBatch processes every supported file in inputDir, writing one
// outline JSON per document to outputDir and one log event per document
// to logsDir. Workers own all persistence; the batch loop only
// aggregates counts. Files are dispatched in name order but may finish
// in any order.
func RunBatch(ctx context.Context, inputDir, outputDir, logsDir string, workers int, log *slog.Logger) (BatchStats, error) {
	var stats BatchStats

	if workers <= 0 {
		workers = max(1, runtime.NumCPU()-1)
	}
	for _, dir := range []string{outputDir, logsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return stats, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return stats, fmt.Errorf("read input dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && parser.IsSupportedExtension(e.Name()) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		log.Warn("no supported documents found", "dir", inputDir)
		return stats, nil
	}
	log.Info("batch starting", "files", len(files), "workers", workers)

	var mu sync.Mutex
	queue := make(chan string)
	var wg sync.WaitGroup
	procStats := NewProcStats(time.Hour)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := NewWorker(log, outputDir, logsDir, procStats)
			for name := range queue {
				if ctx.Err() != nil {
					continue // drain the queue without processing
				}
				job := processFile(ctx, w, inputDir, name, log)

				mu.Lock()
				stats.Processed++
				if job != nil && job.Status == StatusCompleted {
					stats.Successful++
					stats.TotalSections += job.Snapshot().Progress.Sections
				} else {
					stats.Failed++
				}
				mu.Unlock()
			}
		}()
	}

	for _, name := range files {
		queue <- name
	}
	close(queue)
	wg.Wait()

	snap := procStats.Snapshot()
	log.Info("batch complete",
		"processed", stats.Processed,
		"successful", stats.Successful,
		"failed", stats.Failed,
		"total_sections", stats.TotalSections,
		"avg_ms", snap.AvgMs,
		"p95_ms", snap.P95Ms)
	return stats, nil
}

func processFile(ctx context.Context, w *Worker, dir, name string, log *slog.Logger) *Job {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		log.Error("read failed", "file", name, "error", err)
		return nil
	}
	now := time.Now()
	job := &Job{
		ID:        GenerateULID(),
		Status:    StatusQueued,
		Filename:  name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.SetFileData(data)
	w.Process(ctx, job)
	return job
}
