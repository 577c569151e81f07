package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/outliner/internal/outline"
	"github.com/dgallion1/outliner/internal/parser"
	"github.com/dgallion1/outliner/internal/report"
)

// Worker processes a single document job. The worker is the sole owner
// of result-file persistence; nothing else writes output files for a
// job it processed.
type Worker struct {
	log       *slog.Logger
	outputDir string
	logsDir   string
	stats     *ProcStats
}

// NewWorker builds a worker. Empty outputDir/logsDir disable the
// corresponding file writes, which is how the HTTP path runs.
func NewWorker(log *slog.Logger, outputDir, logsDir string, stats *ProcStats) *Worker {
	return &Worker{
		log:       log,
		outputDir: outputDir,
		logsDir:   logsDir,
		stats:     stats,
	}
}

// BuildOutline converts raw document bytes into an outline document.
// Formats with native structure bypass the classifier; everything else
// goes through span analysis.
func BuildOutline(data []byte, filename string) (*report.Document, error) {
	p, err := parser.ForFile(filename)
	if err != nil {
		return nil, err
	}
	parsed, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	if len(parsed.Native) > 0 {
		return report.FromNative(parsed.Title, parsed.Native, parsed.PageCount), nil
	}
	return report.FromResult(outline.Analyze(parsed.Spans, parsed.PageCount)), nil
}

// Process runs the full extraction pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	start := time.Now()
	defer func() {
		d := time.Since(start)
		job.SetDuration(d)
		if w.stats != nil {
			w.stats.Record(d)
		}
	}()

	if ctx.Err() != nil {
		job.AddError(ctx.Err().Error())
		job.SetStatus(StatusFailed, "canceled")
		return
	}

	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		w.writeLogEvent(job.Filename, 0, 0, start, false)
		return
	}
	parsed, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		w.writeLogEvent(job.Filename, 0, 0, start, false)
		return
	}

	job.SetStatus(StatusAnalyzing, "analyzing")
	var doc *report.Document
	if len(parsed.Native) > 0 {
		doc = report.FromNative(parsed.Title, parsed.Native, parsed.PageCount)
	} else {
		doc = report.FromResult(outline.Analyze(parsed.Spans, parsed.PageCount))
	}
	if doc.Title == outline.TitleError {
		// The classifier hit an internal failure and produced its
		// sentinel document. It is still persisted, matching the
		// contract that one bad document never aborts a batch.
		log.Error("analysis returned error sentinel")
	}
	job.SetCounts(doc.Metadata.PageCount, len(doc.Outline))

	job.SetStatus(StatusReporting, "validating")
	if err := doc.Validate(); err != nil {
		log.Error("output validation failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "validating")
		w.writeLogEvent(job.Filename, doc.Metadata.PageCount, 0, start, false)
		return
	}

	if w.outputDir != "" {
		path, err := WriteResult(w.outputDir, job.Filename, doc)
		if err != nil {
			log.Error("result write failed", "error", err)
			job.AddError(err.Error())
			job.SetStatus(StatusFailed, "writing")
			w.writeLogEvent(job.Filename, doc.Metadata.PageCount, len(doc.Outline), start, false)
			return
		}
		log.Info("outline written", "path", path, "sections", len(doc.Outline))
	}

	job.SetResult(doc)
	job.SetStatus(StatusCompleted, "done")
	w.writeLogEvent(job.Filename, doc.Metadata.PageCount, len(doc.Outline), start, true)
	log.Info("job complete",
		"pages", doc.Metadata.PageCount,
		"sections", len(doc.Outline),
		"duration", time.Since(start).Round(time.Millisecond))
}

// WriteResult persists an outline document as <stem>.json under dir.
func WriteResult(dir, filename string, doc *report.Document) (string, error) {
	raw, err := doc.MarshalIndented()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, resultStem(filename)+".json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write result: %w", err)
	}
	return path, nil
}

// LogEvent is the per-file processing record written alongside results.
type LogEvent struct {
	Filename        string  `json:"filename"`
	PageCount       int     `json:"page_count"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	DurationSeconds float64 `json:"duration_seconds"`
	Sections        int     `json:"sections_extracted"`
	Success         bool    `json:"success"`
}

func (w *Worker) writeLogEvent(filename string, pages, sections int, start time.Time, success bool) {
	if w.logsDir == "" {
		return
	}
	end := time.Now()
	event := LogEvent{
		Filename:        filepath.Base(filename),
		PageCount:       pages,
		StartTime:       start.Format(time.RFC3339),
		EndTime:         end.Format(time.RFC3339),
		DurationSeconds: math.Round(end.Sub(start).Seconds()*1000) / 1000,
		Sections:        sections,
		Success:         success,
	}
	raw, err := json.MarshalIndent(map[string]LogEvent{"log_event": event}, "", "  ")
	if err != nil {
		w.log.Warn("log event marshal failed", "error", err)
		return
	}
	path := filepath.Join(w.logsDir, resultStem(filename)+".log.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		w.log.Warn("log event write failed", "path", path, "error", err)
	}
}

// resultStem strips the directory and extension from a filename.
func resultStem(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
