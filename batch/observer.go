package batch

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// ProgressObserver receives the three lifecycle hooks of a batch run:
// once before submission, once per resolved item, and once at the very
// end. Hooks are invoked from the single goroutine that owns the run's
// result, so implementations do not need to be safe for concurrent use.
type ProgressObserver interface {
	// OnStart fires once before any item is submitted.
	OnStart(totalItems int)

	// OnItemComplete fires once per resolved item, success or failure,
	// in completion order. index is the item's position in the original
	// input.
	OnItemComplete(index, totalItems int, success bool)

	// OnComplete fires once at the very end with the finished result.
	OnComplete(result Summary)
}

var (
	bold  = color.New(color.Bold)
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

// VerboseObserver logs run progress to a writer with colored per-item
// lines. It is the default observer.
type VerboseObserver struct {
	w         io.Writer
	completed int
}

// NewVerboseObserver returns a VerboseObserver writing to stderr.
func NewVerboseObserver() *VerboseObserver {
	return &VerboseObserver{w: os.Stderr}
}

// NewVerboseObserverTo returns a VerboseObserver writing to w.
func NewVerboseObserverTo(w io.Writer) *VerboseObserver {
	return &VerboseObserver{w: w}
}

func (o *VerboseObserver) OnStart(totalItems int) {
	o.completed = 0
	_, _ = bold.Fprintf(o.w, "processing %d items\n", totalItems)
}

func (o *VerboseObserver) OnItemComplete(index, totalItems int, success bool) {
	o.completed++
	if success {
		_, _ = green.Fprintf(o.w, "  [%d/%d] item %d ok\n", o.completed, totalItems, index)
		return
	}
	_, _ = red.Fprintf(o.w, "  [%d/%d] item %d failed\n", o.completed, totalItems, index)
}

func (o *VerboseObserver) OnComplete(result Summary) {
	_, _ = bold.Fprintf(o.w, "done: %d succeeded, %d failed (%.1f%%) in %s\n",
		result.SuccessCount, result.FailedCount, result.SuccessRate,
		result.Duration.Round(time.Millisecond))
}

// SilentObserver discards all hooks. Used internally by retry attempts
// and the convenience wrappers to avoid redundant top-level output.
type SilentObserver struct{}

// NewSilentObserver returns the no-op observer.
func NewSilentObserver() SilentObserver { return SilentObserver{} }

func (SilentObserver) OnStart(totalItems int) {}

func (SilentObserver) OnItemComplete(index, totalItems int, success bool) {}

func (SilentObserver) OnComplete(result Summary) {}

// ProgressBarObserver renders an in-place terminal progress bar.
type ProgressBarObserver struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

// NewProgressBarObserver returns a progress-bar observer writing to
// stderr.
func NewProgressBarObserver() *ProgressBarObserver {
	return &ProgressBarObserver{w: os.Stderr}
}

func (o *ProgressBarObserver) OnStart(totalItems int) {
	o.bar = progressbar.NewOptions(totalItems,
		progressbar.OptionSetDescription("processing"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionSetWriter(o.w),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func (o *ProgressBarObserver) OnItemComplete(index, totalItems int, success bool) {
	if o.bar != nil {
		_ = o.bar.Add(1)
	}
}

func (o *ProgressBarObserver) OnComplete(result Summary) {
	if o.bar != nil {
		_ = o.bar.Finish()
	}
	_, _ = fmt.Fprintf(o.w, "done: %d/%d succeeded in %s\n",
		result.SuccessCount, result.TotalItems, result.Duration.Round(time.Millisecond))
}

// LogObserver forwards run progress to a structured zap logger. Intended
// for services that embed the engine and already route everything
// through zap.
type LogObserver struct {
	log *zap.Logger
}

// NewLogObserver returns an observer logging through logger. Per-item
// completions log at debug level, run boundaries at info.
func NewLogObserver(logger *zap.Logger) *LogObserver {
	return &LogObserver{log: logger}
}

func (o *LogObserver) OnStart(totalItems int) {
	o.log.Info("batch run started", zap.Int("total_items", totalItems))
}

func (o *LogObserver) OnItemComplete(index, totalItems int, success bool) {
	o.log.Debug("batch item complete",
		zap.Int("index", index),
		zap.Int("total_items", totalItems),
		zap.Bool("success", success),
	)
}

func (o *LogObserver) OnComplete(result Summary) {
	o.log.Info("batch run complete",
		zap.Int("total_items", result.TotalItems),
		zap.Int("succeeded", result.SuccessCount),
		zap.Int("failed", result.FailedCount),
		zap.Float64("success_rate", result.SuccessRate),
		zap.Duration("duration", result.Duration),
	)
}
