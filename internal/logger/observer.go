package logger

import (
	"go.uber.org/zap"

	"github.com/Faultbox/amc-preselect/internal/selector"
)

// SelectionObserver reports selector progress as structured log entries.
type SelectionObserver struct {
	log *zap.Logger
}

// NewSelectionObserver returns an observer writing to log, or to the
// global logger when log is nil.
func NewSelectionObserver(log *zap.Logger) *SelectionObserver {
	if log == nil {
		log = Named("selector")
	}
	return &SelectionObserver{log: log}
}

// FileScanned logs every scanned mesh file at debug level.
func (o *SelectionObserver) FileScanned(path string, sizeMB float64, accepted bool) {
	o.log.Debug("scanned file",
		zap.String("path", path),
		zap.Float64("size_mb", sizeMB),
		zap.Bool("accepted", accepted),
	)
}

// CompactnessEvaluated logs scores at debug level and geometry failures
// as warnings.
func (o *SelectionObserver) CompactnessEvaluated(path string, score selector.Score) {
	if v, ok := score.Value(); ok {
		o.log.Debug("compactness", zap.String("path", path), zap.Float64("compactness", v))
		return
	}
	o.log.Warn("compactness undefined, rejecting", zap.String("path", path), zap.Error(score.Err()))
}

// SelectionDone logs the stage counts.
func (o *SelectionObserver) SelectionDone(candidates, selected int) {
	o.log.Info("selection complete",
		zap.Int("size_candidates", candidates),
		zap.Int("selected", selected),
	)
}
