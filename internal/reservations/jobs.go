package reservations

import (
	"context"
	"time"

	"driftwood/pkg/logger"
)

// JobProcessor handles background jobs for the reservation lifecycle
type JobProcessor struct {
	service Service
	config  *JobConfig
	log     *logger.Logger
	done    chan struct{}
}

// JobConfig contains configuration for background jobs
type JobConfig struct {
	CompletionInterval time.Duration
}

// DefaultJobConfig returns default job configuration
func DefaultJobConfig() *JobConfig {
	return &JobConfig{
		CompletionInterval: 1 * time.Hour,
	}
}

// NewJobProcessor creates a new job processor
func NewJobProcessor(service Service, config *JobConfig, log *logger.Logger) *JobProcessor {
	if config == nil {
		config = DefaultJobConfig()
	}

	return &JobProcessor{
		service: service,
		config:  config,
		log:     log,
		done:    make(chan struct{}),
	}
}

// Start starts all background jobs
func (jp *JobProcessor) Start(ctx context.Context) {
	go jp.startCompletionProcessor(ctx)
	jp.log.Info("Reservation background jobs started",
		"completion_interval", jp.config.CompletionInterval.String())
}

// Stop stops all background jobs
func (jp *JobProcessor) Stop() {
	close(jp.done)
	jp.log.Info("Reservation background jobs stopped")
}

// startCompletionProcessor periodically moves confirmed reservations with an
// elapsed checkout to COMPLETED.
func (jp *JobProcessor) startCompletionProcessor(ctx context.Context) {
	ticker := time.NewTicker(jp.config.CompletionInterval)
	defer ticker.Stop()

	// Run once at startup so a restart does not delay completions by a
	// full interval.
	jp.completeElapsed(ctx)

	for {
		select {
		case <-ticker.C:
			jp.completeElapsed(ctx)
		case <-jp.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (jp *JobProcessor) completeElapsed(ctx context.Context) {
	completed, err := jp.service.CompleteElapsed(ctx)
	if err != nil {
		jp.log.WithError(err).Error("Completion sweep failed")
		return
	}
	if completed > 0 {
		jp.log.Info("Completed elapsed reservations", "count", completed)
	}
}
