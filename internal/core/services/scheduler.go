package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
	"github.com/custodia-labs/sercha-recall/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-recall/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// Scheduler runs maintenance tasks on cron schedules.
// It is a pure core service with no external control API.
type Scheduler struct {
	config      domain.SchedulerConfig
	maintenance driving.MaintenanceService

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	cron    *cron.Cron
	tasks   map[string]*domain.ScheduledTask
}

// NewScheduler creates a scheduler with configuration.
func NewScheduler(config domain.SchedulerConfig, maintenance driving.MaintenanceService) *Scheduler {
	return &Scheduler{
		config:      config,
		maintenance: maintenance,
		tasks:       make(map[string]*domain.ScheduledTask),
	}
}

// taskNames maps built-in task IDs to display names.
var taskNames = map[string]string{
	domain.TaskIDEmbeddingCompaction: "Embedding Compaction",
	domain.TaskIDSnapshot:            "Snapshot",
}

// Start registers the enabled tasks and blocks until ctx is cancelled or
// Stop is called. A disabled scheduler returns immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logger.Debug("scheduler: disabled")
		return nil
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}

	c := cron.New()
	for _, id := range []string{domain.TaskIDEmbeddingCompaction, domain.TaskIDSnapshot} {
		cfg := s.config.GetTaskConfig(id)
		if !cfg.Enabled {
			continue
		}
		if _, err := c.AddFunc(cfg.Spec, func() { s.runTask(ctx, id) }); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("%w: schedule %q for task %s: %v", domain.ErrInvalidInput, cfg.Spec, id, err)
		}
		s.tasks[id] = &domain.ScheduledTask{
			ID:      id,
			Name:    taskNames[id],
			Spec:    cfg.Spec,
			Enabled: true,
		}
		logger.Debug("scheduler: registered %s (%s)", id, cfg.Spec)
	}

	s.cron = c
	s.running = true
	stopCh := make(chan struct{})
	s.stopCh = stopCh
	c.Start()
	s.mu.Unlock()

	select {
	case <-ctx.Done():
		_ = s.Stop()
		return ctx.Err()
	case <-stopCh:
		return nil
	}
}

// Stop halts scheduling and waits for running tasks to complete.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	c := s.cron
	s.mu.Unlock()

	<-c.Stop().Done()
	return nil
}

// Tasks returns a snapshot of every registered task, ordered by ID.
func (s *Scheduler) Tasks() []domain.ScheduledTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := make([]domain.ScheduledTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, *task)
	}
	slices.SortFunc(tasks, func(a, b domain.ScheduledTask) int {
		return strings.Compare(a.ID, b.ID)
	})
	return tasks
}

// runTask executes a single task and records its outcome.
func (s *Scheduler) runTask(ctx context.Context, taskID string) domain.TaskResult {
	result := domain.TaskResult{
		TaskID:    taskID,
		StartedAt: time.Now(),
	}

	var err error
	switch taskID {
	case domain.TaskIDEmbeddingCompaction:
		result.ItemsProcessed, err = s.maintenance.Compact(ctx)
	case domain.TaskIDSnapshot:
		err = s.maintenance.Snapshot(ctx)
	default:
		err = fmt.Errorf("%w: unknown task %s", domain.ErrInvalidArgument, taskID)
	}

	result.EndedAt = time.Now()
	if err != nil {
		result.Error = err.Error()
		logger.Error(err, "scheduler: task %s failed", taskID)
	} else {
		result.Success = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[taskID]
	if !ok {
		return result
	}
	task.LastRun = result.StartedAt
	task.LastError = result.Error
	if result.Success {
		task.LastSuccess = result.EndedAt
	}
	return result
}
