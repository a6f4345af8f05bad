package sim

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (st *systemStatsInternal) record(d time.Duration) {
	st.executionCount++
	st.lastDuration = d
	st.totalDuration += d
	if d < st.minDuration {
		st.minDuration = d
	}
	if d > st.maxDuration {
		st.maxDuration = d
	}
}

// worldBinder is implemented by Query and Singleton so the scheduler can bind
// system struct fields to the world during registration.
type worldBinder interface {
	initWorld(w *World)
}

// Scheduler executes systems in registration order. Registration order is
// part of the simulation contract: input runs before the controller, the
// beam tracer before receivers, receivers before platforms, and so on.
type Scheduler struct {
	world       *World
	systems     []System
	systemStats []*systemStatsInternal
}

// NewScheduler creates a new scheduler for the given world.
func NewScheduler(world *World) *Scheduler {
	return &Scheduler{
		world:   world,
		systems: make([]System, 0),
	}
}

// Register adds a system and binds its Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	s.bindFields(system)
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

func (s *Scheduler) bindFields(system System) {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}
	if systemValue.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanAddr() || field.Kind() != reflect.Struct {
			continue
		}
		if binder, ok := field.Addr().Interface().(worldBinder); ok {
			binder.initWorld(s.world)
		}
	}
}

// Once executes all registered systems once with the given delta time, then
// flushes deferred structural commands.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.world)

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		s.systemStats[i].record(time.Since(start))
	}

	frame.Commands.Flush(s.world)
}

// Run executes all systems repeatedly at the given interval until the context
// is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// Stats returns statistics about system execution.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
