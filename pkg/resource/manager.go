// pkg/resource/manager.go
package resource

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opd-ai/go-gravity/pkg/config"
	"github.com/opd-ai/go-gravity/pkg/logging"
)

// Manager tracks memory and goroutine usage for long-running simulation
// processes and coordinates graceful shutdown of the goroutines it started.
type Manager struct {
	maxMemoryMB     int64
	maxGoroutines   int64
	shutdownTimeout time.Duration
	checkInterval   time.Duration

	goroutineCount int64
	memoryUsageMB  int64

	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	mu      sync.RWMutex
	running bool
	logger  *logging.Logger

	lastMemoryCheck    time.Time
	lastGoroutineCheck time.Time
}

// NewManager creates a resource manager from environment configuration.
func NewManager(env *config.EnvironmentConfig) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		maxMemoryMB:        env.MaxMemoryMB,
		maxGoroutines:      int64(env.MaxGoroutines),
		shutdownTimeout:    env.ShutdownTimeout,
		checkInterval:      env.ResourceCheckInterval,
		ctx:                ctx,
		cancel:             cancel,
		done:               make(chan struct{}),
		logger:             logging.NewLogger(),
		lastMemoryCheck:    time.Now(),
		lastGoroutineCheck: time.Now(),
	}
}

// Start begins the periodic resource monitoring loop.
func (m *Manager) Start() error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return fmt.Errorf("resource manager already running")
	}
	m.running = true
	m.mu.Unlock()

	go m.monitoringLoop()

	m.logger.Info(m.ctx, "Resource manager started",
		"max_memory_mb", m.maxMemoryMB,
		"max_goroutines", m.maxGoroutines,
		"check_interval", m.checkInterval,
	)

	return nil
}

// StartGoroutine starts a tracked goroutine, failing if the configured
// goroutine limit would be exceeded. Panics inside fn are recovered and
// logged rather than crashing the simulation process.
func (m *Manager) StartGoroutine(ctx context.Context, name string, fn func(context.Context)) error {
	current := atomic.LoadInt64(&m.goroutineCount)
	if current >= m.maxGoroutines {
		m.logger.Warn(ctx, "Goroutine limit exceeded",
			"current", current,
			"limit", m.maxGoroutines,
			"name", name,
		)
		return fmt.Errorf("goroutine limit exceeded: %d/%d", current, m.maxGoroutines)
	}

	atomic.AddInt64(&m.goroutineCount, 1)

	go func() {
		defer atomic.AddInt64(&m.goroutineCount, -1)

		defer func() {
			if r := recover(); r != nil {
				m.logger.Error(ctx, "Goroutine panic",
					fmt.Errorf("panic: %v", r),
					"name", name,
				)
			}
		}()

		fn(ctx)
	}()

	return nil
}

// CheckMemoryUsage samples current heap usage and compares it against the
// configured limit.
func (m *Manager) CheckMemoryUsage() error {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	currentMB := int64(stats.Alloc / 1024 / 1024)
	atomic.StoreInt64(&m.memoryUsageMB, currentMB)
	m.lastMemoryCheck = time.Now()

	if currentMB > m.maxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", currentMB, m.maxMemoryMB)
	}

	return nil
}

// GoroutineCount returns the number of currently tracked goroutines.
func (m *Manager) GoroutineCount() int64 {
	return atomic.LoadInt64(&m.goroutineCount)
}

// MemoryUsage returns the most recently sampled heap usage in MB.
func (m *Manager) MemoryUsage() int64 {
	return atomic.LoadInt64(&m.memoryUsageMB)
}

// Stats returns a point-in-time view of resource usage.
func (m *Manager) Stats() Stats {
	return Stats{
		GoroutineCount:     m.GoroutineCount(),
		MaxGoroutines:      m.maxGoroutines,
		MemoryUsageMB:      m.MemoryUsage(),
		MaxMemoryMB:        m.maxMemoryMB,
		LastMemoryCheck:    m.lastMemoryCheck,
		LastGoroutineCheck: m.lastGoroutineCheck,
	}
}

// Stats contains resource usage statistics.
type Stats struct {
	GoroutineCount     int64     `json:"goroutine_count"`
	MaxGoroutines      int64     `json:"max_goroutines"`
	MemoryUsageMB      int64     `json:"memory_usage_mb"`
	MaxMemoryMB        int64     `json:"max_memory_mb"`
	LastMemoryCheck    time.Time `json:"last_memory_check"`
	LastGoroutineCheck time.Time `json:"last_goroutine_check"`
}

// Shutdown stops the monitoring loop and waits for tracked goroutines to
// finish, bounded by the configured shutdown timeout.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return nil
	}
	m.running = false
	m.mu.Unlock()

	m.logger.Info(ctx, "Shutting down resource manager")

	m.cancel()

	shutdownCtx, cancel := context.WithTimeout(ctx, m.shutdownTimeout)
	defer cancel()

	select {
	case <-m.done:
	case <-shutdownCtx.Done():
		m.logger.Warn(ctx, "Resource monitoring loop did not stop gracefully")
	}

	return m.waitForGoroutines(shutdownCtx)
}

// waitForGoroutines polls until all tracked goroutines exit or the context
// expires.
func (m *Manager) waitForGoroutines(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		count := m.GoroutineCount()
		if count == 0 {
			m.logger.Info(ctx, "All tracked goroutines finished")
			return nil
		}

		select {
		case <-ticker.C:
			m.logger.Debug(ctx, "Waiting for goroutines to finish",
				"remaining", count,
			)
		case <-ctx.Done():
			remaining := m.GoroutineCount()
			m.logger.Warn(ctx, "Shutdown timeout exceeded with goroutines still running",
				"remaining", remaining,
			)
			return fmt.Errorf("shutdown timeout: %d goroutines still running", remaining)
		}
	}
}

// monitoringLoop runs periodic resource checks until shutdown.
func (m *Manager) monitoringLoop() {
	defer close(m.done)

	ticker := time.NewTicker(m.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.performResourceChecks()
		case <-m.ctx.Done():
			m.logger.Info(m.ctx, "Resource monitoring loop stopping")
			return
		}
	}
}

func (m *Manager) performResourceChecks() {
	if err := m.CheckMemoryUsage(); err != nil {
		m.logger.Error(m.ctx, "Memory limit exceeded", err,
			"current_mb", m.MemoryUsage(),
			"limit_mb", m.maxMemoryMB,
		)
	}

	m.lastGoroutineCheck = time.Now()

	m.logger.Debug(m.ctx, "Resource usage check",
		"goroutines", m.GoroutineCount(),
		"max_goroutines", m.maxGoroutines,
		"memory_mb", m.MemoryUsage(),
		"max_memory_mb", m.maxMemoryMB,
	)
}
