// pkg/resource/manager_test.go
package resource

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/opd-ai/go-gravity/pkg/config"
)

func testEnvConfig() *config.EnvironmentConfig {
	return &config.EnvironmentConfig{
		MaxMemoryMB:           500,
		MaxGoroutines:         5,
		ShutdownTimeout:       2 * time.Second,
		ResourceCheckInterval: 50 * time.Millisecond,
	}
}

func TestManager_StartTwice(t *testing.T) {
	m := NewManager(testEnvConfig())
	defer m.Shutdown(context.Background())

	if err := m.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := m.Start(); err == nil {
		t.Error("second Start() expected error, got nil")
	}
}

func TestManager_StartGoroutine(t *testing.T) {
	m := NewManager(testEnvConfig())
	defer m.Shutdown(context.Background())

	var ran atomic.Bool
	done := make(chan struct{})

	err := m.StartGoroutine(context.Background(), "worker", func(ctx context.Context) {
		ran.Store(true)
		close(done)
	})
	if err != nil {
		t.Fatalf("StartGoroutine() failed: %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not run")
	}
	if !ran.Load() {
		t.Error("goroutine body did not execute")
	}
}

func TestManager_GoroutineLimit(t *testing.T) {
	m := NewManager(testEnvConfig())
	defer m.Shutdown(context.Background())

	release := make(chan struct{})
	for i := 0; i < 5; i++ {
		err := m.StartGoroutine(context.Background(), "blocker", func(ctx context.Context) {
			<-release
		})
		if err != nil {
			t.Fatalf("StartGoroutine() #%d failed: %v", i, err)
		}
	}

	if err := m.StartGoroutine(context.Background(), "overflow", func(ctx context.Context) {}); err == nil {
		t.Error("StartGoroutine() beyond limit expected error, got nil")
	}

	close(release)
}

func TestManager_GoroutineCountDecrements(t *testing.T) {
	m := NewManager(testEnvConfig())
	defer m.Shutdown(context.Background())

	done := make(chan struct{})
	m.StartGoroutine(context.Background(), "short", func(ctx context.Context) {
		close(done)
	})
	<-done

	deadline := time.Now().Add(time.Second)
	for m.GoroutineCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("GoroutineCount() = %d, expected 0", m.GoroutineCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestManager_RecoverFromPanic(t *testing.T) {
	m := NewManager(testEnvConfig())
	defer m.Shutdown(context.Background())

	err := m.StartGoroutine(context.Background(), "panicky", func(ctx context.Context) {
		panic("deliberate")
	})
	if err != nil {
		t.Fatalf("StartGoroutine() failed: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for m.GoroutineCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("panicking goroutine was not cleaned up")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestManager_CheckMemoryUsage(t *testing.T) {
	m := NewManager(testEnvConfig())
	defer m.Shutdown(context.Background())

	if err := m.CheckMemoryUsage(); err != nil {
		t.Errorf("CheckMemoryUsage() = %v with 500MB limit, expected nil", err)
	}
	if m.MemoryUsage() < 0 {
		t.Errorf("MemoryUsage() = %d, expected non-negative", m.MemoryUsage())
	}
}

func TestManager_Stats(t *testing.T) {
	m := NewManager(testEnvConfig())
	defer m.Shutdown(context.Background())

	stats := m.Stats()
	if stats.MaxMemoryMB != 500 || stats.MaxGoroutines != 5 {
		t.Errorf("Stats() limits = (%d, %d), expected (500, 5)", stats.MaxMemoryMB, stats.MaxGoroutines)
	}
}

func TestManager_Shutdown(t *testing.T) {
	m := NewManager(testEnvConfig())
	if err := m.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if err := m.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() failed: %v", err)
	}

	// Shutdown is idempotent.
	if err := m.Shutdown(context.Background()); err != nil {
		t.Errorf("second Shutdown() failed: %v", err)
	}
}
