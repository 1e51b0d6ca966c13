// pkg/resource/health_test.go
package resource

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestHealthCheck_Name(t *testing.T) {
	check := NewHealthCheck(NewManager(testEnvConfig()))
	if check.Name() != "resource" {
		t.Errorf("Name() = %q, expected resource", check.Name())
	}
}

func TestHealthCheck_Healthy(t *testing.T) {
	m := NewManager(testEnvConfig())
	defer m.Shutdown(context.Background())

	check := NewHealthCheck(m)
	if err := check.Check(context.Background()); err != nil {
		t.Errorf("Check() = %v with no load, expected nil", err)
	}
}

func TestHealthCheck_MemoryOverLimit(t *testing.T) {
	env := testEnvConfig()
	env.MaxMemoryMB = 0 // Anything reported is over the limit.
	m := NewManager(env)
	defer m.Shutdown(context.Background())

	atomic.StoreInt64(&m.memoryUsageMB, 1)

	check := NewHealthCheck(m)
	if err := check.Check(context.Background()); err == nil {
		t.Error("Check() = nil over memory limit, expected error")
	}
}

func TestHealthCheck_GoroutineThreshold(t *testing.T) {
	env := testEnvConfig()
	env.MaxGoroutines = 5
	m := NewManager(env)
	defer m.Shutdown(context.Background())

	release := make(chan struct{})
	for i := 0; i < 5; i++ {
		if err := m.StartGoroutine(context.Background(), "load", func(ctx context.Context) {
			<-release
		}); err != nil {
			t.Fatalf("StartGoroutine() #%d failed: %v", i, err)
		}
	}

	// 5 of 5 exceeds the 80% warning threshold of 4.
	check := NewHealthCheck(m)
	if err := check.Check(context.Background()); err == nil {
		t.Error("Check() = nil at full goroutine load, expected error")
	}

	close(release)
	deadline := time.Now().Add(time.Second)
	for m.GoroutineCount() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
}
