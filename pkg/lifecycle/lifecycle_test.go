package lifecycle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaimeStill/longevity/pkg/lifecycle"
)

type flag struct{ ok bool }

func (f *flag) Ready() bool { return f.ok }

func TestStartupSetsReady(t *testing.T) {
	lc := lifecycle.New()

	var ran atomic.Int32
	lc.OnStartup(func() { ran.Add(1) })
	lc.OnStartup(func() { ran.Add(1) })

	if lc.Ready() {
		t.Error("Ready() before WaitForStartup should be false")
	}

	lc.WaitForStartup()

	if ran.Load() != 2 {
		t.Errorf("startup hooks ran %d times, want 2", ran.Load())
	}
	if !lc.Ready() {
		t.Error("Ready() after WaitForStartup should be true")
	}
}

func TestRequireGatesReady(t *testing.T) {
	lc := lifecycle.New()
	dep := &flag{}
	lc.Require(dep)
	lc.WaitForStartup()

	if lc.Ready() {
		t.Error("Ready() should be false while dependency is not ready")
	}

	dep.ok = true
	if !lc.Ready() {
		t.Error("Ready() should be true once dependency is ready")
	}
}

func TestShutdownRunsHooks(t *testing.T) {
	lc := lifecycle.New()

	var closed atomic.Bool
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		closed.Store(true)
	})
	lc.WaitForStartup()

	if err := lc.Shutdown(time.Second); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	if !closed.Load() {
		t.Error("shutdown hook did not run")
	}
	if lc.Ready() {
		t.Error("Ready() after Shutdown should be false")
	}
}

func TestShutdownTimeout(t *testing.T) {
	lc := lifecycle.New()
	block := make(chan struct{})
	defer close(block)

	lc.OnShutdown(func() { <-block })

	if err := lc.Shutdown(10 * time.Millisecond); err == nil {
		t.Error("expected timeout error")
	}
}
