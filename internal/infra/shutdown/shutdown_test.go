package shutdown

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"syscall"
	"testing"
	"time"
)

// recorder collects hook names in the order they ran.
type recorder struct {
	mu    sync.Mutex
	names []string
}

func (r *recorder) hook(name string, err error) func(context.Context) error {
	return func(context.Context) error {
		r.mu.Lock()
		r.names = append(r.names, name)
		r.mu.Unlock()
		return err
	}
}

func (r *recorder) ran() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}

func TestHandler_Shutdown_ReverseOrder(t *testing.T) {
	h := NewHandler(time.Second)
	rec := &recorder{}

	// Registration order of a CLI run: the session store opens before
	// the shell loads its history.
	h.OnShutdown(rec.hook("close session store", nil))
	h.OnShutdown(rec.hook("save history", nil))

	select {
	case <-h.Done():
		t.Fatal("Done closed before Shutdown")
	default:
	}

	if err := h.Shutdown(); err != nil {
		t.Fatalf("Shutdown() = %v", err)
	}

	got := rec.ran()
	if len(got) != 2 || got[0] != "save history" || got[1] != "close session store" {
		t.Errorf("hooks ran as %v, want [save history, close session store]", got)
	}
	select {
	case <-h.Done():
	default:
		t.Error("Done channel should be closed after Shutdown")
	}
}

func TestHandler_Shutdown_KeepsGoingAfterError(t *testing.T) {
	h := NewHandler(time.Second)
	rec := &recorder{}
	storeErr := errors.New("close store")
	historyErr := errors.New("write history")

	h.OnShutdown(rec.hook("store", storeErr))
	h.OnShutdown(rec.hook("history", historyErr))
	h.OnShutdown(rec.hook("watcher", nil))

	err := h.Shutdown()
	if len(rec.ran()) != 3 {
		t.Errorf("hooks ran = %v, want all three", rec.ran())
	}
	// The store hook runs last, so its error is the one reported.
	if err != storeErr {
		t.Errorf("Shutdown() = %v, want %v", err, storeErr)
	}
}

func TestHandler_Shutdown_RunsOnce(t *testing.T) {
	h := NewHandler(time.Second)

	var calls atomic.Int32
	hookErr := errors.New("close store")
	h.OnShutdown(func(ctx context.Context) error {
		calls.Add(1)
		return hookErr
	})

	// The CLI calls Shutdown after the command returns while a signal
	// may trigger it concurrently.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := h.Shutdown(); err != hookErr {
				t.Errorf("Shutdown() = %v, want %v", err, hookErr)
			}
		}()
	}
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Errorf("hook called %d times, want 1", n)
	}
}

func TestHandler_Shutdown_HookDeadline(t *testing.T) {
	h := NewHandler(20 * time.Millisecond)

	h.OnShutdown(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	if err := h.Shutdown(); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Shutdown() = %v, want deadline exceeded", err)
	}
}

func TestHandler_OnShutdown_Concurrent(t *testing.T) {
	h := NewHandler(time.Second)

	var ran atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.OnShutdown(func(context.Context) error {
				ran.Add(1)
				return nil
			})
		}()
	}
	wg.Wait()

	if err := h.Shutdown(); err != nil {
		t.Fatalf("Shutdown() = %v", err)
	}
	if n := ran.Load(); n != 10 {
		t.Errorf("ran %d hooks, want 10", n)
	}
}

func TestHandler_Wait_SIGTERM(t *testing.T) {
	h := NewHandler(time.Second)
	rec := &recorder{}
	h.OnShutdown(rec.hook("stop mock server", nil))

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.Wait()
	}()

	// Give Wait time to install its signal handler.
	time.Sleep(50 * time.Millisecond)
	syscall.Kill(syscall.Getpid(), syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Wait() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not return after SIGTERM")
	}

	if got := rec.ran(); len(got) != 1 {
		t.Errorf("hooks ran = %v, want [stop mock server]", got)
	}
}

func TestHandler_NotifyContext(t *testing.T) {
	h := NewHandler(time.Second)

	ctx, stop := h.NotifyContext(context.Background())
	defer stop()

	syscall.Kill(syscall.Getpid(), syscall.SIGINT)

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context not canceled by SIGINT")
	}
}
