package navigator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestDispatcherInvoke(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	ran := false
	if err := d.Invoke(context.Background(), func() error {
		ran = true
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if !ran {
		t.Error("function did not run")
	}

	want := errors.New("boom")
	if err := d.Invoke(context.Background(), func() error { return want }); !errors.Is(err, want) {
		t.Errorf("err = %v, want %v", err, want)
	}
}

func TestDispatcherRunsInOrder(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	var order []int
	for i := range 10 {
		if err := d.Invoke(context.Background(), func() error {
			order = append(order, i)
			return nil
		}); err != nil {
			t.Fatal(err)
		}
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("order = %v", order)
		}
	}
}

func TestDispatcherSerializesConcurrentCalls(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	// counter is only touched on the dispatcher goroutine.
	counter := 0
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = d.Invoke(context.Background(), func() error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()

	var got int
	_ = d.Invoke(context.Background(), func() error {
		got = counter
		return nil
	})
	if got != 50 {
		t.Errorf("counter = %d, want 50", got)
	}
}

func TestDispatcherRecoversPanic(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	err := d.Invoke(context.Background(), func() error { panic("bad state") })
	if err == nil || !strings.Contains(err.Error(), "bad state") {
		t.Errorf("err = %v, want panic message", err)
	}

	// The dispatcher keeps working after a panic.
	if err := d.Invoke(context.Background(), func() error { return nil }); err != nil {
		t.Errorf("Invoke after panic: %v", err)
	}
}

func TestDispatcherContextCanceled(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = d.Invoke(context.Background(), func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := d.Invoke(ctx, func() error {
		t.Error("function ran after its context ended")
		return nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want DeadlineExceeded", err)
	}
	close(release)
}

func TestDispatcherClose(t *testing.T) {
	d := NewDispatcher()
	d.Close()
	d.Close()

	if err := d.Invoke(context.Background(), func() error { return nil }); !errors.Is(err, ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", err)
	}
}
