package store

import (
	"context"
	"testing"
	"time"
)

func TestDiskvWatchEmitsKeyChanges(t *testing.T) {
	p, err := OpenDiskv(t.TempDir())
	if err != nil {
		t.Fatalf("open diskv: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Give the watcher goroutine a moment before writing.
	time.Sleep(50 * time.Millisecond)

	if err := p.Set(KeyTasks, []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Key == "" {
				return
			}
			if evt.Key != KeyTasks {
				t.Fatalf("expected key %q, got %q", KeyTasks, evt.Key)
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for key change event")
		}
	}
}

func TestKeyForPathIgnoresTempFiles(t *testing.T) {
	base := t.TempDir()
	p, err := OpenDiskv(base)
	if err != nil {
		t.Fatalf("open diskv: %v", err)
	}
	if _, ok := p.keyForPath(base + "/.tmp/diskv-123"); ok {
		t.Fatal("temp file mapped to a key")
	}
	if _, ok := p.keyForPath(base + "/unrelated.txt"); ok {
		t.Fatal("unknown file mapped to a key")
	}
	if k, ok := p.keyForPath(base + "/" + KeySelectedEvent); !ok || k != KeySelectedEvent {
		t.Fatalf("keyForPath = %q, %v", k, ok)
	}
}

func TestEventThrottleCoalesces(t *testing.T) {
	th := newEventThrottle(20 * time.Millisecond)
	defer th.Stop()

	got := make(chan Event, 8)
	send := func(ev Event) { got <- ev }
	for i := 0; i < 5; i++ {
		th.Enqueue(Event{Key: KeyTasks}, send)
	}

	select {
	case ev := <-got:
		if ev.Key != KeyTasks {
			t.Fatalf("unexpected key %q", ev.Key)
		}
	case <-time.After(time.Second):
		t.Fatal("throttle never flushed")
	}
	select {
	case ev := <-got:
		t.Fatalf("expected a single coalesced event, got extra %+v", ev)
	case <-time.After(60 * time.Millisecond):
	}
}
