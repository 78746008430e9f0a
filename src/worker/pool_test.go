package worker

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"
)

func TestSubmitRunsLoad(t *testing.T) {
	p := New(1)
	defer p.Close()

	done := make(chan image.Image, 1)
	ok := p.Submit(context.Background(), "test", func(ctx context.Context) (image.Image, error) {
		return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
	}, func(img image.Image, err error) {
		if err != nil {
			t.Errorf("Unexpected error: %v", err)
		}
		done <- img
	})
	if !ok {
		t.Fatal("Expected submit to be accepted")
	}
	select {
	case img := <-done:
		if img.Bounds().Dx() != 4 {
			t.Errorf("Expected 4px image, got %v", img.Bounds())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for callback")
	}
}

func TestSubmitBackPressure(t *testing.T) {
	p := New(1)
	defer p.Close()

	release := make(chan struct{})
	started := make(chan struct{})
	block := func(ctx context.Context) (image.Image, error) {
		close(started)
		<-release
		return nil, nil
	}
	noop := func(ctx context.Context) (image.Image, error) { return nil, nil }
	cb := func(image.Image, error) {}

	if !p.Submit(context.Background(), "busy", block, cb) {
		t.Fatal("Expected first submit to be accepted")
	}
	<-started
	if !p.Submit(context.Background(), "queued", noop, cb) {
		t.Fatal("Expected queued submit to be accepted")
	}
	if p.Submit(context.Background(), "dropped", noop, cb) {
		t.Fatal("Expected third submit to be dropped")
	}
	close(release)
}

func TestCancelledContextSkipsLoad(t *testing.T) {
	p := New(1)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	errCh := make(chan error, 1)
	p.Submit(ctx, "cancelled", func(ctx context.Context) (image.Image, error) {
		t.Error("load should not run with a cancelled context")
		return nil, nil
	}, func(_ image.Image, err error) { errCh <- err })

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for callback")
	}
}
