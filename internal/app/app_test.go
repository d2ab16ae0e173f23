package app

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/rook-computer/spectroscope/internal/buttons"
	"github.com/rook-computer/spectroscope/internal/element"
	"github.com/rook-computer/spectroscope/internal/render"
	"github.com/rook-computer/spectroscope/internal/state"
)

type fakeButtons struct{ ch chan buttons.Event }

func (b *fakeButtons) Start(ctx context.Context) error { return nil }
func (b *fakeButtons) Stop() error                     { return nil }
func (b *fakeButtons) Events() <-chan buttons.Event    { return b.ch }

type failingRenderer struct{ *render.NoopRenderer }

func (failingRenderer) Start(ctx context.Context) error { return errors.New("no framebuffer") }

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStepWrapsThroughCatalog(t *testing.T) {
	ctx := context.Background()
	a := New(state.NewStore(), &render.NoopRenderer{}, nil, nil, element.Builtin())

	if _, err := a.SelectElement(ctx, 80); err != nil {
		t.Fatalf("SelectElement: %v", err)
	}
	sel, err := a.Step(ctx, 1)
	if err != nil || sel.Number != 1 || sel.Symbol != "H" {
		t.Fatalf("Step(+1) from Hg = %+v, %v", sel, err)
	}
	sel, err = a.Step(ctx, -1)
	if err != nil || sel.Number != 80 {
		t.Fatalf("Step(-1) from H = %+v, %v", sel, err)
	}
	sel, err = a.Step(ctx, -2)
	if err != nil || sel.Number != 54 {
		t.Fatalf("Step(-2) from Hg = %+v, %v", sel, err)
	}
}

func TestSelectElementUnknownKeepsSelection(t *testing.T) {
	ctx := context.Background()
	store := state.NewStore()
	a := New(store, &render.NoopRenderer{}, nil, nil, element.Builtin())
	if _, err := a.SelectElement(ctx, 11); err != nil {
		t.Fatalf("SelectElement: %v", err)
	}
	version := store.Snapshot().Version

	_, err := a.SelectElement(ctx, 200)
	if !errors.Is(err, element.ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
	snap := store.Snapshot()
	if snap.Selection.Number != 11 || snap.Version != version {
		t.Fatalf("failed selection changed state: %+v", snap)
	}
}

func TestSelectElementRecoversFromError(t *testing.T) {
	store := state.NewStore()
	store.Fail("boom")
	a := New(store, &render.NoopRenderer{}, nil, nil, element.Builtin())
	if _, err := a.SelectElement(context.Background(), 2); err != nil {
		t.Fatalf("SelectElement: %v", err)
	}
	snap := store.Snapshot()
	if snap.Phase != state.READY || snap.Err != "" {
		t.Fatalf("state=%+v", snap)
	}
}

func TestStartHandlesButtonsAndExit(t *testing.T) {
	store := state.NewStore()
	btn := &fakeButtons{ch: make(chan buttons.Event)}
	a := New(store, &render.NoopRenderer{}, nil, btn, element.Builtin())
	a.InitialElement = 11

	done := make(chan error, 1)
	go func() { done <- a.Start(context.Background()) }()

	waitFor(t, "initial selection", func() bool {
		s := store.Snapshot()
		return s.Phase == state.READY && s.Selection.Number == 11
	})

	btn.ch <- buttons.Next
	waitFor(t, "next element", func() bool { return store.Snapshot().Selection.Number == 12 })
	btn.ch <- buttons.Previous
	btn.ch <- buttons.Previous
	waitFor(t, "previous element", func() bool { return store.Snapshot().Selection.Number == 10 })

	btn.ch <- buttons.Exit
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Start did not return after exit")
	}
}

func TestStartDefaultsToFirstElement(t *testing.T) {
	store := state.NewStore()
	a := New(store, &render.NoopRenderer{}, nil, nil, element.Builtin())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- a.Start(ctx) }()
	waitFor(t, "initial selection", func() bool { return store.Snapshot().Selection.Number == 1 })

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Start returned %v", err)
	}
}

func TestStartUnknownInitialElementShowsError(t *testing.T) {
	store := state.NewStore()
	a := New(store, &render.NoopRenderer{}, nil, nil, element.Builtin())
	a.InitialElement = 404
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- a.Start(ctx) }()
	waitFor(t, "error phase", func() bool { return store.Snapshot().Phase == state.ERROR })
	if !strings.Contains(store.Snapshot().Err, "element not found") {
		t.Fatalf("err=%q", store.Snapshot().Err)
	}
	cancel()
	<-done
}

func TestStartRendererFailure(t *testing.T) {
	a := New(state.NewStore(), failingRenderer{&render.NoopRenderer{}}, nil, nil, element.Builtin())
	if err := a.Start(context.Background()); err == nil {
		t.Fatalf("expected renderer error")
	}
}

func TestFileLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewFileLogger(&buf)
	l.Infof("app", "showing %d %s", 11, "Na")
	l.Errorf("web", "boom")

	re := regexp.MustCompile(`^\S+ \[INFO\] app: showing 11 Na\n\S+ \[ERROR\] web: boom\n$`)
	if !re.MatchString(buf.String()) {
		t.Fatalf("log output %q", buf.String())
	}
}
