package buttons

import (
	"context"

	"github.com/rook-computer/spectroscope/internal/system"
)

type Event string

const (
	Next     Event = "next"
	Previous Event = "previous"
	Exit     Event = "exit"
)

type Buttons interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

type NoopButtons struct{ ch chan Event }

func NewNoopButtons() *NoopButtons { return &NoopButtons{ch: make(chan Event)} }

func (n *NoopButtons) Start(ctx context.Context) error { return nil }
func (n *NoopButtons) Stop() error                     { return nil }
func (n *NoopButtons) Events() <-chan Event            { return n.ch }

// Translate maps a keyboard key code to a button event.
func Translate(code uint16) (Event, bool) {
	switch code {
	case system.KeyRight, system.KeyDown, system.KeySpace:
		return Next, true
	case system.KeyLeft, system.KeyUp:
		return Previous, true
	case system.KeyF4, system.KeyEsc:
		return Exit, true
	}
	return "", false
}

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// EvdevButtons turns key presses on any attached keyboard into events.
// Events are dropped while the consumer is busy.
type EvdevButtons struct {
	Logger logger

	ch     chan Event
	cancel context.CancelFunc
}

func NewEvdevButtons(l logger) *EvdevButtons {
	return &EvdevButtons{Logger: l, ch: make(chan Event, 8)}
}

func (b *EvdevButtons) Start(ctx context.Context) error {
	ctx, b.cancel = context.WithCancel(ctx)
	system.WatchKeys(ctx, b.Logger, func(code uint16) {
		ev, ok := Translate(code)
		if !ok {
			return
		}
		select {
		case b.ch <- ev:
		default:
		}
	})
	return nil
}

func (b *EvdevButtons) Stop() error {
	if b.cancel != nil {
		b.cancel()
	}
	return nil
}

func (b *EvdevButtons) Events() <-chan Event { return b.ch }
