package state

import "sync"

type Phase int

const (
	BOOTING Phase = iota
	READY
	ERROR
)

func (p Phase) String() string {
	switch p {
	case BOOTING:
		return "booting"
	case READY:
		return "ready"
	case ERROR:
		return "error"
	default:
		return "unknown"
	}
}

// Selection identifies the element currently shown on the display.
type Selection struct {
	Number int
	Symbol string
	Name   string
}

type NetworkInfo struct {
	IP  string
	URL string
}

type State struct {
	Phase     Phase
	Selection Selection
	Network   NetworkInfo
	Err       string

	// Version increases on every change so renderers can skip redundant work.
	Version uint64
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Phase: BOOTING}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	store.state.Phase = phase
	store.state.Version++
	store.mu.Unlock()
}

func (store *Store) Select(selection Selection) {
	store.mu.Lock()
	store.state.Selection = selection
	store.state.Err = ""
	store.state.Version++
	store.mu.Unlock()
}

func (store *Store) UpdateNetwork(network NetworkInfo) {
	store.mu.Lock()
	store.state.Network = network
	store.state.Version++
	store.mu.Unlock()
}

// Fail moves the store into the ERROR phase with a user-facing message.
func (store *Store) Fail(message string) {
	store.mu.Lock()
	store.state.Phase = ERROR
	store.state.Err = message
	store.state.Version++
	store.mu.Unlock()
}
