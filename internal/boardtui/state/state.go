// Package state persists the msgboard TUI's local inputs between runs.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"
)

const (
	CurrentVersion = 1

	defaultDebounce = 1 * time.Second
)

type TUIState struct {
	Version     int          `json:"version"`
	Compose     ComposeDraft `json:"compose"`               // unsent form inputs
	Preferences Preferences  `json:"preferences,omitempty"` // UI preferences
}

// ComposeDraft is the compose form as the user left it. It is kept after a
// send so the same author can post again.
type ComposeDraft struct {
	Username  string    `json:"username,omitempty"`
	Content   string    `json:"content,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

type Preferences struct {
	ShowTimestamps *bool `json:"show_timestamps,omitempty"`
}

type Manager struct {
	path     string
	lockPath string

	mu        sync.Mutex
	state     TUIState
	dirty     bool
	timer     *time.Timer
	debounce  time.Duration
	lastWrite time.Time
}

// New returns a manager for path. An empty path keeps state in memory only.
func New(path string) *Manager {
	path = strings.TrimSpace(path)
	lockPath := ""
	if path != "" {
		lockPath = path + ".lock"
	}
	return &Manager{
		path:     path,
		lockPath: lockPath,
		state:    TUIState{Version: CurrentVersion},
		debounce: defaultDebounce,
	}
}

func (m *Manager) Path() string { return m.path }

func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.path == "" {
		return nil
	}

	loaded, err := m.loadLocked()
	if err != nil {
		return err
	}
	m.state = loaded
	m.dirty = false
	return nil
}

func (m *Manager) Snapshot() TUIState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneState(m.state)
}

func (m *Manager) Compose() ComposeDraft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Compose
}

// SetCompose records the compose form. Unchanged input does not schedule a
// write.
func (m *Manager) SetCompose(draft ComposeDraft) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if draft.Username == m.state.Compose.Username && draft.Content == m.state.Compose.Content {
		return
	}
	if draft.UpdatedAt.IsZero() {
		draft.UpdatedAt = time.Now().UTC()
	}
	m.state.Compose = draft
	m.markDirtyLocked()
}

func (m *Manager) ShowTimestamps(fallback bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Preferences.ShowTimestamps == nil {
		return fallback
	}
	return *m.state.Preferences.ShowTimestamps
}

func (m *Manager) SetShowTimestamps(show bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Preferences.ShowTimestamps = &show
	m.markDirtyLocked()
}

func (m *Manager) Dirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirty
}

func (m *Manager) Close() error {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	needsSave := m.dirty
	m.mu.Unlock()
	if !needsSave {
		return nil
	}
	return m.SaveNow()
}

func (m *Manager) SaveNow() error {
	m.mu.Lock()
	if m.path == "" {
		m.dirty = false
		m.mu.Unlock()
		return nil
	}
	state := cloneState(m.state)
	m.dirty = false
	m.mu.Unlock()

	state.Version = CurrentVersion

	if err := withFileLock(m.lockPath, func() error {
		return writeAtomicJSON(m.path, state)
	}); err != nil {
		m.mu.Lock()
		m.dirty = true
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	m.lastWrite = time.Now().UTC()
	m.mu.Unlock()
	return nil
}

func (m *Manager) markDirtyLocked() {
	m.dirty = true
	if m.path == "" {
		return
	}
	if m.timer == nil {
		m.timer = time.AfterFunc(m.debounce, func() {
			_ = m.SaveNow()
		})
		return
	}
	_ = m.timer.Reset(m.debounce)
}

func (m *Manager) loadLocked() (TUIState, error) {
	var out TUIState
	if err := withFileLock(m.lockPath, func() error {
		payload, err := os.ReadFile(m.path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				out = TUIState{Version: CurrentVersion}
				return nil
			}
			return err
		}
		if len(payload) == 0 {
			out = TUIState{Version: CurrentVersion}
			return nil
		}
		if err := json.Unmarshal(payload, &out); err != nil {
			return fmt.Errorf("decode %s: %w", m.path, err)
		}
		return nil
	}); err != nil {
		return TUIState{}, err
	}

	if out.Version <= 0 {
		out.Version = CurrentVersion
	}
	return out, nil
}

func withFileLock(lockPath string, fn func() error) error {
	if strings.TrimSpace(lockPath) == "" {
		return fn()
	}
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("lock %s: %w", lockPath, err)
	}
	defer func() {
		_ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
	}()
	return fn()
}

func writeAtomicJSON(path string, state TUIState) error {
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func cloneState(state TUIState) TUIState {
	out := state
	if state.Preferences.ShowTimestamps != nil {
		show := *state.Preferences.ShowTimestamps
		out.Preferences.ShowTimestamps = &show
	}
	return out
}
