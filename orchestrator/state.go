package orchestrator

import (
	"fmt"
	"sync"
	"time"
)

// State is the scan lifecycle state.
type State string

const (
	StateIdle     State = "idle"
	StateScanning State = "scanning"
	StateComplete State = "complete"
	StateError    State = "error"
)

const maxLogs = 50

type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// ScanSummary describes one pass over the stored stories.
type ScanSummary struct {
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Stories    int            `json:"stories"`
	Flagged    int            `json:"flagged"`
	Failed     int            `json:"failed"`
	Skipped    int            `json:"skipped"`
	Violations map[string]int `json:"violations"`
}

// StatusResponse is a snapshot of the manager.
type StatusResponse struct {
	State   State        `json:"state"`
	Logs    []LogEntry   `json:"logs"`
	Summary *ScanSummary `json:"summary,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// Manager holds scan state with thread-safe access.
type Manager struct {
	mu           sync.RWMutex
	currentState State
	logs         []LogEntry
	summary      *ScanSummary
	lastErr      error
	now          func() time.Time
}

func NewManager() *Manager {
	return &Manager{currentState: StateIdle, logs: make([]LogEntry, 0), now: time.Now}
}

// AddLog appends a log entry, keeping the last 50.
func (m *Manager) AddLog(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appendLog(fmt.Sprintf(format, args...))
}

// must hold lock
func (m *Manager) appendLog(message string) {
	m.logs = append(m.logs, LogEntry{Timestamp: m.now(), Message: message})
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

func (m *Manager) Status() StatusResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()

	resp := StatusResponse{
		State: m.currentState,
		Logs:  append([]LogEntry{}, m.logs...),
	}
	if m.summary != nil {
		s := *m.summary
		resp.Summary = &s
	}
	if m.lastErr != nil {
		resp.Error = m.lastErr.Error()
	}
	return resp
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentState
}

// TryStart moves to scanning unless a scan is already running.
func (m *Manager) TryStart() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.currentState == StateScanning {
		return false
	}
	m.currentState = StateScanning
	m.lastErr = nil
	m.appendLog("Scan started")
	return true
}

// Complete records the summary of a finished scan.
func (m *Manager) Complete(summary *ScanSummary) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summary = summary
	m.currentState = StateComplete
	m.appendLog(fmt.Sprintf("Scan complete: %d stories, %d flagged, %d failed",
		summary.Stories, summary.Flagged, summary.Failed))
}

func (m *Manager) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentState = StateError
	m.lastErr = err
	m.appendLog(fmt.Sprintf("Error: %v", err))
}
