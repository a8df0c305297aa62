// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/runoshun/todo/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.NowTime = m.NowTime.Add(d)
}

// MockSnapshotStore is a test double for domain.SnapshotStore.
// Fields are ordered to minimize memory padding.
type MockSnapshotStore struct {
	LoadErr      error
	SaveErr      error
	Data         []byte
	RevisionList []domain.SnapshotRevision
	Saves        int
	mu           sync.Mutex
}

// NewMockSnapshotStore creates an empty MockSnapshotStore.
func NewMockSnapshotStore() *MockSnapshotStore {
	return &MockSnapshotStore{}
}

// Ensure MockSnapshotStore implements domain.SnapshotStore and domain.SnapshotInspector.
var (
	_ domain.SnapshotStore     = (*MockSnapshotStore)(nil)
	_ domain.SnapshotInspector = (*MockSnapshotStore)(nil)
)

// Load returns the stored bytes or the configured error.
func (m *MockSnapshotStore) Load(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return append([]byte(nil), m.Data...), nil
}

// Save records the snapshot unless SaveErr is set. Every attempt is counted.
func (m *MockSnapshotStore) Save(_ context.Context, snapshot []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Data = append([]byte(nil), snapshot...)
	return nil
}

// Revisions returns RevisionList, cut to limit.
func (m *MockSnapshotStore) Revisions(_ context.Context, limit int) ([]domain.SnapshotRevision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	revs := m.RevisionList
	if limit > 0 && len(revs) > limit {
		revs = revs[:limit]
	}
	return append([]domain.SnapshotRevision(nil), revs...), nil
}

// SaveCount returns the number of Save calls.
func (m *MockSnapshotStore) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Saves
}

// Notification is one recorded Notify call.
type Notification struct {
	Title string
	Body  string
}

// MockNotifier is a test double for domain.Notifier.
type MockNotifier struct {
	Err  error
	Sent []Notification
	mu   sync.Mutex
}

// Ensure MockNotifier implements domain.Notifier interface.
var _ domain.Notifier = (*MockNotifier)(nil)

// Notify records the message and returns Err.
func (m *MockNotifier) Notify(_ context.Context, title, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, Notification{Title: title, Body: body})
	return m.Err
}

// Messages returns a copy of the recorded notifications.
func (m *MockNotifier) Messages() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Notification(nil), m.Sent...)
}

// SequenceIDs is a deterministic domain.IDGenerator yielding id-1, id-2, ...
type SequenceIDs struct {
	Prefix string
	n      int
}

// NewID returns the next id in the sequence.
func (s *SequenceIDs) NewID() domain.TaskID {
	s.n++
	prefix := s.Prefix
	if prefix == "" {
		prefix = "id-"
	}
	return domain.TaskID(fmt.Sprintf("%s%d", prefix, s.n))
}

// LogEntry is one recorded log call.
type LogEntry struct {
	Level    string
	TaskID   domain.TaskID
	Category string
	Msg      string
}

// MockLogger records log calls.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

// Ensure MockLogger implements domain.Logger interface.
var _ domain.Logger = (*MockLogger)(nil)

func (m *MockLogger) record(level string, taskID domain.TaskID, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, TaskID: taskID, Category: category, Msg: msg})
}

// Info records an info entry.
func (m *MockLogger) Info(taskID domain.TaskID, category, msg string) {
	m.record("INFO", taskID, category, msg)
}

// Debug records a debug entry.
func (m *MockLogger) Debug(taskID domain.TaskID, category, msg string) {
	m.record("DEBUG", taskID, category, msg)
}

// Warn records a warn entry.
func (m *MockLogger) Warn(taskID domain.TaskID, category, msg string) {
	m.record("WARN", taskID, category, msg)
}

// Error records an error entry.
func (m *MockLogger) Error(taskID domain.TaskID, category, msg string) {
	m.record("ERROR", taskID, category, msg)
}

// Count returns the number of entries at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config  *domain.Config
	LoadErr error
}

// NewMockConfigLoader creates a new MockConfigLoader with default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config: domain.NewDefaultConfig(),
	}
}

// Ensure MockConfigLoader implements domain.ConfigLoader interface.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config or error.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitErr    error
	InitCfg    *domain.Config
	Info       domain.ConfigInfo
	InitCalled bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		Info: domain.ConfigInfo{
			Path:   "/home/test/.config/todo/config.toml",
			Exists: false,
		},
	}
}

// Ensure MockConfigManager implements domain.ConfigManager interface.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// ConfigInfo returns the configured info.
func (m *MockConfigManager) ConfigInfo() domain.ConfigInfo {
	return m.Info
}

// InitConfig records the call and returns the configured error.
func (m *MockConfigManager) InitConfig(cfg *domain.Config) error {
	m.InitCalled = true
	m.InitCfg = cfg
	return m.InitErr
}

// MockPrefsStore is an in-memory domain.PrefsStore.
type MockPrefsStore struct {
	LoadErr error
	SaveErr error
	Prefs   domain.Prefs
	Saves   int
}

// Ensure MockPrefsStore implements domain.PrefsStore interface.
var _ domain.PrefsStore = (*MockPrefsStore)(nil)

// LoadPrefs returns the stored preferences.
func (m *MockPrefsStore) LoadPrefs() (domain.Prefs, error) {
	return m.Prefs, m.LoadErr
}

// SavePrefs stores p unless SaveErr is set.
func (m *MockPrefsStore) SavePrefs(p domain.Prefs) error {
	m.Saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Prefs = p
	return nil
}

// MockEditor is a test double for domain.Editor.
// EditFunc, when set, may rewrite the file at path.
type MockEditor struct {
	Err      error
	EditFunc func(path string) error
	Path     string
	Called   bool
}

// Ensure MockEditor implements domain.Editor interface.
var _ domain.Editor = (*MockEditor)(nil)

// Edit records the call and runs EditFunc.
func (m *MockEditor) Edit(_ context.Context, path string) error {
	m.Called = true
	m.Path = path
	if m.Err != nil {
		return m.Err
	}
	if m.EditFunc != nil {
		return m.EditFunc(path)
	}
	return nil
}
