package database

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/sitedesk/sitedesk-engine/pkg/apperrors"
)

// Manager owns the single active per-user database handle. Exactly one store
// is open at a time; switching identities tears the previous handle down
// fully before the next one is established, so two users' data is never live
// in the same process simultaneously.
//
// Manager is an explicit dependency, not a package singleton: tests run
// several isolated managers side by side.
type Manager struct {
	dataDir string
	logger  *zap.Logger

	mu            sync.Mutex
	db            *DB
	currentUserID string
}

// NewManager creates a lifecycle manager storing per-user databases under
// dataDir.
func NewManager(dataDir string, logger *zap.Logger) *Manager {
	return &Manager{
		dataDir: dataDir,
		logger:  logger.Named("dbmanager"),
	}
}

// DeriveUserID derives the stable storage identifier for a display name:
// lowercased, with whitespace runs collapsed to single underscores. The
// mapping is deliberately lossy: "Jane Doe" and "jane doe" share one
// database. A real credential system would replace this.
func DeriveUserID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

// DatabasePath returns the database file path for a derived user id.
func (m *Manager) DatabasePath(userID string) string {
	return filepath.Join(m.dataDir, userID+".db")
}

// SwitchUser makes userID the active identity. If userID is already active
// this is a no-op. Otherwise the current database (if any) is closed first,
// then the requested user's database is opened, created on first use.
func (m *Manager) SwitchUser(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user_id", "user id must not be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db != nil && m.currentUserID == userID {
		return nil
	}

	// Best-effort teardown: a failed close must not block the open path.
	m.closeLocked()

	db, err := Open(m.DatabasePath(userID), m.logger)
	if err != nil {
		return apperrors.Database("open user database", err)
	}

	m.db = db
	m.currentUserID = userID
	m.logger.Info("Switched active user database", zap.String("user_id", userID))
	return nil
}

// SwitchUserByName derives the storage identifier from a display name and
// delegates to SwitchUser.
func (m *Manager) SwitchUserByName(ctx context.Context, name string) error {
	userID := DeriveUserID(name)
	if userID == "" {
		return apperrors.InvalidInput("name", "user name must not be empty")
	}
	return m.SwitchUser(ctx, userID)
}

// Close closes the active database and clears the current-user marker. Safe
// to call when nothing is open.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
	return nil
}

func (m *Manager) closeLocked() {
	if m.db == nil {
		return
	}
	if err := m.db.Close(); err != nil {
		m.logger.Warn("Failed to close user database",
			zap.String("user_id", m.currentUserID),
			zap.Error(err))
	}
	m.db = nil
	m.currentUserID = ""
}

// CurrentUserID returns the active derived user id, or "" when none.
func (m *Manager) CurrentUserID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentUserID
}

// IsInitialized reports whether a database is currently open.
func (m *Manager) IsInitialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.db != nil
}

// Scope returns the active user's database scope. Callers must have switched
// to a user first.
func (m *Manager) Scope() (*Scope, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db == nil {
		return nil, apperrors.InvalidInput("user", "no active user database")
	}
	return &Scope{DB: m.db.DB, UserID: m.currentUserID}, nil
}

// WithScope returns ctx with the active user's database scope attached.
func (m *Manager) WithScope(ctx context.Context) (context.Context, error) {
	scope, err := m.Scope()
	if err != nil {
		return nil, err
	}
	return SetScope(ctx, scope), nil
}
