// Package session owns the authentication lifecycle: table identity, diner
// identifier, session credential and validation status. It gates every other
// screen.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/S4ntifdz/new-pwa/models"
	"github.com/S4ntifdz/new-pwa/storage"
	"github.com/S4ntifdz/new-pwa/utils"
)

type Status string

const (
	StatusAnonymous     Status = "anonymous"
	StatusValidating    Status = "validating"
	StatusAuthenticated Status = "authenticated"
	StatusRejected      Status = "rejected"
)

var (
	// ErrRejected means identity validation explicitly declined the
	// identifier + table token. The diner may retry with another identifier.
	ErrRejected = errors.New("invalid or expired session")

	// ErrEmptyIdentifier means validation was attempted without a diner
	// identifier.
	ErrEmptyIdentifier = errors.New("identifier must not be empty")

	// ErrAlreadyAuthenticated means a validation was attempted on a live
	// session. Re-identification always starts from a cleared state.
	ErrAlreadyAuthenticated = errors.New("session already authenticated")

	// ErrSuperseded means the validation response arrived after the session
	// was ended or a newer attempt began; its result was discarded.
	ErrSuperseded = errors.New("validation superseded")
)

// Validator is the identity-validation collaborator. It must be callable
// without a prior credential, it is the credential's source.
type Validator interface {
	ValidateSession(ctx context.Context, identifier, tableToken string) (*models.ValidateSessionResponse, error)
}

// Manager turns a one-time table token plus a diner identifier into a
// durable session credential. State transitions are guarded by an attempt
// epoch so a late-arriving validation response cannot resurrect a session
// that was ended in the meantime.
type Manager struct {
	mu         sync.Mutex
	status     Status
	credential string
	identifier string
	tableID    string
	lastErr    error
	epoch      uint64

	validator Validator
	store     storage.Store
	listener  func(Status)
}

// NewManager restores any persisted session record; a stored credential
// resumes an authenticated session across reloads.
func NewManager(validator Validator, store storage.Store) *Manager {
	m := &Manager{
		status:    StatusAnonymous,
		validator: validator,
		store:     store,
	}

	rec, err := store.LoadSession()
	if err != nil {
		utils.ErrorLogger.Printf("Error restoring session: %v", err)
		return m
	}
	if rec != nil && rec.Credential != "" {
		m.status = StatusAuthenticated
		m.credential = rec.Credential
		m.identifier = rec.Identifier
		m.tableID = rec.TableUUID
	}
	return m
}

// SetStatusListener registers a hook invoked after every status transition,
// outside the manager's lock. Used to bind the unpaid-orders poller to the
// authenticated-session lifetime.
func (m *Manager) SetStatusListener(fn func(Status)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listener = fn
}

// BeginValidation runs anonymous → validating → {authenticated, rejected}.
// It decodes the table identity from the token, then hands identifier and
// raw token to the validation collaborator. Safe to retry after a rejection.
func (m *Manager) BeginValidation(ctx context.Context, identifier, tableToken string) error {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return ErrEmptyIdentifier
	}

	tableID, err := utils.ExtractTableID(tableToken)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if m.status == StatusAuthenticated {
		m.mu.Unlock()
		return ErrAlreadyAuthenticated
	}
	m.status = StatusValidating
	m.lastErr = nil
	m.epoch++
	attempt := m.epoch
	m.mu.Unlock()
	m.notify(StatusValidating)

	resp, err := m.validator.ValidateSession(ctx, identifier, tableToken)

	m.mu.Lock()
	if m.epoch != attempt {
		// Session ended or a newer attempt started while this one was in
		// flight. Its outcome no longer applies.
		m.mu.Unlock()
		return ErrSuperseded
	}

	if err != nil {
		m.rejectLocked(fmt.Errorf("connection error: %w", err))
		m.mu.Unlock()
		m.notify(StatusRejected)
		return fmt.Errorf("connection error: %w", err)
	}

	if !resp.Valid || resp.SessionToken == "" {
		m.rejectLocked(ErrRejected)
		m.mu.Unlock()
		m.notify(StatusRejected)
		return ErrRejected
	}

	m.status = StatusAuthenticated
	m.credential = resp.SessionToken
	m.identifier = identifier
	m.tableID = tableID
	m.lastErr = nil
	m.persistLocked()
	m.mu.Unlock()

	m.notify(StatusAuthenticated)
	utils.InfoLogger.Printf("Session authenticated for table %s", tableID)
	return nil
}

// EndSession clears credential, identifier and table identity, returning to
// anonymous. Called on explicit logout and whenever a downstream request
// reports the credential is no longer accepted.
func (m *Manager) EndSession() {
	m.mu.Lock()
	m.epoch++
	m.status = StatusAnonymous
	m.credential = ""
	m.identifier = ""
	m.tableID = ""
	m.lastErr = nil
	if err := m.store.DeleteSession(); err != nil {
		utils.ErrorLogger.Printf("Error deleting session record: %v", err)
	}
	m.mu.Unlock()

	m.notify(StatusAnonymous)
}

// CurrentCredential returns the bearer credential, or "" when the session is
// not authenticated.
func (m *Manager) CurrentCredential() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.credential
}

func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *Manager) Identifier() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identifier
}

// TableID is the table identity decoded from the token. Provisional until
// the server accepted the token, display-only before that.
func (m *Manager) TableID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tableID
}

// LastError is the diner-facing failure of the most recent validation
// attempt: ErrRejected for an invalid or expired session, a wrapped
// transport error for connectivity problems. The two must stay
// distinguishable, one is fixable by retrying and one is not.
func (m *Manager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

func (m *Manager) rejectLocked(cause error) {
	m.status = StatusRejected
	m.credential = ""
	m.lastErr = cause
	if err := m.store.DeleteSession(); err != nil {
		utils.ErrorLogger.Printf("Error deleting session record: %v", err)
	}
}

func (m *Manager) persistLocked() {
	rec := models.SessionRecord{
		Credential: m.credential,
		Identifier: m.identifier,
		TableUUID:  m.tableID,
	}
	if err := m.store.SaveSession(rec); err != nil {
		utils.ErrorLogger.Printf("Error persisting session record: %v", err)
	}
}

func (m *Manager) notify(s Status) {
	m.mu.Lock()
	fn := m.listener
	m.mu.Unlock()
	if fn != nil {
		fn(s)
	}
}
