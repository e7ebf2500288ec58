// Package trade implements the two-party trade negotiation: a short-lived
// in-memory session that waits for the counterparty's accept or decline,
// bounded by a timeout, and commits an atomic card swap on acceptance.
//
// Sessions are never persisted. A trade has no durable footprint until it is
// accepted, at which point it manifests as the ledger swap. No database
// transaction is held open across the human-response wait: the proposal
// precondition check and the commit are separate short transactions.
package trade

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/wonderpick/pocketbot/pocketbot/database/models"
	"github.com/wonderpick/pocketbot/pocketbot/database/repositories"
)

var (
	ErrSelfTrade        = errors.New("cannot trade with yourself")
	ErrInvalidItem      = errors.New("trade names a card the owner does not hold")
	ErrTradeInvalidated = errors.New("trade invalidated: ownership changed before commit")
	ErrSessionNotFound  = errors.New("trade session not found")
	ErrNotYourTrade     = errors.New("only the trade counterparty can respond")
	ErrSessionClosed    = errors.New("trade session already resolved")
	ErrPendingExists    = errors.New("a pending trade between these users already exists")
)

type State string

const (
	StatePending  State = "pending"
	StateAccepted State = "accepted"
	StateDeclined State = "declined"
	StateExpired  State = "expired"
)

// Session is one in-flight negotiation.
type Session struct {
	ID           string
	ProposerID   string
	TargetID     string
	ProposerCard string
	TargetCard   string
	State        State
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// Ledger is the collection surface the protocol needs: a read-check at
// proposal time and the atomic re-validating swap at commit time.
type Ledger interface {
	GetUserCard(ctx context.Context, userID, cardID string) (*models.UserCard, error)
	Swap(ctx context.Context, userA, cardA, userB, cardB string) error
}

// ExpiryHandler is invoked outside the manager lock when a session times out.
type ExpiryHandler func(*Session)

type Manager struct {
	ledger   Ledger
	ttl      time.Duration
	onExpire ExpiryHandler

	mu       sync.Mutex
	sessions map[string]*Session
	timers   map[string]*time.Timer
}

// NewManager creates a trade manager. ttl bounds the counterparty response
// window; production callers pass config.TradeResponseWindow.
func NewManager(ledger Ledger, ttl time.Duration) *Manager {
	return &Manager{
		ledger:   ledger,
		ttl:      ttl,
		sessions: make(map[string]*Session),
		timers:   make(map[string]*time.Timer),
	}
}

// SetExpiryHandler registers a callback fired when a session expires, so the
// dispatch layer can update its message. Must be set before first Propose.
func (m *Manager) SetExpiryHandler(h ExpiryHandler) {
	m.onExpire = h
}

// Propose validates both ownership preconditions and opens a pending session.
// The checks here are read-checks only; ownership is re-validated under row
// locks when the counterparty accepts.
func (m *Manager) Propose(ctx context.Context, proposerID, targetID, proposerCard, targetCard string) (*Session, error) {
	if proposerID == targetID {
		return nil, ErrSelfTrade
	}

	if _, err := m.ledger.GetUserCard(ctx, proposerID, proposerCard); err != nil {
		if errors.Is(err, repositories.ErrNotOwned) {
			return nil, fmt.Errorf("proposer does not own %s: %w", proposerCard, ErrInvalidItem)
		}
		return nil, err
	}
	if _, err := m.ledger.GetUserCard(ctx, targetID, targetCard); err != nil {
		if errors.Is(err, repositories.ErrNotOwned) {
			return nil, fmt.Errorf("target does not own %s: %w", targetCard, ErrInvalidItem)
		}
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.sessions {
		if s.State != StatePending {
			continue
		}
		if (s.ProposerID == proposerID && s.TargetID == targetID) ||
			(s.ProposerID == targetID && s.TargetID == proposerID) {
			return nil, ErrPendingExists
		}
	}

	now := time.Now()
	session := &Session{
		ID:           generateSessionID(),
		ProposerID:   proposerID,
		TargetID:     targetID,
		ProposerCard: proposerCard,
		TargetCard:   targetCard,
		State:        StatePending,
		CreatedAt:    now,
		ExpiresAt:    now.Add(m.ttl),
	}
	m.sessions[session.ID] = session
	m.timers[session.ID] = time.AfterFunc(m.ttl, func() { m.expire(session.ID) })

	slog.Info("Trade proposed",
		slog.String("type", "cmd"),
		slog.String("session_id", session.ID),
		slog.String("proposer_id", proposerID),
		slog.String("target_id", targetID))
	return session, nil
}

// Respond resolves a pending session with the counterparty's accept or
// decline. Exactly one of accept, decline and expiry wins; the losers see
// ErrSessionClosed or ErrSessionNotFound. A store failure during the commit
// leaves the session pending so the counterparty can respond again.
func (m *Manager) Respond(ctx context.Context, sessionID, responderID string, accept bool) (*Session, error) {
	session, err := m.take(sessionID, responderID)
	if err != nil {
		return nil, err
	}

	if !accept {
		session.State = StateDeclined
		slog.Info("Trade declined",
			slog.String("type", "cmd"),
			slog.String("session_id", session.ID),
			slog.String("target_id", session.TargetID))
		return session, nil
	}

	// Commit with ownership re-validated inside the swap transaction. The
	// proposal-time read check left a window; the ledger closes it.
	if err := m.ledger.Swap(ctx, session.ProposerID, session.ProposerCard, session.TargetID, session.TargetCard); err != nil {
		if errors.Is(err, repositories.ErrNotOwned) {
			// No mutation happened; the session resolves closed as if
			// declined.
			session.State = StateDeclined
			slog.Warn("Trade invalidated at commit",
				slog.String("type", "cmd"),
				slog.String("session_id", session.ID),
				slog.Any("error", err))
			return session, fmt.Errorf("%w: %v", ErrTradeInvalidated, err)
		}

		// Infrastructure failure: nothing moved and the trade itself is
		// still sound, so put the session back for a retry within the
		// original window.
		m.reinstate(session)
		return nil, err
	}

	session.State = StateAccepted
	slog.Info("Trade accepted",
		slog.String("type", "cmd"),
		slog.String("session_id", session.ID),
		slog.String("proposer_id", session.ProposerID),
		slog.String("target_id", session.TargetID))
	return session, nil
}

// Get returns a snapshot of a live pending session.
func (m *Manager) Get(sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

// take atomically claims resolution of a pending session: it stops the expiry
// timer and removes the session from the pending map so expiry and duplicate
// responses cannot race the commit.
func (m *Manager) take(sessionID, responderID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.State != StatePending {
		return nil, ErrSessionClosed
	}
	if session.TargetID != responderID {
		return nil, ErrNotYourTrade
	}

	if timer, ok := m.timers[sessionID]; ok {
		timer.Stop()
		delete(m.timers, sessionID)
	}
	delete(m.sessions, sessionID)
	return session, nil
}

// reinstate returns a claimed session to the pending map after a store
// failure. The original deadline still applies; a session reinstated past
// its deadline expires immediately.
func (m *Manager) reinstate(session *Session) {
	remaining := time.Until(session.ExpiresAt)

	m.mu.Lock()
	m.sessions[session.ID] = session
	if remaining > 0 {
		m.timers[session.ID] = time.AfterFunc(remaining, func() { m.expire(session.ID) })
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()
	m.expire(session.ID)
}

// expire is the timer callback: a pending session with no counterparty signal
// transitions to expired with no store mutation.
func (m *Manager) expire(sessionID string) {
	m.mu.Lock()
	session, ok := m.sessions[sessionID]
	if !ok || session.State != StatePending {
		m.mu.Unlock()
		return
	}
	session.State = StateExpired
	delete(m.sessions, sessionID)
	delete(m.timers, sessionID)
	m.mu.Unlock()

	slog.Info("Trade expired",
		slog.String("type", "cmd"),
		slog.String("session_id", session.ID),
		slog.String("proposer_id", session.ProposerID),
		slog.String("target_id", session.TargetID))

	if m.onExpire != nil {
		m.onExpire(session)
	}
}

func generateSessionID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("t%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("t%x", binary.BigEndian.Uint64(b[:]))
}
