package trade

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/wonderpick/pocketbot/pocketbot/database/models"
	"github.com/wonderpick/pocketbot/pocketbot/database/repositories"
	"github.com/wonderpick/pocketbot/pocketbot/game/mock"
)

const testTTL = time.Minute

func ownedCard(userID, cardID string) *models.UserCard {
	return &models.UserCard{UserID: userID, CardID: cardID, Amount: 1}
}

func expectOwnership(ledger *mock.MockLedger) {
	ledger.EXPECT().GetUserCard(gomock.Any(), "alice", "cardA").Return(ownedCard("alice", "cardA"), nil)
	ledger.EXPECT().GetUserCard(gomock.Any(), "bob", "cardB").Return(ownedCard("bob", "cardB"), nil)
}

func TestManager_Propose(t *testing.T) {
	ctx := context.Background()

	t.Run("self trade rejected", func(t *testing.T) {
		m := NewManager(mock.NewMockLedger(gomock.NewController(t)), testTTL)
		if _, err := m.Propose(ctx, "alice", "alice", "cardA", "cardB"); !errors.Is(err, ErrSelfTrade) {
			t.Errorf("Propose() error = %v, want ErrSelfTrade", err)
		}
	})

	t.Run("unowned card rejected", func(t *testing.T) {
		ledger := mock.NewMockLedger(gomock.NewController(t))
		ledger.EXPECT().GetUserCard(gomock.Any(), "alice", "cardA").
			Return(nil, repositories.ErrNotOwned)

		m := NewManager(ledger, testTTL)
		if _, err := m.Propose(ctx, "alice", "bob", "cardA", "cardB"); !errors.Is(err, ErrInvalidItem) {
			t.Errorf("Propose() error = %v, want ErrInvalidItem", err)
		}
	})

	t.Run("opens pending session", func(t *testing.T) {
		ledger := mock.NewMockLedger(gomock.NewController(t))
		expectOwnership(ledger)

		m := NewManager(ledger, testTTL)
		session, err := m.Propose(ctx, "alice", "bob", "cardA", "cardB")
		if err != nil {
			t.Fatalf("Propose() error = %v", err)
		}
		if session.State != StatePending {
			t.Errorf("Propose() state = %v, want StatePending", session.State)
		}
		if session.ID == "" {
			t.Error("Propose() returned empty session id")
		}
	})

	t.Run("one pending trade per pair", func(t *testing.T) {
		ledger := mock.NewMockLedger(gomock.NewController(t))
		expectOwnership(ledger)

		m := NewManager(ledger, testTTL)
		if _, err := m.Propose(ctx, "alice", "bob", "cardA", "cardB"); err != nil {
			t.Fatalf("Propose() error = %v", err)
		}
		if _, err := m.Propose(ctx, "alice", "bob", "cardA", "cardB"); !errors.Is(err, ErrPendingExists) {
			t.Errorf("Propose() error = %v, want ErrPendingExists", err)
		}
	})
}

func TestManager_Respond_Accept(t *testing.T) {
	ctx := context.Background()

	ledger := mock.NewMockLedger(gomock.NewController(t))
	expectOwnership(ledger)
	ledger.EXPECT().Swap(gomock.Any(), "alice", "cardA", "bob", "cardB").Return(nil)

	m := NewManager(ledger, testTTL)
	session, err := m.Propose(ctx, "alice", "bob", "cardA", "cardB")
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}

	resolved, err := m.Respond(ctx, session.ID, "bob", true)
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if resolved.State != StateAccepted {
		t.Errorf("Respond() state = %v, want StateAccepted", resolved.State)
	}

	// The session is gone once resolved.
	if _, err := m.Get(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get() error = %v, want ErrSessionNotFound", err)
	}
}

func TestManager_Respond_Decline(t *testing.T) {
	ctx := context.Background()

	ledger := mock.NewMockLedger(gomock.NewController(t))
	expectOwnership(ledger)
	// No Swap expectation: declining must not touch the ledger.

	m := NewManager(ledger, testTTL)
	session, err := m.Propose(ctx, "alice", "bob", "cardA", "cardB")
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}

	resolved, err := m.Respond(ctx, session.ID, "bob", false)
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if resolved.State != StateDeclined {
		t.Errorf("Respond() state = %v, want StateDeclined", resolved.State)
	}
}

func TestManager_Respond_WrongResponder(t *testing.T) {
	ctx := context.Background()

	ledger := mock.NewMockLedger(gomock.NewController(t))
	expectOwnership(ledger)

	m := NewManager(ledger, testTTL)
	session, err := m.Propose(ctx, "alice", "bob", "cardA", "cardB")
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}

	// Neither the proposer nor a third party can respond.
	if _, err := m.Respond(ctx, session.ID, "alice", true); !errors.Is(err, ErrNotYourTrade) {
		t.Errorf("Respond() error = %v, want ErrNotYourTrade", err)
	}
	if _, err := m.Respond(ctx, session.ID, "mallory", true); !errors.Is(err, ErrNotYourTrade) {
		t.Errorf("Respond() error = %v, want ErrNotYourTrade", err)
	}
}

func TestManager_Respond_InvalidatedCommit(t *testing.T) {
	ctx := context.Background()

	ledger := mock.NewMockLedger(gomock.NewController(t))
	expectOwnership(ledger)
	ledger.EXPECT().Swap(gomock.Any(), "alice", "cardA", "bob", "cardB").
		Return(repositories.ErrNotOwned)

	m := NewManager(ledger, testTTL)
	session, err := m.Propose(ctx, "alice", "bob", "cardA", "cardB")
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}

	resolved, err := m.Respond(ctx, session.ID, "bob", true)
	if !errors.Is(err, ErrTradeInvalidated) {
		t.Fatalf("Respond() error = %v, want ErrTradeInvalidated", err)
	}
	if resolved.State != StateDeclined {
		t.Errorf("Respond() state = %v, want StateDeclined", resolved.State)
	}
}

func TestManager_Expiry(t *testing.T) {
	ctx := context.Background()

	ledger := mock.NewMockLedger(gomock.NewController(t))
	expectOwnership(ledger)

	expired := make(chan *Session, 1)

	m := NewManager(ledger, 20*time.Millisecond)
	m.SetExpiryHandler(func(s *Session) {
		expired <- s
	})

	session, err := m.Propose(ctx, "alice", "bob", "cardA", "cardB")
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}

	select {
	case s := <-expired:
		if s.State != StateExpired {
			t.Errorf("expired session state = %v, want StateExpired", s.State)
		}
	case <-time.After(time.Second):
		t.Fatal("expiry handler never fired")
	}

	// A late accept finds nothing and the ledger stays untouched.
	if _, err := m.Respond(ctx, session.ID, "bob", true); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Respond() after expiry error = %v, want ErrSessionNotFound", err)
	}
}

func TestManager_Respond_SingleWinner(t *testing.T) {
	ctx := context.Background()

	ledger := mock.NewMockLedger(gomock.NewController(t))
	expectOwnership(ledger)
	ledger.EXPECT().Swap(gomock.Any(), "alice", "cardA", "bob", "cardB").
		Return(nil).MaxTimes(1)

	m := NewManager(ledger, testTTL)
	session, err := m.Propose(ctx, "alice", "bob", "cardA", "cardB")
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}

	const responders = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	var wins, losses int

	for i := 0; i < responders; i++ {
		wg.Add(1)
		go func(accept bool) {
			defer wg.Done()
			_, err := m.Respond(ctx, session.ID, "bob", accept)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrSessionClosed):
				losses++
			default:
				t.Errorf("Respond() unexpected error = %v", err)
			}
		}(i%2 == 0)
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("concurrent Respond() winners = %d, want exactly 1", wins)
	}
	if losses != responders-1 {
		t.Errorf("concurrent Respond() losers = %d, want %d", losses, responders-1)
	}
}

func TestManager_Respond_RetryAfterStoreFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	ledger := mock.NewMockLedger(ctrl)
	expectOwnership(ledger)
	gomock.InOrder(
		ledger.EXPECT().Swap(gomock.Any(), "alice", "cardA", "bob", "cardB").
			Return(&repositories.RepositoryError{Operation: "commit swap", Entity: "user_card", Err: errors.New("connection refused")}),
		ledger.EXPECT().Swap(gomock.Any(), "alice", "cardA", "bob", "cardB").
			Return(nil),
	)

	m := NewManager(ledger, testTTL)
	session, err := m.Propose(ctx, "alice", "bob", "cardA", "cardB")
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}

	if _, err := m.Respond(ctx, session.ID, "bob", true); err == nil {
		t.Fatal("Respond() error = nil, want store failure")
	} else if errors.Is(err, ErrTradeInvalidated) {
		t.Fatalf("Respond() error = %v, want a plain store failure", err)
	}

	// The session survives the failed commit so the counterparty can retry.
	got, err := m.Get(session.ID)
	if err != nil {
		t.Fatalf("Get() after failed commit error = %v", err)
	}
	if got.State != StatePending {
		t.Errorf("session state after failed commit = %v, want StatePending", got.State)
	}

	resolved, err := m.Respond(ctx, session.ID, "bob", true)
	if err != nil {
		t.Fatalf("Respond() retry error = %v", err)
	}
	if resolved.State != StateAccepted {
		t.Errorf("retry state = %v, want StateAccepted", resolved.State)
	}
}
