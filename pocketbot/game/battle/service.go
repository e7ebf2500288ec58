package battle

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"log/slog"

	"github.com/wonderpick/pocketbot/pocketbot/catalog"
	"github.com/wonderpick/pocketbot/pocketbot/database/models"
)

var (
	ErrNoCards    = errors.New("both players must own at least one card to battle")
	ErrSelfBattle = errors.New("cannot battle yourself")
)

// Collections is the ledger read surface the resolver needs.
type Collections interface {
	GetAllByUserID(ctx context.Context, userID string) ([]*models.UserCard, error)
}

// Users records decisive outcomes.
type Users interface {
	RecordBattleResult(ctx context.Context, winnerID, loserID string) error
}

// Result pairs the pure outcome with the participants.
type Result struct {
	Outcome
	ChallengerID string
	OpponentID   string
}

type Service struct {
	collections Collections
	users       Users
	catalog     catalog.Source

	mu  sync.Mutex
	rng *rand.Rand
}

func NewService(collections Collections, users Users, source catalog.Source) *Service {
	return &Service{
		collections: collections,
		users:       users,
		catalog:     source,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Battle picks one random owned card per side, resolves the outcome and, on a
// decisive result, records the win/loss pair as one logical operation. Draws
// mutate nothing.
func (s *Service) Battle(ctx context.Context, challengerID, opponentID string) (*Result, error) {
	if challengerID == opponentID {
		return nil, ErrSelfBattle
	}

	challengerCards, err := s.collections.GetAllByUserID(ctx, challengerID)
	if err != nil {
		return nil, err
	}
	opponentCards, err := s.collections.GetAllByUserID(ctx, opponentID)
	if err != nil {
		return nil, err
	}
	if len(challengerCards) == 0 || len(opponentCards) == 0 {
		return nil, ErrNoCards
	}

	challengerPick := s.randomCard(challengerCards)
	opponentPick := s.randomCard(opponentCards)

	challengerCard, err := s.catalog.FindByID(ctx, challengerPick.CardID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up challenger card: %w", err)
	}
	opponentCard, err := s.catalog.FindByID(ctx, opponentPick.CardID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up opponent card: %w", err)
	}

	outcome := ResolveOutcome(*challengerCard, *opponentCard)
	result := &Result{
		Outcome:      outcome,
		ChallengerID: challengerID,
		OpponentID:   opponentID,
	}

	switch outcome.Verdict {
	case ChallengerWins:
		err = s.users.RecordBattleResult(ctx, challengerID, opponentID)
	case OpponentWins:
		err = s.users.RecordBattleResult(ctx, opponentID, challengerID)
	default:
		slog.Info("Battle ended in a draw",
			slog.String("type", "cmd"),
			slog.String("challenger_id", challengerID),
			slog.String("opponent_id", opponentID))
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	slog.Info("Battle resolved",
		slog.String("type", "cmd"),
		slog.String("challenger_id", challengerID),
		slog.String("opponent_id", opponentID),
		slog.Int("challenger_damage", outcome.ChallengerDamage),
		slog.Int("opponent_damage", outcome.OpponentDamage))
	return result, nil
}

// randomCard selects one entry uniformly over rows; each row is one card
// reference the user holds at least one unit of.
func (s *Service) randomCard(cards []*models.UserCard) *models.UserCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cards[s.rng.Intn(len(cards))]
}
