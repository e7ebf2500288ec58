// Package wonderpick implements the gamble that samples one card from another
// user's most recent pack and transfers it to the requester.
package wonderpick

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"log/slog"

	"github.com/wonderpick/pocketbot/pocketbot/database/models"
	"github.com/wonderpick/pocketbot/pocketbot/database/repositories"
)

var (
	ErrSelfPick = errors.New("cannot wonder pick your own pack")

	// ErrNoRecentPack mirrors the repository sentinel so callers depend on
	// this package only.
	ErrNoRecentPack = repositories.ErrNoRecentPack

	// ErrPoolDesync reports a pack pool that names a card the ledger says the
	// target no longer holds. This is an internal consistency violation, not
	// user error, and is logged as such.
	ErrPoolDesync = errors.New("pack pool out of sync with collection ledger")
)

// Logs is the repository slice the sampler needs: the transactional
// draw-and-transfer primitive.
type Logs interface {
	DrawFromLatest(ctx context.Context, requesterID, targetID string, pick repositories.PickFunc) (string, error)
}

// Users creates user rows lazily on first interaction.
type Users interface {
	GetOrCreate(ctx context.Context, discordID, username string) (*models.User, error)
}

type Service struct {
	logs  Logs
	users Users

	mu  sync.Mutex
	rng *rand.Rand
}

func NewService(logs Logs, users Users) *Service {
	return &Service{
		logs:  logs,
		users: users,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Pick samples one card uniformly at random from the target's latest pack
// pool and moves it to the requester. The sampled card is removed from the
// pool so a pack cannot be re-sampled without bound. The requester's user
// row is created here when the pick is their first interaction.
func (s *Service) Pick(ctx context.Context, requesterID, requesterName, targetID string) (string, error) {
	if requesterID == targetID {
		return "", ErrSelfPick
	}

	if _, err := s.users.GetOrCreate(ctx, requesterID, requesterName); err != nil {
		return "", fmt.Errorf("failed to ensure user: %w", err)
	}

	cardID, err := s.logs.DrawFromLatest(ctx, requesterID, targetID, s.pick)
	if err != nil {
		if errors.Is(err, repositories.ErrNotOwned) {
			slog.Error("Wonder pick pool desync detected",
				slog.String("type", "error"),
				slog.String("requester_id", requesterID),
				slog.String("target_id", targetID),
				slog.String("card_id", cardID))
			return "", fmt.Errorf("%w: target %s, card %s", ErrPoolDesync, targetID, cardID)
		}
		return "", err
	}

	slog.Info("Wonder pick succeeded",
		slog.String("type", "cmd"),
		slog.String("requester_id", requesterID),
		slog.String("target_id", targetID),
		slog.String("card_id", cardID))
	return cardID, nil
}

func (s *Service) pick(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
