// Package packs implements pack openings: drawing card definitions from the
// catalog and crediting them to a user's collection alongside an immutable
// pack log entry used later as the wonder-pick sampling pool.
package packs

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"log/slog"

	"github.com/wonderpick/pocketbot/pocketbot/catalog"
	"github.com/wonderpick/pocketbot/pocketbot/config"
	"github.com/wonderpick/pocketbot/pocketbot/database/models"
)

// Logs is the slice of the pack log repository the service needs.
type Logs interface {
	RecordOpening(ctx context.Context, userID string, cardIDs []string) (*models.PackLog, error)
}

// Users creates user rows lazily on first interaction.
type Users interface {
	GetOrCreate(ctx context.Context, discordID, username string) (*models.User, error)
}

type Service struct {
	catalog catalog.Source
	logs    Logs
	users   Users

	mu  sync.Mutex
	rng *rand.Rand
}

func NewService(source catalog.Source, logs Logs, users Users) *Service {
	return &Service{
		catalog: source,
		logs:    logs,
		users:   users,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Open draws a pack's worth of cards from a candidate pool, credits them to
// the user and records the pack log. The credits and the log append commit
// atomically in the store.
func (s *Service) Open(ctx context.Context, userID, username string) ([]catalog.Card, error) {
	if _, err := s.users.GetOrCreate(ctx, userID, username); err != nil {
		return nil, fmt.Errorf("failed to ensure user: %w", err)
	}

	candidates, err := s.catalog.FetchCandidates(ctx, config.MinCandidatePoolSize)
	if err != nil {
		return nil, err
	}

	drawn := s.sample(candidates, config.PackSize)

	refs := make([]string, len(drawn))
	for i, card := range drawn {
		refs[i] = card.ID
	}

	if _, err := s.logs.RecordOpening(ctx, userID, refs); err != nil {
		return nil, err
	}

	slog.Info("Pack opened",
		slog.String("type", "cmd"),
		slog.String("user_id", userID),
		slog.Any("cards", refs))
	return drawn, nil
}

// sample picks n cards uniformly at random without replacement.
func (s *Service) sample(pool []catalog.Card, n int) []catalog.Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	picked := make([]catalog.Card, len(pool))
	copy(picked, pool)
	s.rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked[:n]
}
