package packs

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/wonderpick/pocketbot/pocketbot/catalog"
	"github.com/wonderpick/pocketbot/pocketbot/config"
	"github.com/wonderpick/pocketbot/pocketbot/database/models"
	"github.com/wonderpick/pocketbot/pocketbot/game/mock"
)

func candidatePool() []catalog.Card {
	return []catalog.Card{
		{ID: "c1", Name: "One"},
		{ID: "c2", Name: "Two"},
		{ID: "c3", Name: "Three"},
		{ID: "c4", Name: "Four"},
		{ID: "c5", Name: "Five"},
		{ID: "c6", Name: "Six"},
		{ID: "c7", Name: "Seven"},
	}
}

func TestService_Open(t *testing.T) {
	ctrl := gomock.NewController(t)

	users := mock.NewMockUsers(ctrl)
	users.EXPECT().GetOrCreate(gomock.Any(), "u1", "alice").
		Return(&models.User{DiscordID: "u1", Username: "alice"}, nil)

	source := mock.NewMockSource(ctrl)
	source.EXPECT().FetchCandidates(gomock.Any(), config.MinCandidatePoolSize).Return(candidatePool(), nil)

	var recorded []string
	logs := mock.NewMockPackLogs(ctrl)
	logs.EXPECT().RecordOpening(gomock.Any(), "u1", gomock.Any()).
		DoAndReturn(func(_ context.Context, userID string, cardIDs []string) (*models.PackLog, error) {
			recorded = cardIDs
			return &models.PackLog{UserID: userID, Cards: cardIDs}, nil
		})

	s := NewService(source, logs, users)

	drawn, err := s.Open(context.Background(), "u1", "alice")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if len(drawn) != config.PackSize {
		t.Fatalf("Open() drew %d cards, want %d", len(drawn), config.PackSize)
	}

	// The credited card ids are exactly the drawn cards, in order.
	if len(recorded) != config.PackSize {
		t.Fatalf("RecordOpening() got %d card ids, want %d", len(recorded), config.PackSize)
	}
	pool := make(map[string]bool, len(candidatePool()))
	for _, c := range candidatePool() {
		pool[c.ID] = true
	}
	for i, card := range drawn {
		if recorded[i] != card.ID {
			t.Errorf("recorded[%d] = %s, want %s", i, recorded[i], card.ID)
		}
		if !pool[card.ID] {
			t.Errorf("drawn card %s is not from the candidate pool", card.ID)
		}
	}
}

func TestService_Open_CatalogUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)

	users := mock.NewMockUsers(ctrl)
	users.EXPECT().GetOrCreate(gomock.Any(), "u1", "alice").
		Return(&models.User{DiscordID: "u1"}, nil)

	source := mock.NewMockSource(ctrl)
	source.EXPECT().FetchCandidates(gomock.Any(), config.MinCandidatePoolSize).
		Return(nil, catalog.ErrCatalogUnavailable)

	// No RecordOpening expectation: a failed draw credits nothing.
	logs := mock.NewMockPackLogs(ctrl)

	s := NewService(source, logs, users)

	if _, err := s.Open(context.Background(), "u1", "alice"); !errors.Is(err, catalog.ErrCatalogUnavailable) {
		t.Errorf("Open() error = %v, want ErrCatalogUnavailable", err)
	}
}

func TestService_Open_RecordFailure(t *testing.T) {
	ctrl := gomock.NewController(t)

	users := mock.NewMockUsers(ctrl)
	users.EXPECT().GetOrCreate(gomock.Any(), "u1", "alice").
		Return(&models.User{DiscordID: "u1"}, nil)

	source := mock.NewMockSource(ctrl)
	source.EXPECT().FetchCandidates(gomock.Any(), config.MinCandidatePoolSize).Return(candidatePool(), nil)

	wantErr := errors.New("store down")
	logs := mock.NewMockPackLogs(ctrl)
	logs.EXPECT().RecordOpening(gomock.Any(), "u1", gomock.Any()).Return(nil, wantErr)

	s := NewService(source, logs, users)

	if _, err := s.Open(context.Background(), "u1", "alice"); !errors.Is(err, wantErr) {
		t.Errorf("Open() error = %v, want %v", err, wantErr)
	}
}
