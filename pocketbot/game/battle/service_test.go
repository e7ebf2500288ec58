package battle

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/wonderpick/pocketbot/pocketbot/catalog"
	"github.com/wonderpick/pocketbot/pocketbot/database/models"
	"github.com/wonderpick/pocketbot/pocketbot/game/mock"
)

func TestService_Battle_SelfBattle(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := NewService(mock.NewMockCollections(ctrl), mock.NewMockUsers(ctrl), mock.NewMockSource(ctrl))

	if _, err := s.Battle(context.Background(), "u1", "u1"); !errors.Is(err, ErrSelfBattle) {
		t.Errorf("Battle() error = %v, want ErrSelfBattle", err)
	}
}

func TestService_Battle_NoCards(t *testing.T) {
	ctrl := gomock.NewController(t)
	collections := mock.NewMockCollections(ctrl)
	collections.EXPECT().GetAllByUserID(gomock.Any(), "u1").Return([]*models.UserCard{
		{UserID: "u1", CardID: "c1", Amount: 1},
	}, nil)
	collections.EXPECT().GetAllByUserID(gomock.Any(), "u2").Return(nil, nil)

	s := NewService(collections, mock.NewMockUsers(ctrl), mock.NewMockSource(ctrl))

	if _, err := s.Battle(context.Background(), "u1", "u2"); !errors.Is(err, ErrNoCards) {
		t.Errorf("Battle() error = %v, want ErrNoCards", err)
	}
}

func TestService_Battle_DecisiveRecordsResult(t *testing.T) {
	ctrl := gomock.NewController(t)

	collections := mock.NewMockCollections(ctrl)
	collections.EXPECT().GetAllByUserID(gomock.Any(), "u1").Return([]*models.UserCard{
		{UserID: "u1", CardID: "strong", Amount: 1},
	}, nil)
	collections.EXPECT().GetAllByUserID(gomock.Any(), "u2").Return([]*models.UserCard{
		{UserID: "u2", CardID: "weak", Amount: 2},
	}, nil)

	source := mock.NewMockSource(ctrl)
	source.EXPECT().FindByID(gomock.Any(), "strong").
		Return(&catalog.Card{ID: "strong", Attack: 80, Defense: 60}, nil)
	source.EXPECT().FindByID(gomock.Any(), "weak").
		Return(&catalog.Card{ID: "weak", Attack: 50, Defense: 40}, nil)

	users := mock.NewMockUsers(ctrl)
	users.EXPECT().RecordBattleResult(gomock.Any(), "u1", "u2").Return(nil)

	s := NewService(collections, users, source)

	result, err := s.Battle(context.Background(), "u1", "u2")
	if err != nil {
		t.Fatalf("Battle() error = %v", err)
	}
	if result.Verdict != ChallengerWins {
		t.Errorf("Battle() verdict = %v, want ChallengerWins", result.Verdict)
	}
	if result.ChallengerDamage != 40 || result.OpponentDamage != 1 {
		t.Errorf("Battle() damage = %d/%d, want 40/1", result.ChallengerDamage, result.OpponentDamage)
	}
}

func TestService_Battle_DrawRecordsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)

	collections := mock.NewMockCollections(ctrl)
	collections.EXPECT().GetAllByUserID(gomock.Any(), "u1").Return([]*models.UserCard{
		{UserID: "u1", CardID: "c1", Amount: 1},
	}, nil)
	collections.EXPECT().GetAllByUserID(gomock.Any(), "u2").Return([]*models.UserCard{
		{UserID: "u2", CardID: "c2", Amount: 1},
	}, nil)

	source := mock.NewMockSource(ctrl)
	source.EXPECT().FindByID(gomock.Any(), "c1").
		Return(&catalog.Card{ID: "c1", Attack: 50, Defense: 30}, nil)
	source.EXPECT().FindByID(gomock.Any(), "c2").
		Return(&catalog.Card{ID: "c2", Attack: 50, Defense: 30}, nil)

	// No RecordBattleResult expectation: a draw must not touch the records.
	users := mock.NewMockUsers(ctrl)

	s := NewService(collections, users, source)

	result, err := s.Battle(context.Background(), "u1", "u2")
	if err != nil {
		t.Fatalf("Battle() error = %v", err)
	}
	if result.Verdict != Draw {
		t.Errorf("Battle() verdict = %v, want Draw", result.Verdict)
	}
}
