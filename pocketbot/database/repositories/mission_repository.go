package repositories

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/wonderpick/pocketbot/pocketbot/database/models"

	"github.com/uptrace/bun"
)

var (
	ErrUnknownMission = errors.New("unknown mission")
	ErrNotCompleted   = errors.New("mission not completed")
	ErrAlreadyClaimed = errors.New("mission reward already claimed")
)

type MissionRepository interface {
	GetAllByUserID(ctx context.Context, userID string) ([]*models.Mission, error)
	EnsureDefaults(ctx context.Context, userID string) error
	AddProgress(ctx context.Context, userID, missionID string, n int) error
	Claim(ctx context.Context, userID, missionID string) (string, error)
}

type missionRepository struct {
	*BaseRepository
}

func NewMissionRepository(db *bun.DB) MissionRepository {
	return &missionRepository{BaseRepository: NewBaseRepository(db)}
}

// defaultMissions is the mission set seeded for every user on first listing.
var defaultMissions = []models.Mission{
	{MissionID: "open_first_pack", Name: "Pack Rookie", Description: "Open your first pack", Goal: 1, Reward: "booster_token"},
	{MissionID: "open_ten_packs", Name: "Pack Addict", Description: "Open 10 packs", Goal: 10, Reward: "rare_booster_token"},
	{MissionID: "win_first_battle", Name: "First Victory", Description: "Win a battle", Goal: 1, Reward: "battle_badge"},
	{MissionID: "win_five_battles", Name: "Arena Regular", Description: "Win 5 battles", Goal: 5, Reward: "arena_trophy"},
	{MissionID: "complete_trade", Name: "Deal Maker", Description: "Complete a trade with another player", Goal: 1, Reward: "trade_token"},
	{MissionID: "wonder_pick", Name: "Lucky Hand", Description: "Win a card through wonder pick", Goal: 1, Reward: "wonder_charm"},
}

func (r *missionRepository) GetAllByUserID(ctx context.Context, userID string) ([]*models.Mission, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var missions []*models.Mission
	err := r.db.NewSelect().
		Model(&missions).
		Where("user_id = ?", userID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list missions", "mission", err)
	}
	return missions, nil
}

// EnsureDefaults seeds the default mission set for a user. Safe to call on
// every interaction: existing rows are left untouched.
func (r *missionRepository) EnsureDefaults(ctx context.Context, userID string) error {
	now := time.Now()
	rows := make([]*models.Mission, 0, len(defaultMissions))
	for _, m := range defaultMissions {
		mission := m
		mission.UserID = userID
		mission.CreatedAt = now
		mission.UpdatedAt = now
		rows = append(rows, &mission)
	}

	_, err := r.db.NewInsert().
		Model(&rows).
		On("CONFLICT (user_id, mission_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return r.HandleError("seed missions", "mission", err)
	}
	return nil
}

// AddProgress advances a mission counter. Progress past the goal is clamped
// at write time so completion stays a stable predicate.
func (r *missionRepository) AddProgress(ctx context.Context, userID, missionID string, n int) error {
	_, err := r.db.NewUpdate().
		Model((*models.Mission)(nil)).
		Set("progress = LEAST(progress + ?, goal)", n).
		Set("updated_at = ?", time.Now()).
		Where("user_id = ? AND mission_id = ? AND claimed = false", userID, missionID).
		Exec(ctx)
	if err != nil {
		return r.HandleError("add progress", "mission", err)
	}
	return nil
}

// Claim flips claimed to true and returns the reward identifier. The check
// and the flip run inside one transaction under a row lock, which makes the
// claim at-most-once even when the same user double-clicks.
func (r *missionRepository) Claim(ctx context.Context, userID, missionID string) (string, error) {
	var reward string

	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		mission := new(models.Mission)
		err := tx.NewSelect().
			Model(mission).
			Where("user_id = ? AND mission_id = ?", userID, missionID).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrUnknownMission
			}
			return r.HandleErrorWithID("lock mission", "mission", missionID, err)
		}

		if !mission.Completed() {
			return ErrNotCompleted
		}
		if mission.Claimed {
			return ErrAlreadyClaimed
		}

		now := time.Now()
		_, err = tx.NewUpdate().
			Model((*models.Mission)(nil)).
			Set("claimed = true").
			Set("claimed_at = ?", now).
			Set("updated_at = ?", now).
			Where("id = ?", mission.ID).
			Exec(ctx)
		if err != nil {
			return r.HandleErrorWithID("mark claimed", "mission", missionID, err)
		}

		reward = mission.Reward
		return nil
	})
	if err != nil {
		return "", err
	}

	slog.Info("Mission reward claimed",
		slog.String("type", "db"),
		slog.String("user_id", userID),
		slog.String("mission_id", missionID),
		slog.String("reward", reward))
	return reward, nil
}
