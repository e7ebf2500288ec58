package repositories

import (
	"context"
	"log/slog"
	"time"

	"github.com/wonderpick/pocketbot/pocketbot/database/models"

	"github.com/uptrace/bun"
)

type UserRepository interface {
	GetOrCreate(ctx context.Context, discordID, username string) (*models.User, error)
	GetByDiscordID(ctx context.Context, discordID string) (*models.User, error)
	RecordBattleResult(ctx context.Context, winnerID, loserID string) error
	GetTopUsers(ctx context.Context, limit int) ([]*models.User, error)
}

type userRepository struct {
	*BaseRepository
}

func NewUserRepository(db *bun.DB) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository(db)}
}

// GetOrCreate lazily creates the user row on first interaction. Concurrent
// first interactions race harmlessly: the insert is a no-op on conflict.
func (r *userRepository) GetOrCreate(ctx context.Context, discordID, username string) (*models.User, error) {
	now := time.Now()
	user := &models.User{
		DiscordID: discordID,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := r.db.NewInsert().
		Model(user).
		On("CONFLICT (discord_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("create", "user", discordID, err)
	}

	return r.GetByDiscordID(ctx, discordID)
}

func (r *userRepository) GetByDiscordID(ctx context.Context, discordID string) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("discord_id = ?", discordID).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "user", discordID, err)
	}
	return user, nil
}

// RecordBattleResult increments the winner's win counter and the loser's loss
// counter in one transaction so a decisive battle is audited as one operation.
func (r *userRepository) RecordBattleResult(ctx context.Context, winnerID, loserID string) error {
	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().
			Model((*models.User)(nil)).
			Set("wins = wins + 1").
			Set("updated_at = ?", time.Now()).
			Where("discord_id = ?", winnerID).
			Exec(ctx); err != nil {
			return r.HandleErrorWithID("record win", "user", winnerID, err)
		}

		if _, err := tx.NewUpdate().
			Model((*models.User)(nil)).
			Set("losses = losses + 1").
			Set("updated_at = ?", time.Now()).
			Where("discord_id = ?", loserID).
			Exec(ctx); err != nil {
			return r.HandleErrorWithID("record loss", "user", loserID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Battle result recorded",
		slog.String("type", "db"),
		slog.String("winner_id", winnerID),
		slog.String("loser_id", loserID))
	return nil
}

// GetTopUsers ranks users by battle wins, breaking ties on collection size.
// The owned-card total rides along on each row as CardCount.
func (r *userRepository) GetTopUsers(ctx context.Context, limit int) ([]*models.User, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var users []*models.User
	err := r.db.NewSelect().
		Model(&users).
		ColumnExpr("u.*").
		ColumnExpr("COALESCE(SUM(uc.amount), 0) AS card_count").
		Join("LEFT JOIN user_cards AS uc ON uc.user_id = u.discord_id").
		GroupExpr("u.id").
		OrderExpr("u.wins DESC").
		OrderExpr("card_count DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("rank users", "user", err)
	}
	return users, nil
}
