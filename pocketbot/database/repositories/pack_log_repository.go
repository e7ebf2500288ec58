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

// ErrNoRecentPack is returned when a user has no pack log, or their latest
// pack's sampling pool has been emptied by wonder picks.
var ErrNoRecentPack = errors.New("no recent pack available")

// PickFunc selects an index in [0, n). Injected so the uniform random choice
// is substitutable in tests.
type PickFunc func(n int) int

type PackLogRepository interface {
	RecordOpening(ctx context.Context, userID string, cardIDs []string) (*models.PackLog, error)
	GetLatest(ctx context.Context, userID string) (*models.PackLog, error)
	GetAllByUserID(ctx context.Context, userID string) ([]*models.PackLog, error)
	DrawFromLatest(ctx context.Context, requesterID, targetID string, pick PickFunc) (string, error)
}

type packLogRepository struct {
	*BaseRepository
	collections CollectionRepository
}

func NewPackLogRepository(db *bun.DB, collections CollectionRepository) PackLogRepository {
	return &packLogRepository{BaseRepository: NewBaseRepository(db), collections: collections}
}

// RecordOpening credits every drawn card to the user's collection and appends
// the pack log entry in one transaction. The ledger credits and the log append
// are a single atomic unit; a crash mid-way leaves neither behind.
func (r *packLogRepository) RecordOpening(ctx context.Context, userID string, cardIDs []string) (*models.PackLog, error) {
	now := time.Now()
	log := &models.PackLog{
		UserID:    userID,
		Cards:     cardIDs,
		OpenedAt:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		for _, cardID := range cardIDs {
			if _, err := r.collections.AddCardTx(ctx, tx, userID, cardID); err != nil {
				return err
			}
		}

		if _, err := tx.NewInsert().Model(log).Exec(ctx); err != nil {
			return r.HandleError("append pack log", "pack_log", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Pack opening recorded",
		slog.String("type", "db"),
		slog.String("user_id", userID),
		slog.Int("cards", len(cardIDs)))
	return log, nil
}

func (r *packLogRepository) GetLatest(ctx context.Context, userID string) (*models.PackLog, error) {
	log := new(models.PackLog)
	err := r.db.NewSelect().
		Model(log).
		Where("user_id = ?", userID).
		Order("opened_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoRecentPack
		}
		return nil, r.HandleError("get latest pack", "pack_log", err)
	}
	return log, nil
}

func (r *packLogRepository) GetAllByUserID(ctx context.Context, userID string) ([]*models.PackLog, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var logs []*models.PackLog
	err := r.db.NewSelect().
		Model(&logs).
		Where("user_id = ?", userID).
		Order("opened_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list pack logs", "pack_log", err)
	}
	return logs, nil
}

// DrawFromLatest samples one card from the target's most recent pack pool,
// removes it from the pool and moves one unit from target to requester, all
// inside one serializable transaction. Returns ErrNoRecentPack when there is
// nothing to sample and ErrNotOwned when the ledger disagrees with the pool
// about the target's holdings.
func (r *packLogRepository) DrawFromLatest(ctx context.Context, requesterID, targetID string, pick PickFunc) (string, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return "", r.HandleError("begin wonder pick", "pack_log", err)
	}
	defer tx.Rollback()

	log := new(models.PackLog)
	err = tx.NewSelect().
		Model(log).
		Where("user_id = ?", targetID).
		OrderExpr("opened_at DESC").
		Limit(1).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNoRecentPack
		}
		return "", r.HandleError("lock pack log", "pack_log", err)
	}

	if len(log.Cards) == 0 {
		return "", ErrNoRecentPack
	}

	idx := pick(len(log.Cards))
	cardID := log.Cards[idx]

	remaining := make([]string, 0, len(log.Cards)-1)
	remaining = append(remaining, log.Cards[:idx]...)
	remaining = append(remaining, log.Cards[idx+1:]...)

	log.Cards = remaining
	log.UpdatedAt = time.Now()
	_, err = tx.NewUpdate().
		Model(log).
		Column("cards", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return "", r.HandleError("shrink pack pool", "pack_log", err)
	}

	if err := r.collections.TransferTx(ctx, tx, targetID, requesterID, cardID); err != nil {
		return cardID, err
	}

	if err := tx.Commit(); err != nil {
		return "", r.HandleError("commit wonder pick", "pack_log", err)
	}
	return cardID, nil
}
