package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wonderpick/pocketbot/pocketbot/database/models"

	"github.com/uptrace/bun"
)

// ErrNotOwned is returned when a transfer source holds zero units of the card
// at the instant the transfer transaction runs.
var ErrNotOwned = errors.New("card not owned")

// CollectionRepository is the collection ledger: it owns the invariant that a
// unit of a card reference belongs to exactly one owner at a time. A transfer
// moves one unit between owners with no net creation or loss; the check and
// the move happen inside a single serializable transaction.
type CollectionRepository interface {
	AddCard(ctx context.Context, userID, cardID string) (*models.UserCard, error)
	AddCardTx(ctx context.Context, tx bun.IDB, userID, cardID string) (*models.UserCard, error)
	Transfer(ctx context.Context, fromID, toID, cardID string) error
	TransferTx(ctx context.Context, tx bun.Tx, fromID, toID, cardID string) error
	Swap(ctx context.Context, userA, cardA, userB, cardB string) error
	GetAllByUserID(ctx context.Context, userID string) ([]*models.UserCard, error)
	GetUserCard(ctx context.Context, userID, cardID string) (*models.UserCard, error)
	OwnedCount(ctx context.Context, userID string) (int64, error)
}

type collectionRepository struct {
	*BaseRepository
}

func NewCollectionRepository(db *bun.DB) CollectionRepository {
	return &collectionRepository{BaseRepository: NewBaseRepository(db)}
}

// AddCard credits one unit of cardID to userID. Every call adds one unit;
// owning multiple copies of the same reference is allowed.
func (r *collectionRepository) AddCard(ctx context.Context, userID, cardID string) (*models.UserCard, error) {
	return r.AddCardTx(ctx, r.db, userID, cardID)
}

func (r *collectionRepository) AddCardTx(ctx context.Context, tx bun.IDB, userID, cardID string) (*models.UserCard, error) {
	now := time.Now()
	userCard := &models.UserCard{
		UserID:    userID,
		CardID:    cardID,
		Amount:    1,
		Obtained:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := tx.NewInsert().
		Model(userCard).
		On("CONFLICT (user_id, card_id) DO UPDATE").
		Set("amount = uc.amount + 1").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, r.HandleError("add card", "user_card", err)
	}
	return userCard, nil
}

// Transfer atomically moves one unit of cardID from fromID to toID. Fails
// with ErrNotOwned when the source holds zero units; the unit is never left
// absent from both sides or present on both.
func (r *collectionRepository) Transfer(ctx context.Context, fromID, toID, cardID string) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return r.HandleError("begin transfer", "user_card", err)
	}
	defer tx.Rollback()

	if err := r.TransferTx(ctx, tx, fromID, toID, cardID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return r.HandleError("commit transfer", "user_card", err)
	}
	return nil
}

// TransferTx performs the transfer inside the caller's transaction so it can
// be composed with other mutations (the wonder-pick pool shrink).
func (r *collectionRepository) TransferTx(ctx context.Context, tx bun.Tx, fromID, toID, cardID string) error {
	var source models.UserCard
	err := tx.NewSelect().
		Model(&source).
		Where("user_id = ? AND card_id = ? AND amount > 0", fromID, cardID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotOwned
		}
		return r.HandleError("lock source card", "user_card", err)
	}

	if err := r.moveUnit(ctx, tx, fromID, toID, cardID); err != nil {
		return err
	}

	slog.Info("Card transferred",
		slog.String("type", "db"),
		slog.String("from", fromID),
		slog.String("to", toID),
		slog.String("card_id", cardID))
	return nil
}

// Swap executes a two-way exchange as a single atomic unit: both transfers
// succeed or neither does. Ownership of both cards is re-validated under row
// locks at commit time, not only at proposal time.
func (r *collectionRepository) Swap(ctx context.Context, userA, cardA, userB, cardB string) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return r.HandleError("begin swap", "user_card", err)
	}
	defer tx.Rollback()

	// Lock both source rows in a deterministic order so two mirrored swaps
	// cannot deadlock.
	first, firstCard, second, secondCard := userA, cardA, userB, cardB
	if userB+cardB < userA+cardA {
		first, firstCard, second, secondCard = userB, cardB, userA, cardA
	}

	for _, side := range []struct{ user, card string }{
		{first, firstCard},
		{second, secondCard},
	} {
		var owned models.UserCard
		err := tx.NewSelect().
			Model(&owned).
			Where("user_id = ? AND card_id = ? AND amount > 0", side.user, side.card).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("user %s no longer owns %s: %w", side.user, side.card, ErrNotOwned)
			}
			return r.HandleError("verify ownership", "user_card", err)
		}
	}

	if err := r.moveUnit(ctx, tx, userA, userB, cardA); err != nil {
		return err
	}
	if err := r.moveUnit(ctx, tx, userB, userA, cardB); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return r.HandleError("commit swap", "user_card", err)
	}

	slog.Info("Cards swapped",
		slog.String("type", "db"),
		slog.String("user_a", userA),
		slog.String("card_a", cardA),
		slog.String("user_b", userB),
		slog.String("card_b", cardB))
	return nil
}

// moveUnit decrements one unit from the source row and credits it to the
// recipient, inserting a fresh row when the recipient has never held the card.
func (r *collectionRepository) moveUnit(ctx context.Context, tx bun.Tx, fromID, toID, cardID string) error {
	res, err := tx.NewUpdate().
		Model((*models.UserCard)(nil)).
		Set("amount = amount - 1").
		Set("updated_at = ?", time.Now()).
		Where("user_id = ? AND card_id = ? AND amount > 0", fromID, cardID).
		Exec(ctx)
	if err != nil {
		return r.HandleError("debit card", "user_card", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return r.HandleError("debit card", "user_card", err)
	}
	if affected == 0 {
		return ErrNotOwned
	}

	res, err = tx.NewUpdate().
		Model((*models.UserCard)(nil)).
		Set("amount = amount + 1").
		Set("updated_at = ?", time.Now()).
		Where("user_id = ? AND card_id = ?", toID, cardID).
		Exec(ctx)
	if err != nil {
		return r.HandleError("credit card", "user_card", err)
	}
	affected, err = res.RowsAffected()
	if err != nil {
		return r.HandleError("credit card", "user_card", err)
	}

	if affected == 0 {
		// Recipient has never held this card; the upsert creates the row.
		if _, err := r.AddCardTx(ctx, tx, toID, cardID); err != nil {
			return err
		}
	}
	return nil
}

// GetAllByUserID returns a snapshot of the user's owned multiset.
func (r *collectionRepository) GetAllByUserID(ctx context.Context, userID string) ([]*models.UserCard, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var userCards []*models.UserCard
	err := r.db.NewSelect().
		Model(&userCards).
		Where("user_id = ? AND amount > 0", userID).
		Order("obtained DESC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("list cards", "user_card", err)
	}
	return userCards, nil
}

func (r *collectionRepository) GetUserCard(ctx context.Context, userID, cardID string) (*models.UserCard, error) {
	userCard := new(models.UserCard)
	err := r.db.NewSelect().
		Model(userCard).
		Where("user_id = ? AND card_id = ? AND amount > 0", userID, cardID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotOwned
		}
		return nil, r.HandleError("get card", "user_card", err)
	}
	return userCard, nil
}

// OwnedCount returns the total number of units the user holds.
func (r *collectionRepository) OwnedCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.NewSelect().
		Model((*models.UserCard)(nil)).
		ColumnExpr("COALESCE(SUM(amount), 0)").
		Where("user_id = ?", userID).
		Scan(ctx, &count)
	if err != nil {
		return 0, r.HandleError("count cards", "user_card", err)
	}
	return count, nil
}
