package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func packLogColumns() []string {
	return []string{"id", "user_id", "cards", "opened_at", "created_at", "updated_at"}
}

func TestPackLogRepository_DrawFromLatest(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPackLogRepository(db, NewCollectionRepository(db))
	ts := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM "pack_logs".+user_id = 'bob'.+ORDER BY opened_at DESC.+FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(packLogColumns()).
			AddRow(7, "bob", []byte(`["c1","c2","c3"]`), ts, ts, ts))
	// The sampled card leaves the pool before the unit moves.
	mock.ExpectExec(`UPDATE "pack_logs".+\["c1","c3"\].+"id" = 7`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM "user_cards".+user_id = 'bob' AND card_id = 'c2' AND amount > 0.+FOR UPDATE`).
		WillReturnRows(userCardRow(sqlmock.NewRows(userCardColumns()), 3, "bob", "c2", 1, ts))
	mock.ExpectExec(`UPDATE "user_cards".+amount = amount - 1.+user_id = 'bob' AND card_id = 'c2'`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "user_cards".+amount = amount \+ 1.+user_id = 'alice' AND card_id = 'c2'`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	cardID, err := repo.DrawFromLatest(context.Background(), "alice", "bob", func(n int) int {
		if n != 3 {
			t.Errorf("pick(n) called with n = %d, want 3", n)
		}
		return 1
	})
	if err != nil {
		t.Fatalf("DrawFromLatest() error = %v", err)
	}
	if cardID != "c2" {
		t.Errorf("DrawFromLatest() = %s, want c2", cardID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPackLogRepository_DrawFromLatest_EmptyPool(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPackLogRepository(db, NewCollectionRepository(db))
	ts := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM "pack_logs".+user_id = 'bob'.+ORDER BY opened_at DESC.+FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(packLogColumns()).
			AddRow(7, "bob", []byte(`[]`), ts, ts, ts))
	mock.ExpectRollback()

	_, err := repo.DrawFromLatest(context.Background(), "alice", "bob", func(int) int { return 0 })
	if !errors.Is(err, ErrNoRecentPack) {
		t.Fatalf("DrawFromLatest() error = %v, want ErrNoRecentPack", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPackLogRepository_DrawFromLatest_NoPack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPackLogRepository(db, NewCollectionRepository(db))

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM "pack_logs".+user_id = 'bob'.+ORDER BY opened_at DESC.+FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(packLogColumns()))
	mock.ExpectRollback()

	_, err := repo.DrawFromLatest(context.Background(), "alice", "bob", func(int) int { return 0 })
	if !errors.Is(err, ErrNoRecentPack) {
		t.Fatalf("DrawFromLatest() error = %v, want ErrNoRecentPack", err)
	}
}

func TestPackLogRepository_DrawFromLatest_PoolDesync(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPackLogRepository(db, NewCollectionRepository(db))
	ts := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM "pack_logs".+user_id = 'bob'.+ORDER BY opened_at DESC.+FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(packLogColumns()).
			AddRow(7, "bob", []byte(`["c1"]`), ts, ts, ts))
	mock.ExpectExec(`UPDATE "pack_logs".+"id" = 7`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// The pool names c1 but the ledger has no such unit: the whole draw
	// rolls back, pool shrink included.
	mock.ExpectQuery(`FROM "user_cards".+user_id = 'bob' AND card_id = 'c1' AND amount > 0.+FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(userCardColumns()))
	mock.ExpectRollback()

	_, err := repo.DrawFromLatest(context.Background(), "alice", "bob", func(int) int { return 0 })
	if !errors.Is(err, ErrNotOwned) {
		t.Fatalf("DrawFromLatest() error = %v, want ErrNotOwned", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
