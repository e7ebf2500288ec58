package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func userColumns() []string {
	return []string{"id", "discord_id", "username", "wins", "losses", "card_count", "created_at", "updated_at"}
}

func TestUserRepository_GetTopUsers(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	ts := time.Now()

	// Ranking is wins first, collection size as the tiebreak; the owned-card
	// aggregate joins in as card_count.
	mock.ExpectQuery(`SELECT u\.\*, COALESCE\(SUM\(uc\.amount\), 0\) AS card_count.+LEFT JOIN user_cards AS uc ON uc\.user_id = u\.discord_id.+GROUP BY u\.id.+ORDER BY u\.wins DESC, card_count DESC.+LIMIT 10`).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(1, "u1", "alice", 5, 1, 42, ts, ts).
			AddRow(2, "u2", "bob", 5, 0, 17, ts, ts).
			AddRow(3, "u3", "carol", 2, 3, 60, ts, ts))

	users, err := repo.GetTopUsers(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetTopUsers() error = %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("GetTopUsers() returned %d users, want 3", len(users))
	}
	if users[0].Username != "alice" || users[0].CardCount != 42 {
		t.Errorf("users[0] = %s with %d cards, want alice with 42", users[0].Username, users[0].CardCount)
	}
	if users[2].CardCount != 60 {
		t.Errorf("users[2].CardCount = %d, want 60", users[2].CardCount)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
