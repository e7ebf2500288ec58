// models/user_card.go
package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UserCard is one multiset entry of a user's collection: Amount units of a
// single catalog card reference. Rows are kept at amount = 0 after a card is
// traded away; reads filter on amount > 0.
type UserCard struct {
	bun.BaseModel `bun:"table:user_cards,alias:uc"`

	ID       int64     `bun:"id,pk,autoincrement"`
	UserID   string    `bun:"user_id,notnull"`
	CardID   string    `bun:"card_id,notnull"`
	Amount   int64     `bun:"amount,notnull,default:1"`
	Obtained time.Time `bun:"obtained,notnull,default:current_timestamp"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
