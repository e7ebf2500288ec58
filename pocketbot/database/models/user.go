package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        int64     `bun:"id,pk,autoincrement"`
	DiscordID string    `bun:"discord_id,notnull,unique"`
	Username  string    `bun:"username,notnull"`
	Wins      int64     `bun:"wins,notnull,default:0"`
	Losses    int64     `bun:"losses,notnull,default:0"`

	// CardCount is the aggregate owned-card total joined in by GetTopUsers.
	CardCount int64 `bun:"card_count,scanonly"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
