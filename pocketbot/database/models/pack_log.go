package models

import (
	"time"

	"github.com/uptrace/bun"
)

// PackLog records a single pack opening. Cards starts as the full drawn
// sequence and acts as the wonder-pick sampling pool afterwards: each
// successful pick removes the sampled reference so the same pack cannot be
// sampled without bound.
type PackLog struct {
	bun.BaseModel `bun:"table:pack_logs,alias:pl"`

	ID       int64     `bun:"id,pk,autoincrement"`
	UserID   string    `bun:"user_id,notnull"`
	Cards    []string  `bun:"cards,type:jsonb,notnull"`
	OpenedAt time.Time `bun:"opened_at,notnull,default:current_timestamp"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
