package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Mission struct {
	bun.BaseModel `bun:"table:missions,alias:m"`

	ID          int64      `bun:"id,pk,autoincrement"`
	UserID      string     `bun:"user_id,notnull"`
	MissionID   string     `bun:"mission_id,notnull"`
	Name        string     `bun:"name,notnull"`
	Description string     `bun:"description,notnull"`
	Progress    int        `bun:"progress,notnull,default:0"`
	Goal        int        `bun:"goal,notnull"`
	Reward      string     `bun:"reward,notnull"`
	Claimed     bool       `bun:"claimed,notnull,default:false"`
	ClaimedAt   *time.Time `bun:"claimed_at"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// Completed is derived, not stored: a mission is complete once progress has
// reached its goal.
func (m *Mission) Completed() bool {
	return m.Progress >= m.Goal
}
