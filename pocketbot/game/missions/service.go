// Package missions tracks per-user mission progress and enforces at-most-once
// reward claims.
package missions

import (
	"context"

	"log/slog"

	"github.com/wonderpick/pocketbot/pocketbot/database/models"
	"github.com/wonderpick/pocketbot/pocketbot/database/repositories"
)

// Claim error sentinels, re-exported so callers depend on this package only.
var (
	ErrUnknownMission = repositories.ErrUnknownMission
	ErrNotCompleted   = repositories.ErrNotCompleted
	ErrAlreadyClaimed = repositories.ErrAlreadyClaimed
)

// Repo is the mission repository slice the service needs.
type Repo interface {
	GetAllByUserID(ctx context.Context, userID string) ([]*models.Mission, error)
	EnsureDefaults(ctx context.Context, userID string) error
	AddProgress(ctx context.Context, userID, missionID string, n int) error
	Claim(ctx context.Context, userID, missionID string) (string, error)
}

type Users interface {
	GetOrCreate(ctx context.Context, discordID, username string) (*models.User, error)
}

type Service struct {
	missions Repo
	users    Users
}

func NewService(missions Repo, users Users) *Service {
	return &Service{missions: missions, users: users}
}

// List returns the user's missions, seeding the default set on first contact.
func (s *Service) List(ctx context.Context, userID, username string) ([]*models.Mission, error) {
	if _, err := s.users.GetOrCreate(ctx, userID, username); err != nil {
		return nil, err
	}
	if err := s.missions.EnsureDefaults(ctx, userID); err != nil {
		return nil, err
	}
	return s.missions.GetAllByUserID(ctx, userID)
}

// Claim hands out a completed mission's reward exactly once. Concurrent
// double-claims serialize in the store; the loser sees ErrAlreadyClaimed.
func (s *Service) Claim(ctx context.Context, userID, missionID string) (string, error) {
	return s.missions.Claim(ctx, userID, missionID)
}

// Track advances a mission counter in response to a gameplay event. Failures
// are logged but never fail the triggering operation.
func (s *Service) Track(ctx context.Context, userID, missionID string, n int) {
	if err := s.missions.AddProgress(ctx, userID, missionID, n); err != nil {
		slog.Warn("Failed to track mission progress",
			slog.String("type", "sys"),
			slog.String("user_id", userID),
			slog.String("mission_id", missionID),
			slog.Any("error", err))
	}
}
