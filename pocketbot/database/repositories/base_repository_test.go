package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
)

func TestBaseRepository_HandleError(t *testing.T) {
	br := &BaseRepository{}

	if err := br.HandleError("get", "user", nil); err != nil {
		t.Errorf("HandleError(nil) = %v, want nil", err)
	}

	err := br.HandleErrorWithID("get", "user", "u1", sql.ErrNoRows)
	if !IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = false, want true", err)
	}
	if IsRepositoryError(err) {
		t.Errorf("IsRepositoryError(%v) = true for a missing row", err)
	}

	err = br.HandleError("commit swap", "user_card", errors.New("connection reset"))
	if !IsRepositoryError(err) {
		t.Errorf("IsRepositoryError(%v) = false, want true", err)
	}
	if IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = true for a driver failure", err)
	}
}

func TestBaseRepository_ErrorClassSurvivesWrapping(t *testing.T) {
	br := &BaseRepository{}

	wrapped := fmt.Errorf("resolving trade: %w", br.HandleError("swap", "user_card", errors.New("down")))
	if !IsRepositoryError(wrapped) {
		t.Errorf("IsRepositoryError() = false for a wrapped store failure")
	}

	wrapped = fmt.Errorf("profile: %w", br.HandleErrorWithID("get", "user", "u1", sql.ErrNoRows))
	if !IsNotFound(wrapped) {
		t.Errorf("IsNotFound() = false for a wrapped missing row")
	}
}
