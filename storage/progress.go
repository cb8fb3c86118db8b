package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lessonbot/types"
)

// ProgressStore persists per-user section completion.
type ProgressStore struct {
	db *gorm.DB
}

func NewProgressStore(db *gorm.DB) *ProgressStore {
	return &ProgressStore{db: db}
}

// MarkSection records that a user finished a section. Repeat completions
// upsert onto the existing row, so marking is idempotent per (user,
// section). The section must belong to an existing lesson.
func (s *ProgressStore) MarkSection(ctx context.Context, userID string, sectionID uuid.UUID) (*types.SectionProgress, error) {
	var section types.Section
	err := s.db.WithContext(ctx).First(&section, "id = ?", sectionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("look up section: %w", err)
	}

	now := time.Now().UTC()
	progress := types.SectionProgress{
		ID:          uuid.New(),
		UserID:      userID,
		SectionID:   sectionID,
		LessonID:    section.LessonID,
		Completed:   true,
		CompletedAt: &now,
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "section_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed", "completed_at", "updated_at"}),
	}).Create(&progress).Error
	if err != nil {
		return nil, fmt.Errorf("mark section progress: %w", err)
	}

	// Re-read so the caller sees the stored row, not the attempted insert.
	var stored types.SectionProgress
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND section_id = ?", userID, sectionID).
		First(&stored).Error
	if err != nil {
		return nil, fmt.Errorf("read back section progress: %w", err)
	}
	return &stored, nil
}

// ByUser returns every progress row for a user, newest completion first.
func (s *ProgressStore) ByUser(ctx context.Context, userID string) ([]types.SectionProgress, error) {
	var rows []types.SectionProgress
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list progress for user: %w", err)
	}
	return rows, nil
}
