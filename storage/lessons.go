package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lessonbot/types"
)

var (
	// ErrDuplicateVideo is returned when a lesson already exists for the
	// video id, whether detected by pre-check or by the unique index.
	ErrDuplicateVideo = errors.New("a lesson already exists for this video")
	// ErrNotFound is returned when a lookup matches nothing.
	ErrNotFound = errors.New("lesson not found")
)

// LessonStore persists lessons and their sections.
type LessonStore struct {
	db *gorm.DB
}

func NewLessonStore(db *gorm.DB) *LessonStore {
	return &LessonStore{db: db}
}

// FindByVideoID returns the lesson for a video id without its sections,
// or ErrNotFound.
func (s *LessonStore) FindByVideoID(ctx context.Context, videoID string) (*types.Lesson, error) {
	var lesson types.Lesson
	err := s.db.WithContext(ctx).Where("video_id = ?", videoID).First(&lesson).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find lesson by video id: %w", err)
	}
	return &lesson, nil
}

// Create writes a lesson and its sections in one transaction. Ids are
// assigned here. A concurrent insert for the same video id comes back as
// ErrDuplicateVideo, mapped from the unique-index violation.
func (s *LessonStore) Create(ctx context.Context, lesson *types.Lesson) error {
	if lesson.ID == uuid.Nil {
		lesson.ID = uuid.New()
	}
	for i := range lesson.Sections {
		if lesson.Sections[i].ID == uuid.Nil {
			lesson.Sections[i].ID = uuid.New()
		}
		lesson.Sections[i].LessonID = lesson.ID
	}

	err := s.db.WithContext(ctx).Create(lesson).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateVideo
	}
	if err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}
	return nil
}

// List returns all lessons newest first, without sections.
func (s *LessonStore) List(ctx context.Context) ([]types.Lesson, error) {
	var lessons []types.Lesson
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&lessons).Error; err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return lessons, nil
}

// Get returns one lesson with its sections in position order, or
// ErrNotFound.
func (s *LessonStore) Get(ctx context.Context, id uuid.UUID) (*types.Lesson, error) {
	var lesson types.Lesson
	err := s.db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&lesson, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	return &lesson, nil
}
