package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Lesson is the persisted learning unit generated from one video. The
// unique index on VideoID is the authoritative duplicate guard: a second
// concurrent creation for the same video fails at write time regardless
// of the pre-check.
type Lesson struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VideoID      string    `gorm:"column:video_id;size:11;not null;uniqueIndex" json:"video_id"`
	VideoURL     string    `gorm:"column:video_url;not null" json:"video_url"`
	Title        string    `gorm:"not null" json:"title"`
	SectionCount int       `gorm:"not null" json:"section_count"`
	Degraded     bool      `gorm:"not null;default:false" json:"degraded"`
	Sections     []Section `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonID;references:ID" json:"sections,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Lesson) TableName() string { return "lessons" }

// Section is one ordered chunk of a lesson. Learning objectives and the
// quiz questions are stored as serialized JSON blobs.
type Section struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"lesson_id"`
	Position   int            `gorm:"not null" json:"position"`
	Title      string         `gorm:"not null" json:"title"`
	Summary    string         `json:"summary"`
	Content    string         `gorm:"type:text" json:"content"`
	Objectives datatypes.JSON `json:"objectives"`
	Quiz       datatypes.JSON `json:"quiz"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (Section) TableName() string { return "sections" }

// SectionProgress tracks one user's completion of one section. The
// composite unique index makes repeat completions an upsert.
type SectionProgress struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string     `gorm:"column:user_id;not null;index:idx_user_section,unique" json:"user_id"`
	SectionID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_section,unique" json:"section_id"`
	LessonID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"lesson_id"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (SectionProgress) TableName() string { return "section_progress" }
