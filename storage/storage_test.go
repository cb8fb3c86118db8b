package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"lessonbot/types"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func sampleLesson(t *testing.T, videoID string, sections int) *types.Lesson {
	t.Helper()
	objectives, err := json.Marshal([]string{"Objective one", "Objective two"})
	if err != nil {
		t.Fatal(err)
	}
	quiz, err := json.Marshal(map[string]any{"questions": []any{}})
	if err != nil {
		t.Fatal(err)
	}

	lesson := &types.Lesson{
		VideoID:      videoID,
		VideoURL:     "https://www.youtube.com/watch?v=" + videoID,
		Title:        "Lesson for " + videoID,
		SectionCount: sections,
	}
	// Insert in reverse position order so Get must sort, not rely on
	// insertion order.
	for i := sections; i >= 1; i-- {
		lesson.Sections = append(lesson.Sections, types.Section{
			Position:   i,
			Title:      fmt.Sprintf("Section %d", i),
			Summary:    "summary",
			Content:    "content",
			Objectives: objectives,
			Quiz:       quiz,
		})
	}
	return lesson
}

func TestLessonCreateAndGet(t *testing.T) {
	store := NewLessonStore(openTestDB(t))
	ctx := context.Background()

	lesson := sampleLesson(t, "dQw4w9WgXcQ", 3)
	if err := store.Create(ctx, lesson); err != nil {
		t.Fatalf("create: %v", err)
	}
	if lesson.ID == uuid.Nil {
		t.Fatal("expected an id to be assigned")
	}

	got, err := store.Get(ctx, lesson.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.VideoID != "dQw4w9WgXcQ" || len(got.Sections) != 3 {
		t.Fatalf("unexpected lesson: %+v", got)
	}
	for i, section := range got.Sections {
		if section.Position != i+1 {
			t.Errorf("section %d has position %d, want %d", i, section.Position, i+1)
		}
		if section.LessonID != lesson.ID {
			t.Errorf("section %d not linked to lesson", i)
		}
	}
}

func TestLessonDuplicateVideoID(t *testing.T) {
	store := NewLessonStore(openTestDB(t))
	ctx := context.Background()

	if err := store.Create(ctx, sampleLesson(t, "dQw4w9WgXcQ", 2)); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := store.Create(ctx, sampleLesson(t, "dQw4w9WgXcQ", 2))
	if err != ErrDuplicateVideo {
		t.Fatalf("second create error = %v, want ErrDuplicateVideo", err)
	}
}

func TestLessonFindByVideoID(t *testing.T) {
	store := NewLessonStore(openTestDB(t))
	ctx := context.Background()

	if _, err := store.FindByVideoID(ctx, "dQw4w9WgXcQ"); err != ErrNotFound {
		t.Fatalf("missing lesson error = %v, want ErrNotFound", err)
	}

	if err := store.Create(ctx, sampleLesson(t, "dQw4w9WgXcQ", 2)); err != nil {
		t.Fatal(err)
	}
	found, err := store.FindByVideoID(ctx, "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.VideoID != "dQw4w9WgXcQ" {
		t.Fatalf("found wrong lesson: %+v", found)
	}
}

func TestLessonGetNotFound(t *testing.T) {
	store := NewLessonStore(openTestDB(t))
	if _, err := store.Get(context.Background(), uuid.New()); err != ErrNotFound {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestLessonList(t *testing.T) {
	store := NewLessonStore(openTestDB(t))
	ctx := context.Background()

	for _, id := range []string{"AAAAAAAAAAA", "BBBBBBBBBBB"} {
		if err := store.Create(ctx, sampleLesson(t, id, 2)); err != nil {
			t.Fatal(err)
		}
	}
	lessons, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lessons) != 2 {
		t.Fatalf("listed %d lessons, want 2", len(lessons))
	}
	for _, lesson := range lessons {
		if len(lesson.Sections) != 0 {
			t.Error("list should not preload sections")
		}
	}
}

func TestMarkSectionIdempotent(t *testing.T) {
	db := openTestDB(t)
	lessons := NewLessonStore(db)
	progress := NewProgressStore(db)
	ctx := context.Background()

	lesson := sampleLesson(t, "dQw4w9WgXcQ", 2)
	if err := lessons.Create(ctx, lesson); err != nil {
		t.Fatal(err)
	}
	sectionID := lesson.Sections[0].ID

	first, err := progress.MarkSection(ctx, "user-1", sectionID)
	if err != nil {
		t.Fatalf("first mark: %v", err)
	}
	if !first.Completed || first.CompletedAt == nil {
		t.Fatalf("expected completed progress, got %+v", first)
	}
	if first.LessonID != lesson.ID {
		t.Error("progress not linked to the section's lesson")
	}

	second, err := progress.MarkSection(ctx, "user-1", sectionID)
	if err != nil {
		t.Fatalf("second mark: %v", err)
	}
	if second.ID != first.ID {
		t.Error("repeat completion created a new row instead of upserting")
	}

	rows, err := progress.ByUser(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("user has %d progress rows, want 1", len(rows))
	}
}

func TestMarkSectionDistinctUsers(t *testing.T) {
	db := openTestDB(t)
	lessons := NewLessonStore(db)
	progress := NewProgressStore(db)
	ctx := context.Background()

	lesson := sampleLesson(t, "dQw4w9WgXcQ", 2)
	if err := lessons.Create(ctx, lesson); err != nil {
		t.Fatal(err)
	}

	for _, user := range []string{"user-1", "user-2"} {
		if _, err := progress.MarkSection(ctx, user, lesson.Sections[0].ID); err != nil {
			t.Fatalf("mark for %s: %v", user, err)
		}
	}

	rows, err := progress.ByUser(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("user-1 has %d rows, want 1", len(rows))
	}
}

func TestMarkSectionUnknownSection(t *testing.T) {
	progress := NewProgressStore(openTestDB(t))
	if _, err := progress.MarkSection(context.Background(), "user-1", uuid.New()); err != ErrNotFound {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
