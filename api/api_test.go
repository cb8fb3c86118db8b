package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"lessonbot/generation"
	"lessonbot/logger"
	"lessonbot/state"
	"lessonbot/storage"
	"lessonbot/types"
	"lessonbot/workflow"
)

type stubExtractor struct{}

func (stubExtractor) ExtractWithRetry(ctx context.Context, videoURL string) types.TranscriptResult {
	return types.TranscriptResult{
		Success: true,
		Text:    strings.Repeat("a spoken sentence from the video transcript ", 30),
		Status:  types.TranscriptCompleted,
	}
}

type stubGenerator struct{}

func (stubGenerator) GenerateWithRetry(ctx context.Context, transcript, videoTitle string) generation.Result {
	lesson := &types.GeneratedLesson{Title: "Stub Lesson", TotalSections: 2}
	for i := 0; i < 2; i++ {
		quiz := types.GeneratedQuiz{}
		for q := 0; q < 5; q++ {
			quiz.Questions = append(quiz.Questions, types.QuizQuestion{
				Question:      "Q?",
				Options:       []string{"A", "B", "C", "D"},
				CorrectAnswer: 0,
			})
		}
		lesson.Sections = append(lesson.Sections, types.GeneratedSection{
			Title:              fmt.Sprintf("Section %d", i+1),
			Summary:            "summary",
			LearningObjectives: []string{"objective"},
			Content:            "content",
			Quiz:               quiz,
		})
	}
	return generation.Result{Success: true, Outcome: generation.OutcomeGenerated, Lesson: lesson}
}

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := logger.NewNop()
	lessons := storage.NewLessonStore(db)
	progress := storage.NewProgressStore(db)
	runner := workflow.NewRunner(lessons, stubExtractor{}, stubGenerator{}, log)
	server := NewServer(runner, state.NewManager(), lessons, progress, log)
	return NewRouter(server), db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// waitForJob polls the job route until it leaves the running state.
func waitForJob(t *testing.T, r *gin.Engine, jobID string) state.Job {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		w := doJSON(t, r, http.MethodGet, "/api/lessons/jobs/"+jobID, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("job lookup returned %d", w.Code)
		}
		var job state.Job
		if err := json.Unmarshal(w.Body.Bytes(), &job); err != nil {
			t.Fatal(err)
		}
		if job.Status != state.JobRunning {
			return job
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("job did not finish within 2s")
	return state.Job{}
}

func createLesson(t *testing.T, r *gin.Engine, url string) state.Job {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/lessons", gin.H{"url": url, "user_id": "user-1"})
	if w.Code != http.StatusAccepted {
		t.Fatalf("create returned %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		JobID string `json:"job_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	return waitForJob(t, r, resp.JobID)
}

func TestCreateLessonFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	job := createLesson(t, r, "https://youtu.be/dQw4w9WgXcQ")
	if job.Status != state.JobCompleted {
		t.Fatalf("job status = %q: %+v", job.Status, job.Result)
	}
	if job.Result == nil || job.Result.Lesson == nil {
		t.Fatal("completed job carries no lesson")
	}
	if len(job.Progress) == 0 || job.Progress[len(job.Progress)-1].Percent != 100 {
		t.Fatalf("unexpected progress history: %+v", job.Progress)
	}

	// The lesson is readable afterwards.
	w := doJSON(t, r, http.MethodGet, "/api/lessons/"+job.Result.Lesson.ID.String(), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get lesson returned %d", w.Code)
	}
	var lesson types.Lesson
	if err := json.Unmarshal(w.Body.Bytes(), &lesson); err != nil {
		t.Fatal(err)
	}
	if len(lesson.Sections) != 2 {
		t.Fatalf("lesson has %d sections, want 2", len(lesson.Sections))
	}
}

func TestCreateLessonDuplicate(t *testing.T) {
	r, _ := newTestRouter(t)

	if job := createLesson(t, r, "https://youtu.be/dQw4w9WgXcQ"); job.Status != state.JobCompleted {
		t.Fatalf("first job status = %q", job.Status)
	}
	job := createLesson(t, r, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if job.Status != state.JobFailed {
		t.Fatalf("duplicate job status = %q", job.Status)
	}
	if job.Result == nil || !strings.Contains(job.Result.Error, "already exists") {
		t.Fatalf("duplicate error = %+v", job.Result)
	}
}

func TestCreateLessonRequiresURL(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/lessons", gin.H{"user_id": "user-1"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetJobNotFound(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/lessons/jobs/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestListLessons(t *testing.T) {
	r, _ := newTestRouter(t)
	createLesson(t, r, "https://youtu.be/dQw4w9WgXcQ")

	w := doJSON(t, r, http.MethodGet, "/api/lessons", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Lessons []types.Lesson `json:"lessons"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Lessons) != 1 {
		t.Fatalf("listed %d lessons, want 1", len(resp.Lessons))
	}
}

func TestProgressRoutes(t *testing.T) {
	r, _ := newTestRouter(t)
	job := createLesson(t, r, "https://youtu.be/dQw4w9WgXcQ")
	sectionID := job.Result.Lesson.Sections[0].ID.String()

	w := doJSON(t, r, http.MethodPost, "/api/progress", gin.H{
		"user_id":    "user-1",
		"section_id": sectionID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("mark progress returned %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/progress/user-1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get progress returned %d", w.Code)
	}
	var resp struct {
		Progress []types.SectionProgress `json:"progress"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Progress) != 1 || !resp.Progress[0].Completed {
		t.Fatalf("unexpected progress rows: %+v", resp.Progress)
	}
}

func TestProgressUnknownSection(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/progress", gin.H{
		"user_id":    "user-1",
		"section_id": "0b6e7c71-0a54-46c5-9ed5-1bb2f8a9c001",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}
