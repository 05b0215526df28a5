package progress

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"

	"github.com/google/uuid"
)

func TestExportCSV(t *testing.T) {
	svc, pRepo, lRepo, qRepo, _ := newTestService()
	userID := uuid.New()
	at := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	lessonID := uuid.New()
	quizID := uuid.New()
	lRepo.lessons[lessonID] = models.Lesson{ID: lessonID, Title: "Rivers of Africa"}
	qRepo.titles[quizID] = "African Rivers Quiz"

	open := lessonRecord(userID, uuid.New(), false, at)
	pRepo.records = []models.Progress{
		lessonRecord(userID, lessonID, true, at),
		quizRecord(userID, quizID, 85.5, true, at),
		open,
	}

	data, err := svc.ExportCSV(context.Background(), userID)
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parsing exported CSV: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("len(rows) = %d, want header + 3 records", len(rows))
	}

	header := rows[0]
	want := []string{"Date", "Type", "Title", "Score", "Status"}
	for i := range want {
		if header[i] != want[i] {
			t.Errorf("header[%d] = %q, want %q", i, header[i], want[i])
		}
	}

	lessonRow := rows[1]
	if lessonRow[0] != "2026-05-10" || lessonRow[1] != "lesson" || lessonRow[2] != "Rivers of Africa" {
		t.Errorf("lesson row = %v", lessonRow)
	}
	if lessonRow[3] != "" || lessonRow[4] != "Completed" {
		t.Errorf("lesson row score/status = %q/%q", lessonRow[3], lessonRow[4])
	}

	quizRow := rows[2]
	if quizRow[1] != "quiz" || quizRow[2] != "African Rivers Quiz" {
		t.Errorf("quiz row = %v", quizRow)
	}
	if quizRow[3] != "85.50" || quizRow[4] != "Completed" {
		t.Errorf("quiz row score/status = %q/%q", quizRow[3], quizRow[4])
	}

	openRow := rows[3]
	if openRow[2] != "Unknown" || openRow[4] != "In Progress" {
		t.Errorf("open row = %v", openRow)
	}
}

func TestExportCSVDatesByCreation(t *testing.T) {
	svc, pRepo, _, qRepo, _ := newTestService()
	userID := uuid.New()

	quizID := uuid.New()
	qRepo.titles[quizID] = "Capitals Quiz"

	created := time.Date(2026, 5, 10, 23, 50, 0, 0, time.UTC)
	completed := created.Add(20 * time.Minute)
	record := quizRecord(userID, quizID, 90, true, created)
	record.CompletedAt = &completed
	pRepo.records = []models.Progress{record}

	data, err := svc.ExportCSV(context.Background(), userID)
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parsing exported CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want header + 1 record", len(rows))
	}
	if rows[1][0] != "2026-05-10" {
		t.Errorf("date = %q, want the creation date, not the completion date", rows[1][0])
	}
}

func TestExportCSVUnlinkedRecord(t *testing.T) {
	svc, pRepo, _, _, _ := newTestService()
	userID := uuid.New()
	at := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	pRepo.records = []models.Progress{
		{ID: uuid.New(), UserID: userID, CreatedAt: at},
	}

	data, err := svc.ExportCSV(context.Background(), userID)
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parsing exported CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want header + 1 record", len(rows))
	}
	if rows[1][2] != "Unknown" || rows[1][4] != "In Progress" {
		t.Errorf("unlinked row = %v", rows[1])
	}
}

func TestExportCSVEmptyHistory(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	data, err := svc.ExportCSV(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parsing exported CSV: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("len(rows) = %d, want header only", len(rows))
	}
}
