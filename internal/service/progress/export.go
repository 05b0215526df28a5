package progress

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"

	"github.com/google/uuid"
)

var exportHeader = []string{"Date", "Type", "Title", "Score", "Status"}

// ExportCSV renders a user's full progress history as CSV, newest first,
// joining lesson and quiz titles in.
func (s *ProgressService) ExportCSV(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	records, err := s.progressRepo.AllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	lessonIDs := make([]uuid.UUID, 0, len(records))
	quizIDs := make([]uuid.UUID, 0, len(records))
	for _, r := range records {
		if r.LessonID != nil {
			lessonIDs = append(lessonIDs, *r.LessonID)
		}
		if r.QuizID != nil {
			quizIDs = append(quizIDs, *r.QuizID)
		}
	}

	lessons := map[uuid.UUID]models.Lesson{}
	if len(lessonIDs) > 0 {
		if lessons, err = s.lessonRepo.LessonsByIDs(ctx, lessonIDs); err != nil {
			return nil, err
		}
	}
	quizTitles := map[uuid.UUID]string{}
	if len(quizIDs) > 0 {
		if quizTitles, err = s.quizRepo.QuizTitles(ctx, quizIDs); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, r := range records {
		if err := w.Write(exportRow(r, lessons, quizTitles)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportRow(r models.Progress, lessons map[uuid.UUID]models.Lesson, quizTitles map[uuid.UUID]string) []string {
	recordType := models.ProgressTypeLesson
	title := "Unknown"
	score := ""
	switch {
	case r.QuizID != nil:
		recordType = models.ProgressTypeQuiz
		if t, ok := quizTitles[*r.QuizID]; ok {
			title = t
		}
		score = fmt.Sprintf("%.2f", r.Score)
	case r.LessonID != nil:
		if lesson, ok := lessons[*r.LessonID]; ok {
			title = lesson.Title
		}
	}

	status := "In Progress"
	switch {
	case r.Completed:
		status = "Completed"
	case r.Passed:
		status = "Passed"
	}

	return []string{
		r.CreatedAt.UTC().Format(dayFormat),
		recordType,
		title,
		score,
		status,
	}
}
