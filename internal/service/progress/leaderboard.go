package progress

import (
	"context"
	"sort"
	"time"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/models"

	"github.com/google/uuid"
)

const defaultLeaderboardSize = 20

// Leaderboard ranks users by total quiz points over a timeframe.
// Timeframe is "week", "month" (the default) or "year"; any other value
// means all-time. Ties keep their grouping order, no dense ranking is
// applied.
func (s *ProgressService) Leaderboard(ctx context.Context, timeframe string, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}

	var since time.Time
	now := time.Now().UTC()
	switch timeframe {
	case "week":
		since = now.AddDate(0, 0, -7)
	case "month", "":
		since = now.AddDate(0, -1, 0)
	case "year":
		since = now.AddDate(-1, 0, 0)
	}

	records, err := s.progressRepo.QuizRecordsSince(ctx, since)
	if err != nil {
		return nil, err
	}

	type acc struct {
		entry    models.LeaderboardEntry
		scoreSum float64
	}
	byUser := make(map[uuid.UUID]*acc)
	order := make([]uuid.UUID, 0)
	for _, r := range records {
		a, ok := byUser[r.UserID]
		if !ok {
			a = &acc{entry: models.LeaderboardEntry{UserID: r.UserID}}
			byUser[r.UserID] = a
			order = append(order, r.UserID)
		}
		a.entry.TotalQuizzes++
		if r.Passed {
			a.entry.PassedQuizzes++
		}
		a.scoreSum += r.Score
	}

	entries := make([]models.LeaderboardEntry, 0, len(byUser))
	for _, id := range order {
		a := byUser[id]
		a.entry.TotalPoints = round2(a.scoreSum)
		a.entry.AverageScore = round2(a.scoreSum / float64(a.entry.TotalQuizzes))
		a.entry.PassRate = round2(float64(a.entry.PassedQuizzes) / float64(a.entry.TotalQuizzes) * 100)
		entries = append(entries, a.entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPoints > entries[j].TotalPoints
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}

	ids := make([]uuid.UUID, len(entries))
	for i := range entries {
		ids[i] = entries[i].UserID
	}
	users, err := s.userRepo.UsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if info, ok := users[entries[i].UserID]; ok {
			entries[i].Name = info.Name
			entries[i].Email = info.Email
		}
	}

	return entries, nil
}
