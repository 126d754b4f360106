package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ganot/timecard/internal/domain/timecard"
	"github.com/ganot/timecard/internal/repository"
)

func draftCard(employeeID string) *timecard.Timecard {
	tc := timecard.New(employeeID, timecard.NewDate(2024, 6, 3))
	tc.Entries = []timecard.TimeEntry{
		{Date: timecard.NewDate(2024, 6, 3), JobCode: "JOB", Minutes: 480},
		{Date: timecard.NewDate(2024, 6, 4), JobCode: "JOB", Minutes: 600},
	}
	return tc
}

func TestTimecardRepository_SaveAndFind(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewTimecardRepository(db)

	tc := draftCard("E1")
	require.NoError(t, repo.Save(ctx, tc))
	require.NotZero(t, tc.ID)
	require.EqualValues(t, 1, tc.Version)
	require.NotZero(t, tc.Entries[0].ID)

	loaded, err := repo.FindByEmployeeAndWeek(ctx, "E1", timecard.NewDate(2024, 6, 3))
	require.NoError(t, err)
	require.Equal(t, tc.ID, loaded.ID)
	require.Equal(t, "E1", loaded.EmployeeID)
	require.Equal(t, timecard.NewDate(2024, 6, 3), loaded.WeekStart)
	require.Equal(t, timecard.StatusDraft, loaded.Status)
	require.Len(t, loaded.Entries, 2)
	require.Equal(t, 480, loaded.Entries[0].Minutes)
}

func TestTimecardRepository_FindMissing(t *testing.T) {
	db := NewTestDB(t)
	repo := NewTimecardRepository(db)

	_, err := repo.FindByEmployeeAndWeek(context.Background(), "E1", timecard.NewDate(2024, 6, 10))
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTimecardRepository_NaturalKeyUnique(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewTimecardRepository(db)

	require.NoError(t, repo.Save(ctx, draftCard("E1")))

	// A second aggregate for the same (employee, week) must lose.
	err := repo.Save(ctx, draftCard("E1"))
	require.ErrorIs(t, err, repository.ErrConflict)

	cards, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 1)
}

func TestTimecardRepository_UpdateBumpsVersion(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewTimecardRepository(db)

	tc := draftCard("E1")
	require.NoError(t, repo.Save(ctx, tc))
	require.NoError(t, tc.Submit())
	require.NoError(t, repo.Save(ctx, tc))
	require.EqualValues(t, 2, tc.Version)

	loaded, err := repo.FindByEmployeeAndWeek(ctx, "E1", timecard.NewDate(2024, 6, 3))
	require.NoError(t, err)
	require.Equal(t, timecard.StatusSubmitted, loaded.Status)
	require.EqualValues(t, 2, loaded.Version)
}

func TestTimecardRepository_StaleVersionConflicts(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewTimecardRepository(db)

	tc := draftCard("E1")
	require.NoError(t, repo.Save(ctx, tc))

	// Two writers load the same version.
	first, err := repo.FindByEmployeeAndWeek(ctx, "E1", timecard.NewDate(2024, 6, 3))
	require.NoError(t, err)
	second, err := repo.FindByEmployeeAndWeek(ctx, "E1", timecard.NewDate(2024, 6, 3))
	require.NoError(t, err)

	require.NoError(t, first.Submit())
	require.NoError(t, repo.Save(ctx, first))

	require.NoError(t, second.Submit())
	err = repo.Save(ctx, second)
	require.ErrorIs(t, err, repository.ErrConflict)

	loaded, err := repo.FindByEmployeeAndWeek(ctx, "E1", timecard.NewDate(2024, 6, 3))
	require.NoError(t, err)
	require.Equal(t, timecard.StatusSubmitted, loaded.Status)
	require.EqualValues(t, 2, loaded.Version)
}

func TestTimecardRepository_ReplacedEntriesRemoveOrphans(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewTimecardRepository(db)

	tc := draftCard("E1")
	require.NoError(t, repo.Save(ctx, tc))

	require.NoError(t, tc.ReplaceEntries([]timecard.TimeEntry{
		{Date: timecard.NewDate(2024, 6, 5), JobCode: "OTHER", Minutes: 500},
	}))
	require.NoError(t, repo.Save(ctx, tc))

	loaded, err := repo.FindByEmployeeAndWeek(ctx, "E1", timecard.NewDate(2024, 6, 3))
	require.NoError(t, err)
	require.Len(t, loaded.Entries, 1)
	require.Equal(t, "OTHER", loaded.Entries[0].JobCode)

	var orphans int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM time_entries").Scan(&orphans))
	require.Equal(t, 1, orphans)
}

func TestTimecardRepository_List(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewTimecardRepository(db)

	first := draftCard("E1")
	require.NoError(t, repo.Save(ctx, first))

	second := timecard.New("E2", timecard.NewDate(2024, 6, 10))
	second.Entries = []timecard.TimeEntry{
		{Date: timecard.NewDate(2024, 6, 10), JobCode: "JOB", Minutes: 480},
	}
	require.NoError(t, repo.Save(ctx, second))

	cards, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	require.Equal(t, "E1", cards[0].EmployeeID)
	require.Len(t, cards[0].Entries, 2)
	require.Equal(t, "E2", cards[1].EmployeeID)
	require.Len(t, cards[1].Entries, 1)
}
