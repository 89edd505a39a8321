package leave_test

import (
	"testing"
	"time"

	"go-leave/internal/leave"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	assert.NoError(t, err)
	return ts
}

func TestBuildPerDayEntries_SingleDay(t *testing.T) {
	requestID := uuid.New()
	start := mustParse(t, "2025-03-03T09:00:00Z")
	end := mustParse(t, "2025-03-03T12:00:00Z")

	entries := leave.BuildPerDayEntries(requestID, start, end)

	assert.Len(t, entries, 1)
	assert.Equal(t, "2025-03-03", entries[0].Date.Format("2006-01-02"))
	assert.Equal(t, "09:00:00", entries[0].StartTime.Format("15:04:05"))
	assert.Equal(t, "12:00:00", entries[0].EndTime.Format("15:04:05"))
	assert.Equal(t, 3, entries[0].LeaveHours())
}

func TestBuildPerDayEntries_MultiDay(t *testing.T) {
	requestID := uuid.New()
	start := mustParse(t, "2025-03-03T09:00:00Z")
	end := mustParse(t, "2025-03-05T18:00:00Z")

	entries := leave.BuildPerDayEntries(requestID, start, end)

	assert.Len(t, entries, 3)

	for i, e := range entries {
		assert.Equal(t, requestID, e.RequestID)
		assert.Equal(t, "09:00:00", e.StartTime.Format("15:04:05"))
		expectedDate := start.AddDate(0, 0, i).Format("2006-01-02")
		assert.Equal(t, expectedDate, e.Date.Format("2006-01-02"))
	}

	// Hari sebelum hari terakhir dipotong di jam pulang kantor.
	assert.Equal(t, "18:00:00", entries[0].EndTime.Format("15:04:05"))
	assert.Equal(t, "18:00:00", entries[1].EndTime.Format("15:04:05"))
	// Hari terakhir memakai jam selesai request.
	assert.Equal(t, "18:00:00", entries[2].EndTime.Format("15:04:05"))

	assert.Equal(t, 27, leave.TotalLeaveHours(entries))
}

func TestBuildPerDayEntries_MultiDayEarlyEnd(t *testing.T) {
	requestID := uuid.New()
	start := mustParse(t, "2025-03-03T10:00:00Z")
	end := mustParse(t, "2025-03-04T15:00:00Z")

	entries := leave.BuildPerDayEntries(requestID, start, end)

	assert.Len(t, entries, 2)
	assert.Equal(t, "18:00:00", entries[0].EndTime.Format("15:04:05"))
	assert.Equal(t, "15:00:00", entries[1].EndTime.Format("15:04:05"))
	assert.Equal(t, 8+5, leave.TotalLeaveHours(entries))
}

func TestBuildPerDayEntries_CrossMonthBoundary(t *testing.T) {
	requestID := uuid.New()
	start := mustParse(t, "2025-01-31T09:00:00Z")
	end := mustParse(t, "2025-02-02T17:00:00Z")

	entries := leave.BuildPerDayEntries(requestID, start, end)

	assert.Len(t, entries, 3)
	assert.Equal(t, "2025-01-31", entries[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2025-02-01", entries[1].Date.Format("2006-01-02"))
	assert.Equal(t, "2025-02-02", entries[2].Date.Format("2006-01-02"))
}

func TestLeaveHours_DropsMinutes(t *testing.T) {
	entry := leave.LeaveRequestPerDay{
		StartTime: time.Date(0, time.January, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(0, time.January, 1, 17, 30, 0, 0, time.UTC),
	}

	assert.Equal(t, 8, entry.LeaveHours())
}
