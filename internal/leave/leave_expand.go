package leave

import (
	"time"

	"github.com/google/uuid"
)

// OffWorkHour adalah batas jam pulang kantor (18:00). Hari-hari sebelum hari
// terakhir sebuah request multi-hari dipotong di jam ini.
const OffWorkHour = 18

func offWorkTime() time.Time {
	return time.Date(0, time.January, 1, OffWorkHour, 0, 0, 0, time.UTC)
}

func clockOf(t time.Time) time.Time {
	return time.Date(0, time.January, 1, t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// BuildPerDayEntries memecah rentang efektif menjadi rincian per hari kalender.
//
// Setiap hari memakai jam mulai request sebagai start_time. End_time memakai
// jam selesai request pada hari terakhir dan batas 18:00 pada hari-hari
// lainnya. Request satu hari menghasilkan satu rincian (start, end) apa adanya.
func BuildPerDayEntries(requestID uuid.UUID, start, end time.Time) []LeaveRequestPerDay {
	startDate := dateOf(start)
	endDate := dateOf(end)
	days := int(endDate.Sub(startDate).Hours()/24) + 1

	entries := make([]LeaveRequestPerDay, 0, days)
	for i := 0; i < days; i++ {
		date := startDate.AddDate(0, 0, i)

		endTime := offWorkTime()
		if date.Equal(endDate) {
			endTime = clockOf(end)
		}

		entries = append(entries, LeaveRequestPerDay{
			ID:        uuid.New(),
			RequestID: requestID,
			Date:      date,
			StartTime: clockOf(start),
			EndTime:   endTime,
		})
	}

	return entries
}
