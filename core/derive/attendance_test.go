package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/student"
)

func testRecords() []attendance.Record {
	return []attendance.Record{
		{ID: 1, StudentID: 1, Date: jan10, Status: attendance.StatusPresent},
		{ID: 2, StudentID: 2, Date: jan10.Add(3 * time.Hour), Status: attendance.StatusLate, Reason: "bus"},
		{ID: 3, StudentID: 3, Date: jan10, Status: attendance.StatusPresent},
		{ID: 4, StudentID: 1, Date: jan10.AddDate(0, 0, 1), Status: attendance.StatusAbsent},
	}
}

func TestAttendanceStatusFor(t *testing.T) {
	records := testRecords()
	tests := []struct {
		name      string
		studentID int
		day       time.Time
		want      attendance.Status
	}{
		{name: "present", studentID: 1, day: jan10, want: attendance.StatusPresent},
		{name: "same day other time", studentID: 2, day: time.Date(2024, 1, 10, 23, 0, 0, 0, time.UTC), want: attendance.StatusLate},
		{name: "next day", studentID: 1, day: jan10.AddDate(0, 0, 1), want: attendance.StatusAbsent},
		{name: "no record", studentID: 2, day: jan10.AddDate(0, 0, 1), want: attendance.StatusUnmarked},
		{name: "unknown student", studentID: 99, day: jan10, want: attendance.StatusUnmarked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AttendanceStatusFor(tt.studentID, tt.day, records); got != tt.want {
				t.Errorf("AttendanceStatusFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountStatuses(t *testing.T) {
	students := []student.Student{amy, bruno, chen, {ID: 4, Name: "Dana"}}
	got := CountStatuses(students, jan10, testRecords())
	assert.Equal(t, StatusCounts{Present: 2, Late: 1, Unmarked: 1}, got)
}

func TestPlanAttendanceUpsert(t *testing.T) {
	existing := []attendance.Record{
		{ID: 7, StudentID: 3, Date: jan10, Status: attendance.StatusPresent, Reason: "kept"},
	}
	later := time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)
	ahead := time.Date(2024, 1, 10, 22, 0, 0, 0, time.FixedZone("UTC+5", 5*3600))   // 17:00 UTC on jan10
	behind := time.Date(2024, 1, 10, 20, 0, 0, 0, time.FixedZone("UTC-5", -5*3600)) // 01:00 UTC on jan11

	tests := []struct {
		name        string
		marks       []attendance.Mark
		wantCreates []attendance.Record
		wantUpdates []attendance.Record
	}{
		{
			name:  "existing record is updated in place",
			marks: []attendance.Mark{{StudentID: 3, Date: later, Status: attendance.StatusAbsent}},
			wantUpdates: []attendance.Record{
				{ID: 7, StudentID: 3, Date: later, Status: attendance.StatusAbsent, Reason: "kept"},
			},
		},
		{
			name:  "new record",
			marks: []attendance.Mark{{StudentID: 4, Date: jan10, Status: attendance.StatusLate}},
			wantCreates: []attendance.Record{
				{StudentID: 4, Date: jan10, Status: attendance.StatusLate},
			},
		},
		{
			name:  "new excused record gets a reason",
			marks: []attendance.Mark{{StudentID: 4, Date: jan10, Status: attendance.StatusExcused}},
			wantCreates: []attendance.Record{
				{StudentID: 4, Date: jan10, Status: attendance.StatusExcused, Reason: attendance.ExcusedReason},
			},
		},
		{
			name: "other day is a create",
			marks: []attendance.Mark{
				{StudentID: 3, Date: jan10.AddDate(0, 0, 1), Status: attendance.StatusPresent},
			},
			wantCreates: []attendance.Record{
				{StudentID: 3, Date: jan10.AddDate(0, 0, 1), Status: attendance.StatusPresent},
			},
		},
		{
			name:  "zoned mark matches the record of its UTC day",
			marks: []attendance.Mark{{StudentID: 3, Date: ahead, Status: attendance.StatusLate}},
			wantUpdates: []attendance.Record{
				{ID: 7, StudentID: 3, Date: ahead.UTC(), Status: attendance.StatusLate, Reason: "kept"},
			},
		},
		{
			name:  "zoned mark past UTC midnight is the next day",
			marks: []attendance.Mark{{StudentID: 3, Date: behind, Status: attendance.StatusLate}},
			wantCreates: []attendance.Record{
				{StudentID: 3, Date: behind.UTC(), Status: attendance.StatusLate},
			},
		},
		{
			name: "last mark wins within a batch",
			marks: []attendance.Mark{
				{StudentID: 4, Date: jan10, Status: attendance.StatusAbsent},
				{StudentID: 3, Date: jan10, Status: attendance.StatusLate},
				{StudentID: 4, Date: later, Status: attendance.StatusPresent},
				{StudentID: 3, Date: jan10, Status: attendance.StatusExcused},
			},
			wantCreates: []attendance.Record{
				{StudentID: 4, Date: later, Status: attendance.StatusPresent},
			},
			wantUpdates: []attendance.Record{
				{ID: 7, StudentID: 3, Date: jan10, Status: attendance.StatusExcused, Reason: "kept"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := PlanAttendanceUpsert(tt.marks, existing)
			assert.Equal(t, tt.wantCreates, plan.Creates)
			assert.Equal(t, tt.wantUpdates, plan.Updates)
		})
	}
}

func TestPlanAttendanceUpsert_zonedMarkReplanned(t *testing.T) {
	mark := attendance.Mark{
		StudentID: 1,
		Date:      time.Date(2024, 1, 10, 20, 0, 0, 0, time.FixedZone("UTC-5", -5*3600)),
		Status:    attendance.StatusAbsent,
	}

	first := PlanAttendanceUpsert([]attendance.Mark{mark}, nil)
	require.Len(t, first.Creates, 1)
	stored := first.Creates[0]
	stored.ID = 1

	again := PlanAttendanceUpsert([]attendance.Mark{mark}, []attendance.Record{stored})
	assert.Empty(t, again.Creates)
	require.Len(t, again.Updates, 1)
	assert.Equal(t, 1, again.Updates[0].ID)
	assert.Equal(t, attendance.StatusAbsent, AttendanceStatusFor(1, mark.Date, []attendance.Record{stored}))
}

func TestPlanAttendanceUpsert_onePerPair(t *testing.T) {
	statuses := attendance.Statuses
	var marks []attendance.Mark
	for i := 0; i < 60; i++ {
		marks = append(marks, attendance.Mark{
			StudentID: i%5 + 1,
			Date:      jan10.AddDate(0, 0, i%3).Add(time.Duration(i) * time.Minute),
			Status:    statuses[i%len(statuses)],
		})
	}
	plan := PlanAttendanceUpsert(marks, testRecords())

	seen := make(map[string]bool)
	for _, r := range append(plan.Creates, plan.Updates...) {
		k := core.DayKey(r.Date) + "/" + string(rune('0'+r.StudentID))
		require.False(t, seen[k], "duplicate plan entry for %s", k)
		seen[k] = true
	}
	assert.Equal(t, 15, plan.Len())
	for _, r := range plan.Updates {
		assert.NotZero(t, r.ID)
	}
	for _, r := range plan.Creates {
		assert.Zero(t, r.ID)
	}
}

func TestAttendanceRate(t *testing.T) {
	tests := []struct {
		name    string
		records []attendance.Record
		want    float64
	}{
		{name: "empty", records: nil, want: 0},
		{name: "single present", records: []attendance.Record{{Status: attendance.StatusPresent}}, want: 100},
		{name: "late is not present", records: []attendance.Record{{Status: attendance.StatusPresent}, {Status: attendance.StatusLate}}, want: 50},
		{name: "none present", records: []attendance.Record{{Status: attendance.StatusAbsent}}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AttendanceRate(tt.records); got != tt.want {
				t.Errorf("AttendanceRate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSummarizeAttendance(t *testing.T) {
	got := SummarizeAttendance(testRecords())
	assert.Equal(t, AttendanceSummary{Total: 4, Present: 2, Absent: 1, Late: 1, Rate: 50}, got)
}

func TestMarkAll(t *testing.T) {
	marks := MarkAll([]student.Student{amy, bruno}, jan10, attendance.StatusPresent)
	assert.Equal(t, []attendance.Mark{
		{StudentID: 1, Date: jan10, Status: attendance.StatusPresent},
		{StudentID: 2, Date: jan10, Status: attendance.StatusPresent},
	}, marks)
}
