package derive

import (
	"time"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/student"
)

// FindRecord returns the record of studentID on the calendar day of day.
// Days are compared by their "2006-01-02" key, never by timestamp.
func FindRecord(studentID int, day time.Time, records []attendance.Record) (attendance.Record, bool) {
	key := core.DayKey(day)
	for _, r := range records {
		if r.StudentID == studentID && r.Day() == key {
			return r, true
		}
	}
	return attendance.Record{}, false
}

// AttendanceStatusFor returns StatusUnmarked when no record exists for that day.
func AttendanceStatusFor(studentID int, day time.Time, records []attendance.Record) attendance.Status {
	if r, ok := FindRecord(studentID, day, records); ok {
		return r.Status
	}
	return attendance.StatusUnmarked
}

// RecordsOn keeps the records of the calendar day of day.
func RecordsOn(day time.Time, records []attendance.Record) []attendance.Record {
	key := core.DayKey(day)
	kept := make([]attendance.Record, 0)
	for _, r := range records {
		if r.Day() == key {
			kept = append(kept, r)
		}
	}
	return kept
}

// RecordsOf keeps the records of one student.
func RecordsOf(studentID int, records []attendance.Record) []attendance.Record {
	kept := make([]attendance.Record, 0)
	for _, r := range records {
		if r.StudentID == studentID {
			kept = append(kept, r)
		}
	}
	return kept
}

type StatusCounts struct {
	Present  int `json:"present"`
	Absent   int `json:"absent"`
	Late     int `json:"late"`
	Excused  int `json:"excused"`
	Unmarked int `json:"unmarked"`
}

func (c *StatusCounts) add(s attendance.Status) {
	switch s {
	case attendance.StatusPresent:
		c.Present++
	case attendance.StatusAbsent:
		c.Absent++
	case attendance.StatusLate:
		c.Late++
	case attendance.StatusExcused:
		c.Excused++
	default:
		c.Unmarked++
	}
}

// CountStatuses counts the status of every student on day, unmarked included.
func CountStatuses(students []student.Student, day time.Time, records []attendance.Record) StatusCounts {
	dayRecords := RecordsOn(day, records)
	var counts StatusCounts
	for _, s := range students {
		counts.add(AttendanceStatusFor(s.ID, day, dayRecords))
	}
	return counts
}

type dayKey struct {
	studentID int
	day       string
}

// PlanAttendanceUpsert turns status marks into creates and updates against the
// existing records. An existing record keeps its ID and reason; a new one gets
// the excused reason when marked excused. Marks for the same (student, day)
// replace earlier ones so the plan never holds two entries for a pair.
func PlanAttendanceUpsert(marks []attendance.Mark, existing []attendance.Record) attendance.Plan {
	index := make(map[dayKey]attendance.Record, len(existing))
	for _, r := range existing {
		k := dayKey{r.StudentID, r.Day()}
		if _, ok := index[k]; !ok { // lowest ID wins when the store already holds duplicates
			index[k] = r
		}
	}

	order := make([]dayKey, 0, len(marks))
	planned := make(map[dayKey]attendance.Record, len(marks))
	for _, m := range marks {
		k := dayKey{m.StudentID, core.DayKey(m.Date)}

		var rec attendance.Record
		if ex, ok := index[k]; ok {
			rec = ex
			rec.Status = m.Status
			rec.Date = m.Date.UTC()
		} else {
			rec = attendance.Record{StudentID: m.StudentID, Date: m.Date.UTC(), Status: m.Status}
			if m.Status == attendance.StatusExcused {
				rec.Reason = attendance.ExcusedReason
			}
		}

		if _, seen := planned[k]; !seen {
			order = append(order, k)
		}
		planned[k] = rec
	}

	var plan attendance.Plan
	for _, k := range order {
		rec := planned[k]
		if _, ok := index[k]; ok {
			plan.Updates = append(plan.Updates, rec)
		} else {
			plan.Creates = append(plan.Creates, rec)
		}
	}
	return plan
}

// MarkAll marks every student with the same status on day.
func MarkAll(students []student.Student, day time.Time, status attendance.Status) []attendance.Mark {
	marks := make([]attendance.Mark, 0, len(students))
	for _, s := range students {
		marks = append(marks, attendance.Mark{StudentID: s.ID, Date: day, Status: status})
	}
	return marks
}

// AttendanceRate is the share of present records, in percent. 0 when empty.
func AttendanceRate(records []attendance.Record) float64 {
	if len(records) == 0 {
		return 0
	}
	var present int
	for _, r := range records {
		if r.Status == attendance.StatusPresent {
			present++
		}
	}
	return float64(present) / float64(len(records)) * 100
}

type AttendanceSummary struct {
	Total   int     `json:"total"`
	Present int     `json:"present"`
	Absent  int     `json:"absent"`
	Late    int     `json:"late"`
	Excused int     `json:"excused"`
	Rate    float64 `json:"rate"`
}

func SummarizeAttendance(records []attendance.Record) AttendanceSummary {
	var counts StatusCounts
	for _, r := range records {
		counts.add(r.Status)
	}
	return AttendanceSummary{
		Total:   len(records),
		Present: counts.Present,
		Absent:  counts.Absent,
		Late:    counts.Late,
		Excused: counts.Excused,
		Rate:    Round1(AttendanceRate(records)),
	}
}
