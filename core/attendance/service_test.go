package attendance_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/tests"
)

var jan10 = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

func TestService_Create(t *testing.T) {
	tests := []struct {
		name    string
		record  attendance.NewRecord
		wantErr bool
	}{
		{name: "valid", record: attendance.NewRecord{StudentID: 1, Date: jan10, Status: "Present"}},
		{name: "unmarked is not storable", record: attendance.NewRecord{StudentID: 1, Date: jan10, Status: attendance.StatusUnmarked}, wantErr: true},
		{name: "unknown status", record: attendance.NewRecord{StudentID: 1, Date: jan10, Status: "sick"}, wantErr: true},
		{name: "missing date", record: attendance.NewRecord{StudentID: 1, Status: attendance.StatusAbsent}, wantErr: true},
		{name: "unknown student", record: attendance.NewRecord{StudentID: 5, Date: jan10, Status: attendance.StatusAbsent}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stack := testutil.NewMemoryStack(t)
			testutil.CreateStudent(t, stack.StudentRepo, "Amy Lee", "5th Grade", "amy@school.test")

			r, err := stack.Attendance.Create(context.Background(), tt.record)
			if (err != nil) != tt.wantErr {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				assert.Equal(t, attendance.StatusPresent, r.Status)
			}
		})
	}
}

func TestService_Create_dayTaken(t *testing.T) {
	stack := testutil.NewMemoryStack(t)
	ctx := context.Background()
	testutil.CreateStudent(t, stack.StudentRepo, "Amy Lee", "5th Grade", "amy@school.test")
	testutil.CreateRecord(t, stack.AttendanceRepo, 1, jan10, attendance.StatusPresent)

	_, err := stack.Attendance.Create(ctx, attendance.NewRecord{StudentID: 1, Date: jan10.Add(9 * time.Hour), Status: attendance.StatusLate})
	var vErr *core.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, attendance.ErrDayTaken, vErr.Err)
	assert.Equal(t, "date", vErr.Fields[0].Field)

	_, err = stack.Attendance.Create(ctx, attendance.NewRecord{StudentID: 1, Date: jan10.AddDate(0, 0, 1), Status: attendance.StatusLate})
	assert.NoError(t, err)
}

func TestService_Update_date(t *testing.T) {
	jan11 := jan10.AddDate(0, 0, 1)
	jan12 := jan10.AddDate(0, 0, 2)

	tests := []struct {
		name    string
		date    time.Time
		wantErr error
	}{
		{name: "day taken by another record", date: jan10.Add(8 * time.Hour), wantErr: attendance.ErrDayTaken},
		{name: "same day other time", date: jan11.Add(10 * time.Hour)},
		{name: "free day", date: jan12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stack := testutil.NewMemoryStack(t)
			ctx := context.Background()
			testutil.CreateStudent(t, stack.StudentRepo, "Amy Lee", "5th Grade", "amy@school.test")
			testutil.CreateRecord(t, stack.AttendanceRepo, 1, jan10, attendance.StatusPresent)
			r2 := testutil.CreateRecord(t, stack.AttendanceRepo, 1, jan11, attendance.StatusAbsent)

			date := tt.date
			updated, err := stack.Attendance.Update(ctx, r2.ID, attendance.UpdateRecord{Date: &date})
			if tt.wantErr != nil {
				var vErr *core.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.wantErr, vErr.Err)

				all, err := stack.Attendance.QueryAll(ctx)
				require.NoError(t, err)
				assert.Equal(t, jan11, all[1].Date)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, date, updated.Date)
		})
	}
}

func TestService_Apply(t *testing.T) {
	stack := testutil.NewMemoryStack(t)
	ctx := context.Background()
	existing := testutil.CreateRecord(t, stack.AttendanceRepo, 3, jan10, attendance.StatusPresent, "note")

	upd := existing
	upd.Status = attendance.StatusAbsent
	written, err := stack.Attendance.Apply(ctx, attendance.Plan{
		Updates: []attendance.Record{upd},
		Creates: []attendance.Record{{StudentID: 4, Date: jan10, Status: attendance.StatusLate}},
	})
	require.NoError(t, err)
	require.Len(t, written, 2)
	assert.Equal(t, upd, written[0])
	assert.Equal(t, 2, written[1].ID)

	all, err := stack.Attendance.QueryAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestService_Apply_stopsOnFailure(t *testing.T) {
	stack := testutil.NewMemoryStack(t)

	written, err := stack.Attendance.Apply(context.Background(), attendance.Plan{
		Updates: []attendance.Record{{ID: 9, StudentID: 1, Date: jan10, Status: attendance.StatusLate}},
		Creates: []attendance.Record{{StudentID: 1, Date: jan10, Status: attendance.StatusLate}},
	})
	assert.True(t, core.IsNotFound(err))
	assert.Empty(t, written)
}

func TestService_ValidateMarks(t *testing.T) {
	stack := testutil.NewMemoryStack(t)

	marks := []attendance.Mark{{StudentID: 1, Date: jan10, Status: " LATE "}}
	require.NoError(t, stack.Attendance.ValidateMarks(marks))
	assert.Equal(t, attendance.StatusLate, marks[0].Status)

	assert.Error(t, stack.Attendance.ValidateMarks([]attendance.Mark{{StudentID: 1, Date: jan10, Status: attendance.StatusUnmarked}}))
	assert.Error(t, stack.Attendance.ValidateMarks([]attendance.Mark{{StudentID: 0, Date: jan10, Status: attendance.StatusLate}}))
}

func TestStatus_Label(t *testing.T) {
	assert.Equal(t, "Excused", attendance.StatusExcused.Label())
}
