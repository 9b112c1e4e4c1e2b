package views

import (
	"context"

	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/derive"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
)

const (
	recentActivityLen = 5
	upcomingDays      = 7
)

type DashboardView struct {
	Status          Status                `json:"status"`
	Stats           derive.DashboardStats `json:"stats"`
	RecentActivity  []derive.Activity     `json:"recent_activity"`
	TodayAttendance []attendance.Record   `json:"today_attendance"`
	Upcoming        []derive.Assignment   `json:"upcoming"`
}

// Dashboard is the landing page.
type Dashboard struct {
	page
	students []student.Student
	grades   []grade.Grade
	records  []attendance.Record
}

func NewDashboard(svcs Services) *Dashboard {
	return &Dashboard{page: page{svcs: svcs}}
}

func (c *Dashboard) Load(ctx context.Context) error {
	snap, err := c.svcs.load(ctx, fetchStudents|fetchGrades|fetchAttendance)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		return c.fail("loading dashboard", err)
	}
	c.students, c.grades, c.records = snap.students, snap.grades, snap.records
	c.succeed()
	return nil
}

func (c *Dashboard) View() DashboardView {
	c.mu.RLock()
	defer c.mu.RUnlock()

	today := c.svcs.now()
	return DashboardView{
		Status:          c.status,
		Stats:           derive.Dashboard(c.students, c.grades, c.records, today),
		RecentActivity:  derive.RecentActivity(c.grades, derive.NamesByID(c.students), recentActivityLen),
		TodayAttendance: derive.RecordsOn(today, c.records),
		Upcoming:        derive.UpcomingAssignments(derive.Assignments(c.grades), today, upcomingDays),
	}
}
