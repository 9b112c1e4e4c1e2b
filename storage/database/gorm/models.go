package gormrepos

import (
	"time"

	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
)

type Student struct {
	ID             int `gorm:"primaryKey;autoIncrement:false"`
	Name           string
	GradeLevel     string
	Email          string
	Phone          string
	EnrollmentDate *time.Time
	Status         string
	ParentName     string
	ParentEmail    string
	ParentPhone    string
}

func (Student) TableName() string { return "students" }

func toStudentModel(s student.Student) Student {
	m := Student{
		ID:          s.ID,
		Name:        s.Name,
		GradeLevel:  s.GradeLevel,
		Email:       s.Email,
		Phone:       s.Phone,
		Status:      string(s.Status),
		ParentName:  s.ParentName,
		ParentEmail: s.ParentEmail,
		ParentPhone: s.ParentPhone,
	}
	if !s.EnrollmentDate.IsZero() {
		enrolled := s.EnrollmentDate.UTC()
		m.EnrollmentDate = &enrolled
	}
	return m
}

func (m Student) domain() student.Student {
	s := student.Student{
		ID:          m.ID,
		Name:        m.Name,
		GradeLevel:  m.GradeLevel,
		Email:       m.Email,
		Phone:       m.Phone,
		Status:      student.Status(m.Status),
		ParentName:  m.ParentName,
		ParentEmail: m.ParentEmail,
		ParentPhone: m.ParentPhone,
	}
	if m.EnrollmentDate != nil {
		s.EnrollmentDate = m.EnrollmentDate.UTC()
	}
	return s
}

type Grade struct {
	ID             int `gorm:"primaryKey;autoIncrement:false"`
	StudentID      int `gorm:"index"`
	AssignmentName string
	Category       string
	Score          float64
	MaxScore       float64
	Date           time.Time
}

func (Grade) TableName() string { return "grades" }

func toGradeModel(g grade.Grade) Grade {
	return Grade{
		ID:             g.ID,
		StudentID:      g.StudentID,
		AssignmentName: g.AssignmentName,
		Category:       string(g.Category),
		Score:          g.Score,
		MaxScore:       g.MaxScore,
		Date:           g.Date.UTC(),
	}
}

func (m Grade) domain() grade.Grade {
	return grade.Grade{
		ID:             m.ID,
		StudentID:      m.StudentID,
		AssignmentName: m.AssignmentName,
		Category:       grade.Category(m.Category),
		Score:          m.Score,
		MaxScore:       m.MaxScore,
		Date:           m.Date.UTC(),
	}
}

type AttendanceRecord struct {
	ID        int       `gorm:"primaryKey;autoIncrement:false"`
	StudentID int       `gorm:"index"`
	Date      time.Time `gorm:"index"`
	Status    string
	Reason    string
}

func (AttendanceRecord) TableName() string { return "attendance" }

func toAttendanceModel(r attendance.Record) AttendanceRecord {
	return AttendanceRecord{
		ID:        r.ID,
		StudentID: r.StudentID,
		Date:      r.Date.UTC(),
		Status:    string(r.Status),
		Reason:    r.Reason,
	}
}

func (m AttendanceRecord) domain() attendance.Record {
	return attendance.Record{
		ID:        m.ID,
		StudentID: m.StudentID,
		Date:      m.Date.UTC(),
		Status:    attendance.Status(m.Status),
		Reason:    m.Reason,
	}
}
