package main

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/derive"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/core/views"
)

type seedGrade struct {
	assignment string
	category   grade.Category
	maxScore   float64
	daysAgo    int
	scores     []float64 // one per seed student, in order
}

var (
	seedStudents = []student.NewStudent{
		{Name: "Amara Okafor", GradeLevel: "5th Grade", Email: "amara.okafor@school.test", Phone: "555-0101", ParentName: "Ngozi Okafor", ParentEmail: "ngozi.okafor@home.test"},
		{Name: "Lucas Martin", GradeLevel: "5th Grade", Email: "lucas.martin@school.test", Phone: "555-0102", ParentName: "Claire Martin"},
		{Name: "Sofia Rossi", GradeLevel: "6th Grade", Email: "sofia.rossi@school.test", Phone: "555-0103"},
		{Name: "Kenji Sato", GradeLevel: "6th Grade", Email: "kenji.sato@school.test", Phone: "555-0104", Status: student.StatusPending},
	}

	seedGrades = []seedGrade{
		{assignment: "Fractions Quiz", category: grade.CategoryQuiz, maxScore: 20, daysAgo: 9, scores: []float64{18, 14, 19, 11}},
		{assignment: "Reading Log", category: grade.CategoryHomework, maxScore: 10, daysAgo: 5, scores: []float64{9, 8, 10, 6}},
		{assignment: "Ecosystems Project", category: grade.CategoryProject, maxScore: 100, daysAgo: 2, scores: []float64{92, 78, 88, 65}},
		{assignment: "Unit 3 Test", category: grade.CategoryTest, maxScore: 50, daysAgo: -4, scores: []float64{0, 0, 0, 0}},
	}

	seedStatuses = []attendance.Status{attendance.StatusPresent, attendance.StatusPresent, attendance.StatusLate, attendance.StatusAbsent}

	errNotEmpty = errors.New("store already holds students; seed only fills an empty store")
)

func (cli *commandLine) seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty store with a sample class",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.seed(cmd.Context())
		},
	}
}

func (cli *commandLine) seed(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	svcs, err := cli.services()
	if err != nil {
		return err
	}

	existing, err := svcs.Students.QueryAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return errNotEmpty
	}

	students := make([]student.Student, 0, len(seedStudents))
	for _, ns := range seedStudents {
		s, err := svcs.Students.Create(ctx, ns)
		if err != nil {
			return errors.Wrapf(err, "seeding %s", ns.Name)
		}
		students = append(students, s)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	var nGrades int
	for _, sg := range seedGrades {
		for i, s := range students {
			score, maxScore := sg.scores[i], sg.maxScore
			if _, err := svcs.Grades.Create(ctx, grade.NewGrade{
				StudentID:      s.ID,
				AssignmentName: sg.assignment,
				Category:       sg.category,
				Score:          &score,
				MaxScore:       &maxScore,
				Date:           today.AddDate(0, 0, -sg.daysAgo),
			}); err != nil {
				return errors.Wrapf(err, "seeding %s", sg.assignment)
			}
			nGrades++
		}
	}

	page := views.NewAttendance(svcs)
	if err := page.Load(ctx); err != nil {
		return err
	}
	page.SetDate(today)
	marks := derive.MarkAll(students, today, attendance.StatusPresent)
	for i := range marks {
		marks[i].Status = seedStatuses[i%len(seedStatuses)]
	}
	written, err := page.Bulk(ctx, marks)
	if err != nil {
		return errors.Wrap(err, "seeding attendance")
	}

	cli.printf("seeded %d students, %d grades and %d attendance records\n", len(students), nGrades, len(written))
	return nil
}
