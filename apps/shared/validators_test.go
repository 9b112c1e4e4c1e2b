package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
)

func TestNewValidator(t *testing.T) {
	translator := NewTranslator()
	validate := NewValidator(translator)

	score, max := 12.0, 10.0
	tests := []struct {
		name string
		obj  interface{}
		want map[string]string
	}{
		{
			name: "student",
			obj:  student.NewStudent{Name: " ", GradeLevel: "Year 5", Email: "amy", Phone: "555"},
			want: map[string]string{
				"name":        "this field cannot be blank",
				"grade_level": "invalid grade level",
				"email":       "enter a valid email address",
			},
		},
		{
			name: "grade",
			obj:  grade.NewGrade{StudentID: 1, AssignmentName: "Quiz", Category: "lab", Score: &score, MaxScore: &max},
			want: map[string]string{
				"category": "invalid category",
				"score":    "score cannot exceed max score",
			},
		},
		{
			name: "attendance",
			obj:  attendance.Mark{StudentID: 1, Status: "sick"},
			want: map[string]string{
				"date":   "this field is required",
				"status": "status must be one of present, absent, late or excused",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.obj)
			require.Error(t, err)
			got := make(map[string]string)
			for _, fe := range core.TranslateErrors(err, translator) {
				got[fe.Field] = fe.Error
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
