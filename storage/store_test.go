package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/student"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name       string
		engine     string
		wantEngine string
		wantErr    bool
	}{
		{name: "default", engine: "", wantEngine: core.EngineMemory},
		{name: "memory", engine: core.EngineMemory, wantEngine: core.EngineMemory},
		{name: "sqlite", engine: core.EngineSQLite, wantEngine: core.EngineSQLite},
		{name: "unknown", engine: "mongo", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := &core.Config{Database: core.DatabaseConfig{
				Engine: tt.engine,
				Path:   filepath.Join(t.TempDir(), "darasa.db"),
			}}

			store, err := Open(conf)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownEngine)
				return
			}
			require.NoError(t, err)
			defer func() { assert.NoError(t, store.Close()) }()
			assert.Equal(t, tt.wantEngine, store.Engine)

			s, err := store.Students.Create(context.Background(), student.Student{
				Name:           "Amy Lee",
				GradeLevel:     "5th Grade",
				Email:          "amy@school.test",
				Status:         student.StatusActive,
				EnrollmentDate: time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
			})
			require.NoError(t, err)
			assert.Equal(t, 1, s.ID)
		})
	}
}
