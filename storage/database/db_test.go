package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_createStatements(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "user",
			got:  createUserStmt("darasa", "s3cret"),
			want: `CREATE USER "darasa" CREATEDB ENCRYPTED PASSWORD 's3cret'`,
		},
		{
			name: "user with quotes",
			got:  createUserStmt(`da"rasa`, "it's"),
			want: `CREATE USER "da""rasa" CREATEDB ENCRYPTED PASSWORD 'it''s'`,
		},
		{
			name: "database",
			got:  createDBStmt("darasa"),
			want: `CREATE DATABASE "darasa"`,
		},
		{
			name: "database with injection attempt",
			got:  createDBStmt("x; DROP DATABASE postgres"),
			want: `CREATE DATABASE "x; DROP DATABASE postgres"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
