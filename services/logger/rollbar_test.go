package logsvc

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRollbarLogger_prepare(t *testing.T) {
	l := RollbarLogger{}
	err := errors.New("boom")

	tests := []struct {
		name string
		args []interface{}
		want []interface{}
	}{
		{name: "message only", want: []interface{}{"msg"}},
		{name: "error", args: []interface{}{err}, want: []interface{}{"msg", err}},
		{
			name: "maps are merged last",
			args: []interface{}{map[string]interface{}{"a": 1}, err, map[string]interface{}{"b": 2}},
			want: []interface{}{"msg", err, map[string]interface{}{"a": 1, "b": 2}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.prepare("msg", tt.args))
		})
	}
}

func TestRollbarLogger_print(t *testing.T) {
	buf := new(bytes.Buffer)
	l := RollbarLogger{std: log.New(buf, "", 0)}
	l.Enable(false)

	l.Warn("loading grades failed", errors.New("store down"))
	assert.Equal(t, "[WARN] loading grades failed\nstore down\n", buf.String())
}
