package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "keeps allowed flag with value",
			args:    []string{"-a", "http://localhost", "-x", "junk"},
			allowed: []string{"-a"},
			want:    []string{"-a", "http://localhost"},
		},
		{
			name:    "keeps equals form",
			args:    []string{"-a=http://localhost", "-x=junk"},
			allowed: []string{"-a"},
			want:    []string{"-a=http://localhost"},
		},
		{
			name:    "drops everything when nothing allowed",
			args:    []string{"-a", "1", "-b", "2"},
			allowed: nil,
			want:    []string{},
		},
		{
			name:    "allowed flag followed by another flag keeps no value",
			args:    []string{"-v", "-a", "1"},
			allowed: []string{"-v"},
			want:    []string{"-v"},
		},
		{
			name:    "multiple allowed flags",
			args:    []string{"-a", "url", "-t", "5", "-p", "20"},
			allowed: []string{"-a", "-p"},
			want:    []string{"-a", "url", "-p", "20"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJSONConfigFlags(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()

	os.Args = []string{"cmd", "-c", "settings.json", "-a", "url"}
	assert.Equal(t, "settings.json", JSONConfigFlags())

	os.Args = []string{"cmd", "-config=other.json"}
	assert.Equal(t, "other.json", JSONConfigFlags())

	os.Args = []string{"cmd", "-a", "url"}
	assert.Equal(t, "", JSONConfigFlags())
}
