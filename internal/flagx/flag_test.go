package flagx

import (
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
			name:    "separate value",
			args:    []string{"-c", "conf.json", "-x", "other"},
			allowed: []string{"-c"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=conf.json", "-x=1"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.json"},
		},
		{
			name:    "flag followed by another flag keeps no value",
			args:    []string{"-peer", "-n", "5"},
			allowed: []string{"-peer", "-n"},
			want:    []string{"-peer", "-n", "5"},
		},
		{
			name:    "positional arguments dropped",
			args:    []string{"delete", "123-456", "-yes"},
			allowed: []string{"-yes"},
			want:    []string{"-yes"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "b"},
			allowed: []string{},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}
