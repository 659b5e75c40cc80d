package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDuration_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"duration string", "timeout: 45s", 45 * time.Second, false},
		{"compound string", "timeout: 1m30s", 90 * time.Second, false},
		{"integer seconds", "timeout: 30", 30 * time.Second, false},
		{"zero seconds", "timeout: 0", 0, false},
		{"quoted integer needs a unit", `timeout: "30"`, 0, true},
		{"invalid string", "timeout: soon", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				Timeout Duration `yaml:"timeout"`
			}
			err := yaml.Unmarshal([]byte(tt.input), &out)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Timeout.Std())
		})
	}
}

func TestDuration_MarshalYAML(t *testing.T) {
	out, err := yaml.Marshal(struct {
		Timeout Duration `yaml:"timeout"`
	}{Timeout: Duration(45 * time.Second)})
	require.NoError(t, err)
	assert.Equal(t, "timeout: 45s\n", string(out))
}
