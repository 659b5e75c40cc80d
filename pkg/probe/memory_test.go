package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/proxmoxkit/lxc-autoscale/pkg/errors"
)

func TestMemoryUsage(t *testing.T) {
	meminfo := "MemTotal:       1000 kB\nMemFree:         100 kB\nMemAvailable:    250 kB\nBuffers:          50 kB"
	exec := script(map[string][]response{
		meminfoCmd: {{out: meminfo}},
	})

	usage := testProbe(exec).MemoryUsage(t.Context(), "100")
	assert.Equal(t, 75.0, usage)
}

func TestMemoryUsage_ZeroTotalIsFailure(t *testing.T) {
	meminfo := "MemTotal:       0 kB\nMemAvailable:   0 kB"
	exec := script(map[string][]response{
		meminfoCmd: {{out: meminfo}},
	})

	usage := testProbe(exec).MemoryUsage(t.Context(), "100")
	assert.Equal(t, 0.0, usage)
}

func TestMemoryUsage_MissingFields(t *testing.T) {
	exec := script(map[string][]response{
		meminfoCmd: {{out: "MemTotal: 1000 kB"}},
	})

	usage := testProbe(exec).MemoryUsage(t.Context(), "100")
	assert.Equal(t, 0.0, usage)
}

func TestMemoryUsage_ExecutorFailure(t *testing.T) {
	exec := script(map[string][]response{
		meminfoCmd: {{err: errors.New(errors.ErrCodeTransport, "no channel")}},
	})

	usage := testProbe(exec).MemoryUsage(t.Context(), "100")
	assert.Equal(t, 0.0, usage)
}

func TestMeminfoValue(t *testing.T) {
	out := "MemTotal:  2048 kB\nMemAvailable: 512 kB"

	tests := []struct {
		name   string
		key    string
		want   float64
		wantOK bool
	}{
		{"total", "MemTotal", 2048, true},
		{"available", "MemAvailable", 512, true},
		{"absent", "SwapTotal", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := meminfoValue(out, tt.key)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("meminfoValue(%q) = (%v, %v), want (%v, %v)", tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
