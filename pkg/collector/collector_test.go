package collector

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proxmoxkit/lxc-autoscale/pkg/errors"
	"github.com/proxmoxkit/lxc-autoscale/pkg/inventory"
	"github.com/proxmoxkit/lxc-autoscale/pkg/ledger"
	"github.com/proxmoxkit/lxc-autoscale/pkg/measurement"
	"github.com/proxmoxkit/lxc-autoscale/pkg/probe"
)

// fakeExec scripts executor responses by command; unscripted commands fail.
type fakeExec struct {
	responses map[string]string
	errs      map[string]error
}

func (f *fakeExec) Run(_ context.Context, command string) (string, error) {
	if err, ok := f.errs[command]; ok {
		return "", err
	}
	if out, ok := f.responses[command]; ok {
		return out, nil
	}
	return "", errors.New(errors.ErrCodeExecution, "unscripted command: "+command)
}

// scriptContainer wires a healthy container into the fake host.
func scriptContainer(f *fakeExec, id string, cores, memoryMB int, load string) {
	f.responses[fmt.Sprintf("pct status %s", id)] = "status: running"
	f.responses[fmt.Sprintf("pct config %s", id)] = fmt.Sprintf("cores: %d\nmemory: %d", cores, memoryMB)
	f.responses[fmt.Sprintf("pct exec %s -- cat /proc/loadavg", id)] = load + " 0.00 0.00 1/1 1"
	f.responses[fmt.Sprintf("pct exec %s -- nproc", id)] = fmt.Sprintf("%d", cores)
	f.responses[fmt.Sprintf("pct exec %s -- cat /proc/meminfo", id)] =
		"MemTotal: 1000 kB\nMemAvailable: 500 kB"
}

func newTestCollector(f *fakeExec, dir string, ignore []string) *Collector {
	inv := inventory.New(f, ignore)
	p := probe.NewWithInterval(f, time.Millisecond)
	l := ledger.New(dir, f, nil)
	return New(inv, p, l)
}

func pctList(ids ...string) string {
	out := "VMID Status Lock Name"
	for _, id := range ids {
		out += fmt.Sprintf("\n%s running - ct%s", id, id)
	}
	return out
}

func TestCollect(t *testing.T) {
	f := &fakeExec{responses: map[string]string{"pct list": pctList("100", "101")}, errs: map[string]error{}}
	scriptContainer(f, "100", 2, 1024, "1.00")
	scriptContainer(f, "101", 4, 2048, "2.00")

	c := newTestCollector(f, t.TempDir(), nil)

	results, err := c.Collect(t.Context())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, measurement.Metrics{
		CPUPercent:      50.0,
		MemPercent:      50.0,
		InitialCores:    2,
		InitialMemoryMB: 1024,
	}, results["100"])
	assert.Equal(t, 4, results["101"].InitialCores)
}

func TestCollect_IsolatesFailingContainer(t *testing.T) {
	ids := []string{"100", "101", "102", "103", "104"}
	f := &fakeExec{responses: map[string]string{"pct list": pctList(ids...)}, errs: map[string]error{}}
	for _, id := range ids {
		scriptContainer(f, id, 2, 1024, "0.50")
	}
	// One container's configuration read deterministically fails.
	delete(f.responses, "pct config 102")
	f.errs["pct config 102"] = errors.New(errors.ErrCodeTransport, "channel broke")

	c := newTestCollector(f, t.TempDir(), nil)

	results, err := c.Collect(t.Context())
	require.NoError(t, err)
	assert.Len(t, results, 4)
	assert.NotContains(t, results, "102")
}

func TestCollect_SkipsNotRunning(t *testing.T) {
	f := &fakeExec{responses: map[string]string{"pct list": pctList("100", "101")}, errs: map[string]error{}}
	scriptContainer(f, "100", 2, 1024, "0.50")
	scriptContainer(f, "101", 2, 1024, "0.50")
	f.responses["pct status 101"] = "status: stopped"

	c := newTestCollector(f, t.TempDir(), nil)

	results, err := c.Collect(t.Context())
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Contains(t, results, "100")
}

func TestCollect_SkipsIgnored(t *testing.T) {
	f := &fakeExec{responses: map[string]string{"pct list": pctList("100", "101")}, errs: map[string]error{}}
	scriptContainer(f, "100", 2, 1024, "0.50")
	scriptContainer(f, "101", 2, 1024, "0.50")

	c := newTestCollector(f, t.TempDir(), []string{"100"})

	results, err := c.Collect(t.Context())
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Contains(t, results, "101")
}

func TestCollect_ListFailureFailsCycle(t *testing.T) {
	f := &fakeExec{errs: map[string]error{"pct list": errors.New(errors.ErrCodeTransport, "no channel")}}

	c := newTestCollector(f, t.TempDir(), nil)

	_, err := c.Collect(t.Context())
	assert.Error(t, err)
}

func TestCollect_WritesBackups(t *testing.T) {
	f := &fakeExec{responses: map[string]string{"pct list": pctList("100")}, errs: map[string]error{}}
	scriptContainer(f, "100", 2, 1024, "0.50")

	dir := t.TempDir()
	inv := inventory.New(f, nil)
	p := probe.NewWithInterval(f, time.Millisecond)
	l := ledger.New(dir, f, nil)
	c := New(inv, p, l)

	_, err := c.Collect(t.Context())
	require.NoError(t, err)

	settings, err := l.Load("100")
	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Equal(t, measurement.Settings{Cores: 2, MemoryMB: 1024}, *settings)
}

func TestCollect_EmptyInventory(t *testing.T) {
	f := &fakeExec{responses: map[string]string{"pct list": "VMID Status Lock Name"}}

	c := newTestCollector(f, t.TempDir(), nil)

	results, err := c.Collect(t.Context())
	require.NoError(t, err)
	assert.Empty(t, results)
}
