package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/marketbrief/internal/common"
)

func TestRegisterJob_Validation(t *testing.T) {
	svc := NewService(common.GetLogger())

	require.NoError(t, svc.RegisterJob("daily-report", "0 7 * * *", func() {}))

	// Duplicate name
	err := svc.RegisterJob("daily-report", "0 7 * * *", func() {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	// Bad schedule
	err = svc.RegisterJob("other", "not-a-cron", func() {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schedule")

	// Missing name
	err = svc.RegisterJob("", "0 7 * * *", func() {})
	require.Error(t, err)
}

func TestTriggerJob(t *testing.T) {
	svc := NewService(common.GetLogger())

	var runs atomic.Int32
	require.NoError(t, svc.RegisterJob("daily-report", "0 7 * * *", func() {
		runs.Add(1)
	}))

	require.NoError(t, svc.TriggerJob("daily-report"))

	assert.Eventually(t, func() bool {
		return runs.Load() == 1
	}, time.Second, 10*time.Millisecond)

	err := svc.TriggerJob("missing")
	require.Error(t, err)
}

func TestExecuteJob_PanicRecovered(t *testing.T) {
	svc := NewService(common.GetLogger())

	require.NoError(t, svc.RegisterJob("explosive", "0 7 * * *", func() {
		panic("boom")
	}))

	// Runs synchronously; must not crash the test process
	svc.executeJob("explosive")

	status, err := svc.GetJobStatus("explosive")
	require.NoError(t, err)
	assert.False(t, status.IsRunning)
	assert.Contains(t, status.LastError, "boom")
}

func TestStartStop(t *testing.T) {
	svc := NewService(common.GetLogger())

	require.NoError(t, svc.Start())
	assert.True(t, svc.IsRunning())
	assert.Error(t, svc.Start(), "second start must fail")

	svc.Stop()
	assert.False(t, svc.IsRunning())
}

func TestJobNames(t *testing.T) {
	svc := NewService(common.GetLogger())
	require.NoError(t, svc.RegisterJob("a", "0 7 * * *", func() {}))
	require.NoError(t, svc.RegisterJob("b", "30 6 * * *", func() {}))

	assert.ElementsMatch(t, []string{"a", "b"}, svc.JobNames())
}
