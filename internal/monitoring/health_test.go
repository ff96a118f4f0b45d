package monitoring

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEvaluateReportsWorstStatus(t *testing.T) {
	m := NewMonitor(time.Second)
	m.Register(Probe{Name: "ok", Run: func(context.Context) ProbeResult { return ProbeResult{Status: StatusUp} }})
	m.Register(Probe{Name: "slow", Run: func(context.Context) ProbeResult { return ProbeResult{Status: StatusDegraded} }})
	m.Register(Probe{Name: "ignored"})

	report := m.Evaluate(context.Background())
	require.False(t, report.Success)
	require.Equal(t, StatusDegraded, report.Status)
	require.Len(t, report.Checks, 2)
	require.Equal(t, "ok", report.Checks[0].Component)

	m.Register(Probe{Name: "broken", Run: func(context.Context) ProbeResult { panic("boom") }})
	report = m.Evaluate(context.Background())
	require.Equal(t, StatusDown, report.Status)
	require.Equal(t, "boom", report.Checks[2].Details)
}

func TestEvaluateWithoutProbesIsUp(t *testing.T) {
	report := NewMonitor(0).Evaluate(context.Background())
	require.True(t, report.Success)
	require.Equal(t, StatusUp, report.Status)
}

func TestResultFromError(t *testing.T) {
	require.Equal(t, StatusUp, ResultFromError("svc", nil, time.Millisecond).Status)
	require.Equal(t, StatusDegraded, ResultFromError("svc", context.DeadlineExceeded, 0).Status)

	res := ResultFromError("svc", errors.New("refused"), -1)
	require.Equal(t, StatusDown, res.Status)
	require.Zero(t, res.Duration)
}

func TestHTTPProbe(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusUnauthorized)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()

	probe := HTTPProbe("auth", srv.URL, srv.Client())
	require.Equal(t, StatusUp, probe.Run(context.Background()).Status)

	status.Store(http.StatusBadGateway)
	res := probe.Run(context.Background())
	require.Equal(t, StatusDegraded, res.Status)
	require.Contains(t, res.Details, "502")

	srv.Close()
	require.Equal(t, StatusDown, probe.Run(context.Background()).Status)
}
