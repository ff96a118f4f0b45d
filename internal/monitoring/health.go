// Package monitoring reports whether the backends the dashboard depends on are
// reachable.
package monitoring

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/charlesng35/assetdesk/pkg/logger"
)

// ProbeStatus encodes the outcome of a probe.
type ProbeStatus string

const (
	StatusUp       ProbeStatus = "up"
	StatusDown     ProbeStatus = "down"
	StatusDegraded ProbeStatus = "degraded"
)

// ProbeResult is the outcome of a single probe.
type ProbeResult struct {
	Component string        `json:"component"`
	Status    ProbeStatus   `json:"status"`
	Details   string        `json:"details,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// Report aggregates probe results. Status is the worst status observed.
type Report struct {
	Success bool          `json:"success"`
	Status  ProbeStatus   `json:"status"`
	Checks  []ProbeResult `json:"checks"`
}

// Probe checks one dependency.
type Probe struct {
	Name string
	Run  func(ctx context.Context) ProbeResult
}

// Monitor runs registered probes concurrently.
type Monitor struct {
	timeout time.Duration
	probes  []Probe
	log     *zap.Logger
}

// NewMonitor builds a Monitor whose probes share timeout.
func NewMonitor(timeout time.Duration) *Monitor {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Monitor{timeout: timeout, log: logger.WithModule("monitoring")}
}

// Register adds a probe. Probes without a name or func are ignored.
func (m *Monitor) Register(p Probe) {
	if p.Name == "" || p.Run == nil {
		return
	}
	m.probes = append(m.probes, p)
}

// Evaluate runs every probe and folds the results into a Report.
func (m *Monitor) Evaluate(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	results := make([]ProbeResult, len(m.probes))
	var wg sync.WaitGroup
	for i, p := range m.probes {
		wg.Add(1)
		go func(i int, p Probe) {
			defer wg.Done()
			results[i] = runProbe(ctx, p)
		}(i, p)
	}
	wg.Wait()

	report := Report{Success: true, Status: StatusUp, Checks: results}
	for _, r := range results {
		switch r.Status {
		case StatusDown:
			report.Success = false
			report.Status = StatusDown
		case StatusDegraded:
			report.Success = false
			if report.Status != StatusDown {
				report.Status = StatusDegraded
			}
		}
		if r.Status != StatusUp {
			m.log.Warn("probe failing", zap.String("component", r.Component), zap.String("status", string(r.Status)), zap.String("details", r.Details))
		}
	}
	return report
}

func runProbe(ctx context.Context, p Probe) (result ProbeResult) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			result = ProbeResult{Status: StatusDown, Details: fmt.Sprint(rec)}
		}
		if result.Status == "" {
			result.Status = StatusDown
		}
		if result.Duration == 0 {
			result.Duration = time.Since(start)
		}
		result.Component = p.Name
	}()
	return p.Run(ctx)
}

// ResultFromError converts err into a ProbeResult. Timeouts count as degraded.
func ResultFromError(component string, err error, duration time.Duration) ProbeResult {
	if duration < 0 {
		duration = 0
	}
	if err == nil {
		return ProbeResult{Component: component, Status: StatusUp, Duration: duration}
	}
	status := StatusDown
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		status = StatusDegraded
	}
	return ProbeResult{Component: component, Status: status, Details: err.Error(), Duration: duration}
}

// HTTPProbe reports a backend as up when it answers below 500. Authentication
// failures still prove the service is serving.
func HTTPProbe(name, target string, client *http.Client) Probe {
	if client == nil {
		client = http.DefaultClient
	}
	return Probe{Name: name, Run: func(ctx context.Context) ProbeResult {
		start := time.Now()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return ResultFromError(name, err, time.Since(start))
		}
		res, err := client.Do(req)
		if err != nil {
			return ResultFromError(name, err, time.Since(start))
		}
		res.Body.Close()
		if res.StatusCode >= http.StatusInternalServerError {
			return ProbeResult{Component: name, Status: StatusDegraded, Details: res.Status, Duration: time.Since(start)}
		}
		return ProbeResult{Component: name, Status: StatusUp, Duration: time.Since(start)}
	}}
}
