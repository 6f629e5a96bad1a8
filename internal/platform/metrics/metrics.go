package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps process-lifetime HTTP counters for the health endpoint.
type Collector struct {
	totalRequests   atomic.Uint64
	clientErrors    atomic.Uint64
	serverErrors    atomic.Uint64
	unauthorized    atomic.Uint64
	totalDurationMs atomic.Uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	c.totalRequests.Add(1)
	switch {
	case status >= 500:
		c.serverErrors.Add(1)
	case status == 401 || status == 403:
		c.unauthorized.Add(1)
		c.clientErrors.Add(1)
	case status >= 400:
		c.clientErrors.Add(1)
	}
	c.totalDurationMs.Add(uint64(duration.Milliseconds()))
}

type Snapshot struct {
	RequestsTotal     uint64  `json:"requestsTotal"`
	ClientErrorsTotal uint64  `json:"clientErrorsTotal"`
	ServerErrorsTotal uint64  `json:"serverErrorsTotal"`
	DeniedTotal       uint64  `json:"deniedTotal"`
	AvgDurationMs     float64 `json:"avgDurationMs"`
}

func (c *Collector) Snapshot() Snapshot {
	total := c.totalRequests.Load()
	totalMs := c.totalDurationMs.Load()
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return Snapshot{
		RequestsTotal:     total,
		ClientErrorsTotal: c.clientErrors.Load(),
		ServerErrorsTotal: c.serverErrors.Load(),
		DeniedTotal:       c.unauthorized.Load(),
		AvgDurationMs:     avg,
	}
}
