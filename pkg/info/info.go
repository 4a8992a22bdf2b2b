// Package info assembles the metadata reported by the service: static service
// facts, host platform facts, uptime derived from the process start time and
// fields taken from the inbound request.
package info

import (
	"time"
)

// Timezone is the label reported next to every timestamp. All timestamps are UTC.
const Timezone = "UTC"

// ServiceInfo describes the running service. Values never change after startup.
type ServiceInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Framework   string `json:"framework"`
}

// SystemInfo holds facts about the host the process runs on.
type SystemInfo struct {
	Hostname        string `json:"hostname"`
	// Platform is the Go GOOS value, e.g. "linux" or "darwin" (lower case).
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platform_version"`
	Architecture    string `json:"architecture"`
	CPUCount        int    `json:"cpu_count"`
	GoVersion       string `json:"go_version"`
}

// RuntimeInfo is computed on every call from the process start time.
type RuntimeInfo struct {
	UptimeSeconds int64  `json:"uptime_seconds"`
	UptimeHuman   string `json:"uptime_human"`
	CurrentTime   string `json:"current_time"`
	Timezone      string `json:"timezone"`
}

// RequestInfo holds the fields echoed back from the inbound request.
type RequestInfo struct {
	ClientIP  string `json:"client_ip"`
	UserAgent string `json:"user_agent"`
	Method    string `json:"method"`
	Path      string `json:"path"`
}

// Report is the body served on the root endpoint.
type Report struct {
	Service ServiceInfo `json:"service"`
	System  SystemInfo  `json:"system"`
	Runtime RuntimeInfo `json:"runtime"`
	Request RequestInfo `json:"request"`
}

// HealthReport is the body served on the health endpoint.
type HealthReport struct {
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// StatusHealthy is the only status the service reports while it is running.
const StatusHealthy = "healthy"

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClock replaces time.Now as the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// WithSystemInfo overrides the detected host facts.
func WithSystemInfo(system SystemInfo) Option {
	return func(a *Aggregator) {
		a.system = system
		a.systemSet = true
	}
}

// Aggregator builds reports from read-only inputs. It is safe for concurrent use.
type Aggregator struct {
	service   ServiceInfo
	system    SystemInfo
	systemSet bool
	startTime time.Time
	now       func() time.Time
}

// NewAggregator creates an aggregator anchored at startTime. Host facts are
// detected once here unless WithSystemInfo is given.
func NewAggregator(service ServiceInfo, startTime time.Time, opts ...Option) *Aggregator {
	a := &Aggregator{
		service:   service,
		startTime: startTime,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if !a.systemSet {
		a.system = DetectSystem()
	}
	return a
}

// Service returns the static service metadata.
func (a *Aggregator) Service() ServiceInfo {
	return a.service
}

// System returns the host facts.
func (a *Aggregator) System() SystemInfo {
	return a.system
}

// Runtime computes the current uptime snapshot.
func (a *Aggregator) Runtime() RuntimeInfo {
	now := a.now()
	seconds, human := Uptime(a.startTime, now)
	return RuntimeInfo{
		UptimeSeconds: seconds,
		UptimeHuman:   human,
		CurrentTime:   FormatTimestamp(now),
		Timezone:      Timezone,
	}
}

// Report combines every section for the given request.
func (a *Aggregator) Report(req RequestInfo) Report {
	return Report{
		Service: a.service,
		System:  a.system,
		Runtime: a.Runtime(),
		Request: req,
	}
}

// Health returns the fixed-shape health body.
func (a *Aggregator) Health() HealthReport {
	now := a.now()
	seconds, _ := Uptime(a.startTime, now)
	return HealthReport{
		Status:        StatusHealthy,
		Timestamp:     FormatTimestamp(now),
		UptimeSeconds: seconds,
	}
}

// FormatTimestamp renders t as RFC 3339 in UTC with sub-second precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
