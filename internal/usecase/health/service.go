package health

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/foldex/internal/db"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// probeQuery is matched against each backend; any well-formed query works.
const probeQuery = "health"

// Report aggregates health check results.
type Report struct {
	Status     Status
	Checks     map[string]CheckResult
	Generation uint64
	Records    int
}

// Service coordinates health checks.
type Service struct {
	repo Repository
}

// New creates a Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Check probes the live generation and both backends.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	var rep Report

	err := s.repo.View(ctx, func(ctx context.Context, g db.Generation) error {
		rep.Generation = g.ID()
		rep.Records = g.Len()
		checks["prefix"] = probe(ctx, g.Prefix())
		checks["fuzzy"] = probe(ctx, g.Fuzzy())
		return nil
	})
	if err != nil {
		checks["index"] = CheckError
		return Report{Status: Unhealthy, Checks: checks}
	}
	checks["index"] = CheckOK

	rep.Status = Healthy
	for _, v := range checks {
		if v == CheckError {
			rep.Status = Degraded
			break
		}
	}
	rep.Checks = checks
	return rep
}

func probe(ctx context.Context, m db.Matcher) CheckResult {
	if _, err := m.Match(ctx, probeQuery); err != nil {
		return CheckError
	}
	return CheckOK
}

// Ready reports whether the index can serve queries.
func (s *Service) Ready(ctx context.Context) error {
	if r := s.Check(ctx); r.Status != Healthy {
		return fmt.Errorf("index %s", r.Status)
	}
	return nil
}
