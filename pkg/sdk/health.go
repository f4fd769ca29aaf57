package foldex

import "context"

// Health probes the live index and both backends.
func (e *Engine) Health(ctx context.Context) HealthStatus {
	report := e.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status:     string(report.Status),
		Checks:     checks,
		Generation: report.Generation,
		Records:    report.Records,
	}
}
