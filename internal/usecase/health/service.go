// Package health reports component availability for readiness probes.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// Report aggregates health check results per component.
type Report struct {
	Status Status
	Checks map[string]string
}

// StorePinger checks shop store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// Service coordinates health checks.
type Service struct {
	store StorePinger
}

// New creates a health service.
func New(store StorePinger) *Service {
	return &Service{store: store}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]string)
	status := Healthy

	if err := s.store.Ping(ctx); err != nil {
		checks["store"] = err.Error()
		status = Degraded
	} else {
		checks["store"] = "ok"
	}

	return Report{Status: status, Checks: checks}
}
