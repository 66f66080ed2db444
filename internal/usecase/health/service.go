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

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks across the vector index, the
// relational store, and the embedding provider.
type Service struct {
	index    Checker
	store    Checker
	embedder Checker
}

// New creates a Service. embedder can be nil.
func New(index, store, embedder Checker) *Service {
	return &Service{index: index, store: store, embedder: embedder}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	run := func(name string, c Checker) {
		if c == nil {
			return
		}
		if err := c.HealthCheck(ctx); err != nil {
			checks[name] = CheckError
		} else {
			checks[name] = CheckOK
		}
	}

	run("vector_index", s.index)
	run("relational_store", s.store)
	run("embedding", s.embedder)

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
