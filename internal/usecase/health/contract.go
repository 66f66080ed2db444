package health

import "context"

// Checker checks one backing component's availability.
type Checker interface {
	HealthCheck(ctx context.Context) error
}
