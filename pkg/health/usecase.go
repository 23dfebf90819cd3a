package health

import (
	"context"
	"fmt"
	"sync"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Result of one checker; Error is empty when healthy.
type Result struct {
	Name  string `json:"name"`
	Error string `json:"error,omitempty"`
}

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	// Ready fails with the first unhealthy dependency, in registration order.
	Ready(ctx context.Context) error
	Report(ctx context.Context) []Result
}

type service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers.
func NewService(checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers}
}

func (s *service) Ready(ctx context.Context) error {
	for _, r := range s.Report(ctx) {
		if r.Error != "" {
			return fmt.Errorf("%s: %s", r.Name, r.Error)
		}
	}
	return nil
}

// Report runs every checker concurrently.
func (s *service) Report(ctx context.Context) []Result {
	out := make([]Result, len(s.checkers))
	var wg sync.WaitGroup
	for i, ch := range s.checkers {
		wg.Add(1)
		go func(i int, ch Checker) {
			defer wg.Done()
			out[i] = Result{Name: ch.Name()}
			if err := ch.Check(ctx); err != nil {
				out[i].Error = err.Error()
			}
		}(i, ch)
	}
	wg.Wait()
	return out
}
