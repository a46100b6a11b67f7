package schedule

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Repository defines the interface for working-hour storage
type Repository interface {
	ListForBusiness(ctx context.Context, businessID string) ([]Rule, error)
	ReplaceForBusiness(ctx context.Context, businessID string, inputs []RuleInput) ([]Rule, error)
}

// InMemoryRepository is a stub implementation of Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	rules map[string][]Rule
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		rules: make(map[string][]Rule),
	}
}

// ListForBusiness returns the stored rules for a business.
func (r *InMemoryRepository) ListForBusiness(ctx context.Context, businessID string) ([]Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.rules[businessID]
	out := make([]Rule, len(stored))
	copy(out, stored)
	return out, nil
}

// ReplaceForBusiness swaps the business's schedule wholesale.
func (r *InMemoryRepository) ReplaceForBusiness(ctx context.Context, businessID string, inputs []RuleInput) ([]Rule, error) {
	normalized := NormalizeInputs(inputs)

	rules := make([]Rule, 0, len(normalized))
	for _, in := range normalized {
		rules = append(rules, Rule{
			ID:         uuid.NewString(),
			BusinessID: businessID,
			DayOfWeek:  in.DayOfWeek,
			IsOpen:     in.IsOpen,
			StartTime:  in.StartTime,
			EndTime:    in.EndTime,
		})
	}

	r.mu.Lock()
	r.rules[businessID] = rules
	r.mu.Unlock()

	out := make([]Rule, len(rules))
	copy(out, rules)
	return out, nil
}
