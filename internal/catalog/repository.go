package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Repository defines the interface for service-catalog storage
type Repository interface {
	Create(ctx context.Context, req *CreateServiceRequest) (*Service, error)
	GetByID(ctx context.Context, businessID, id string) (*Service, error)
	ListByBusiness(ctx context.Context, businessID string) ([]*Service, error)
}

// InMemoryRepository is a stub implementation of Repository using in-memory storage
type InMemoryRepository struct {
	mu       sync.RWMutex
	services map[string]*Service
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		services: make(map[string]*Service),
	}
}

// Create stores a new service in memory
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateServiceRequest) (*Service, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	svc := &Service{
		ID:              uuid.NewString(),
		BusinessID:      req.BusinessID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
		Currency:        req.Currency,
		Category:        req.Category,
	}

	r.mu.Lock()
	r.services[svc.ID] = svc
	r.mu.Unlock()

	return svc, nil
}

// GetByID retrieves a service scoped to the business
func (r *InMemoryRepository) GetByID(ctx context.Context, businessID, id string) (*Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	svc, ok := r.services[id]
	if !ok || svc.BusinessID != businessID {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}

// ListByBusiness returns every service owned by the business
func (r *InMemoryRepository) ListByBusiness(ctx context.Context, businessID string) ([]*Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Service
	for _, svc := range r.services {
		if svc.BusinessID == businessID {
			out = append(out, svc)
		}
	}
	return out, nil
}
