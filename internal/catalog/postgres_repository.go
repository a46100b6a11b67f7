package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxConn is the pool subset the repository needs; pgxmock satisfies it.
type PgxConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores services in the relational database.
type PostgresRepository struct {
	conn PgxConn
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("catalog: pgx pool required")
	}
	return &PostgresRepository{conn: pool}
}

// NewPostgresRepositoryWithConn allows injecting mocks for tests.
func NewPostgresRepositoryWithConn(conn PgxConn) *PostgresRepository {
	return &PostgresRepository{conn: conn}
}

// Create inserts a new service row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateServiceRequest) (*Service, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	query := `
		INSERT INTO services (id, business_id, name, description, duration_minutes, price_cents, currency, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := r.conn.Exec(ctx, query,
		id,
		req.BusinessID,
		req.Name,
		req.Description,
		req.DurationMinutes,
		req.PriceCents,
		req.Currency,
		req.Category,
	); err != nil {
		return nil, fmt.Errorf("catalog: insert failed: %w", err)
	}

	return &Service{
		ID:              id,
		BusinessID:      req.BusinessID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
		Currency:        req.Currency,
		Category:        req.Category,
	}, nil
}

// GetByID fetches a service scoped to the business.
func (r *PostgresRepository) GetByID(ctx context.Context, businessID, id string) (*Service, error) {
	query := `
		SELECT id, business_id, name, description, duration_minutes, price_cents, currency, category
		FROM services
		WHERE id = $1 AND business_id = $2
	`
	row := r.conn.QueryRow(ctx, query, id, businessID)
	var svc Service
	if err := row.Scan(
		&svc.ID,
		&svc.BusinessID,
		&svc.Name,
		&svc.Description,
		&svc.DurationMinutes,
		&svc.PriceCents,
		&svc.Currency,
		&svc.Category,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("catalog: select failed: %w", err)
	}
	return &svc, nil
}

// ListByBusiness returns the business's services ordered by name.
func (r *PostgresRepository) ListByBusiness(ctx context.Context, businessID string) ([]*Service, error) {
	query := `
		SELECT id, business_id, name, description, duration_minutes, price_cents, currency, category
		FROM services
		WHERE business_id = $1
		ORDER BY name
	`
	rows, err := r.conn.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("catalog: list failed: %w", err)
	}
	defer rows.Close()

	var services []*Service
	for rows.Next() {
		var svc Service
		if err := rows.Scan(
			&svc.ID,
			&svc.BusinessID,
			&svc.Name,
			&svc.Description,
			&svc.DurationMinutes,
			&svc.PriceCents,
			&svc.Currency,
			&svc.Category,
		); err != nil {
			return nil, fmt.Errorf("catalog: scan failed: %w", err)
		}
		services = append(services, &svc)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("catalog: rows failed: %w", rows.Err())
	}
	return services, nil
}
