package schedule

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxConn is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type PgxConn interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresRepository stores working hours in the relational database.
type PostgresRepository struct {
	conn PgxConn
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("schedule: pgx pool required")
	}
	return &PostgresRepository{conn: pool}
}

// NewPostgresRepositoryWithConn allows injecting mocks for tests.
func NewPostgresRepositoryWithConn(conn PgxConn) *PostgresRepository {
	return &PostgresRepository{conn: conn}
}

// ListForBusiness returns every working-hour row for the business, ordered
// by weekday then start time.
func (r *PostgresRepository) ListForBusiness(ctx context.Context, businessID string) ([]Rule, error) {
	query := `
		SELECT id, business_id, day_of_week, is_open, start_time, end_time
		FROM working_hours
		WHERE business_id = $1
		ORDER BY day_of_week, start_time
	`
	rows, err := r.conn.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("schedule: list failed: %w", err)
	}
	defer rows.Close()

	var rules []Rule
	for rows.Next() {
		var rule Rule
		if err := rows.Scan(
			&rule.ID,
			&rule.BusinessID,
			&rule.DayOfWeek,
			&rule.IsOpen,
			&rule.StartTime,
			&rule.EndTime,
		); err != nil {
			return nil, fmt.Errorf("schedule: scan failed: %w", err)
		}
		rules = append(rules, rule)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("schedule: rows failed: %w", rows.Err())
	}
	return rules, nil
}

// ReplaceForBusiness swaps the schedule wholesale inside one transaction so
// concurrent readers never observe a half-replaced week.
func (r *PostgresRepository) ReplaceForBusiness(ctx context.Context, businessID string, inputs []RuleInput) ([]Rule, error) {
	normalized := NormalizeInputs(inputs)

	tx, err := r.conn.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("schedule: begin failed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM working_hours WHERE business_id = $1`, businessID); err != nil {
		return nil, fmt.Errorf("schedule: clear failed: %w", err)
	}

	insert := `
		INSERT INTO working_hours (id, business_id, day_of_week, is_open, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	rules := make([]Rule, 0, len(normalized))
	for _, in := range normalized {
		id := uuid.NewString()
		if _, err := tx.Exec(ctx, insert, id, businessID, in.DayOfWeek, in.IsOpen, in.StartTime, in.EndTime); err != nil {
			return nil, fmt.Errorf("schedule: insert failed: %w", err)
		}
		rules = append(rules, Rule{
			ID:         id,
			BusinessID: businessID,
			DayOfWeek:  in.DayOfWeek,
			IsOpen:     in.IsOpen,
			StartTime:  in.StartTime,
			EndTime:    in.EndTime,
		})
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("schedule: commit failed: %w", err)
	}
	return rules, nil
}
