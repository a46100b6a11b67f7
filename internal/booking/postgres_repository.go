package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the Postgres error code raised by the partial unique
// index on live appointment slots.
const uniqueViolation = "23505"

// PgxConn is the pool subset the repository needs; pgxmock satisfies it.
type PgxConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresRepository stores appointments in the relational database. Slot
// uniqueness is enforced by a partial unique index over live appointments,
// so concurrent inserts race safely: one wins, the other gets ErrSlotTaken.
type PostgresRepository struct {
	conn PgxConn
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("booking: pgx pool required")
	}
	return &PostgresRepository{conn: pool}
}

// NewPostgresRepositoryWithConn allows injecting mocks for tests.
func NewPostgresRepositoryWithConn(conn PgxConn) *PostgresRepository {
	return &PostgresRepository{conn: conn}
}

const apptColumns = `id, business_id, service_id, appointment_date, appointment_time, status, client_name, client_email, client_phone, notes, created_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var appt Appointment
	err := row.Scan(
		&appt.ID,
		&appt.BusinessID,
		&appt.ServiceID,
		&appt.AppointmentDate,
		&appt.AppointmentTime,
		&appt.Status,
		&appt.ClientName,
		&appt.ClientEmail,
		&appt.ClientPhone,
		&appt.Notes,
		&appt.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// Create inserts the appointment. A conflict with the live-slot unique index
// maps to ErrSlotTaken.
func (r *PostgresRepository) Create(ctx context.Context, appt *Appointment) error {
	query := `
		INSERT INTO appointments (id, business_id, service_id, appointment_date, appointment_time, status, client_name, client_email, client_phone, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.conn.Exec(ctx, query,
		appt.ID,
		appt.BusinessID,
		appt.ServiceID,
		appt.AppointmentDate,
		appt.AppointmentTime,
		appt.Status,
		appt.ClientName,
		appt.ClientEmail,
		appt.ClientPhone,
		appt.Notes,
		appt.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrSlotTaken
		}
		return fmt.Errorf("booking: insert failed: %w", err)
	}
	return nil
}

// GetByID fetches an appointment scoped to the business.
func (r *PostgresRepository) GetByID(ctx context.Context, businessID, id string) (*Appointment, error) {
	query := `SELECT ` + apptColumns + ` FROM appointments WHERE id = $1 AND business_id = $2`
	appt, err := scanAppointment(r.conn.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("booking: select failed: %w", err)
	}
	return appt, nil
}

// ListForBusiness returns the business's appointments ordered by date then time.
func (r *PostgresRepository) ListForBusiness(ctx context.Context, businessID string) ([]*Appointment, error) {
	query := `
		SELECT ` + apptColumns + `
		FROM appointments
		WHERE business_id = $1
		ORDER BY appointment_date, appointment_time
	`
	rows, err := r.conn.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("booking: list failed: %w", err)
	}
	defer rows.Close()

	var appts []*Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("booking: scan failed: %w", err)
		}
		appts = append(appts, appt)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("booking: rows failed: %w", rows.Err())
	}
	return appts, nil
}

// ListTimesForDay returns start times of live appointments on the date.
// Cancelled and completed rows do not block slots.
func (r *PostgresRepository) ListTimesForDay(ctx context.Context, businessID string, date time.Time) ([]string, error) {
	query := `
		SELECT appointment_time
		FROM appointments
		WHERE business_id = $1 AND appointment_date = $2 AND status IN ('new', 'confirmed')
	`
	rows, err := r.conn.Query(ctx, query, businessID, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("booking: times lookup failed: %w", err)
	}
	defer rows.Close()

	var times []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("booking: scan failed: %w", err)
		}
		times = append(times, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("booking: rows failed: %w", rows.Err())
	}
	return times, nil
}

// UpdateStatus applies a state-machine-checked status change inside a
// transaction so concurrent transitions cannot skip states.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, businessID, id string, status Status) (*Appointment, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	tx, err := r.conn.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("booking: begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	var current Status
	err = tx.QueryRow(ctx,
		`SELECT status FROM appointments WHERE id = $1 AND business_id = $2 FOR UPDATE`,
		id, businessID,
	).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("booking: status lookup failed: %w", err)
	}
	if !CanTransition(current, status) {
		return nil, ErrInvalidTransition
	}

	appt, err := scanAppointment(tx.QueryRow(ctx,
		`UPDATE appointments SET status = $1 WHERE id = $2 AND business_id = $3 RETURNING `+apptColumns,
		status, id, businessID,
	))
	if err != nil {
		return nil, fmt.Errorf("booking: update failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("booking: commit failed: %w", err)
	}
	return appt, nil
}
