package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Torqix/aarohan-backend/internal/domain"
)

const eventColumns = `id, title, description, category, date, location, banner_url,
	max_participants, current_participants, is_paid, price, is_team_event,
	max_team_size, status, created_at, updated_at`

// PostgresEventRepository implements EventRepository using PostgreSQL
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository creates a new PostgresEventRepository
func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	event := &domain.Event{}
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Category,
		&event.Date,
		&event.Location,
		&event.BannerURL,
		&event.MaxParticipants,
		&event.CurrentParticipants,
		&event.IsPaid,
		&event.Price,
		&event.IsTeamEvent,
		&event.MaxTeamSize,
		&event.Status,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return event, nil
}

// Create creates a new event
func (r *PostgresEventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (id, title, description, category, date, location, banner_url,
			max_participants, current_participants, is_paid, price, is_team_event,
			max_team_size, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Category,
		event.Date,
		event.Location,
		event.BannerURL,
		event.MaxParticipants,
		event.CurrentParticipants,
		event.IsPaid,
		event.Price,
		event.IsTeamEvent,
		event.MaxTeamSize,
		event.Status,
		event.CreatedAt,
		event.UpdatedAt,
	)
	return err
}

// GetByID retrieves an event by ID
func (r *PostgresEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEvent(r.pool.QueryRow(ctx, query, id))
}

// List retrieves events matching the filter, newest-starting first
func (r *PostgresEventRepository) List(ctx context.Context, filter EventFilter) ([]*domain.Event, int, error) {
	where := ""
	args := []interface{}{}
	idx := 1
	if filter.Category != "" {
		where += fmt.Sprintf(" AND category = $%d", idx)
		args = append(args, filter.Category)
		idx++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", idx)
		args = append(args, filter.Status)
		idx++
	}

	countQuery := `SELECT COUNT(*) FROM events WHERE 1=1` + where
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + eventColumns + ` FROM events WHERE 1=1` + where +
		fmt.Sprintf(` ORDER BY date ASC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		event := &domain.Event{}
		err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.Category,
			&event.Date,
			&event.Location,
			&event.BannerURL,
			&event.MaxParticipants,
			&event.CurrentParticipants,
			&event.IsPaid,
			&event.Price,
			&event.IsTeamEvent,
			&event.MaxTeamSize,
			&event.Status,
			&event.CreatedAt,
			&event.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, event)
	}
	return events, total, rows.Err()
}

// Update persists the event's mutable fields
func (r *PostgresEventRepository) Update(ctx context.Context, event *domain.Event) error {
	query := `
		UPDATE events
		SET title = $2, description = $3, category = $4, date = $5, location = $6,
			banner_url = $7, max_participants = $8, is_paid = $9, price = $10,
			max_team_size = $11, status = $12, updated_at = $13
		WHERE id = $1
	`
	event.UpdatedAt = time.Now()
	tag, err := r.pool.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Category,
		event.Date,
		event.Location,
		event.BannerURL,
		event.MaxParticipants,
		event.IsPaid,
		event.Price,
		event.MaxTeamSize,
		event.Status,
		event.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// Delete removes an event. Events with registrations are protected by
// foreign keys; cancel instead of deleting once people have signed up.
func (r *PostgresEventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}
