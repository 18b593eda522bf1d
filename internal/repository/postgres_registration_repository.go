package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Torqix/aarohan-backend/internal/domain"
)

const registrationColumns = `id, event_id, user_id, phone, college, student_id,
	COALESCE(team_id, ''), team_name, team_role, payment_status, payment_id,
	status, checked_in, checked_in_at, checked_in_by, registered_at, updated_at`

// PostgresRegistrationRepository implements RegistrationRepository using
// PostgreSQL. Admission runs inside a single transaction with the event row
// locked, so capacity and uniqueness hold under concurrent requests.
type PostgresRegistrationRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRegistrationRepository creates a new PostgresRegistrationRepository
func NewPostgresRegistrationRepository(pool *pgxpool.Pool) *PostgresRegistrationRepository {
	return &PostgresRegistrationRepository{pool: pool}
}

func scanRegistration(row pgx.Row) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var teamID *string
	err := row.Scan(
		&reg.ID,
		&reg.EventID,
		&reg.UserID,
		&reg.Phone,
		&reg.College,
		&reg.StudentID,
		&teamID,
		&reg.TeamName,
		&reg.TeamRole,
		&reg.PaymentStatus,
		&reg.PaymentID,
		&reg.Status,
		&reg.CheckedIn,
		&reg.CheckedInAt,
		&reg.CheckedInBy,
		&reg.RegisteredAt,
		&reg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if teamID != nil {
		reg.TeamID = *teamID
	}
	return reg, nil
}

// lockEvent reads the event row FOR UPDATE and applies the admission gates
// shared by every registration path.
func lockEvent(ctx context.Context, tx pgx.Tx, eventID string) (*domain.Event, error) {
	event := &domain.Event{}
	query := `
		SELECT id, status, max_participants, current_participants,
			is_paid, price, is_team_event, max_team_size
		FROM events WHERE id = $1 FOR UPDATE
	`
	err := tx.QueryRow(ctx, query, eventID).Scan(
		&event.ID,
		&event.Status,
		&event.MaxParticipants,
		&event.CurrentParticipants,
		&event.IsPaid,
		&event.Price,
		&event.IsTeamEvent,
		&event.MaxTeamSize,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	if !event.AcceptsRegistrations() {
		return nil, domain.ErrEventCancelled
	}
	if event.IsFull() {
		return nil, domain.ErrEventFull
	}
	return event, nil
}

// insertRegistration inserts the registration, relying on the primary key to
// reject duplicates for the same (event, user) pair.
func insertRegistration(ctx context.Context, tx pgx.Tx, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (id, event_id, user_id, phone, college, student_id,
			team_id, team_name, team_role, payment_status, payment_id, status,
			checked_in, checked_in_by, registered_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, $11, $12,
			FALSE, '', $13, $14)
		ON CONFLICT (id) DO NOTHING
	`
	tag, err := tx.Exec(ctx, query,
		reg.ID,
		reg.EventID,
		reg.UserID,
		reg.Phone,
		reg.College,
		reg.StudentID,
		reg.TeamID,
		reg.TeamName,
		reg.TeamRole,
		reg.PaymentStatus,
		reg.PaymentID,
		reg.Status,
		reg.RegisteredAt,
		reg.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyRegistered
	}
	return nil
}

func incrementParticipants(ctx context.Context, tx pgx.Tx, eventID string) error {
	_, err := tx.Exec(ctx,
		`UPDATE events SET current_participants = current_participants + 1, updated_at = NOW() WHERE id = $1`,
		eventID)
	return err
}

// Register admits a solo registration, or creates a team with the registrant
// as leader when teamName is set.
func (r *PostgresRegistrationRepository) Register(ctx context.Context, reg *domain.Registration, teamName string) (*domain.Team, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	event, err := lockEvent(ctx, tx, reg.EventID)
	if err != nil {
		return nil, err
	}

	if event.IsTeamEvent && teamName == "" {
		return nil, domain.ErrTeamRequired
	}
	if !event.IsTeamEvent && teamName != "" {
		return nil, domain.ErrNotTeamEvent
	}

	reg.PaymentStatus = domain.PaymentStatusNotRequired
	if event.IsPaid {
		reg.PaymentStatus = domain.PaymentStatusPending
	}

	var team *domain.Team
	if teamName != "" {
		team, err = domain.NewTeam(reg.EventID, reg.UserID, teamName)
		if err != nil {
			return nil, err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO teams (id, event_id, name, invite_code, leader_id, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			team.ID, team.EventID, team.Name, team.InviteCode, team.LeaderID, team.CreatedAt, team.UpdatedAt)
		if err != nil {
			return nil, err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO team_members (team_id, user_id, role, joined_at) VALUES ($1, $2, $3, $4)`,
			team.ID, reg.UserID, domain.TeamRoleLeader, team.CreatedAt)
		if err != nil {
			return nil, err
		}
		reg.AttachTeam(team.ID, team.Name, domain.TeamRoleLeader)
	}

	if err := insertRegistration(ctx, tx, reg); err != nil {
		return nil, err
	}
	if err := incrementParticipants(ctx, tx, reg.EventID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return team, nil
}

// JoinTeam admits the registration into an existing team looked up by invite
// code on the registration's event. The team row is locked so the member
// count cannot race past the team size limit.
func (r *PostgresRegistrationRepository) JoinTeam(ctx context.Context, reg *domain.Registration, inviteCode string) (*domain.Team, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	event, err := lockEvent(ctx, tx, reg.EventID)
	if err != nil {
		return nil, err
	}
	if !event.IsTeamEvent {
		return nil, domain.ErrNotTeamEvent
	}

	team := &domain.Team{}
	err = tx.QueryRow(ctx,
		`SELECT id, event_id, name, invite_code, leader_id, created_at, updated_at
		 FROM teams WHERE event_id = $1 AND invite_code = $2 FOR UPDATE`,
		reg.EventID, inviteCode).Scan(
		&team.ID, &team.EventID, &team.Name, &team.InviteCode,
		&team.LeaderID, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidInviteCode
		}
		return nil, err
	}

	var memberCount int
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM team_members WHERE team_id = $1`, team.ID).Scan(&memberCount)
	if err != nil {
		return nil, err
	}
	if memberCount >= event.MaxTeamSize {
		return nil, domain.ErrTeamFull
	}

	reg.PaymentStatus = domain.PaymentStatusNotRequired
	if event.IsPaid {
		reg.PaymentStatus = domain.PaymentStatusPending
	}
	reg.AttachTeam(team.ID, team.Name, domain.TeamRoleMember)

	if err := insertRegistration(ctx, tx, reg); err != nil {
		return nil, err
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO team_members (team_id, user_id, role, joined_at) VALUES ($1, $2, $3, $4)`,
		team.ID, reg.UserID, domain.TeamRoleMember, reg.RegisteredAt)
	if err != nil {
		return nil, err
	}
	if err := incrementParticipants(ctx, tx, reg.EventID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return team, nil
}

// GetByID retrieves a registration by ID
func (r *PostgresRegistrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	return scanRegistration(r.pool.QueryRow(ctx, query, id))
}

// ListByEvent retrieves registrations for an event with pagination
func (r *PostgresRegistrationRepository) ListByEvent(ctx context.Context, eventID string, limit, offset int) ([]*domain.Registration, int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM registrations WHERE event_id = $1`, eventID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + registrationColumns + ` FROM registrations
		WHERE event_id = $1 ORDER BY registered_at ASC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, eventID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	regs, err := collectRegistrations(rows)
	if err != nil {
		return nil, 0, err
	}
	return regs, total, nil
}

// ListByUser retrieves all registrations for a user, newest first
func (r *PostgresRegistrationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations
		WHERE user_id = $1 ORDER BY registered_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRegistrations(rows)
}

func collectRegistrations(rows pgx.Rows) ([]*domain.Registration, error) {
	var regs []*domain.Registration
	for rows.Next() {
		reg := &domain.Registration{}
		var teamID *string
		err := rows.Scan(
			&reg.ID,
			&reg.EventID,
			&reg.UserID,
			&reg.Phone,
			&reg.College,
			&reg.StudentID,
			&teamID,
			&reg.TeamName,
			&reg.TeamRole,
			&reg.PaymentStatus,
			&reg.PaymentID,
			&reg.Status,
			&reg.CheckedIn,
			&reg.CheckedInAt,
			&reg.CheckedInBy,
			&reg.RegisteredAt,
			&reg.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if teamID != nil {
			reg.TeamID = *teamID
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

// UpdateStatus sets the admin approval decision
func (r *PostgresRegistrationRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE registrations SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRegistrationNotFound
	}
	return nil
}

// CheckIn marks the registration checked in. The WHERE clause makes the flip
// atomic: of two concurrent scans, exactly one matches the row.
func (r *PostgresRegistrationRepository) CheckIn(ctx context.Context, id, adminID string, at time.Time) (*domain.Registration, error) {
	query := `
		UPDATE registrations
		SET checked_in = TRUE, checked_in_at = $2, checked_in_by = $3, updated_at = $2
		WHERE id = $1 AND checked_in = FALSE
		RETURNING ` + registrationColumns
	reg, err := scanRegistration(r.pool.QueryRow(ctx, query, id, at, adminID))
	if err != nil {
		return nil, err
	}
	if reg == nil {
		// Distinguish "already checked in" from "no such registration"
		existing, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, domain.ErrAlreadyCheckedIn
	}
	return reg, nil
}
