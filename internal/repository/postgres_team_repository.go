package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Torqix/aarohan-backend/internal/domain"
)

// PostgresTeamRepository implements TeamRepository using PostgreSQL
type PostgresTeamRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTeamRepository creates a new PostgresTeamRepository
func NewPostgresTeamRepository(pool *pgxpool.Pool) *PostgresTeamRepository {
	return &PostgresTeamRepository{pool: pool}
}

// GetByID retrieves a team with its member list loaded
func (r *PostgresTeamRepository) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	team := &domain.Team{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, event_id, name, invite_code, leader_id, created_at, updated_at
		 FROM teams WHERE id = $1`, id).Scan(
		&team.ID, &team.EventID, &team.Name, &team.InviteCode,
		&team.LeaderID, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	members, err := r.loadMembers(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	team.Members = members
	return team, nil
}

// ListByEvent retrieves all teams for an event with members loaded
func (r *PostgresTeamRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Team, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, event_id, name, invite_code, leader_id, created_at, updated_at
		 FROM teams WHERE event_id = $1 ORDER BY created_at ASC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []*domain.Team
	for rows.Next() {
		team := &domain.Team{}
		err := rows.Scan(
			&team.ID, &team.EventID, &team.Name, &team.InviteCode,
			&team.LeaderID, &team.CreatedAt, &team.UpdatedAt)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, team := range teams {
		members, err := r.loadMembers(ctx, team.ID)
		if err != nil {
			return nil, err
		}
		team.Members = members
	}
	return teams, nil
}

// LargestSize returns the member count of the event's biggest team
func (r *PostgresTeamRepository) LargestSize(ctx context.Context, eventID string) (int, error) {
	var largest int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(member_count), 0) FROM (
			SELECT COUNT(*) AS member_count
			FROM team_members tm
			JOIN teams t ON t.id = tm.team_id
			WHERE t.event_id = $1
			GROUP BY tm.team_id
		) sizes`, eventID).Scan(&largest)
	if err != nil {
		return 0, err
	}
	return largest, nil
}

func (r *PostgresTeamRepository) loadMembers(ctx context.Context, teamID string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id FROM team_members WHERE team_id = $1 ORDER BY joined_at ASC`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		members = append(members, userID)
	}
	return members, rows.Err()
}
