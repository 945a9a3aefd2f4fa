package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Dosada05/tennis-system/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound           = errors.New("match not found")
	ErrMatchCategoryInvalid    = errors.New("match category conflict or invalid")
	ErrMatchParticipantInvalid = errors.New("match participant conflict or invalid")
	ErrMatchWinnerInvalid      = errors.New("match winner conflict or invalid")
	// ErrMatchPairConflict — пара уже имеет матч этого раунда в категории
	// (уникальный индекс страхует генератор от гонки дублей).
	ErrMatchPairConflict = errors.New("match for this participant pair and round already exists")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByCategory(ctx context.Context, categoryID int, round *models.MatchRound, status *models.MatchStatus) ([]*models.Match, error)
	// UpdateScore записывает сырые счета сетов вместе с производными
	// статусом и победителем одним UPDATE.
	UpdateScore(ctx context.Context, id int, sets [3]models.SetScore, status models.MatchStatus, winnerID *int) error
	Delete(ctx context.Context, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `id, category_id, participant1_id, participant2_id, round, status, date, winner_id, created_at,
		set1_p1, set1_p2, set1_tb_p1, set1_tb_p2,
		set2_p1, set2_p2, set2_tb_p1, set2_tb_p2,
		set3_p1, set3_p2, set3_tb_p1, set3_tb_p2`

func (r *postgresMatchRepository) scanMatch(row interface{ Scan(...interface{}) error }, m *models.Match) error {
	return row.Scan(
		&m.ID, &m.CategoryID, &m.Participant1ID, &m.Participant2ID, &m.Round, &m.Status, &m.Date, &m.WinnerID, &m.CreatedAt,
		&m.Set1.P1Games, &m.Set1.P2Games, &m.Set1.P1Tiebreak, &m.Set1.P2Tiebreak,
		&m.Set2.P1Games, &m.Set2.P2Games, &m.Set2.P1Tiebreak, &m.Set2.P2Tiebreak,
		&m.Set3.P1Games, &m.Set3.P2Games, &m.Set3.P1Tiebreak, &m.Set3.P2Tiebreak,
	)
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO tournament_matches (category_id, participant1_id, participant2_id, round, status, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		match.CategoryID,
		match.Participant1ID,
		match.Participant2ID,
		match.Round,
		match.Status,
		match.Date,
	).Scan(&match.ID, &match.CreatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM tournament_matches WHERE id = $1`
	m := &models.Match{}
	if err := r.scanMatch(r.db.QueryRowContext(ctx, query, id), m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match by id %d: %w", id, err)
	}
	return m, nil
}

func (r *postgresMatchRepository) ListByCategory(ctx context.Context, categoryID int, roundFilter *models.MatchRound, statusFilter *models.MatchStatus) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM tournament_matches WHERE category_id = $1`)

	args := []interface{}{categoryID}
	placeholderIndex := 2

	if roundFilter != nil {
		queryBuilder.WriteString(" AND round = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *roundFilter)
		placeholderIndex++
	}
	if statusFilter != nil {
		queryBuilder.WriteString(" AND status = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *statusFilter)
	}

	queryBuilder.WriteString(" ORDER BY id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for category %d: %w", categoryID, err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m := &models.Match{}
		if scanErr := r.scanMatch(rows, m); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateScore(ctx context.Context, id int, sets [3]models.SetScore, status models.MatchStatus, winnerID *int) error {
	query := `
		UPDATE tournament_matches
		SET set1_p1 = $1, set1_p2 = $2, set1_tb_p1 = $3, set1_tb_p2 = $4,
		    set2_p1 = $5, set2_p2 = $6, set2_tb_p1 = $7, set2_tb_p2 = $8,
		    set3_p1 = $9, set3_p2 = $10, set3_tb_p1 = $11, set3_tb_p2 = $12,
		    status = $13, winner_id = $14
		WHERE id = $15`

	result, err := r.db.ExecContext(ctx, query,
		sets[0].P1Games, sets[0].P2Games, sets[0].P1Tiebreak, sets[0].P2Tiebreak,
		sets[1].P1Games, sets[1].P2Games, sets[1].P1Tiebreak, sets[1].P2Tiebreak,
		sets[2].P1Games, sets[2].P2Games, sets[2].P1Tiebreak, sets[2].P2Tiebreak,
		status, winnerID, id,
	)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournament_matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505": // unique_violation
			if pqErr.Constraint == "tournament_matches_category_pair_round_key" {
				return ErrMatchPairConflict
			}
		case "23503": // foreign_key_violation
			switch pqErr.Constraint {
			case "tournament_matches_category_id_fkey":
				return ErrMatchCategoryInvalid
			case "tournament_matches_participant1_id_fkey", "tournament_matches_participant2_id_fkey":
				return ErrMatchParticipantInvalid
			case "tournament_matches_winner_id_fkey":
				return ErrMatchWinnerInvalid
			}
		}
	}
	return err
}
