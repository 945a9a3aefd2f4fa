package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tennis-system/models"
	"github.com/lib/pq"
)

var (
	ErrParticipantNotFound        = errors.New("participant not found")
	ErrParticipantConflict        = errors.New("participant conflict: user already registered in this category")
	ErrParticipantUserInvalid     = errors.New("participant user conflict or invalid")
	ErrParticipantCategoryInvalid = errors.New("participant category conflict or invalid")
)

type ParticipantRepository interface {
	Create(ctx context.Context, p *models.Participant) error
	FindByID(ctx context.Context, id int) (*models.Participant, error)
	FindByCategoryAndUser(ctx context.Context, categoryID, userID int) (*models.Participant, error)
	// ListByCategory возвращает участников категории в порядке создания.
	// При includeUsers подгружает данные игрока и партнёра.
	ListByCategory(ctx context.Context, categoryID int, includeUsers bool) ([]*models.Participant, error)
	ListByUser(ctx context.Context, userID int) ([]*models.Participant, error)
	Delete(ctx context.Context, id int) error
}

type postgresParticipantRepository struct {
	db *sql.DB
}

func NewPostgresParticipantRepository(db *sql.DB) ParticipantRepository {
	return &postgresParticipantRepository{db: db}
}

func (r *postgresParticipantRepository) Create(ctx context.Context, p *models.Participant) error {
	query := `
		INSERT INTO participants (category_id, user_id, partner_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		p.CategoryID,
		p.UserID,
		p.PartnerID,
	).Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				if pqErr.Constraint == "participants_category_id_user_id_key" {
					return ErrParticipantConflict
				}
			case "23503": // foreign_key_violation
				switch pqErr.Constraint {
				case "participants_user_id_fkey", "participants_partner_id_fkey":
					return ErrParticipantUserInvalid
				case "participants_category_id_fkey":
					return ErrParticipantCategoryInvalid
				}
			}
		}
		return fmt.Errorf("failed to create participant: %w", err)
	}
	return nil
}

func (r *postgresParticipantRepository) scanParticipant(rowScanner interface {
	Scan(dest ...interface{}) error
}, p *models.Participant) error {
	return rowScanner.Scan(
		&p.ID,
		&p.CategoryID,
		&p.UserID,
		&p.PartnerID,
		&p.CreatedAt,
	)
}

func (r *postgresParticipantRepository) findOne(ctx context.Context, query string, args ...interface{}) (*models.Participant, error) {
	p := &models.Participant{}
	row := r.db.QueryRowContext(ctx, query, args...)
	err := r.scanParticipant(row, p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to find participant: %w", err)
	}
	return p, nil
}

func (r *postgresParticipantRepository) FindByID(ctx context.Context, id int) (*models.Participant, error) {
	query := `SELECT id, category_id, user_id, partner_id, created_at FROM participants WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *postgresParticipantRepository) FindByCategoryAndUser(ctx context.Context, categoryID, userID int) (*models.Participant, error) {
	query := `SELECT id, category_id, user_id, partner_id, created_at FROM participants WHERE category_id = $1 AND user_id = $2`
	return r.findOne(ctx, query, categoryID, userID)
}

func (r *postgresParticipantRepository) ListByCategory(ctx context.Context, categoryID int, includeUsers bool) ([]*models.Participant, error) {
	if !includeUsers {
		query := `
			SELECT id, category_id, user_id, partner_id, created_at
			FROM participants
			WHERE category_id = $1
			ORDER BY created_at ASC, id ASC`
		rows, err := r.db.QueryContext(ctx, query, categoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to query participants for category %d: %w", categoryID, err)
		}
		defer rows.Close()

		participants := make([]*models.Participant, 0)
		for rows.Next() {
			p := &models.Participant{}
			if err := r.scanParticipant(rows, p); err != nil {
				return nil, fmt.Errorf("failed to scan participant row: %w", err)
			}
			participants = append(participants, p)
		}
		return participants, rows.Err()
	}

	query := `
		SELECT p.id, p.category_id, p.user_id, p.partner_id, p.created_at,
		       u.id, u.name, u.email, u.phone, u.role, u.is_active, u.created_at,
		       pa.id, pa.name, pa.email, pa.phone, pa.role, pa.is_active, pa.created_at
		FROM participants p
		JOIN users u ON u.id = p.user_id
		LEFT JOIN users pa ON pa.id = p.partner_id
		WHERE p.category_id = $1
		ORDER BY p.created_at ASC, p.id ASC`

	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants with users for category %d: %w", categoryID, err)
	}
	defer rows.Close()

	participants := make([]*models.Participant, 0)
	for rows.Next() {
		p := &models.Participant{}
		u := &models.User{}
		var (
			paID        sql.NullInt64
			paName      sql.NullString
			paEmail     sql.NullString
			paPhone     sql.NullString
			paRole      sql.NullString
			paIsActive  sql.NullBool
			paCreatedAt sql.NullTime
		)
		err := rows.Scan(
			&p.ID, &p.CategoryID, &p.UserID, &p.PartnerID, &p.CreatedAt,
			&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.IsActive, &u.CreatedAt,
			&paID, &paName, &paEmail, &paPhone, &paRole, &paIsActive, &paCreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant row with users: %w", err)
		}
		p.User = u
		if paID.Valid {
			partner := &models.User{
				ID:       int(paID.Int64),
				Name:     paName.String,
				Email:    paEmail.String,
				Role:     models.UserRole(paRole.String),
				IsActive: paIsActive.Bool,
			}
			if paPhone.Valid {
				phone := paPhone.String
				partner.Phone = &phone
			}
			if paCreatedAt.Valid {
				partner.CreatedAt = paCreatedAt.Time
			}
			p.Partner = partner
		}
		participants = append(participants, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during participant rows iteration: %w", err)
	}
	return participants, nil
}

func (r *postgresParticipantRepository) ListByUser(ctx context.Context, userID int) ([]*models.Participant, error) {
	// Пользователь участвует и как основной игрок, и как партнёр пары.
	query := `
		SELECT id, category_id, user_id, partner_id, created_at
		FROM participants
		WHERE user_id = $1 OR partner_id = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participations for user %d: %w", userID, err)
	}
	defer rows.Close()

	participants := make([]*models.Participant, 0)
	for rows.Next() {
		p := &models.Participant{}
		if err := r.scanParticipant(rows, p); err != nil {
			return nil, fmt.Errorf("failed to scan participant row: %w", err)
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func (r *postgresParticipantRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM participants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}
