package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tennis-system/models"
)

var ErrNoticeNotFound = errors.New("notice not found")

// NoticeRepository инкапсулирует правило "активно не более одного объявления":
// Create и активация через SetActive сами гасят остальные записи.
type NoticeRepository interface {
	Create(ctx context.Context, n *models.Notice) error
	List(ctx context.Context) ([]*models.Notice, error)
	GetActive(ctx context.Context) (*models.Notice, error)
	SetActive(ctx context.Context, id int, active bool) error
	Delete(ctx context.Context, id int) error
}

type postgresNoticeRepository struct {
	db *sql.DB
}

func NewPostgresNoticeRepository(db *sql.DB) NoticeRepository {
	return &postgresNoticeRepository{db: db}
}

const noticeColumns = `id, content, is_active, created_at, updated_at`

func (r *postgresNoticeRepository) Create(ctx context.Context, n *models.Notice) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin notice transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE notices SET is_active = FALSE WHERE is_active = TRUE`); err != nil {
		return fmt.Errorf("failed to deactivate notices: %w", err)
	}

	query := `
		INSERT INTO notices (content, is_active)
		VALUES ($1, TRUE)
		RETURNING id, is_active, created_at, updated_at`
	if err := tx.QueryRowContext(ctx, query, n.Content).
		Scan(&n.ID, &n.IsActive, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create notice: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit notice transaction: %w", err)
	}
	return nil
}

func (r *postgresNoticeRepository) List(ctx context.Context) ([]*models.Notice, error) {
	query := `SELECT ` + noticeColumns + ` FROM notices ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query notices: %w", err)
	}
	defer rows.Close()

	notices := make([]*models.Notice, 0)
	for rows.Next() {
		n := &models.Notice{}
		if err := rows.Scan(&n.ID, &n.Content, &n.IsActive, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notice row: %w", err)
		}
		notices = append(notices, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during notice rows iteration: %w", err)
	}
	return notices, nil
}

func (r *postgresNoticeRepository) GetActive(ctx context.Context) (*models.Notice, error) {
	query := `SELECT ` + noticeColumns + ` FROM notices WHERE is_active = TRUE ORDER BY created_at DESC, id DESC LIMIT 1`
	n := &models.Notice{}
	err := r.db.QueryRowContext(ctx, query).
		Scan(&n.ID, &n.Content, &n.IsActive, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoticeNotFound
		}
		return nil, fmt.Errorf("failed to scan active notice: %w", err)
	}
	return n, nil
}

func (r *postgresNoticeRepository) SetActive(ctx context.Context, id int, active bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin notice transaction: %w", err)
	}
	defer tx.Rollback()

	if active {
		// Включаем одно — гасим остальные.
		if _, err := tx.ExecContext(ctx, `UPDATE notices SET is_active = FALSE WHERE is_active = TRUE AND id <> $1`, id); err != nil {
			return fmt.Errorf("failed to deactivate other notices: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `UPDATE notices SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("failed to update notice %d: %w", id, err)
	}
	if err := checkAffectedRows(result, ErrNoticeNotFound); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit notice transaction: %w", err)
	}
	return nil
}

func (r *postgresNoticeRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete notice %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrNoticeNotFound)
}
