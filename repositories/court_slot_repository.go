package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/tennis-system/models"
	"github.com/lib/pq"
)

var (
	ErrCourtSlotNotFound = errors.New("court slot not found")
	// ErrCourtSlotUnavailable — условный UPDATE брони не затронул ни одной
	// строки: слот не существует, выключен или уже забронирован. Сервис
	// перечитывает слот, чтобы различить причину.
	ErrCourtSlotUnavailable = errors.New("court slot unavailable for booking")
	// ErrCourtSlotConflict — слот с таким кортом и временем начала уже есть.
	ErrCourtSlotConflict = errors.New("court slot for this court and start time already exists")
)

type CourtSlotRepository interface {
	BatchCreate(ctx context.Context, exec SQLExecutor, slots []models.CourtSlot) (created int, err error)
	GetByID(ctx context.Context, id int) (*models.CourtSlot, error)
	// ListByRange возвращает слоты с началом в [from, to), с данными бронирующего.
	ListByRange(ctx context.Context, from, to time.Time) ([]*models.CourtSlot, error)
	// Book — единственная конкурентно-чувствительная операция: условный
	// UPDATE в один запрос, без read-then-write. Ноль затронутых строк —
	// ErrCourtSlotUnavailable.
	Book(ctx context.Context, slotID, userID int, categoryID, opponentID *int) error
	ClearBooking(ctx context.Context, slotID int) error
	SetActive(ctx context.Context, slotID int, active bool) error
	Delete(ctx context.Context, slotID int) error
}

type postgresCourtSlotRepository struct {
	db *sql.DB
}

func NewPostgresCourtSlotRepository(db *sql.DB) CourtSlotRepository {
	return &postgresCourtSlotRepository{db: db}
}

func (r *postgresCourtSlotRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const courtSlotColumns = `id, tournament_id, court_name, start_time, end_time, is_booked, is_active, booked_by, category_id, opponent_id, created_at`

func (r *postgresCourtSlotRepository) scanSlot(row interface{ Scan(...interface{}) error }, s *models.CourtSlot) error {
	return row.Scan(
		&s.ID, &s.TournamentID, &s.CourtName, &s.StartTime, &s.EndTime,
		&s.IsBooked, &s.IsActive, &s.BookedBy, &s.CategoryID, &s.OpponentID, &s.CreatedAt,
	)
}

func (r *postgresCourtSlotRepository) BatchCreate(ctx context.Context, exec SQLExecutor, slots []models.CourtSlot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	// ON CONFLICT DO NOTHING: повторная генерация пересекающегося диапазона
	// не плодит дубликаты, а молча пропускает уже существующие слоты.
	query := `
		INSERT INTO court_slots (tournament_id, court_name, start_time, end_time, is_active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT court_slots_court_start_key DO NOTHING`

	executor := r.getExecutor(exec)
	created := 0
	for i := range slots {
		s := &slots[i]
		result, err := executor.ExecContext(ctx, query,
			s.TournamentID, s.CourtName, s.StartTime, s.EndTime, s.IsActive)
		if err != nil {
			return created, fmt.Errorf("failed to insert court slot %s %s: %w", s.CourtName, s.StartTime, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return created, fmt.Errorf("failed to check affected rows for court slot insert: %w", err)
		}
		created += int(n)
	}
	return created, nil
}

func (r *postgresCourtSlotRepository) GetByID(ctx context.Context, id int) (*models.CourtSlot, error) {
	query := `SELECT ` + courtSlotColumns + ` FROM court_slots WHERE id = $1`
	s := &models.CourtSlot{}
	if err := r.scanSlot(r.db.QueryRowContext(ctx, query, id), s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourtSlotNotFound
		}
		return nil, fmt.Errorf("failed to scan court slot by id %d: %w", id, err)
	}
	return s, nil
}

func (r *postgresCourtSlotRepository) ListByRange(ctx context.Context, from, to time.Time) ([]*models.CourtSlot, error) {
	query := `
		SELECT s.id, s.tournament_id, s.court_name, s.start_time, s.end_time,
		       s.is_booked, s.is_active, s.booked_by, s.category_id, s.opponent_id, s.created_at,
		       u.id, u.name, u.email
		FROM court_slots s
		LEFT JOIN users u ON u.id = s.booked_by
		WHERE s.start_time >= $1 AND s.start_time < $2
		ORDER BY s.start_time ASC, s.court_name ASC`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query court slots: %w", err)
	}
	defer rows.Close()

	slots := make([]*models.CourtSlot, 0)
	for rows.Next() {
		s := &models.CourtSlot{}
		var (
			uID    sql.NullInt64
			uName  sql.NullString
			uEmail sql.NullString
		)
		err := rows.Scan(
			&s.ID, &s.TournamentID, &s.CourtName, &s.StartTime, &s.EndTime,
			&s.IsBooked, &s.IsActive, &s.BookedBy, &s.CategoryID, &s.OpponentID, &s.CreatedAt,
			&uID, &uName, &uEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan court slot row: %w", err)
		}
		if uID.Valid {
			s.BookedByUser = &models.User{
				ID:    int(uID.Int64),
				Name:  uName.String,
				Email: uEmail.String,
			}
		}
		slots = append(slots, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during court slot rows iteration: %w", err)
	}
	return slots, nil
}

func (r *postgresCourtSlotRepository) Book(ctx context.Context, slotID, userID int, categoryID, opponentID *int) error {
	query := `
		UPDATE court_slots
		SET is_booked = TRUE, booked_by = $1, category_id = $2, opponent_id = $3
		WHERE id = $4 AND is_booked = FALSE AND is_active = TRUE`

	result, err := r.db.ExecContext(ctx, query, userID, categoryID, opponentID, slotID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return fmt.Errorf("booking references invalid row: %w", err)
		}
		return fmt.Errorf("failed to book court slot %d: %w", slotID, err)
	}
	return checkAffectedRows(result, ErrCourtSlotUnavailable)
}

func (r *postgresCourtSlotRepository) ClearBooking(ctx context.Context, slotID int) error {
	query := `
		UPDATE court_slots
		SET is_booked = FALSE, booked_by = NULL, category_id = NULL, opponent_id = NULL
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, slotID)
	if err != nil {
		return fmt.Errorf("failed to clear booking for slot %d: %w", slotID, err)
	}
	return checkAffectedRows(result, ErrCourtSlotNotFound)
}

func (r *postgresCourtSlotRepository) SetActive(ctx context.Context, slotID int, active bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE court_slots SET is_active = $1 WHERE id = $2`, active, slotID)
	if err != nil {
		return fmt.Errorf("failed to set court slot active flag: %w", err)
	}
	return checkAffectedRows(result, ErrCourtSlotNotFound)
}

func (r *postgresCourtSlotRepository) Delete(ctx context.Context, slotID int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM court_slots WHERE id = $1`, slotID)
	if err != nil {
		return fmt.Errorf("failed to delete court slot %d: %w", slotID, err)
	}
	return checkAffectedRows(result, ErrCourtSlotNotFound)
}
