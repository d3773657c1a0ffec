package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-timetable/internal/core/domain"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var _ domain.TimetableRepository = (*PostgresTimetableRepository)(nil)

const (
	timetableColumns = `id, user_id, name, description, is_active, timezone,
        default_activities, current_week, history, created_at, updated_at`

	constraintTimetableName = "timetables_user_name_key"
)

type PostgresTimetableRepository struct {
	db *sqlx.DB
}

func NewPostgresTimetableRepository(db *sqlx.DB) *PostgresTimetableRepository {
	return &PostgresTimetableRepository{db: db}
}

// timetableRow keeps the weeks and the catalog as JSONB documents.
type timetableRow struct {
	ID                string             `db:"id"`
	UserID            string             `db:"user_id"`
	Name              string             `db:"name"`
	Description       string             `db:"description"`
	IsActive          bool               `db:"is_active"`
	Timezone          string             `db:"timezone"`
	DefaultActivities types.JSONText     `db:"default_activities"`
	CurrentWeek       types.NullJSONText `db:"current_week"`
	History           types.JSONText     `db:"history"`
	CreatedAt         time.Time          `db:"created_at"`
	UpdatedAt         time.Time          `db:"updated_at"`
}

func newTimetableRow(t *domain.Timetable) (*timetableRow, error) {
	activities, err := json.Marshal(t.DefaultActivities)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal activities: %w", err)
	}

	history := t.History
	if history == nil {
		history = []domain.Week{}
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal history: %w", err)
	}

	row := &timetableRow{
		ID:                t.ID,
		UserID:            t.UserID,
		Name:              t.Name,
		Description:       t.Description,
		IsActive:          t.IsActive,
		Timezone:          t.Timezone,
		DefaultActivities: types.JSONText(activities),
		History:           types.JSONText(historyJSON),
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}

	if t.CurrentWeek != nil {
		week, err := json.Marshal(t.CurrentWeek)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal current week: %w", err)
		}
		row.CurrentWeek = types.NullJSONText{JSONText: types.JSONText(week), Valid: true}
	}

	return row, nil
}

func (row *timetableRow) toDomain() (*domain.Timetable, error) {
	t := &domain.Timetable{
		ID:          row.ID,
		UserID:      row.UserID,
		Name:        row.Name,
		Description: row.Description,
		IsActive:    row.IsActive,
		Timezone:    row.Timezone,
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}

	if err := row.DefaultActivities.Unmarshal(&t.DefaultActivities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal activities: %w", err)
	}
	if err := row.History.Unmarshal(&t.History); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}
	if row.CurrentWeek.Valid {
		var week domain.Week
		if err := row.CurrentWeek.Unmarshal(&week); err != nil {
			return nil, fmt.Errorf("failed to unmarshal current week: %w", err)
		}
		t.CurrentWeek = &week
	}

	t.Normalize()
	return t, nil
}

func mapTimetableWriteError(err error, op string) error {
	if constraint, ok := uniqueViolationConstraint(err); ok {
		if constraint == constraintTimetableName {
			return domain.ErrTimetableNameTaken
		}
		return fmt.Errorf("%w: %s", domain.ErrConflict, constraint)
	}
	return fmt.Errorf("repository: %s timetable failed: %w", op, err)
}

func (r *PostgresTimetableRepository) Create(ctx context.Context, t *domain.Timetable) error {
	row, err := newTimetableRow(t)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO timetables (` + timetableColumns + `)
        VALUES (
            :id, :user_id, :name, :description, :is_active, :timezone,
            :default_activities, :current_week, :history, :created_at, :updated_at
        )`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return mapTimetableWriteError(err, "create")
	}
	return nil
}

func (r *PostgresTimetableRepository) getOne(ctx context.Context, query string, args ...interface{}) (*domain.Timetable, error) {
	var row timetableRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTimetableNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return row.toDomain()
}

func (r *PostgresTimetableRepository) GetByID(ctx context.Context, id, userID string) (*domain.Timetable, error) {
	query := `SELECT ` + timetableColumns + ` FROM timetables WHERE id::text = $1 AND user_id::text = $2`
	return r.getOne(ctx, query, id, userID)
}

func (r *PostgresTimetableRepository) GetActive(ctx context.Context, userID string) (*domain.Timetable, error) {
	query := `SELECT ` + timetableColumns + ` FROM timetables WHERE user_id::text = $1 AND is_active`
	return r.getOne(ctx, query, userID)
}

func (r *PostgresTimetableRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Timetable, error) {
	query := `
        SELECT ` + timetableColumns + `
        FROM timetables
        WHERE user_id::text = $1
        ORDER BY created_at ASC, id ASC`

	var rows []timetableRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	list := make([]*domain.Timetable, 0, len(rows))
	for i := range rows {
		t, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, nil
}

func (r *PostgresTimetableRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM timetables WHERE user_id::text = $1`, userID); err != nil {
		return 0, fmt.Errorf("count error: %w", err)
	}
	return count, nil
}

func (r *PostgresTimetableRepository) NameExists(ctx context.Context, userID, name, excludeID string) (bool, error) {
	query := `
        SELECT EXISTS (
            SELECT 1 FROM timetables
            WHERE user_id::text = $1 AND name = $2 AND id::text <> $3
        )`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, name, excludeID); err != nil {
		return false, fmt.Errorf("query error: %w", err)
	}
	return exists, nil
}

func (r *PostgresTimetableRepository) Update(ctx context.Context, t *domain.Timetable) error {
	row, err := newTimetableRow(t)
	if err != nil {
		return err
	}

	query := `
        UPDATE timetables SET
            name = :name,
            description = :description,
            timezone = :timezone,
            default_activities = :default_activities,
            current_week = :current_week,
            history = :history,
            updated_at = :updated_at
        WHERE id = :id AND user_id = :user_id`

	res, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return mapTimetableWriteError(err, "update")
	}
	return expectOneRow(res)
}

// SetActive runs in a transaction so the partial unique index on
// (user_id) WHERE is_active never sees two active rows.
func (r *PostgresTimetableRepository) SetActive(ctx context.Context, id, userID string, active bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if active {
		_, err := tx.ExecContext(ctx,
			`UPDATE timetables SET is_active = FALSE WHERE user_id::text = $1 AND id::text <> $2 AND is_active`,
			userID, id,
		)
		if err != nil {
			return fmt.Errorf("repository: deactivate timetables failed: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE timetables SET is_active = $3 WHERE id::text = $1 AND user_id::text = $2`,
		id, userID, active,
	)
	if err != nil {
		return mapTimetableWriteError(err, "activate")
	}
	if err := expectOneRow(res); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *PostgresTimetableRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM timetables WHERE id::text = $1 AND user_id::text = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("repository: delete timetable failed: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrTimetableNotFound
	}
	return nil
}
