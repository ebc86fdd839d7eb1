package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/focusflow-app/focusflow/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in model.Task) error {
	customValue, customUnit := nullCustom(in.Reminders.Custom)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, priority, category, due_at, created_at, completed,
			remind_day_before, remind_hour_before, remind_fifteen_min, custom_value, custom_unit, snoozed_until)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.Description, in.Priority, in.Category,
		mustTime(in.DueAt), mustTime(in.CreatedAt), boolInt(in.Completed),
		boolInt(in.Reminders.DayBefore), boolInt(in.Reminders.HourBefore), boolInt(in.Reminders.FifteenMinBefore),
		customValue, customUnit, nullTime(in.SnoozedUntil),
	)
	return err
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (model.Task, error) {
	row := r.db.QueryRowContext(ctx, taskSelect+` WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in model.Task) error {
	customValue, customUnit := nullCustom(in.Reminders.Custom)
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, priority = ?, category = ?, due_at = ?, completed = ?,
			remind_day_before = ?, remind_hour_before = ?, remind_fifteen_min = ?,
			custom_value = ?, custom_unit = ?, snoozed_until = ?
		WHERE id = ?`,
		in.Title, in.Description, in.Priority, in.Category, mustTime(in.DueAt), boolInt(in.Completed),
		boolInt(in.Reminders.DayBefore), boolInt(in.Reminders.HourBefore), boolInt(in.Reminders.FifteenMinBefore),
		customValue, customUnit, nullTime(in.SnoozedUntil), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

const taskSelect = `
	SELECT id, title, description, priority, category, due_at, created_at, completed,
		remind_day_before, remind_hour_before, remind_fifteen_min, custom_value, custom_unit, snoozed_until
	FROM tasks`

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]model.Task, error) {
	query := taskSelect
	args := make([]any, 0, 4)
	clauses := make([]string, 0, 2)
	if filter.Completed != nil {
		clauses = append(clauses, `completed = ?`)
		args = append(args, boolInt(*filter.Completed))
	}
	if filter.Category != "" {
		clauses = append(clauses, `category = ?`)
		args = append(args, filter.Category)
	}
	for i, clause := range clauses {
		if i == 0 {
			query += ` WHERE ` + clause
		} else {
			query += ` AND ` + clause
		}
	}
	query += ` ORDER BY due_at ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateHabit(ctx context.Context, in model.Habit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO habits (id, title, icon, slot) VALUES (?, ?, ?, ?)`,
		in.ID, in.Title, in.Icon, in.Slot,
	)
	return err
}

func (r *SQLiteRepository) GetHabit(ctx context.Context, id string) (model.Habit, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, title, icon, slot FROM habits WHERE id = ?`, id)
	var habit model.Habit
	if err := row.Scan(&habit.ID, &habit.Title, &habit.Icon, &habit.Slot); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Habit{}, ErrNotFound
		}
		return model.Habit{}, err
	}
	days, err := r.habitDays(ctx, id)
	if err != nil {
		return model.Habit{}, err
	}
	habit.CompletedDays = days
	return habit, nil
}

func (r *SQLiteRepository) UpdateHabit(ctx context.Context, in model.Habit) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE habits SET title = ?, icon = ?, slot = ? WHERE id = ?`,
		in.Title, in.Icon, in.Slot, in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteHabit(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListHabits(ctx context.Context) ([]model.Habit, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, icon, slot FROM habits ORDER BY title ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Habit, 0)
	for rows.Next() {
		var habit model.Habit
		if scanErr := rows.Scan(&habit.ID, &habit.Title, &habit.Icon, &habit.Slot); scanErr != nil {
			return nil, scanErr
		}
		out = append(out, habit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		days, daysErr := r.habitDays(ctx, out[i].ID)
		if daysErr != nil {
			return nil, daysErr
		}
		out[i].CompletedDays = days
	}
	return out, nil
}

// ToggleHabitDay flips the completion mark for one habit on one day.
func (r *SQLiteRepository) ToggleHabitDay(ctx context.Context, habitID, day string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM habit_completions WHERE habit_id = ? AND day = ?`, habitID, day)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO habit_completions (habit_id, day) VALUES (?, ?)`, habitID, day)
	return err
}

func (r *SQLiteRepository) habitDays(ctx context.Context, habitID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT day FROM habit_completions WHERE habit_id = ? ORDER BY day ASC`, habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var day string
		if scanErr := rows.Scan(&day); scanErr != nil {
			return nil, scanErr
		}
		out = append(out, day)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (model.Task, error) {
	var (
		task         model.Task
		dueAt        string
		createdAt    string
		completed    int
		dayBefore    int
		hourBefore   int
		fifteenMin   int
		customValue  sql.NullInt64
		customUnit   sql.NullString
		snoozedUntil sql.NullString
	)
	if err := row.Scan(
		&task.ID, &task.Title, &task.Description, &task.Priority, &task.Category,
		&dueAt, &createdAt, &completed,
		&dayBefore, &hourBefore, &fifteenMin, &customValue, &customUnit, &snoozedUntil,
	); err != nil {
		return model.Task{}, err
	}

	var err error
	if task.DueAt, err = time.Parse(sqliteTimeLayout, dueAt); err != nil {
		return model.Task{}, fmt.Errorf("parse due_at: %w", err)
	}
	if task.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt); err != nil {
		return model.Task{}, fmt.Errorf("parse created_at: %w", err)
	}
	task.Completed = completed != 0
	task.Reminders = model.ReminderConfig{
		DayBefore:        dayBefore != 0,
		HourBefore:       hourBefore != 0,
		FifteenMinBefore: fifteenMin != 0,
	}
	if customValue.Valid && customUnit.Valid {
		task.Reminders.Custom = &model.CustomReminder{
			Value: int(customValue.Int64),
			Unit:  model.TimeUnit(customUnit.String),
		}
	}
	if snoozedUntil.Valid {
		at, parseErr := time.Parse(sqliteTimeLayout, snoozedUntil.String)
		if parseErr != nil {
			return model.Task{}, fmt.Errorf("parse snoozed_until: %w", parseErr)
		}
		task.SnoozedUntil = &at
	}
	return task, nil
}

func applyPagination(args *[]any, limit, offset int) string {
	clause := ""
	if limit > 0 {
		clause += ` LIMIT ?`
		*args = append(*args, limit)
		if offset > 0 {
			clause += ` OFFSET ?`
			*args = append(*args, offset)
		}
	}
	return clause
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func mustTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(sqliteTimeLayout)
}

func nullCustom(c *model.CustomReminder) (any, any) {
	if c == nil {
		return nil, nil
	}
	return c.Value, string(c.Unit)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
