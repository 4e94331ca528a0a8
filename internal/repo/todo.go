package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/awessel/todo-api/internal/models"
)

// ==========================
// TodoRepo
// ==========================
type TodoRepo struct {
	DB *sql.DB
}

func NewTodoRepo(db *sql.DB) *TodoRepo {
	return &TodoRepo{DB: db}
}

func (r *TodoRepo) Create(ctx context.Context, title, description string) (models.Todo, error) {
	var todo models.Todo
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO todos (title, description)
		VALUES ($1, $2)
		RETURNING id, title, description, done, created_at`,
		title, description,
	).Scan(&todo.ID, &todo.Title, &todo.Description, &todo.Done, &todo.CreatedAt)
	return todo, err
}

func (r *TodoRepo) GetByID(ctx context.Context, id int64) (models.Todo, error) {
	var todo models.Todo
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, title, description, done, created_at
		FROM todos
		WHERE id = $1`,
		id,
	).Scan(&todo.ID, &todo.Title, &todo.Description, &todo.Done, &todo.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Todo{}, ErrNotFound
	}
	return todo, err
}

func (r *TodoRepo) List(ctx context.Context) ([]models.Todo, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, title, description, done, created_at
		FROM todos
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []models.Todo
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Done, &t.CreatedAt); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// Update replaces title, description, and done for the given id.
func (r *TodoRepo) Update(ctx context.Context, id int64, title, description string, done bool) (models.Todo, error) {
	var todo models.Todo
	err := r.DB.QueryRowContext(ctx, `
		UPDATE todos
		SET title = $1, description = $2, done = $3
		WHERE id = $4
		RETURNING id, title, description, done, created_at`,
		title, description, done, id,
	).Scan(&todo.ID, &todo.Title, &todo.Description, &todo.Done, &todo.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Todo{}, ErrNotFound
	}
	return todo, err
}

// SetDone marks the todo as completed without touching the other fields.
func (r *TodoRepo) SetDone(ctx context.Context, id int64) (models.Todo, error) {
	var todo models.Todo
	err := r.DB.QueryRowContext(ctx, `
		UPDATE todos
		SET done = true
		WHERE id = $1
		RETURNING id, title, description, done, created_at`,
		id,
	).Scan(&todo.ID, &todo.Title, &todo.Description, &todo.Done, &todo.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Todo{}, ErrNotFound
	}
	return todo, err
}

func (r *TodoRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of todos.
func (r *TodoRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos`).Scan(&n)
	return n, err
}
