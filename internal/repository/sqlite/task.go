package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/okazarin/taskboard/internal/model"
)

var _ model.TaskStore = (*TaskRepository)(nil)

// TaskRepository stores tasks in the tasks table.
type TaskRepository struct {
	store *Store
}

func NewTaskRepository(store *Store) *TaskRepository {
	return &TaskRepository{store: store}
}

func (r *TaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	query := `INSERT INTO tasks (id, owner_id, name, description, priority, status, deadline, owner, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.store.db.ExecContext(ctx, query,
		task.ID.String(), task.OwnerID.String(), task.Name, task.Description,
		string(task.Priority), string(task.Status), task.Deadline, task.Owner,
		toMillis(task.CreatedAt),
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Task, error) {
	query := `SELECT id, owner_id, name, description, priority, status, deadline, owner, created_at
			  FROM tasks WHERE id = ?`

	row := r.store.db.QueryRowContext(ctx, query, id.String())
	task, err := scanTask(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task by id: %w", err)
	}

	return task, nil
}

func (r *TaskRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	query := `SELECT id, owner_id, name, description, priority, status, deadline, owner, created_at
			  FROM tasks WHERE owner_id = ? ORDER BY created_at`

	rows, err := r.store.db.QueryContext(ctx, query, ownerID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks by owner id: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, task model.Task) (model.Task, error) {
	query := `UPDATE tasks
			  SET name = ?, description = ?, priority = ?, status = ?, deadline = ?, owner = ?
			  WHERE id = ?`

	res, err := r.store.db.ExecContext(ctx, query,
		task.Name, task.Description, string(task.Priority), string(task.Status),
		task.Deadline, task.Owner, task.ID.String(),
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return model.Task{}, model.ErrNotFound
	}

	return task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.store.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}

	return nil
}

func scanTask(scan func(dest ...any) error) (model.Task, error) {
	var (
		task      model.Task
		id        string
		ownerID   string
		priority  string
		status    string
		createdAt int64
	)
	err := scan(&id, &ownerID, &task.Name, &task.Description, &priority, &status, &task.Deadline, &task.Owner, &createdAt)
	if err != nil {
		return model.Task{}, err
	}

	task.ID, err = uuid.Parse(id)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to parse task id: %w", err)
	}
	task.OwnerID, err = uuid.Parse(ownerID)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to parse owner id: %w", err)
	}
	task.Priority = model.TaskPriority(priority)
	task.Status = model.TaskStatus(status)
	task.CreatedAt = fromMillis(createdAt)

	return task, nil
}
