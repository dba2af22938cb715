package file

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/okazarin/taskboard/internal/model"
)

var _ model.TaskStore = (*TaskRepository)(nil)

// taskRecord is the on-disk representation of a task.
type taskRecord struct {
	ID          uuid.UUID          `json:"id"`
	OwnerID     uuid.UUID          `json:"userId"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Priority    model.TaskPriority `json:"priority"`
	Status      model.TaskStatus   `json:"status"`
	Deadline    string             `json:"deadline"`
	Owner       string             `json:"owner"`
	CreatedAt   time.Time          `json:"createdAt"`
}

func (r taskRecord) toModel() model.Task {
	return model.Task{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Description: r.Description,
		Priority:    r.Priority,
		Status:      r.Status,
		Deadline:    r.Deadline,
		Owner:       r.Owner,
		CreatedAt:   r.CreatedAt,
	}
}

func toTaskRecord(t model.Task) taskRecord {
	return taskRecord{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Name:        t.Name,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
		Deadline:    t.Deadline,
		Owner:       t.Owner,
		CreatedAt:   t.CreatedAt,
	}
}

// TaskRepository stores tasks in a tasks.json collection.
type TaskRepository struct {
	c *collection[taskRecord]
}

func NewTaskRepository(dataDir string) *TaskRepository {
	return &TaskRepository{c: newCollection[taskRecord](filepath.Join(dataDir, "tasks.json"))}
}

func (r *TaskRepository) Create(_ context.Context, task model.Task) (model.Task, error) {
	err := r.c.update(func(items []taskRecord) ([]taskRecord, error) {
		return append(items, toTaskRecord(task)), nil
	})
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

func (r *TaskRepository) GetByID(_ context.Context, id uuid.UUID) (model.Task, error) {
	var task model.Task
	err := r.c.view(func(items []taskRecord) error {
		for _, rec := range items {
			if rec.ID == id {
				task = rec.toModel()
				return nil
			}
		}
		return model.ErrNotFound
	})
	if err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// GetByOwnerID returns all tasks belonging to ownerID, never anyone else's.
func (r *TaskRepository) GetByOwnerID(_ context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	tasks := []model.Task{}
	err := r.c.view(func(items []taskRecord) error {
		for _, rec := range items {
			if rec.OwnerID == ownerID {
				tasks = append(tasks, rec.toModel())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) Update(_ context.Context, task model.Task) (model.Task, error) {
	err := r.c.update(func(items []taskRecord) ([]taskRecord, error) {
		for i, rec := range items {
			if rec.ID == task.ID {
				items[i] = toTaskRecord(task)
				return items, nil
			}
		}
		return nil, model.ErrNotFound
	})
	if err != nil {
		return model.Task{}, err
	}
	return task, nil
}

func (r *TaskRepository) Delete(_ context.Context, id uuid.UUID) error {
	return r.c.update(func(items []taskRecord) ([]taskRecord, error) {
		for i, rec := range items {
			if rec.ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, model.ErrNotFound
	})
}
