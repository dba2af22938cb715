package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okazarin/taskboard/internal/logger"
	"github.com/okazarin/taskboard/internal/model"
)

// Task provides tenancy-filtered task operations: every read and write is
// restricted to tasks owned by the calling identity.
type Task struct {
	taskStore model.TaskStore
	logger    *logger.Logger
}

func NewTask(taskStore model.TaskStore, logger *logger.Logger) *Task {
	return &Task{
		taskStore: taskStore,
		logger:    logger,
	}
}

// ListTasks returns all tasks owned by ownerID.
func (s *Task) ListTasks(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	tasks, err := s.taskStore.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks by owner id: %w", err)
	}

	return tasks, nil
}

// CreateTask stores a new task stamped with the caller's identity. Any
// client-supplied id or owner reference is ignored; the id is generated
// server-side and the status defaults to Pending.
func (s *Task) CreateTask(ctx context.Context, params model.CreateTaskParams) (model.Task, error) {
	status := params.Status
	if status == "" {
		status = model.StatusPending
	}

	task := model.Task{
		ID:          uuid.New(),
		OwnerID:     params.OwnerID,
		Name:        params.Name,
		Description: params.Description,
		Priority:    params.Priority,
		Status:      status,
		Deadline:    params.Deadline,
		Owner:       params.Owner,
		CreatedAt:   time.Now(),
	}

	task, err := s.taskStore.Create(ctx, task)
	if err != nil {
		s.logger.Error("Task service: failed to create task",
			"owner_id", params.OwnerID,
			"error", err.Error())
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("Task service: task created",
		"task_id", task.ID,
		"owner_id", task.OwnerID)

	return task, nil
}

// UpdateTask merges the partial payload over a task matching both taskID and
// ownerID and persists the result.
func (s *Task) UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, params model.UpdateTaskParams) (model.Task, error) {
	task, err := s.getOwned(ctx, ownerID, taskID)
	if err != nil {
		return model.Task{}, err
	}

	if params.Name != nil {
		task.Name = *params.Name
	}
	if params.Description != nil {
		task.Description = *params.Description
	}
	if params.Priority != nil {
		task.Priority = *params.Priority
	}
	if params.Status != nil {
		task.Status = *params.Status
	}
	if params.Deadline != nil {
		task.Deadline = *params.Deadline
	}
	if params.Owner != nil {
		task.Owner = *params.Owner
	}

	task, err = s.taskStore.Update(ctx, task)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Task{}, model.ErrNotFound
		}
		s.logger.Error("Task service: failed to update task",
			"task_id", taskID,
			"error", err.Error())
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info("Task service: task updated",
		"task_id", task.ID,
		"owner_id", task.OwnerID)

	return task, nil
}

// DeleteTask removes a task matching both taskID and ownerID.
func (s *Task) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error {
	if _, err := s.getOwned(ctx, ownerID, taskID); err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, taskID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		s.logger.Error("Task service: failed to delete task",
			"task_id", taskID,
			"error", err.Error())
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info("Task service: task deleted",
		"task_id", taskID,
		"owner_id", ownerID)

	return nil
}

// getOwned loads a task and checks ownership. A task owned by someone else
// yields the same ErrNotFound as a missing task, so callers cannot probe
// other users' task ids.
func (s *Task) getOwned(ctx context.Context, ownerID, taskID uuid.UUID) (model.Task, error) {
	task, err := s.taskStore.GetByID(ctx, taskID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Task{}, model.ErrNotFound
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to get task by id: %w", err)
	}

	if task.OwnerID != ownerID {
		return model.Task{}, model.ErrNotFound
	}

	return task, nil
}
