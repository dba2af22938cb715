package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/okazarin/taskboard/internal/logger"
	"github.com/okazarin/taskboard/internal/model"
)

// TaskService defines tenancy-filtered task operations.
type TaskService interface {
	ListTasks(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error)
	CreateTask(ctx context.Context, params model.CreateTaskParams) (model.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, params model.UpdateTaskParams) (model.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error
}

// Task handles HTTP endpoints for task management.
type Task struct {
	taskService    TaskService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewTask creates a new Task handler.
func NewTask(taskService TaskService, contextManager model.ContextManager, logger *logger.Logger) *Task {
	return &Task{
		taskService:    taskService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type taskResponse struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Priority    model.TaskPriority `json:"priority"`
	Status      model.TaskStatus   `json:"status"`
	Deadline    string             `json:"deadline"`
	Owner       string             `json:"owner"`
	UserID      uuid.UUID          `json:"userId"`
	CreatedAt   time.Time          `json:"createdAt"`
}

func toTaskResponse(t model.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
		Deadline:    t.Deadline,
		Owner:       t.Owner,
		UserID:      t.OwnerID,
		CreatedAt:   t.CreatedAt,
	}
}

// List returns all tasks owned by the caller.
func (h *Task) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), identity.UserID)
	if err != nil {
		h.logger.Error("Task handler: list failed",
			"user_id", identity.UserID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	resp := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toTaskResponse(t))
	}

	writeJSON(w, http.StatusOK, resp)
}

type createTaskRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Priority    model.TaskPriority `json:"priority"`
	Status      model.TaskStatus   `json:"status"`
	Deadline    string             `json:"deadline"`
	Owner       string             `json:"owner"`
}

// Create stores a new task owned by the caller. Client-supplied ids or
// owner references are ignored.
func (h *Task) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err := h.taskService.CreateTask(r.Context(), model.CreateTaskParams{
		OwnerID:     identity.UserID,
		Name:        req.Name,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		Deadline:    req.Deadline,
		Owner:       req.Owner,
	})
	if err != nil {
		h.logger.Error("Task handler: create failed",
			"user_id", identity.UserID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "Task saved"})
}

type updateTaskRequest struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Priority    *model.TaskPriority `json:"priority"`
	Status      *model.TaskStatus   `json:"status"`
	Deadline    *string             `json:"deadline"`
	Owner       *string             `json:"owner"`
}

// Update merges a partial payload over a task owned by the caller.
func (h *Task) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		// An unparsable id cannot match any task; same outcome as a miss.
		writeError(w, http.StatusNotFound, "Task not found or unauthorized")
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err = h.taskService.UpdateTask(r.Context(), identity.UserID, taskID, model.UpdateTaskParams{
		Name:        req.Name,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		Deadline:    req.Deadline,
		Owner:       req.Owner,
	})
	if err != nil {
		h.logger.Info("Task handler: update failed",
			"user_id", identity.UserID,
			"task_id", taskID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Task updated"})
}

// Delete removes a task owned by the caller.
func (h *Task) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "Task not found or unauthorized")
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), identity.UserID, taskID); err != nil {
		h.logger.Info("Task handler: delete failed",
			"user_id", identity.UserID,
			"task_id", taskID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Task deleted"})
}

// identity pulls the verified identity off the request context. The
// authenticate middleware guarantees it for routed requests; a miss means a
// wiring bug, answered like a missing token.
func (h *Task) identity(w http.ResponseWriter, r *http.Request) (model.Identity, bool) {
	identity, ok := h.contextManager.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return model.Identity{}, false
	}
	return identity, true
}
