package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpctx "github.com/okazarin/taskboard/internal/api/http/context"
	"github.com/okazarin/taskboard/internal/model"
	"github.com/okazarin/taskboard/internal/testutil"
)

type fakeTaskService struct {
	tasks     []model.Task
	listErr   error
	createErr error
	updateErr error
	deleteErr error

	gotCreate  model.CreateTaskParams
	gotUpdate  model.UpdateTaskParams
	gotOwnerID uuid.UUID
	gotTaskID  uuid.UUID
}

func (f *fakeTaskService) ListTasks(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	f.gotOwnerID = ownerID
	return f.tasks, f.listErr
}

func (f *fakeTaskService) CreateTask(ctx context.Context, params model.CreateTaskParams) (model.Task, error) {
	f.gotCreate = params
	return model.Task{ID: uuid.New(), OwnerID: params.OwnerID}, f.createErr
}

func (f *fakeTaskService) UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, params model.UpdateTaskParams) (model.Task, error) {
	f.gotOwnerID, f.gotTaskID, f.gotUpdate = ownerID, taskID, params
	return model.Task{ID: taskID, OwnerID: ownerID}, f.updateErr
}

func (f *fakeTaskService) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error {
	f.gotOwnerID, f.gotTaskID = ownerID, taskID
	return f.deleteErr
}

// authedRequest builds a request carrying identity, the way the authenticate
// middleware leaves it for routed requests.
func authedRequest(t *testing.T, cm model.ContextManager, method, target, body string, identity model.Identity) *http.Request {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	return req.WithContext(cm.SetIdentityToContext(req.Context(), identity))
}

func TestTaskHandler_List(t *testing.T) {
	cm := httpctx.NewManager()
	identity := model.Identity{UserID: uuid.New(), Name: "Ada"}
	svc := &fakeTaskService{tasks: []model.Task{
		{ID: uuid.New(), OwnerID: identity.UserID, Name: "one", Priority: model.PriorityHigh},
	}}
	h := NewTask(svc, cm, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(t, cm, http.MethodGet, "/api/tasks", "", identity))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, identity.UserID, svc.gotOwnerID)

	var resp []taskResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "one", resp[0].Name)
	assert.Equal(t, identity.UserID, resp[0].UserID)
}

func TestTaskHandler_List_EmptyIsArray(t *testing.T) {
	cm := httpctx.NewManager()
	h := NewTask(&fakeTaskService{tasks: []model.Task{}}, cm, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(t, cm, http.MethodGet, "/api/tasks", "", model.Identity{UserID: uuid.New()}))

	require.Equal(t, http.StatusOK, rec.Code)
	// Clients iterate the response; an empty list must serialize as [].
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestTaskHandler_List_NoIdentity(t *testing.T) {
	cm := httpctx.NewManager()
	h := NewTask(&fakeTaskService{}, cm, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTaskHandler_Create(t *testing.T) {
	cm := httpctx.NewManager()
	identity := model.Identity{UserID: uuid.New(), Name: "Ada"}
	svc := &fakeTaskService{}
	h := NewTask(svc, cm, testutil.MakeNoopLogger())

	body := `{"name":"write report","description":"numbers","priority":"High","deadline":"2026-09-01","owner":"Ada"}`
	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(t, cm, http.MethodPost, "/api/tasks", body, identity))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp messageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Task saved", resp.Message)

	assert.Equal(t, identity.UserID, svc.gotCreate.OwnerID)
	assert.Equal(t, "write report", svc.gotCreate.Name)
	assert.Equal(t, model.PriorityHigh, svc.gotCreate.Priority)
}

func TestTaskHandler_Create_InvalidBody(t *testing.T) {
	cm := httpctx.NewManager()
	h := NewTask(&fakeTaskService{}, cm, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(t, cm, http.MethodPost, "/api/tasks", "{broken", model.Identity{UserID: uuid.New()}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaskHandler_Update(t *testing.T) {
	cm := httpctx.NewManager()
	identity := model.Identity{UserID: uuid.New()}
	taskID := uuid.New()
	svc := &fakeTaskService{}
	h := NewTask(svc, cm, testutil.MakeNoopLogger())

	req := authedRequest(t, cm, http.MethodPut, "/api/tasks/"+taskID.String(), `{"status":"Completed"}`, identity)
	req = mux.SetURLVars(req, map[string]string{"id": taskID.String()})

	rec := httptest.NewRecorder()
	h.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp messageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Task updated", resp.Message)

	assert.Equal(t, taskID, svc.gotTaskID)
	assert.Equal(t, identity.UserID, svc.gotOwnerID)
	require.NotNil(t, svc.gotUpdate.Status)
	assert.Equal(t, model.StatusCompleted, *svc.gotUpdate.Status)
	assert.Nil(t, svc.gotUpdate.Name)
}

func TestTaskHandler_Update_BadID(t *testing.T) {
	cm := httpctx.NewManager()
	h := NewTask(&fakeTaskService{}, cm, testutil.MakeNoopLogger())

	req := authedRequest(t, cm, http.MethodPut, "/api/tasks/not-a-uuid", `{}`, model.Identity{UserID: uuid.New()})
	req = mux.SetURLVars(req, map[string]string{"id": "not-a-uuid"})

	rec := httptest.NewRecorder()
	h.Update(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Task not found or unauthorized", decodeError(t, rec).Message)
}

func TestTaskHandler_Update_NotFound(t *testing.T) {
	cm := httpctx.NewManager()
	taskID := uuid.New()
	h := NewTask(&fakeTaskService{updateErr: model.ErrNotFound}, cm, testutil.MakeNoopLogger())

	req := authedRequest(t, cm, http.MethodPut, "/api/tasks/"+taskID.String(), `{}`, model.Identity{UserID: uuid.New()})
	req = mux.SetURLVars(req, map[string]string{"id": taskID.String()})

	rec := httptest.NewRecorder()
	h.Update(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Task not found or unauthorized", decodeError(t, rec).Message)
}

func TestTaskHandler_Delete(t *testing.T) {
	cm := httpctx.NewManager()
	identity := model.Identity{UserID: uuid.New()}
	taskID := uuid.New()
	svc := &fakeTaskService{}
	h := NewTask(svc, cm, testutil.MakeNoopLogger())

	req := authedRequest(t, cm, http.MethodDelete, "/api/tasks/"+taskID.String(), "", identity)
	req = mux.SetURLVars(req, map[string]string{"id": taskID.String()})

	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp messageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Task deleted", resp.Message)
	assert.Equal(t, taskID, svc.gotTaskID)
}

func TestTaskHandler_Delete_NotFound(t *testing.T) {
	cm := httpctx.NewManager()
	taskID := uuid.New()
	h := NewTask(&fakeTaskService{deleteErr: model.ErrNotFound}, cm, testutil.MakeNoopLogger())

	req := authedRequest(t, cm, http.MethodDelete, "/api/tasks/"+taskID.String(), "", model.Identity{UserID: uuid.New()})
	req = mux.SetURLVars(req, map[string]string{"id": taskID.String()})

	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp["status"])
}
