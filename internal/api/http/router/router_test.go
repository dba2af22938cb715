package router

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	httpctx "github.com/okazarin/taskboard/internal/api/http/context"
	"github.com/okazarin/taskboard/internal/hash"
	"github.com/okazarin/taskboard/internal/repository/file"
	"github.com/okazarin/taskboard/internal/service"
	"github.com/okazarin/taskboard/internal/testutil"
	"github.com/okazarin/taskboard/internal/token"
)

// newTestServer wires the real services over a file store in a temp dir,
// the same assembly cmd/main.go performs.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := testutil.MakeNoopLogger()
	dataDir := t.TempDir()

	userStore := file.NewUserRepository(dataDir)
	taskStore := file.NewTaskRepository(dataDir)
	tokens := token.NewJWT("test-secret", time.Hour)
	hasher := hash.NewBcrypt(bcrypt.MinCost)

	authService := service.NewAuth(userStore, hasher, tokens, log)
	taskService := service.NewTask(taskStore, log)

	r := New(authService, taskService, tokens, httpctx.NewManager(), []string{"*"}, log)
	srv := httptest.NewServer(r.Handler())
	t.Cleanup(srv.Close)

	return srv
}

func doJSON(t *testing.T, method, url, token, body string) (*http.Response, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(data) > 0 && data[0] == '{' {
		require.NoError(t, json.Unmarshal(data, &decoded))
	}

	return resp, decoded
}

func register(t *testing.T, srv *httptest.Server, email string) {
	t.Helper()

	body := fmt.Sprintf(`{"name":"User","email":%q,"password":"pw123456"}`, email)
	resp, decoded := doJSON(t, http.MethodPost, srv.URL+"/api/register", "", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "User registered", decoded["message"])
}

func login(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()

	body := fmt.Sprintf(`{"email":%q,"password":"pw123456"}`, email)
	resp, decoded := doJSON(t, http.MethodPost, srv.URL+"/api/login", "", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Login successful", decoded["message"])

	tokenString, ok := decoded["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, tokenString)

	return tokenString
}

func listTasks(t *testing.T, srv *httptest.Server, token string) []map[string]any {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/tasks", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tasks []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tasks))

	return tasks
}

func TestAPI_FullLifecycle(t *testing.T) {
	srv := newTestServer(t)

	register(t, srv, "ada@example.com")
	tokenString := login(t, srv, "ada@example.com")

	resp, decoded := doJSON(t, http.MethodPost, srv.URL+"/api/tasks", tokenString,
		`{"name":"write report","description":"numbers","priority":"High","deadline":"2026-09-01","owner":"Ada"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "Task saved", decoded["message"])

	tasks := listTasks(t, srv, tokenString)
	require.Len(t, tasks, 1)
	assert.Equal(t, "write report", tasks[0]["name"])
	assert.Equal(t, "Pending", tasks[0]["status"])
	taskID, ok := tasks[0]["id"].(string)
	require.True(t, ok)

	resp, decoded = doJSON(t, http.MethodPut, srv.URL+"/api/tasks/"+taskID, tokenString,
		`{"status":"Completed"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Task updated", decoded["message"])

	tasks = listTasks(t, srv, tokenString)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Completed", tasks[0]["status"])
	assert.Equal(t, "write report", tasks[0]["name"])

	resp, decoded = doJSON(t, http.MethodDelete, srv.URL+"/api/tasks/"+taskID, tokenString, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Task deleted", decoded["message"])

	require.Empty(t, listTasks(t, srv, tokenString))
}

func TestAPI_DuplicateRegistration(t *testing.T) {
	srv := newTestServer(t)

	register(t, srv, "ada@example.com")

	body := `{"name":"User","email":"ada@example.com","password":"other"}`
	resp, decoded := doJSON(t, http.MethodPost, srv.URL+"/api/register", "", body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User already exists", decoded["message"])
}

func TestAPI_LoginRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)

	register(t, srv, "ada@example.com")

	resp, decoded := doJSON(t, http.MethodPost, srv.URL+"/api/login", "",
		`{"email":"ada@example.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", decoded["message"])

	resp, decoded = doJSON(t, http.MethodPost, srv.URL+"/api/login", "",
		`{"email":"nobody@example.com","password":"pw123456"}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", decoded["message"])
}

func TestAPI_TasksRequireToken(t *testing.T) {
	srv := newTestServer(t)

	resp, decoded := doJSON(t, http.MethodGet, srv.URL+"/api/tasks", "", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Access denied. No token provided.", decoded["message"])

	resp, decoded = doJSON(t, http.MethodGet, srv.URL+"/api/tasks", "garbage-token", "")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Invalid or expired token.", decoded["message"])
}

func TestAPI_TenantIsolation(t *testing.T) {
	srv := newTestServer(t)

	register(t, srv, "alice@example.com")
	register(t, srv, "bob@example.com")
	aliceToken := login(t, srv, "alice@example.com")
	bobToken := login(t, srv, "bob@example.com")

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/tasks", aliceToken,
		`{"name":"alice secret","priority":"Low"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Bob sees none of Alice's tasks.
	require.Empty(t, listTasks(t, srv, bobToken))

	aliceTasks := listTasks(t, srv, aliceToken)
	require.Len(t, aliceTasks, 1)
	taskID := aliceTasks[0]["id"].(string)

	// Bob cannot touch Alice's task by id, and cannot tell it exists.
	resp, decoded := doJSON(t, http.MethodPut, srv.URL+"/api/tasks/"+taskID, bobToken,
		`{"name":"hijacked"}`)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Task not found or unauthorized", decoded["message"])

	resp, decoded = doJSON(t, http.MethodDelete, srv.URL+"/api/tasks/"+taskID, bobToken, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Task not found or unauthorized", decoded["message"])

	// Alice's task is untouched.
	aliceTasks = listTasks(t, srv, aliceToken)
	require.Len(t, aliceTasks, 1)
	assert.Equal(t, "alice secret", aliceTasks[0]["name"])
}

func TestAPI_ClientCannotForgeOwner(t *testing.T) {
	srv := newTestServer(t)

	register(t, srv, "alice@example.com")
	register(t, srv, "mallory@example.com")
	aliceToken := login(t, srv, "alice@example.com")
	malloryToken := login(t, srv, "mallory@example.com")

	// Mallory posts a task with a forged userId field; it is ignored.
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/tasks", malloryToken,
		`{"name":"planted","userId":"00000000-0000-0000-0000-000000000001"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.Empty(t, listTasks(t, srv, aliceToken))

	malloryTasks := listTasks(t, srv, malloryToken)
	require.Len(t, malloryTasks, 1)
}

func TestAPI_Health(t *testing.T) {
	srv := newTestServer(t)

	resp, decoded := doJSON(t, http.MethodGet, srv.URL+"/health", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decoded["status"])
}

func TestAPI_UnknownTaskID(t *testing.T) {
	srv := newTestServer(t)

	register(t, srv, "ada@example.com")
	tokenString := login(t, srv, "ada@example.com")

	resp, decoded := doJSON(t, http.MethodDelete,
		srv.URL+"/api/tasks/3f1c4f44-1111-2222-3333-444455556666", tokenString, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Task not found or unauthorized", decoded["message"])
}
