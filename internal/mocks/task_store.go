package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/okazarin/taskboard/internal/model"
)

// TaskStore is a mock implementation of model.TaskStore.
type TaskStore struct {
	mock.Mock
}

// NewTaskStore creates a TaskStore mock that asserts its expectations when
// the test finishes.
func NewTaskStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *TaskStore {
	m := &TaskStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TaskStore) Create(ctx context.Context, task model.Task) (model.Task, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (model.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskStore) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *TaskStore) Update(ctx context.Context, task model.Task) (model.Task, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
