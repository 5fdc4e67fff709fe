package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// Task service tests run against a real repository on in-memory SQLite and a
// nil cache client, which behaves like a permanent miss.
func setupTaskService(t *testing.T, name string) TaskService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Task{}))
	return NewTaskService(repository.NewTaskRepository(db), nil, 0)
}

func TestTaskService_CreateAndList(t *testing.T) {
	svc := setupTaskService(t, "svc_create")
	ctx := context.Background()
	ownerA := uuid.New()
	ownerB := uuid.New()
	due := time.Now().Add(48 * time.Hour)

	task, err := svc.Create(ctx, ownerA, "t1", "first task", "work", false, due)
	require.NoError(t, err)
	assert.Equal(t, ownerA, task.OwnerID)
	assert.False(t, task.Completed)

	listA, err := svc.List(ctx, ownerA)
	require.NoError(t, err)
	require.Len(t, listA, 1)
	assert.Equal(t, task.ID, listA[0].ID)

	listB, err := svc.List(ctx, ownerB)
	require.NoError(t, err)
	assert.Empty(t, listB)
}

func TestTaskService_GetEnforcesOwnership(t *testing.T) {
	svc := setupTaskService(t, "svc_get")
	ctx := context.Background()
	ownerA := uuid.New()
	ownerB := uuid.New()

	task, err := svc.Create(ctx, ownerA, "t1", "desc", "work", false, time.Now())
	require.NoError(t, err)

	got, err := svc.Get(ctx, task.ID, ownerA)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)

	_, err = svc.Get(ctx, task.ID, ownerB)
	assert.Equal(t, apperrors.ErrTaskNotFound, err)
}

func TestTaskService_UpdatePatch(t *testing.T) {
	svc := setupTaskService(t, "svc_update")
	ctx := context.Background()
	owner := uuid.New()

	task, err := svc.Create(ctx, owner, "t1", "desc", "work", false, time.Now())
	require.NoError(t, err)

	newTitle := "renamed"
	updated, err := svc.Update(ctx, task.ID, owner, TaskPatch{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	// Untouched fields survive a partial patch
	assert.Equal(t, "desc", updated.Description)
	assert.Equal(t, "work", updated.Category)

	// Foreign owner gets not found, task stays unchanged
	intruderTitle := "stolen"
	_, err = svc.Update(ctx, task.ID, uuid.New(), TaskPatch{Title: &intruderTitle})
	assert.Equal(t, apperrors.ErrTaskNotFound, err)

	got, err := svc.Get(ctx, task.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
}

func TestTaskService_CompleteAndDelete(t *testing.T) {
	svc := setupTaskService(t, "svc_complete")
	ctx := context.Background()
	owner := uuid.New()

	task, err := svc.Create(ctx, owner, "t1", "desc", "work", false, time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = svc.Complete(ctx, task.ID, uuid.New())
	assert.Equal(t, apperrors.ErrTaskNotFound, err)

	completed, err := svc.Complete(ctx, task.ID, owner)
	require.NoError(t, err)
	assert.True(t, completed.Completed)

	assert.Equal(t, apperrors.ErrTaskNotFound, svc.Delete(ctx, task.ID, uuid.New()))
	require.NoError(t, svc.Delete(ctx, task.ID, owner))

	_, err = svc.Get(ctx, task.ID, owner)
	assert.Equal(t, apperrors.ErrTaskNotFound, err)
}

func TestTaskService_TasksByCategory(t *testing.T) {
	svc := setupTaskService(t, "svc_categories")
	ctx := context.Background()
	owner := uuid.New()
	now := time.Now()

	_, err := svc.Create(ctx, owner, "t1", "desc", "work", false, now)
	require.NoError(t, err)
	_, err = svc.Create(ctx, owner, "t2", "desc", "home", false, now)
	require.NoError(t, err)

	categories, err := svc.Categories(ctx, owner)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"work", "home"}, categories)

	tasks, err := svc.TasksByCategory(ctx, owner, "work")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "t1", tasks[0].Title)

	_, err = svc.TasksByCategory(ctx, owner, "missing")
	assert.Equal(t, apperrors.ErrCategoryNotFound, err)

	// A category that only another owner uses is not found either
	_, err = svc.TasksByCategory(ctx, uuid.New(), "work")
	assert.Equal(t, apperrors.ErrCategoryNotFound, err)
}
