package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskhub/internal/model"
)

func setupTaskDB(t *testing.T, name string) TaskRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Task{}))
	return NewTaskRepository(db)
}

func newTask(owner uuid.UUID, title, category string, due time.Time) *model.Task {
	return &model.Task{
		OwnerID:     owner,
		Title:       title,
		Description: "description of " + title,
		Category:    category,
		DueDate:     due,
	}
}

func TestTaskRepository_ListByOwnerOrderingAndIsolation(t *testing.T) {
	repo := setupTaskDB(t, "task_list")
	ctx := context.Background()
	ownerA := uuid.New()
	ownerB := uuid.New()
	now := time.Now()

	early := newTask(ownerA, "early", "work", now.Add(24*time.Hour))
	late := newTask(ownerA, "late", "work", now.Add(72*time.Hour))
	other := newTask(ownerB, "other", "home", now.Add(48*time.Hour))
	for _, task := range []*model.Task{early, late, other} {
		require.NoError(t, repo.Create(ctx, task))
	}

	tasks, err := repo.ListByOwner(ctx, ownerA)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "late", tasks[0].Title)
	assert.Equal(t, "early", tasks[1].Title)

	tasks, err = repo.ListByOwner(ctx, ownerB)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "other", tasks[0].Title)
}

func TestTaskRepository_FindByIDIsOwnerScoped(t *testing.T) {
	repo := setupTaskDB(t, "task_find")
	ctx := context.Background()
	ownerA := uuid.New()
	ownerB := uuid.New()

	task := newTask(ownerA, "mine", "work", time.Now())
	require.NoError(t, repo.Create(ctx, task))

	found, err := repo.FindByID(ctx, task.ID, ownerA)
	require.NoError(t, err)
	assert.Equal(t, task.ID, found.ID)

	_, err = repo.FindByID(ctx, task.ID, ownerB)
	assert.Equal(t, gorm.ErrRecordNotFound, err)

	_, err = repo.FindByID(ctx, uuid.New(), ownerA)
	assert.Equal(t, gorm.ErrRecordNotFound, err)
}

func TestTaskRepository_DeleteIsOwnerScoped(t *testing.T) {
	repo := setupTaskDB(t, "task_delete")
	ctx := context.Background()
	ownerA := uuid.New()
	ownerB := uuid.New()

	task := newTask(ownerA, "mine", "work", time.Now())
	require.NoError(t, repo.Create(ctx, task))

	// Another owner cannot delete it, and the row survives
	assert.Equal(t, gorm.ErrRecordNotFound, repo.Delete(ctx, task.ID, ownerB))
	_, err := repo.FindByID(ctx, task.ID, ownerA)
	assert.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, task.ID, ownerA))
	assert.Equal(t, gorm.ErrRecordNotFound, repo.Delete(ctx, task.ID, ownerA))
}

func TestTaskRepository_DistinctCategories(t *testing.T) {
	repo := setupTaskDB(t, "task_categories")
	ctx := context.Background()
	ownerA := uuid.New()
	ownerB := uuid.New()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, newTask(ownerA, "t1", "work", now)))
	require.NoError(t, repo.Create(ctx, newTask(ownerA, "t2", "work", now)))
	require.NoError(t, repo.Create(ctx, newTask(ownerA, "t3", "home", now)))
	require.NoError(t, repo.Create(ctx, newTask(ownerB, "t4", "secret", now)))

	categories, err := repo.DistinctCategories(ctx, ownerA)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"work", "home"}, categories)
	assert.NotContains(t, categories, "secret")
}

func TestTaskRepository_ListByCategory(t *testing.T) {
	repo := setupTaskDB(t, "task_by_category")
	ctx := context.Background()
	ownerA := uuid.New()
	ownerB := uuid.New()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, newTask(ownerA, "t1", "work", now)))
	require.NoError(t, repo.Create(ctx, newTask(ownerA, "t2", "home", now)))
	require.NoError(t, repo.Create(ctx, newTask(ownerB, "t3", "work", now)))

	tasks, err := repo.ListByCategory(ctx, ownerA, "work")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "t1", tasks[0].Title)
}
