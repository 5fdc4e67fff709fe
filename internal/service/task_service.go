package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhub/internal/cache"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

const taskCacheTTL = 5 * time.Minute

// TaskPatch carries the fields of a partial task update. Nil fields are left
// untouched. Ownership is never part of a patch.
type TaskPatch struct {
	Title       *string
	Description *string
	Category    *string
	Completed   *bool
	DueDate     *time.Time
}

// TaskService exposes owner-scoped task operations. The owner ID always
// comes from the authenticated caller, never from request payloads.
type TaskService interface {
	Create(ctx context.Context, ownerID uuid.UUID, title, description, category string, completed bool, dueDate time.Time) (*model.Task, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error)
	Get(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, patch TaskPatch) (*model.Task, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	Categories(ctx context.Context, ownerID uuid.UUID) ([]string, error)
	TasksByCategory(ctx context.Context, ownerID uuid.UUID, category string) ([]model.Task, error)
	Complete(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error)
}

type taskService struct {
	taskRepo repository.TaskRepository
	cache    *cache.Client
	ttl      time.Duration
}

// NewTaskService builds a TaskService with repository and cache.
func NewTaskService(taskRepo repository.TaskRepository, cacheClient *cache.Client, cacheTTL time.Duration) TaskService {
	if cacheTTL <= 0 {
		cacheTTL = taskCacheTTL
	}
	return &taskService{
		taskRepo: taskRepo,
		cache:    cacheClient,
		ttl:      cacheTTL,
	}
}

func listCacheKey(ownerID uuid.UUID) string {
	return "tasks:list:" + ownerID.String()
}

func categoriesCacheKey(ownerID uuid.UUID) string {
	return "tasks:categories:" + ownerID.String()
}

// invalidate drops the owner's cached reads after any write.
func (s *taskService) invalidate(ctx context.Context, ownerID uuid.UUID) {
	_ = s.cache.Delete(ctx, listCacheKey(ownerID), categoriesCacheKey(ownerID))
}

// Create creates a task owned by the caller.
func (s *taskService) Create(ctx context.Context, ownerID uuid.UUID, title, description, category string, completed bool, dueDate time.Time) (*model.Task, error) {
	task := &model.Task{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Category:    category,
		Completed:   completed,
		DueDate:     dueDate,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.invalidate(ctx, ownerID)
	return task, nil
}

// List returns the caller's tasks ordered by due date descending.
func (s *taskService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	key := listCacheKey(ownerID)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var tasks []model.Task
		if err := json.Unmarshal(data, &tasks); err == nil {
			return tasks, nil
		}
	}

	tasks, err := s.taskRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	if payload, err := json.Marshal(tasks); err == nil {
		_ = s.cache.Set(ctx, key, payload, s.ttl)
	}
	return tasks, nil
}

// Get returns one task, scoped to the caller.
func (s *taskService) Get(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id, ownerID)
	if err == gorm.ErrRecordNotFound {
		return nil, apperrors.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

// Update applies a partial patch to the caller's task.
func (s *taskService) Update(ctx context.Context, id, ownerID uuid.UUID, patch TaskPatch) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id, ownerID)
	if err == gorm.ErrRecordNotFound {
		return nil, apperrors.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Category != nil {
		task.Category = *patch.Category
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	if patch.DueDate != nil {
		task.DueDate = *patch.DueDate
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	s.invalidate(ctx, ownerID)
	return task, nil
}

// Delete removes the caller's task.
func (s *taskService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	err := s.taskRepo.Delete(ctx, id, ownerID)
	if err == gorm.ErrRecordNotFound {
		return apperrors.ErrTaskNotFound
	}
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	s.invalidate(ctx, ownerID)
	return nil
}

// Categories returns the caller's distinct task categories.
func (s *taskService) Categories(ctx context.Context, ownerID uuid.UUID) ([]string, error) {
	key := categoriesCacheKey(ownerID)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var categories []string
		if err := json.Unmarshal(data, &categories); err == nil {
			return categories, nil
		}
	}

	categories, err := s.taskRepo.DistinctCategories(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	if payload, err := json.Marshal(categories); err == nil {
		_ = s.cache.Set(ctx, key, payload, s.ttl)
	}
	return categories, nil
}

// TasksByCategory returns the caller's tasks in one category. A category the
// caller has no tasks in is not found.
func (s *taskService) TasksByCategory(ctx context.Context, ownerID uuid.UUID, category string) ([]model.Task, error) {
	categories, err := s.Categories(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	found := false
	for _, c := range categories {
		if c == category {
			found = true
			break
		}
	}
	if !found {
		return nil, apperrors.ErrCategoryNotFound
	}

	tasks, err := s.taskRepo.ListByCategory(ctx, ownerID, category)
	if err != nil {
		return nil, fmt.Errorf("list tasks by category: %w", err)
	}
	return tasks, nil
}

// Complete marks the caller's task as completed.
func (s *taskService) Complete(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error) {
	completed := true
	return s.Update(ctx, id, ownerID, TaskPatch{Completed: &completed})
}
