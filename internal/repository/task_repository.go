package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhub/internal/model"
)

// TaskRepository defines task persistence operations. Every method takes the
// owner ID; rows belonging to another owner are indistinguishable from
// absent rows.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error)
	FindByID(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	DistinctCategories(ctx context.Context, ownerID uuid.UUID) ([]string, error)
	ListByCategory(ctx context.Context, ownerID uuid.UUID, category string) ([]model.Task, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// Create creates a new task.
func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// ListByOwner lists the owner's tasks, most distant due date first.
func (r *taskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("due_date DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByID finds a task by ID scoped to its owner.
func (r *taskRepository) FindByID(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Update saves an existing task.
func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// Delete removes a task scoped to its owner. Deleting an absent or
// foreign-owned task returns gorm.ErrRecordNotFound.
func (r *taskRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DistinctCategories returns the owner's distinct category names.
func (r *taskRepository) DistinctCategories(ctx context.Context, ownerID uuid.UUID) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("owner_id = ?", ownerID).
		Distinct("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListByCategory lists the owner's tasks in one category.
func (r *taskRepository) ListByCategory(ctx context.Context, ownerID uuid.UUID, category string) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND category = ?", ownerID, category).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
