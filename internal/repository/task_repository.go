package repository

import (
	"context"
	"time"

	"team-task-api/internal/models"

	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository.
// Deadlines are written and compared in UTC so SQLite's text timestamps sort correctly.
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	task.Deadline = task.Deadline.UTC()
	return translate(r.db.WithContext(ctx).Create(task).Error)
}

func (r *GormTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	query := r.db.WithContext(ctx).Model(&models.Task{})

	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.DeadlineFrom != nil {
		query = query.Where("deadline >= ?", filter.DeadlineFrom.UTC())
	}
	if filter.DeadlineTo != nil {
		query = query.Where("deadline <= ?", filter.DeadlineTo.UTC())
	}

	var tasks []models.Task
	if err := query.Order("deadline asc").Order("created_at asc").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	task.Deadline = task.Deadline.UTC()
	task.UpdatedAt = time.Now()

	result := r.db.WithContext(ctx).Model(&models.Task{}).
		Where("id = ?", task.ID).
		Select("title", "description", "assigned_to", "deadline", "status", "updated_at").
		Updates(task)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormTaskRepository) UpdateStatus(ctx context.Context, id string, status models.TaskStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Task{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormTaskRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
