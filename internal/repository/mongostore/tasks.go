package mongostore

import (
	"context"
	"time"

	"team-task-api/internal/models"
	"team-task-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TaskRepository stores tasks in the tasks collection
type TaskRepository struct {
	coll *mongo.Collection
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	task.Prepare()
	now := time.Now()
	task.CreatedAt, task.UpdatedAt = now, now

	_, err := r.coll.InsertOne(ctx, task)
	return translate(err)
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&task); err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

func (r *TaskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]models.Task, error) {
	query := bson.M{}
	if filter.AssignedTo != nil {
		query["assignedTo"] = *filter.AssignedTo
	}

	deadline := bson.M{}
	if filter.DeadlineFrom != nil {
		deadline["$gte"] = *filter.DeadlineFrom
	}
	if filter.DeadlineTo != nil {
		deadline["$lte"] = *filter.DeadlineTo
	}
	if len(deadline) > 0 {
		query["deadline"] = deadline
	}

	opts := options.Find().SetSort(bson.D{{Key: "deadline", Value: 1}, {Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	task.UpdatedAt = time.Now()
	return r.set(ctx, task.ID, bson.M{
		"title":       task.Title,
		"description": task.Description,
		"assignedTo":  task.AssignedTo,
		"deadline":    task.Deadline,
		"status":      task.Status,
		"updatedAt":   task.UpdatedAt,
	})
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, id string, status models.TaskStatus) error {
	return r.set(ctx, id, bson.M{"status": status, "updatedAt": time.Now()})
}

func (r *TaskRepository) set(ctx context.Context, id string, fields bson.M) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id)
}
