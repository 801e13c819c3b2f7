package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepo struct {
	collection *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{
		collection: db.Collection("tasks"),
	}
}

func (r *MongoRepo) Create(ctx context.Context, task *Task) error {
	if _, err := r.collection.InsertOne(ctx, task); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *MongoRepo) GetByID(ctx context.Context, userID, id string) (*Task, error) {
	var task Task

	err := r.collection.FindOne(ctx, ownedBy(userID, id)).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch task: %w", err)
	}

	return &task, nil
}

func (r *MongoRepo) GetByUser(ctx context.Context, userID string) ([]*Task, error) {
	cursor, err := r.collection.Find(
		ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := make([]*Task, 0)
	for cursor.Next(ctx) {
		var task Task
		if err := cursor.Decode(&task); err != nil {
			return nil, fmt.Errorf("failed to decode task: %w", err)
		}
		tasks = append(tasks, &task)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

func (r *MongoRepo) Update(ctx context.Context, userID, id string, patch Patch) (*Task, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Completed != nil {
		set["completed"] = *patch.Completed
	}

	return r.findAndModify(ctx, userID, id, bson.M{"$set": set}, "failed to update task")
}

// Toggle flips completed server-side with an update pipeline so the read and
// the write are one operation.
func (r *MongoRepo) Toggle(ctx context.Context, userID, id string) (*Task, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "completed", Value: bson.D{{Key: "$not", Value: "$completed"}}},
			{Key: "updated_at", Value: time.Now().UTC()},
		}}},
	}

	return r.findAndModify(ctx, userID, id, pipeline, "failed to toggle task")
}

func (r *MongoRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.collection.DeleteOne(ctx, ownedBy(userID, id))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *MongoRepo) findAndModify(ctx context.Context, userID, id string, update any, failure string) (*Task, error) {
	var task Task
	err := r.collection.FindOneAndUpdate(
		ctx,
		ownedBy(userID, id),
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", failure, err)
	}

	return &task, nil
}

func ownedBy(userID, id string) bson.M {
	return bson.M{"_id": id, "user_id": userID}
}
