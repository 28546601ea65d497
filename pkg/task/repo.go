package task

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoRepo struct {
	collection *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{
		collection: db.Collection("tasks"),
	}
}

func (r *MongoRepo) Create(task *Task) error {
	ctx := context.TODO()

	result, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New("task already exists")
		}
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		task.MongoID = oid
		task.ID = oid.Hex()
	} else {
		return errors.New("failed to convert inserted ID to ObjectID")
	}

	return nil
}

func (r *MongoRepo) GetByID(id string) (*Task, error) {
	ctx := context.TODO()
	var task Task

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid ID format")
	}

	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New("task not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch task: %w", err)
	}

	task.ID = task.MongoID.Hex()
	return &task, nil
}

// GetByUser returns the user's tasks in insertion order. Filtering happens
// here, not on the client.
func (r *MongoRepo) GetByUser(userID string) []*Task {
	ctx := context.TODO()
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil
	}
	defer cursor.Close(ctx)

	var tasks []*Task
	for cursor.Next(ctx) {
		var task Task
		if err := cursor.Decode(&task); err != nil {
			continue
		}
		task.ID = task.MongoID.Hex()
		tasks = append(tasks, &task)
	}

	return tasks
}

func (r *MongoRepo) Update(task *Task) error {
	ctx := context.TODO()

	objectID, err := primitive.ObjectIDFromHex(task.ID)
	if err != nil {
		return errors.New("invalid ID format")
	}

	update := bson.M{"$set": bson.M{
		"title":     task.Title,
		"completed": task.Completed,
		"photoUri":  task.PhotoURI,
		"location":  task.Location,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.MatchedCount == 0 {
		return errors.New("task not found")
	}

	return nil
}

func (r *MongoRepo) Delete(taskID string) error {
	ctx := context.TODO()

	objectID, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return errors.New("invalid ID format")
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.DeletedCount == 0 {
		return errors.New("task not found")
	}

	return nil
}
