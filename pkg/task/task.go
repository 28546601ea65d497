package task

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Location struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

type Task struct {
	MongoID   primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID        string             `json:"id" bson:"-"`
	Title     string             `json:"title" bson:"title"`
	Completed bool               `json:"completed" bson:"completed"`
	UserID    string             `json:"userId" bson:"userId"`
	PhotoURI  string             `json:"photoUri" bson:"photoUri"`
	Location  *Location          `json:"location,omitempty" bson:"location,omitempty"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"` // epoch milliseconds
}

var (
	ErrEmptyTitle = errors.New("task title must not be empty")
	ErrNoPhoto    = errors.New("task photo is required")
	ErrNoLocation = errors.New("task location is required")
)

// ValidateDraft checks the fields a task must carry before it may be
// submitted. It never touches the network.
func (t *Task) ValidateDraft() error {
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if t.PhotoURI == "" {
		return ErrNoPhoto
	}
	if t.Location == nil {
		return ErrNoLocation
	}
	return nil
}

type Repository interface {
	Create(task *Task) error
	GetByID(id string) (*Task, error)
	GetByUser(userID string) []*Task
	Update(task *Task) error
	Delete(taskID string) error
}
