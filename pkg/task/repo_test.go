package task_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"geotodo/pkg/task"
)

func TestMongoRepo_GetByUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success keeps insertion order", func(mt *mtest.T) {
		first := primitive.NewObjectID()
		second := primitive.NewObjectID()
		docs := []bson.D{
			{
				{Key: "_id", Value: first},
				{Key: "title", Value: "buy milk"},
				{Key: "userId", Value: "user-1"},
			},
			{
				{Key: "_id", Value: second},
				{Key: "title", Value: "water plants"},
				{Key: "userId", Value: "user-1"},
			},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "geotodo.tasks", mtest.FirstBatch, docs...))
		repo := task.NewMongoRepo(mt.DB)

		results := repo.GetByUser("user-1")

		assert.Len(t, results, 2)
		assert.Equal(t, first.Hex(), results[0].ID)
		assert.Equal(t, "buy milk", results[0].Title)
	})

	mt.Run("mongo Find error", func(mt *mtest.T) {
		repo := task.NewMongoRepo(mt.DB)

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    123,
			Message: "some error",
		}))

		results := repo.GetByUser("user-1")

		assert.Nil(t, results)
	})
}

func TestMongoRepo_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns the stored id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := task.NewMongoRepo(mt.DB)

		newTask := &task.Task{Title: "buy milk", UserID: "user-1"}
		err := repo.Create(newTask)

		assert.NoError(t, err)
		assert.NotEmpty(t, newTask.ID)
		assert.Equal(t, newTask.MongoID.Hex(), newTask.ID)
	})

	mt.Run("insert error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Message: "duplicate",
		}))
		repo := task.NewMongoRepo(mt.DB)

		err := repo.Create(&task.Task{Title: "buy milk"})

		assert.Error(t, err)
	})
}

func TestMongoRepo_BadIDs(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("malformed hex ids never hit the database", func(mt *mtest.T) {
		repo := task.NewMongoRepo(mt.DB)

		_, err := repo.GetByID("nope")
		assert.Error(t, err)

		err = repo.Update(&task.Task{ID: "nope"})
		assert.Error(t, err)

		err = repo.Delete("nope")
		assert.Error(t, err)
	})
}

func TestMongoRepo_Update(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no match", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "n", Value: 0},
			{Key: "nModified", Value: 0},
		})
		repo := task.NewMongoRepo(mt.DB)

		err := repo.Update(&task.Task{ID: primitive.NewObjectID().Hex(), Title: "x"})

		assert.Error(t, err)
		assert.Equal(t, "task not found", err.Error())
	})
}

func TestMongoRepo_Delete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no match", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "n", Value: 0},
		})
		repo := task.NewMongoRepo(mt.DB)

		err := repo.Delete(primitive.NewObjectID().Hex())

		assert.Error(t, err)
		assert.Equal(t, "task not found", err.Error())
	})
}
