package mongodb

import (
	"context"
	"errors"
	"time"

	"portfolio_server/core/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionProjects = "projects"

// ProjectAdapter implements out.ProjectRepository using MongoDB.
type ProjectAdapter struct {
	collection *mongo.Collection
}

// NewProjectAdapter creates a new MongoDB project adapter.
func NewProjectAdapter(db *mongo.Database) *ProjectAdapter {
	return &ProjectAdapter{
		collection: db.Collection(collectionProjects),
	}
}

// EnsureIndexes creates the lookup indexes for project reads.
func (a *ProjectAdapter) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "domain", Value: 1}}},
		{Keys: bson.D{{Key: "owner", Value: 1}}},
	}

	_, err := a.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func (a *ProjectAdapter) Create(ctx context.Context, project *domain.Project) error {
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now
	_, err := a.collection.InsertOne(ctx, project)
	return err
}

func (a *ProjectAdapter) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	var project domain.Project
	err := a.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (a *ProjectAdapter) findMany(ctx context.Context, filter bson.M) ([]*domain.Project, error) {
	cursor, err := a.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	projects := []*domain.Project{}
	for cursor.Next(ctx) {
		var project domain.Project
		if err := cursor.Decode(&project); err != nil {
			return nil, err
		}
		projects = append(projects, &project)
	}
	return projects, cursor.Err()
}

func (a *ProjectAdapter) FindAll(ctx context.Context) ([]*domain.Project, error) {
	return a.findMany(ctx, bson.M{})
}

func (a *ProjectAdapter) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Project, error) {
	return a.findMany(ctx, bson.M{"owner": ownerID})
}

func (a *ProjectAdapter) Update(ctx context.Context, id string, update domain.ProjectUpdate) (*domain.Project, error) {
	set := bson.M{
		"title":       update.Title,
		"domain":      update.Domain,
		"coverImage":  update.CoverImage,
		"status":      update.Status,
		"description": update.Description,
		"startOn":     update.StartOn,
		"shortDesc":   update.ShortDesc,
		"completedOn": update.CompletedOn,
		"updatedAt":   time.Now().UTC(),
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var project domain.Project
	err := a.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (a *ProjectAdapter) Delete(ctx context.Context, id string) (int64, error) {
	result, err := a.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
