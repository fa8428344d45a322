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

const collectionUsers = "users"

// UserAdapter implements out.UserRepository using MongoDB.
type UserAdapter struct {
	collection *mongo.Collection
}

// NewUserAdapter creates a new MongoDB user adapter.
func NewUserAdapter(db *mongo.Database) *UserAdapter {
	return &UserAdapter{
		collection: db.Collection(collectionUsers),
	}
}

// EnsureIndexes creates the unique indexes backing the identifier-uniqueness
// invariant, plus lookup indexes.
func (a *UserAdapter) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "mobile", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "fullName", Value: 1}},
		},
	}

	_, err := a.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func (a *UserAdapter) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	_, err := a.collection.InsertOne(ctx, user)
	return err
}

func (a *UserAdapter) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	err := a.collection.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *UserAdapter) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return a.findOne(ctx, bson.M{"_id": id})
}

func (a *UserAdapter) FindByLogin(ctx context.Context, username, email string) (*domain.User, error) {
	or := bson.A{}
	if username != "" {
		or = append(or, bson.M{"username": username})
	}
	if email != "" {
		or = append(or, bson.M{"email": email})
	}
	if len(or) == 0 {
		return nil, nil
	}
	return a.findOne(ctx, bson.M{"$or": or})
}

func (a *UserAdapter) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return a.findOne(ctx, bson.M{"username": username})
}

func (a *UserAdapter) ExistsOther(ctx context.Context, excludeID, username, email, mobile string) (bool, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"username": username},
			bson.M{"email": email},
			bson.M{"mobile": mobile},
		},
	}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	count, err := a.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (a *UserAdapter) SetRefreshToken(ctx context.Context, id, token string) error {
	_, err := a.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"refreshToken": token,
			"updatedAt":    time.Now().UTC(),
		},
	})
	return err
}

func (a *UserAdapter) ClearRefreshToken(ctx context.Context, id string) error {
	_, err := a.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$unset": bson.M{"refreshToken": 1},
		"$set":   bson.M{"updatedAt": time.Now().UTC()},
	})
	return err
}

func (a *UserAdapter) SetPassword(ctx context.Context, id, passwordHash string) error {
	_, err := a.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"password":  passwordHash,
			"updatedAt": time.Now().UTC(),
		},
	})
	return err
}

// findOneAndSet applies a $set and returns the post-update document.
func (a *UserAdapter) findOneAndSet(ctx context.Context, id string, set bson.M) (*domain.User, error) {
	set["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user domain.User
	err := a.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *UserAdapter) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	return a.findOneAndSet(ctx, id, bson.M{
		"fullName":    update.FullName,
		"mobile":      update.Mobile,
		"username":    update.Username,
		"profession":  update.Profession,
		"email":       update.Email,
		"altMobile":   update.AltMobile,
		"softSkills":  update.SoftSkills,
		"language":    update.Language,
		"intrests":    update.Intrests,
		"social":      update.Social,
		"skills":      update.Skills,
		"address":     update.Address,
		"description": update.Description,
	})
}

func (a *UserAdapter) SetAvatar(ctx context.Context, id, fileName string) (*domain.User, error) {
	return a.findOneAndSet(ctx, id, bson.M{"avatar": fileName})
}

func (a *UserAdapter) SetCoverImage(ctx context.Context, id, fileName string) (*domain.User, error) {
	return a.findOneAndSet(ctx, id, bson.M{"coverImage": fileName})
}

func (a *UserAdapter) SetEducation(ctx context.Context, id string, items []domain.Education) (*domain.User, error) {
	return a.findOneAndSet(ctx, id, bson.M{"education": items})
}

func (a *UserAdapter) PushExperience(ctx context.Context, id string, item domain.Experience) (*domain.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{
		"$push": bson.M{"experience": item},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	var user domain.User
	err := a.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *UserAdapter) UpdateExperience(ctx context.Context, id, experienceID string, item domain.Experience) (int64, error) {
	filter := bson.M{"_id": id, "experience._id": experienceID}
	update := bson.M{
		"$set": bson.M{
			"experience.$": item,
			"updatedAt":    time.Now().UTC(),
		},
	}
	result, err := a.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

func (a *UserAdapter) PullExperience(ctx context.Context, id, experienceID string) (int64, error) {
	update := bson.M{
		"$pull": bson.M{"experience": bson.M{"_id": experienceID}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	result, err := a.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (a *UserAdapter) FindExperience(ctx context.Context, id, experienceID string) (*domain.Experience, error) {
	filter := bson.M{"_id": id, "experience._id": experienceID}
	opts := options.FindOne().SetProjection(bson.M{"experience.$": 1})

	var doc struct {
		Experience []domain.Experience `bson:"experience"`
	}
	err := a.collection.FindOne(ctx, filter, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(doc.Experience) == 0 {
		return nil, nil
	}
	return &doc.Experience[0], nil
}

func (a *UserAdapter) Summaries(ctx context.Context, ids []string) (map[string]domain.OwnerSummary, error) {
	summaries := make(map[string]domain.OwnerSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	opts := options.Find().SetProjection(bson.M{
		"_id":        1,
		"username":   1,
		"profession": 1,
		"mobile":     1,
		"fullName":   1,
		"avatar":     1,
	})
	cursor, err := a.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var summary domain.OwnerSummary
		if err := cursor.Decode(&summary); err != nil {
			return nil, err
		}
		summaries[summary.ID] = summary
	}
	return summaries, cursor.Err()
}
