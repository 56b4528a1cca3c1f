package territoriality

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/exceptions"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProfileMongoRepository struct {
	Collection *mongo.Collection
}

func NewProfileMongoRepository(db *mongo.Client, dbName string) contracts.ProfileRepository {
	return &ProfileMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionProfiles),
	}
}

func (repo *ProfileMongoRepository) FindByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := repo.Collection.FindOne(ctx, bson.M{"userId": userID, "deletedAt": bson.M{"$exists": false}}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &profile, nil
}

func (repo *ProfileMongoRepository) UpdateLocation(ctx context.Context, profile *models.Profile) error {
	update := bson.M{
		"$set": bson.M{
			"currentLocation":    profile.CurrentLocation,
			"stayDurationMonths": profile.StayDurationMonths,
			"managedByOrgId":     profile.ManagedByOrgID,
			"signaledToOrgId":    profile.SignaledToOrgID,
			"locationUpdatedAt":  profile.LocationUpdatedAt,
			"updatedAt":          time.Now(),
		},
	}
	_, err := repo.Collection.UpdateOne(ctx, bson.M{"_id": profile.ID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
