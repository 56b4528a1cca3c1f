package appointments

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/exceptions"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AgentScheduleMongoRepository struct {
	Collection *mongo.Collection
}

func NewAgentScheduleMongoRepository(db *mongo.Client, dbName string) contracts.AgentScheduleRepository {
	return &AgentScheduleMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAgentSchedules),
	}
}

func (repo *AgentScheduleMongoRepository) FindActiveByOrgID(ctx context.Context, orgID string) ([]models.AgentSchedule, error) {
	cursor, err := repo.Collection.Find(ctx, bson.M{"orgId": orgID, "isActive": true})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	result := []models.AgentSchedule{}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return result, nil
}

// Upsert keeps one schedule per org, agent and service scope. The stored document,
// including its id and creation time, is decoded back into schedule.
func (repo *AgentScheduleMongoRepository) Upsert(ctx context.Context, schedule *models.AgentSchedule) error {
	filter := bson.M{
		"orgId":        schedule.OrgID,
		"agentId":      schedule.AgentID,
		"orgServiceId": schedule.OrgServiceID,
	}
	update := bson.M{
		"$set": bson.M{
			"isActive":       schedule.IsActive,
			"weeklySchedule": schedule.WeeklySchedule,
			"exceptions":     schedule.Exceptions,
			"updatedAt":      schedule.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":       schedule.ID,
			"createdAt": schedule.CreatedAt,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	if err := repo.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(schedule); err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
