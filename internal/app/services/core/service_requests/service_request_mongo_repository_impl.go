package servicerequests

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/dto/requests"
	"consulat-service/internal/pkg/exceptions"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ServiceRequestMongoRepository struct {
	Collection *mongo.Collection
}

func NewServiceRequestMongoRepository(db *mongo.Client, dbName string) contracts.ServiceRequestRepository {
	return &ServiceRequestMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionRequests),
	}
}

func (repo *ServiceRequestMongoRepository) Create(ctx context.Context, request *models.ServiceRequest) error {
	_, err := repo.Collection.InsertOne(ctx, request)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *ServiceRequestMongoRepository) FindByID(ctx context.Context, requestID string) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	err := repo.Collection.FindOne(ctx, bson.M{"_id": requestID}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &request, nil
}

func (repo *ServiceRequestMongoRepository) FindByUserID(ctx context.Context, userID string, pagination requests.Pagination) ([]models.ServiceRequest, int, error) {
	return repo.findPage(ctx, bson.M{"userId": userID}, pagination)
}

func (repo *ServiceRequestMongoRepository) FindByOrgID(ctx context.Context, orgID string, status models.RequestStatus, pagination requests.Pagination) ([]models.ServiceRequest, int, error) {
	filter := bson.M{"orgId": orgID}
	if status != "" {
		filter["status"] = status
	}
	return repo.findPage(ctx, filter, pagination)
}

// UpdateStatus is a compare-and-set on the stored status so concurrent agents cannot both apply a transition.
func (repo *ServiceRequestMongoRepository) UpdateStatus(ctx context.Context, requestID string, from, to models.RequestStatus, activity models.Activity) (bool, error) {
	set := bson.M{
		"status":    to,
		"updatedAt": activity.CreatedAt,
	}
	switch to {
	case models.RequestStatusSubmitted:
		set["submittedAt"] = activity.CreatedAt
	case models.RequestStatusCompleted:
		set["completedAt"] = activity.CreatedAt
	}

	update := bson.M{
		"$set":  set,
		"$push": bson.M{"activities": activity},
	}
	result, err := repo.Collection.UpdateOne(ctx, bson.M{"_id": requestID, "status": from}, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount == 1, nil
}

func (repo *ServiceRequestMongoRepository) UpdatePaymentStatus(ctx context.Context, requestID string, status models.PaymentStatus) error {
	update := bson.M{"$set": bson.M{"paymentStatus": status, "updatedAt": time.Now()}}
	_, err := repo.Collection.UpdateOne(ctx, bson.M{"_id": requestID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *ServiceRequestMongoRepository) CountByStatus(ctx context.Context, orgID string) (map[models.RequestStatus]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"orgId": orgID}}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := repo.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, exceptions.ErrMongoDBCountDocuments(err)
	}

	var rows []struct {
		Status models.RequestStatus `bson:"_id"`
		Count  int64                `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}

	counts := make(map[models.RequestStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (repo *ServiceRequestMongoRepository) findPage(ctx context.Context, filter bson.M, pagination requests.Pagination) ([]models.ServiceRequest, int, error) {
	total, err := repo.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBCountDocuments(err)
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}}).
		SetSkip(pagination.Skip()).
		SetLimit(pagination.Limit())

	cursor, err := repo.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	var result []models.ServiceRequest
	if err := cursor.All(ctx, &result); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return result, int(total), nil
}
