package organizations

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/exceptions"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type OrgServiceMongoRepository struct {
	Collection *mongo.Collection
}

func NewOrgServiceMongoRepository(db *mongo.Client, dbName string) contracts.OrgServiceRepository {
	return &OrgServiceMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionOrgServices),
	}
}

func (repo *OrgServiceMongoRepository) FindByID(ctx context.Context, orgServiceID string) (*models.OrgService, error) {
	var service models.OrgService
	err := repo.Collection.FindOne(ctx, bson.M{"_id": orgServiceID}).Decode(&service)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &service, nil
}

func (repo *OrgServiceMongoRepository) FindByOrgID(ctx context.Context, orgID string) ([]models.OrgService, error) {
	var services []models.OrgService
	cursor, err := repo.Collection.Find(ctx, bson.M{"orgId": orgID, "isActive": true})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	err = cursor.All(ctx, &services)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return services, nil
}
