package organizations

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/exceptions"
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrganizationMongoRepository struct {
	Collection *mongo.Collection
}

func NewOrganizationMongoRepository(db *mongo.Client, dbName string) contracts.OrganizationRepository {
	return &OrganizationMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionOrganizations),
	}
}

func (repo *OrganizationMongoRepository) FindAll(ctx context.Context) ([]models.Organization, error) {
	var orgs []models.Organization
	cursor, err := repo.Collection.Find(ctx, bson.M{"isActive": true}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	err = cursor.All(ctx, &orgs)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return orgs, nil
}

func (repo *OrganizationMongoRepository) FindByID(ctx context.Context, orgID string) (*models.Organization, error) {
	return repo.findOne(ctx, bson.M{"_id": orgID})
}

func (repo *OrganizationMongoRepository) FindBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	return repo.findOne(ctx, bson.M{"slug": slug})
}

// FindByJurisdiction returns the active organization whose jurisdiction covers country.
func (repo *OrganizationMongoRepository) FindByJurisdiction(ctx context.Context, country string) (*models.Organization, error) {
	return repo.findOne(ctx, bson.M{
		"isActive":              true,
		"jurisdictionCountries": strings.ToUpper(country),
	})
}

func (repo *OrganizationMongoRepository) findOne(ctx context.Context, filter bson.M) (*models.Organization, error) {
	var org models.Organization
	err := repo.Collection.FindOne(ctx, filter).Decode(&org)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &org, nil
}
