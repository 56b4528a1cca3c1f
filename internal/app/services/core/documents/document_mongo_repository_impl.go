package documents

import (
	"consulat-service/internal/app/contracts"
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/constvars"
	"consulat-service/internal/pkg/exceptions"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DocumentMongoRepository struct {
	Collection *mongo.Collection
}

func NewDocumentMongoRepository(db *mongo.Client, dbName string) contracts.DocumentRepository {
	return &DocumentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionDocuments),
	}
}

func (repo *DocumentMongoRepository) Create(ctx context.Context, document *models.Document) error {
	_, err := repo.Collection.InsertOne(ctx, document)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *DocumentMongoRepository) FindByID(ctx context.Context, documentID string) (*models.Document, error) {
	var document models.Document
	err := repo.Collection.FindOne(ctx, bson.M{"_id": documentID, "deletedAt": bson.M{"$exists": false}}).Decode(&document)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &document, nil
}

func (repo *DocumentMongoRepository) FindByOwnerID(ctx context.Context, ownerID string) ([]models.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := repo.Collection.Find(ctx, bson.M{"ownerId": ownerID, "deletedAt": bson.M{"$exists": false}}, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	documents := []models.Document{}
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return documents, nil
}

func (repo *DocumentMongoRepository) UpdateAnalysis(ctx context.Context, documentID string, analysis *models.DocumentAnalysis) error {
	update := bson.M{"$set": bson.M{"analysis": analysis, "updatedAt": time.Now()}}
	_, err := repo.Collection.UpdateOne(ctx, bson.M{"_id": documentID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
