package appointments

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

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName string) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
	}
}

func (repo *AppointmentMongoRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	_, err := repo.Collection.InsertOne(ctx, appointment)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := repo.Collection.FindOne(ctx, bson.M{"_id": appointmentID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (repo *AppointmentMongoRepository) FindByUserID(ctx context.Context, userID string) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "startTime", Value: -1}})
	return repo.find(ctx, bson.M{"userId": userID}, opts)
}

func (repo *AppointmentMongoRepository) FindByOrgAndDate(ctx context.Context, orgID, date string) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	return repo.find(ctx, bson.M{"orgId": orgID, "date": date}, opts)
}

func (repo *AppointmentMongoRepository) FindByStatusAndDate(ctx context.Context, status models.AppointmentStatus, date string) ([]models.Appointment, error) {
	return repo.find(ctx, bson.M{"status": status, "date": date}, options.Find())
}

func (repo *AppointmentMongoRepository) UpdateStatus(ctx context.Context, appointmentID string, status models.AppointmentStatus, at time.Time) error {
	set := bson.M{"status": status, "updatedAt": at}
	switch status {
	case models.AppointmentStatusCancelled:
		set["cancelledAt"] = at
	case models.AppointmentStatusCompleted:
		set["completedAt"] = at
	}
	_, err := repo.Collection.UpdateOne(ctx, bson.M{"_id": appointmentID}, bson.M{"$set": set})
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *AppointmentMongoRepository) MarkReminderSent(ctx context.Context, appointmentID string, at time.Time) error {
	_, err := repo.Collection.UpdateOne(ctx, bson.M{"_id": appointmentID}, bson.M{"$set": bson.M{"reminderSentAt": at}})
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *AppointmentMongoRepository) CountByOrgAndDate(ctx context.Context, orgID, date string) (int64, error) {
	filter := bson.M{
		"orgId":  orgID,
		"date":   date,
		"status": bson.M{"$nin": bson.A{models.AppointmentStatusCancelled, models.AppointmentStatusRescheduled}},
	}
	count, err := repo.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, exceptions.ErrMongoDBCountDocuments(err)
	}
	return count, nil
}

func (repo *AppointmentMongoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Appointment, error) {
	cursor, err := repo.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	result := []models.Appointment{}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return result, nil
}
