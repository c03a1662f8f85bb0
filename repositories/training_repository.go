package repository

import (
	"context"
	"fmt"
	"time"

	"oceansms/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TrainingRepository persists training plans and their completion records.
type TrainingRepository interface {
	CreatePlan(ctx context.Context, plan *models.TrainingPlan) error
	GetPlan(ctx context.Context, id primitive.ObjectID) (*models.TrainingPlan, error)
	GetAllPlans(ctx context.Context) ([]models.TrainingPlan, error)
	UpdatePlan(ctx context.Context, id primitive.ObjectID, plan *models.TrainingPlan) error

	CreateRecord(ctx context.Context, record *models.TrainingRecord) error
	GetRecord(ctx context.Context, id primitive.ObjectID) (*models.TrainingRecord, error)
	GetAllRecords(ctx context.Context) ([]models.TrainingRecord, error)
	FindRecordByPlanDate(ctx context.Context, planID primitive.ObjectID, plannedDate time.Time) (*models.TrainingRecord, error)
	UpdateRecord(ctx context.Context, id primitive.ObjectID, record *models.TrainingRecord) error
}

type trainingRepository struct {
	plans   *mongo.Collection
	records *mongo.Collection
}

func NewTrainingRepository(db *mongo.Database) TrainingRepository {
	return &trainingRepository{
		plans:   db.Collection("training_plans"),
		records: db.Collection("training_records"),
	}
}

func (r *trainingRepository) CreatePlan(ctx context.Context, plan *models.TrainingPlan) error {
	plan.ID = primitive.NewObjectID()

	_, err := r.plans.InsertOne(ctx, plan)
	return err
}

func (r *trainingRepository) GetPlan(ctx context.Context, id primitive.ObjectID) (*models.TrainingPlan, error) {
	var plan models.TrainingPlan
	err := r.plans.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		return nil, err
	}

	return &plan, nil
}

func (r *trainingRepository) GetAllPlans(ctx context.Context) ([]models.TrainingPlan, error) {
	cursor, err := r.plans.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []models.TrainingPlan
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *trainingRepository) UpdatePlan(ctx context.Context, id primitive.ObjectID, plan *models.TrainingPlan) error {
	result, err := r.plans.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": plan})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no training plan found with id %s", id.Hex())
	}

	return nil
}

func (r *trainingRepository) CreateRecord(ctx context.Context, record *models.TrainingRecord) error {
	record.ID = primitive.NewObjectID()

	_, err := r.records.InsertOne(ctx, record)
	return err
}

func (r *trainingRepository) GetRecord(ctx context.Context, id primitive.ObjectID) (*models.TrainingRecord, error) {
	var record models.TrainingRecord
	err := r.records.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *trainingRepository) GetAllRecords(ctx context.Context) ([]models.TrainingRecord, error) {
	cursor, err := r.records.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.TrainingRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	return records, nil
}

// FindRecordByPlanDate looks up the record for a (plan, planned date) pair.
// Returns mongo.ErrNoDocuments when none exists.
func (r *trainingRepository) FindRecordByPlanDate(ctx context.Context, planID primitive.ObjectID, plannedDate time.Time) (*models.TrainingRecord, error) {
	dayStart := time.Date(plannedDate.UTC().Year(), plannedDate.UTC().Month(), plannedDate.UTC().Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	var record models.TrainingRecord
	err := r.records.FindOne(ctx, bson.M{
		"trainingPlanId": planID,
		"plannedDate":    bson.M{"$gte": dayStart, "$lt": dayEnd},
	}).Decode(&record)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *trainingRepository) UpdateRecord(ctx context.Context, id primitive.ObjectID, record *models.TrainingRecord) error {
	result, err := r.records.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": record})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no training record found with id %s", id.Hex())
	}

	return nil
}
