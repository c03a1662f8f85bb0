package repository

import (
	"context"
	"fmt"

	"oceansms/models"
	"oceansms/workflow"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// QuestionnaireRepository persists supplier due-diligence questionnaires.
type QuestionnaireRepository interface {
	Create(ctx context.Context, record *models.SupplierDueDiligence) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.SupplierDueDiligence, error)
	GetAll(ctx context.Context) ([]models.SupplierDueDiligence, error)
	GetByStatus(ctx context.Context, status workflow.Status) ([]models.SupplierDueDiligence, error)
	Update(ctx context.Context, id primitive.ObjectID, record *models.SupplierDueDiligence) error
}

type questionnaireRepository struct {
	collection *mongo.Collection
}

func NewQuestionnaireRepository(db *mongo.Database) QuestionnaireRepository {
	return &questionnaireRepository{
		collection: db.Collection("supplier_due_diligence"),
	}
}

func (r *questionnaireRepository) Create(ctx context.Context, record *models.SupplierDueDiligence) error {
	record.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, record)
	return err
}

func (r *questionnaireRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.SupplierDueDiligence, error) {
	var record models.SupplierDueDiligence
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *questionnaireRepository) GetAll(ctx context.Context) ([]models.SupplierDueDiligence, error) {
	return r.find(ctx, bson.M{})
}

func (r *questionnaireRepository) GetByStatus(ctx context.Context, status workflow.Status) ([]models.SupplierDueDiligence, error) {
	return r.find(ctx, bson.M{"status": status})
}

func (r *questionnaireRepository) find(ctx context.Context, filter bson.M) ([]models.SupplierDueDiligence, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.SupplierDueDiligence
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *questionnaireRepository) Update(ctx context.Context, id primitive.ObjectID, record *models.SupplierDueDiligence) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": record})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no questionnaire found with id %s", id.Hex())
	}

	return nil
}
