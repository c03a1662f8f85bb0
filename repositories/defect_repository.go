package repository

import (
	"context"
	"fmt"

	"oceansms/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DefectRepository persists QHSE equipment defect entries.
type DefectRepository interface {
	Create(ctx context.Context, defect *models.EquipmentDefect) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.EquipmentDefect, error)
	GetAll(ctx context.Context) ([]models.EquipmentDefect, error)
	Update(ctx context.Context, id primitive.ObjectID, defect *models.EquipmentDefect) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type defectRepository struct {
	collection *mongo.Collection
}

func NewDefectRepository(db *mongo.Database) DefectRepository {
	return &defectRepository{
		collection: db.Collection("equipment_defects"),
	}
}

func (r *defectRepository) Create(ctx context.Context, defect *models.EquipmentDefect) error {
	defect.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, defect)
	return err
}

func (r *defectRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.EquipmentDefect, error) {
	var defect models.EquipmentDefect
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&defect)
	if err != nil {
		return nil, err
	}

	return &defect, nil
}

func (r *defectRepository) GetAll(ctx context.Context) ([]models.EquipmentDefect, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var defects []models.EquipmentDefect
	if err = cursor.All(ctx, &defects); err != nil {
		return nil, err
	}

	return defects, nil
}

func (r *defectRepository) Update(ctx context.Context, id primitive.ObjectID, defect *models.EquipmentDefect) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": defect})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no defect found with id %s", id.Hex())
	}

	return nil
}

func (r *defectRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("no defect found with id %s", id.Hex())
	}

	return nil
}
