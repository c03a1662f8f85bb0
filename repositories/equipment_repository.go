package repository

import (
	"context"
	"fmt"

	"oceansms/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// EquipmentRepository persists PMS equipment documents.
type EquipmentRepository interface {
	Create(ctx context.Context, equipment *models.Equipment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Equipment, error)
	GetByName(ctx context.Context, name string) (*models.Equipment, error)
	GetAll(ctx context.Context) ([]models.Equipment, error)
	Update(ctx context.Context, id primitive.ObjectID, equipment *models.Equipment) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type equipmentRepository struct {
	collection *mongo.Collection
}

func NewEquipmentRepository(db *mongo.Database) EquipmentRepository {
	return &equipmentRepository{
		collection: db.Collection("equipment"),
	}
}

func (r *equipmentRepository) Create(ctx context.Context, equipment *models.Equipment) error {
	equipment.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, equipment)
	return err
}

func (r *equipmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Equipment, error) {
	var equipment models.Equipment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&equipment)
	if err != nil {
		return nil, err
	}

	return &equipment, nil
}

func (r *equipmentRepository) GetByName(ctx context.Context, name string) (*models.Equipment, error) {
	var equipment models.Equipment
	err := r.collection.FindOne(ctx, bson.M{"equipmentName": name}).Decode(&equipment)
	if err != nil {
		return nil, err
	}

	return &equipment, nil
}

func (r *equipmentRepository) GetAll(ctx context.Context) ([]models.Equipment, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var equipment []models.Equipment
	if err = cursor.All(ctx, &equipment); err != nil {
		return nil, err
	}

	return equipment, nil
}

func (r *equipmentRepository) Update(ctx context.Context, id primitive.ObjectID, equipment *models.Equipment) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": equipment})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no equipment found with id %s", id.Hex())
	}

	return nil
}

func (r *equipmentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("no equipment found with id %s", id.Hex())
	}

	return nil
}
