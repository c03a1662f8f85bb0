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

// DrillRepository persists drill plans and drill reports.
type DrillRepository interface {
	CreatePlan(ctx context.Context, plan *models.DrillPlan) error
	GetPlan(ctx context.Context, id primitive.ObjectID) (*models.DrillPlan, error)
	GetAllPlans(ctx context.Context) ([]models.DrillPlan, error)
	UpdatePlan(ctx context.Context, id primitive.ObjectID, plan *models.DrillPlan) error

	CreateReport(ctx context.Context, report *models.DrillReport) error
	GetReport(ctx context.Context, id primitive.ObjectID) (*models.DrillReport, error)
	GetAllReports(ctx context.Context) ([]models.DrillReport, error)
	FindReportByPlanDate(ctx context.Context, planID primitive.ObjectID, plannedDate time.Time) (*models.DrillReport, error)
	UpdateReport(ctx context.Context, id primitive.ObjectID, report *models.DrillReport) error
}

type drillRepository struct {
	plans   *mongo.Collection
	reports *mongo.Collection
}

func NewDrillRepository(db *mongo.Database) DrillRepository {
	return &drillRepository{
		plans:   db.Collection("drill_plans"),
		reports: db.Collection("drill_reports"),
	}
}

func (r *drillRepository) CreatePlan(ctx context.Context, plan *models.DrillPlan) error {
	plan.ID = primitive.NewObjectID()

	_, err := r.plans.InsertOne(ctx, plan)
	return err
}

func (r *drillRepository) GetPlan(ctx context.Context, id primitive.ObjectID) (*models.DrillPlan, error) {
	var plan models.DrillPlan
	err := r.plans.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		return nil, err
	}

	return &plan, nil
}

func (r *drillRepository) GetAllPlans(ctx context.Context) ([]models.DrillPlan, error) {
	cursor, err := r.plans.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []models.DrillPlan
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *drillRepository) UpdatePlan(ctx context.Context, id primitive.ObjectID, plan *models.DrillPlan) error {
	result, err := r.plans.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": plan})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no drill plan found with id %s", id.Hex())
	}

	return nil
}

func (r *drillRepository) CreateReport(ctx context.Context, report *models.DrillReport) error {
	report.ID = primitive.NewObjectID()

	_, err := r.reports.InsertOne(ctx, report)
	return err
}

func (r *drillRepository) GetReport(ctx context.Context, id primitive.ObjectID) (*models.DrillReport, error) {
	var report models.DrillReport
	err := r.reports.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err != nil {
		return nil, err
	}

	return &report, nil
}

func (r *drillRepository) GetAllReports(ctx context.Context) ([]models.DrillReport, error) {
	cursor, err := r.reports.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reports []models.DrillReport
	if err = cursor.All(ctx, &reports); err != nil {
		return nil, err
	}

	return reports, nil
}

// FindReportByPlanDate looks up the report for a (plan, planned date) pair.
// Returns mongo.ErrNoDocuments when none exists.
func (r *drillRepository) FindReportByPlanDate(ctx context.Context, planID primitive.ObjectID, plannedDate time.Time) (*models.DrillReport, error) {
	dayStart := time.Date(plannedDate.UTC().Year(), plannedDate.UTC().Month(), plannedDate.UTC().Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	var report models.DrillReport
	err := r.reports.FindOne(ctx, bson.M{
		"drillPlanId": planID,
		"plannedDate": bson.M{"$gte": dayStart, "$lt": dayEnd},
	}).Decode(&report)
	if err != nil {
		return nil, err
	}

	return &report, nil
}

func (r *drillRepository) UpdateReport(ctx context.Context, id primitive.ObjectID, report *models.DrillReport) error {
	result, err := r.reports.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": report})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no drill report found with id %s", id.Hex())
	}

	return nil
}
