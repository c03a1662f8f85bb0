package services

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"oceansms/models"
	repository "oceansms/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FileUpload is one validated multipart file headed for storage.
type FileUpload struct {
	Field       string
	Filename    string
	ContentType string
	Data        io.Reader
}

// OperationInput carries the scalar fields of a create or update request.
// Zero values mean "not provided" on update.
type OperationInput struct {
	OperationRefNo  string
	TypeOfOperation string
	MooringMaster   string
	Location        string
	Client          string
	OperationStatus string
	StartTime       time.Time
	EndTime         *time.Time
	FlowDirection   string
	Quantity        float64
	TypeOfCargo     string
	Remarks         string
}

// StsOperationService owns the versioned-operation lifecycle: version 1 on
// create, append-only new-version-on-edit with the head flagged isLatest.
type StsOperationService interface {
	Create(ctx context.Context, input OperationInput, files []FileUpload, createdBy string) (*models.StsOperation, error)
	Update(ctx context.Context, id primitive.ObjectID, input OperationInput, files []FileUpload, updatedBy string) (*models.StsOperation, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.StsOperation, error)
	ListLatest(ctx context.Context) ([]models.StsOperation, error)
	History(ctx context.Context, id primitive.ObjectID) ([]models.StsOperation, error)
}

type stsOperationService struct {
	repo  repository.StsOperationRepository
	files repository.FileRepository
}

func NewStsOperationService(repo repository.StsOperationRepository, files repository.FileRepository) StsOperationService {
	return &stsOperationService{
		repo:  repo,
		files: files,
	}
}

// NextVersion computes the version number following v: +0.1, rounded to one
// decimal place so long chains do not drift (1.1, 1.2, ... 1.9, 2.0).
func NextVersion(v float64) float64 {
	return math.Round((v+0.1)*10) / 10
}

func (s *stsOperationService) Create(ctx context.Context, input OperationInput, files []FileUpload, createdBy string) (*models.StsOperation, error) {
	if input.OperationRefNo == "" {
		return nil, invalid("Operation reference number is required")
	}
	if input.StartTime.IsZero() {
		return nil, invalid("Operation start time is required")
	}

	uploaded, err := s.storeFiles(ctx, files, createdBy)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	op := &models.StsOperation{
		ParentOperationID: primitive.NewObjectID(),
		Version:           1,
		IsLatest:          true,
		OperationRefNo:    input.OperationRefNo,
		TypeOfOperation:   input.TypeOfOperation,
		MooringMaster:     input.MooringMaster,
		Location:          input.Location,
		Client:            input.Client,
		OperationStatus:   input.OperationStatus,
		StartTime:         input.StartTime,
		EndTime:           input.EndTime,
		FlowDirection:     input.FlowDirection,
		Quantity:          input.Quantity,
		TypeOfCargo:       input.TypeOfCargo,
		Remarks:           input.Remarks,
		Equipments:        []models.EquipmentUsage{},
		Files:             uploaded,
		CreatedBy:         createdBy,
		Metadata: models.Metadata{
			CreatedBy: createdBy,
			UpdatedBy: createdBy,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if op.OperationStatus == "" {
		op.OperationStatus = models.OperationInProgress
	}

	if err := s.repo.Insert(ctx, op); err != nil {
		return nil, err
	}

	return op, nil
}

func (s *stsOperationService) Update(ctx context.Context, id primitive.ObjectID, input OperationInput, files []FileUpload, updatedBy string) (*models.StsOperation, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("Operation not found")
	}

	if !existing.IsLatest {
		return nil, forbidden("Only latest version can be updated")
	}

	uploaded, err := s.storeFiles(ctx, files, updatedBy)
	if err != nil {
		return nil, err
	}

	head, err := s.repo.FindHead(ctx, existing.ParentOperationID)
	if err != nil {
		return nil, err
	}

	next := *existing
	next.Version = NextVersion(head.Version)
	next.IsLatest = true
	applyOperationInput(&next, input)
	if next.Files == nil {
		next.Files = map[string]string{}
	}
	for field, url := range uploaded {
		next.Files[field] = url
	}
	next.Metadata.UpdatedBy = updatedBy
	next.Metadata.UpdatedAt = time.Now()

	if err := s.repo.ReplaceHead(ctx, existing.ParentOperationID, &next); err != nil {
		return nil, fmt.Errorf("failed to create new version: %v", err)
	}

	return &next, nil
}

func (s *stsOperationService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.StsOperation, error) {
	op, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("Operation not found")
	}

	return op, nil
}

func (s *stsOperationService) ListLatest(ctx context.Context) ([]models.StsOperation, error) {
	return s.repo.ListLatest(ctx)
}

// History returns every version in the operation's group, newest first.
func (s *stsOperationService) History(ctx context.Context, id primitive.ObjectID) ([]models.StsOperation, error) {
	op, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("Operation not found")
	}

	return s.repo.ListByParent(ctx, op.ParentOperationID)
}

// storeFiles streams each upload into storage and returns field -> URL.
// Uploads run sequentially and the first failure aborts the whole request;
// files already stored are left behind (no compensating delete).
func (s *stsOperationService) storeFiles(ctx context.Context, files []FileUpload, uploadedBy string) (map[string]string, error) {
	uploaded := map[string]string{}
	for _, f := range files {
		fileID, err := s.files.Upload(ctx, f.Filename, f.Data, uploadedBy, f.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to upload %s: %v", f.Field, err)
		}
		uploaded[f.Field] = "/api/files/" + fileID.Hex()
	}

	return uploaded, nil
}

func applyOperationInput(op *models.StsOperation, input OperationInput) {
	if input.OperationRefNo != "" {
		op.OperationRefNo = input.OperationRefNo
	}
	if input.TypeOfOperation != "" {
		op.TypeOfOperation = input.TypeOfOperation
	}
	if input.MooringMaster != "" {
		op.MooringMaster = input.MooringMaster
	}
	if input.Location != "" {
		op.Location = input.Location
	}
	if input.Client != "" {
		op.Client = input.Client
	}
	if input.OperationStatus != "" {
		op.OperationStatus = input.OperationStatus
	}
	if !input.StartTime.IsZero() {
		op.StartTime = input.StartTime
	}
	if input.EndTime != nil {
		op.EndTime = input.EndTime
	}
	if input.FlowDirection != "" {
		op.FlowDirection = input.FlowDirection
	}
	if input.Quantity != 0 {
		op.Quantity = input.Quantity
	}
	if input.TypeOfCargo != "" {
		op.TypeOfCargo = input.TypeOfCargo
	}
	if input.Remarks != "" {
		op.Remarks = input.Remarks
	}
}
