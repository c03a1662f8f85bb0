package services

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"oceansms/models"
	"oceansms/utils"
	"oceansms/workflow"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
)

var errNoDocuments = mongo.ErrNoDocuments

func newObjectID() primitive.ObjectID {
	return primitive.NewObjectID()
}

// fakeCounterRepo hands out sequence numbers from memory.
type fakeCounterRepo struct {
	mu   sync.Mutex
	seqs map[string]int64
}

func newFakeCounterRepo() *fakeCounterRepo {
	return &fakeCounterRepo{seqs: map[string]int64{}}
}

func (f *fakeCounterRepo) Next(ctx context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seqs[key]++
	return f.seqs[key], nil
}

// fakeFileRepo collects uploads in memory.
type fakeFileRepo struct {
	uploads []string
}

func (f *fakeFileRepo) Upload(ctx context.Context, filename string, fileData io.Reader, uploadedBy string, contentType string) (primitive.ObjectID, error) {
	var buf bytes.Buffer
	io.Copy(&buf, fileData)
	f.uploads = append(f.uploads, filename)
	return primitive.NewObjectID(), nil
}

func (f *fakeFileRepo) Download(ctx context.Context, fileID primitive.ObjectID) (*gridfs.DownloadStream, error) {
	return nil, errNoDocuments
}

// fakeStsRepo stores operation versions in a slice.
type fakeStsRepo struct {
	ops []models.StsOperation
}

func (f *fakeStsRepo) Insert(ctx context.Context, op *models.StsOperation) error {
	op.ID = primitive.NewObjectID()
	f.ops = append(f.ops, *op)
	return nil
}

func (f *fakeStsRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.StsOperation, error) {
	for i := range f.ops {
		if f.ops[i].ID == id {
			op := f.ops[i]
			return &op, nil
		}
	}
	return nil, errNoDocuments
}

func (f *fakeStsRepo) ListLatest(ctx context.Context) ([]models.StsOperation, error) {
	var out []models.StsOperation
	for _, op := range f.ops {
		if op.IsLatest {
			out = append(out, op)
		}
	}
	return out, nil
}

func (f *fakeStsRepo) ListByParent(ctx context.Context, parentID primitive.ObjectID) ([]models.StsOperation, error) {
	var out []models.StsOperation
	for _, op := range f.ops {
		if op.ParentOperationID == parentID {
			out = append(out, op)
		}
	}
	return out, nil
}

func (f *fakeStsRepo) FindHead(ctx context.Context, parentID primitive.ObjectID) (*models.StsOperation, error) {
	var head *models.StsOperation
	for i := range f.ops {
		if f.ops[i].ParentOperationID != parentID {
			continue
		}
		if head == nil || f.ops[i].Version > head.Version {
			head = &f.ops[i]
		}
	}
	if head == nil {
		return nil, errNoDocuments
	}
	op := *head
	return &op, nil
}

func (f *fakeStsRepo) ReplaceHead(ctx context.Context, parentID primitive.ObjectID, next *models.StsOperation) error {
	for i := range f.ops {
		if f.ops[i].ParentOperationID == parentID {
			f.ops[i].IsLatest = false
		}
	}
	return f.Insert(ctx, next)
}

func (f *fakeStsRepo) UpdateEquipments(ctx context.Context, id primitive.ObjectID, equipments []models.EquipmentUsage) error {
	for i := range f.ops {
		if f.ops[i].ID == id {
			f.ops[i].Equipments = equipments
			return nil
		}
	}
	return errNoDocuments
}

// fakeEquipmentRepo stores equipment in a map.
type fakeEquipmentRepo struct {
	items map[primitive.ObjectID]models.Equipment
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{items: map[primitive.ObjectID]models.Equipment{}}
}

func (f *fakeEquipmentRepo) Create(ctx context.Context, equipment *models.Equipment) error {
	equipment.ID = primitive.NewObjectID()
	f.items[equipment.ID] = *equipment
	return nil
}

func (f *fakeEquipmentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Equipment, error) {
	if item, ok := f.items[id]; ok {
		return &item, nil
	}
	return nil, errNoDocuments
}

func (f *fakeEquipmentRepo) GetByName(ctx context.Context, name string) (*models.Equipment, error) {
	for _, item := range f.items {
		if item.EquipmentName == name {
			found := item
			return &found, nil
		}
	}
	return nil, errNoDocuments
}

func (f *fakeEquipmentRepo) GetAll(ctx context.Context) ([]models.Equipment, error) {
	var out []models.Equipment
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeEquipmentRepo) Update(ctx context.Context, id primitive.ObjectID, equipment *models.Equipment) error {
	if _, ok := f.items[id]; !ok {
		return errNoDocuments
	}
	f.items[id] = *equipment
	return nil
}

func (f *fakeEquipmentRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.items[id]; !ok {
		return errNoDocuments
	}
	delete(f.items, id)
	return nil
}

// fakeAuditRepo stores audits in a map.
type fakeAuditRepo struct {
	items map[primitive.ObjectID]models.SubContractorAudit
}

func newFakeAuditRepo() *fakeAuditRepo {
	return &fakeAuditRepo{items: map[primitive.ObjectID]models.SubContractorAudit{}}
}

func (f *fakeAuditRepo) Create(ctx context.Context, audit *models.SubContractorAudit) error {
	audit.ID = primitive.NewObjectID()
	f.items[audit.ID] = *audit
	return nil
}

func (f *fakeAuditRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.SubContractorAudit, error) {
	if item, ok := f.items[id]; ok {
		return &item, nil
	}
	return nil, errNoDocuments
}

func (f *fakeAuditRepo) GetAll(ctx context.Context) ([]models.SubContractorAudit, error) {
	var out []models.SubContractorAudit
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeAuditRepo) GetByStatus(ctx context.Context, status workflow.Status) ([]models.SubContractorAudit, error) {
	var out []models.SubContractorAudit
	for _, item := range f.items {
		if item.Status == status {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeAuditRepo) Update(ctx context.Context, id primitive.ObjectID, audit *models.SubContractorAudit) error {
	if _, ok := f.items[id]; !ok {
		return errNoDocuments
	}
	f.items[id] = *audit
	return nil
}

func (f *fakeAuditRepo) StatusStats(ctx context.Context) ([]bson.M, error) {
	counts := map[workflow.Status]int{}
	for _, item := range f.items {
		counts[item.Status]++
	}
	var out []bson.M
	for status, n := range counts {
		out = append(out, bson.M{"_id": status, "count": n})
	}
	return out, nil
}

// fakeQuestionnaireRepo stores questionnaires in a map.
type fakeQuestionnaireRepo struct {
	items map[primitive.ObjectID]models.SupplierDueDiligence
}

func newFakeQuestionnaireRepo() *fakeQuestionnaireRepo {
	return &fakeQuestionnaireRepo{items: map[primitive.ObjectID]models.SupplierDueDiligence{}}
}

func (f *fakeQuestionnaireRepo) Create(ctx context.Context, record *models.SupplierDueDiligence) error {
	record.ID = primitive.NewObjectID()
	f.items[record.ID] = *record
	return nil
}

func (f *fakeQuestionnaireRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.SupplierDueDiligence, error) {
	if item, ok := f.items[id]; ok {
		return &item, nil
	}
	return nil, errNoDocuments
}

func (f *fakeQuestionnaireRepo) GetAll(ctx context.Context) ([]models.SupplierDueDiligence, error) {
	var out []models.SupplierDueDiligence
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeQuestionnaireRepo) GetByStatus(ctx context.Context, status workflow.Status) ([]models.SupplierDueDiligence, error) {
	var out []models.SupplierDueDiligence
	for _, item := range f.items {
		if item.Status == status {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeQuestionnaireRepo) Update(ctx context.Context, id primitive.ObjectID, record *models.SupplierDueDiligence) error {
	if _, ok := f.items[id]; !ok {
		return errNoDocuments
	}
	f.items[id] = *record
	return nil
}

// fakeTrainingRepo stores plans and records in maps.
type fakeTrainingRepo struct {
	plans   map[primitive.ObjectID]models.TrainingPlan
	records map[primitive.ObjectID]models.TrainingRecord
}

func newFakeTrainingRepo() *fakeTrainingRepo {
	return &fakeTrainingRepo{
		plans:   map[primitive.ObjectID]models.TrainingPlan{},
		records: map[primitive.ObjectID]models.TrainingRecord{},
	}
}

func (f *fakeTrainingRepo) CreatePlan(ctx context.Context, plan *models.TrainingPlan) error {
	plan.ID = primitive.NewObjectID()
	f.plans[plan.ID] = *plan
	return nil
}

func (f *fakeTrainingRepo) GetPlan(ctx context.Context, id primitive.ObjectID) (*models.TrainingPlan, error) {
	if plan, ok := f.plans[id]; ok {
		return &plan, nil
	}
	return nil, errNoDocuments
}

func (f *fakeTrainingRepo) GetAllPlans(ctx context.Context) ([]models.TrainingPlan, error) {
	var out []models.TrainingPlan
	for _, plan := range f.plans {
		out = append(out, plan)
	}
	return out, nil
}

func (f *fakeTrainingRepo) UpdatePlan(ctx context.Context, id primitive.ObjectID, plan *models.TrainingPlan) error {
	if _, ok := f.plans[id]; !ok {
		return errNoDocuments
	}
	f.plans[id] = *plan
	return nil
}

func (f *fakeTrainingRepo) CreateRecord(ctx context.Context, record *models.TrainingRecord) error {
	record.ID = primitive.NewObjectID()
	f.records[record.ID] = *record
	return nil
}

func (f *fakeTrainingRepo) GetRecord(ctx context.Context, id primitive.ObjectID) (*models.TrainingRecord, error) {
	if record, ok := f.records[id]; ok {
		return &record, nil
	}
	return nil, errNoDocuments
}

func (f *fakeTrainingRepo) GetAllRecords(ctx context.Context) ([]models.TrainingRecord, error) {
	var out []models.TrainingRecord
	for _, record := range f.records {
		out = append(out, record)
	}
	return out, nil
}

func (f *fakeTrainingRepo) FindRecordByPlanDate(ctx context.Context, planID primitive.ObjectID, plannedDate time.Time) (*models.TrainingRecord, error) {
	for _, record := range f.records {
		if record.TrainingPlanID == planID && utils.SameDay(record.PlannedDate, plannedDate) {
			found := record
			return &found, nil
		}
	}
	return nil, errNoDocuments
}

func (f *fakeTrainingRepo) UpdateRecord(ctx context.Context, id primitive.ObjectID, record *models.TrainingRecord) error {
	if _, ok := f.records[id]; !ok {
		return errNoDocuments
	}
	f.records[id] = *record
	return nil
}

// fakeDefectRepo stores defects in a map.
type fakeDefectRepo struct {
	items map[primitive.ObjectID]models.EquipmentDefect
}

func newFakeDefectRepo() *fakeDefectRepo {
	return &fakeDefectRepo{items: map[primitive.ObjectID]models.EquipmentDefect{}}
}

func (f *fakeDefectRepo) Create(ctx context.Context, defect *models.EquipmentDefect) error {
	defect.ID = primitive.NewObjectID()
	f.items[defect.ID] = *defect
	return nil
}

func (f *fakeDefectRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.EquipmentDefect, error) {
	if item, ok := f.items[id]; ok {
		return &item, nil
	}
	return nil, errNoDocuments
}

func (f *fakeDefectRepo) GetAll(ctx context.Context) ([]models.EquipmentDefect, error) {
	var out []models.EquipmentDefect
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeDefectRepo) Update(ctx context.Context, id primitive.ObjectID, defect *models.EquipmentDefect) error {
	if _, ok := f.items[id]; !ok {
		return errNoDocuments
	}
	f.items[id] = *defect
	return nil
}

func (f *fakeDefectRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.items[id]; !ok {
		return errNoDocuments
	}
	delete(f.items, id)
	return nil
}

// fakeUserRepo stores accounts keyed by username.
type fakeUserRepo struct {
	users map[string]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]models.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	f.users[user.Username] = *user
	return nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if user, ok := f.users[username]; ok {
		return &user, nil
	}
	return nil, errNoDocuments
}

// fakeDrillRepo stores drill plans and reports in maps.
type fakeDrillRepo struct {
	plans   map[primitive.ObjectID]models.DrillPlan
	reports map[primitive.ObjectID]models.DrillReport
}

func newFakeDrillRepo() *fakeDrillRepo {
	return &fakeDrillRepo{
		plans:   map[primitive.ObjectID]models.DrillPlan{},
		reports: map[primitive.ObjectID]models.DrillReport{},
	}
}

func (f *fakeDrillRepo) CreatePlan(ctx context.Context, plan *models.DrillPlan) error {
	plan.ID = primitive.NewObjectID()
	f.plans[plan.ID] = *plan
	return nil
}

func (f *fakeDrillRepo) GetPlan(ctx context.Context, id primitive.ObjectID) (*models.DrillPlan, error) {
	if plan, ok := f.plans[id]; ok {
		return &plan, nil
	}
	return nil, errNoDocuments
}

func (f *fakeDrillRepo) GetAllPlans(ctx context.Context) ([]models.DrillPlan, error) {
	var out []models.DrillPlan
	for _, plan := range f.plans {
		out = append(out, plan)
	}
	return out, nil
}

func (f *fakeDrillRepo) UpdatePlan(ctx context.Context, id primitive.ObjectID, plan *models.DrillPlan) error {
	if _, ok := f.plans[id]; !ok {
		return errNoDocuments
	}
	f.plans[id] = *plan
	return nil
}

func (f *fakeDrillRepo) CreateReport(ctx context.Context, report *models.DrillReport) error {
	report.ID = primitive.NewObjectID()
	f.reports[report.ID] = *report
	return nil
}

func (f *fakeDrillRepo) GetReport(ctx context.Context, id primitive.ObjectID) (*models.DrillReport, error) {
	if report, ok := f.reports[id]; ok {
		return &report, nil
	}
	return nil, errNoDocuments
}

func (f *fakeDrillRepo) GetAllReports(ctx context.Context) ([]models.DrillReport, error) {
	var out []models.DrillReport
	for _, report := range f.reports {
		out = append(out, report)
	}
	return out, nil
}

func (f *fakeDrillRepo) FindReportByPlanDate(ctx context.Context, planID primitive.ObjectID, plannedDate time.Time) (*models.DrillReport, error) {
	for _, report := range f.reports {
		if report.DrillPlanID == planID && utils.SameDay(report.PlannedDate, plannedDate) {
			found := report
			return &found, nil
		}
	}
	return nil, errNoDocuments
}

func (f *fakeDrillRepo) UpdateReport(ctx context.Context, id primitive.ObjectID, report *models.DrillReport) error {
	if _, ok := f.reports[id]; !ok {
		return errNoDocuments
	}
	f.reports[id] = *report
	return nil
}
