package routes

import (
	"net/http"

	"oceansms/handlers"
	"oceansms/middlewares"
)

// Handlers bundles every route handler the server mounts.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Operations    *handlers.StsOperationHandler
	Equipment     *handlers.EquipmentHandler
	Audits        *handlers.AuditHandler
	Questionnaire *handlers.QuestionnaireHandler
	Training      *handlers.TrainingHandler
	Drills        *handlers.DrillHandler
	Defects       *handlers.DefectHandler
	Files         *handlers.FileHandler
}

// Setup wires the full API surface onto a ServeMux. Auth endpoints are
// public; everything else sits behind the JWT middleware.
func Setup(h Handlers, jwtSecret string) *http.ServeMux {
	mux := http.NewServeMux()

	jwt := middlewares.JWTMiddleware(jwtSecret)
	protect := func(fn http.HandlerFunc) http.Handler {
		return jwt(fn)
	}

	// Auth (public)
	mux.HandleFunc("POST /api/auth/signup", h.Auth.Signup)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)

	// STS operations
	mux.Handle("POST /api/operations/sts", protect(h.Operations.Create))
	mux.Handle("GET /api/operations/sts", protect(h.Operations.ListLatest))
	mux.Handle("GET /api/operations/sts/{id}", protect(h.Operations.GetByID))
	mux.Handle("PUT /api/operations/sts/{id}", protect(h.Operations.Update))
	mux.Handle("GET /api/operations/sts/{id}/history", protect(h.Operations.History))

	// PMS equipment
	mux.Handle("POST /api/pms/equipment", protect(h.Equipment.Create))
	mux.Handle("GET /api/pms/equipment", protect(h.Equipment.GetAll))
	mux.Handle("GET /api/pms/equipment/{id}", protect(h.Equipment.GetByID))
	mux.Handle("PUT /api/pms/equipment/{id}/assign", protect(h.Equipment.Assign))
	mux.Handle("PUT /api/pms/equipment/{id}/release", protect(h.Equipment.Release))
	mux.Handle("PUT /api/pms/equipment/{id}/retire", protect(h.Equipment.Retire))
	mux.Handle("DELETE /api/pms/equipment/{id}", protect(h.Equipment.Delete))

	// QHSE due diligence: sub-contractor audits
	mux.Handle("POST /api/qhse/due-diligence/audit-sub-contractor", protect(h.Audits.Create))
	mux.Handle("GET /api/qhse/due-diligence/audit-sub-contractor", protect(h.Audits.GetAll))
	mux.Handle("GET /api/qhse/due-diligence/audit-sub-contractor/{id}", protect(h.Audits.GetByID))
	mux.Handle("PUT /api/qhse/due-diligence/audit-sub-contractor/{id}/update", protect(h.Audits.Update))
	mux.Handle("PUT /api/qhse/due-diligence/audit-sub-contractor/{id}/submit", protect(h.Audits.Submit))
	mux.Handle("PUT /api/qhse/due-diligence/audit-sub-contractor/{id}/approve", protect(h.Audits.Approve))

	// QHSE due diligence: supplier questionnaires
	mux.Handle("POST /api/qhse/due-diligence/questionnaire", protect(h.Questionnaire.Create))
	mux.Handle("GET /api/qhse/due-diligence/questionnaire", protect(h.Questionnaire.GetAll))
	mux.Handle("GET /api/qhse/due-diligence/questionnaire/{id}", protect(h.Questionnaire.GetByID))
	mux.Handle("PUT /api/qhse/due-diligence/questionnaire/{id}/update", protect(h.Questionnaire.Update))
	mux.Handle("PUT /api/qhse/due-diligence/questionnaire/{id}/submit", protect(h.Questionnaire.Submit))
	mux.Handle("PUT /api/qhse/due-diligence/questionnaire/{id}/approve", protect(h.Questionnaire.Approve))

	// QHSE training
	mux.Handle("POST /api/qhse/training/plan", protect(h.Training.CreatePlan))
	mux.Handle("GET /api/qhse/training/plan", protect(h.Training.GetAllPlans))
	mux.Handle("GET /api/qhse/training/plan/{id}", protect(h.Training.GetPlan))
	mux.Handle("PUT /api/qhse/training/plan/{id}/approve-item", protect(h.Training.ApprovePlanItem))
	mux.Handle("POST /api/qhse/training/record", protect(h.Training.CreateRecord))
	mux.Handle("GET /api/qhse/training/record", protect(h.Training.GetAllRecords))
	mux.Handle("GET /api/qhse/training/record/{id}", protect(h.Training.GetRecord))
	mux.Handle("PUT /api/qhse/training/record/{id}/submit", protect(h.Training.SubmitRecord))
	mux.Handle("PUT /api/qhse/training/record/{id}/approve", protect(h.Training.ApproveRecord))

	// QHSE drills
	mux.Handle("POST /api/qhse/drill/plan", protect(h.Drills.CreatePlan))
	mux.Handle("GET /api/qhse/drill/plan", protect(h.Drills.GetAllPlans))
	mux.Handle("GET /api/qhse/drill/plan/{id}", protect(h.Drills.GetPlan))
	mux.Handle("PUT /api/qhse/drill/plan/{id}/approve-item", protect(h.Drills.ApprovePlanItem))
	mux.Handle("POST /api/qhse/drill/report", protect(h.Drills.CreateReport))
	mux.Handle("GET /api/qhse/drill/report", protect(h.Drills.GetAllReports))
	mux.Handle("GET /api/qhse/drill/report/{id}", protect(h.Drills.GetReport))
	mux.Handle("PUT /api/qhse/drill/report/{id}/submit", protect(h.Drills.SubmitReport))
	mux.Handle("PUT /api/qhse/drill/report/{id}/approve", protect(h.Drills.ApproveReport))

	// QHSE defect list
	mux.Handle("POST /api/qhse/defects", protect(h.Defects.Create))
	mux.Handle("GET /api/qhse/defects", protect(h.Defects.GetAll))
	mux.Handle("GET /api/qhse/defects/{id}", protect(h.Defects.GetByID))
	mux.Handle("PUT /api/qhse/defects/{id}/close", protect(h.Defects.Close))
	mux.Handle("DELETE /api/qhse/defects/{id}", protect(h.Defects.Delete))

	// QHSE dashboard
	mux.Handle("GET /api/qhse/stats", protect(h.Audits.StatusStats))

	// Stored files
	mux.Handle("GET /api/files/{fileId}", protect(h.Files.Download))

	return mux
}
