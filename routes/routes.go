package routes

import (
	"github.com/gorilla/mux"

	"github.com/dhazzero/ISO-Integrated-System-sub000/handlers"
)

// HTTP method constants for better maintainability
var (
	MethodsGetOnly    = []string{"GET", "OPTIONS"}
	MethodsPostOnly   = []string{"POST", "OPTIONS"}
	MethodsPutOnly    = []string{"PUT", "OPTIONS"}
	MethodsDeleteOnly = []string{"DELETE", "OPTIONS"}
)

func RegisterRoutes(r *mux.Router) {
	// ====================
	// HEALTH CHECK
	// ====================
	r.HandleFunc("/health", handlers.HealthCheck).Methods(MethodsGetOnly...)

	api := r.PathPrefix("/api").Subrouter()

	// ====================
	// RISKS
	// ====================
	// /risks/matrix must be registered before /risks/{id}
	api.HandleFunc("/risks/matrix", handlers.GetRiskMatrix).Methods(MethodsGetOnly...)
	api.HandleFunc("/risks", handlers.ListRisks).Methods(MethodsGetOnly...)
	api.HandleFunc("/risks", handlers.CreateRisk).Methods(MethodsPostOnly...)
	api.HandleFunc("/risks/{id}", handlers.GetRisk).Methods(MethodsGetOnly...)
	api.HandleFunc("/risks/{id}", handlers.UpdateRisk).Methods(MethodsPutOnly...)
	api.HandleFunc("/risks/{id}", handlers.DeleteRisk).Methods(MethodsDeleteOnly...)

	// ====================
	// AUDITS
	// ====================
	api.HandleFunc("/audits", handlers.ListAudits).Methods(MethodsGetOnly...)
	api.HandleFunc("/audits", handlers.CreateAudit).Methods(MethodsPostOnly...)
	api.HandleFunc("/audits/{id}", handlers.GetAudit).Methods(MethodsGetOnly...)
	api.HandleFunc("/audits/{id}", handlers.UpdateAudit).Methods(MethodsPutOnly...)
	api.HandleFunc("/audits/{id}", handlers.DeleteAudit).Methods(MethodsDeleteOnly...)
	api.HandleFunc("/audits/{id}/findings", handlers.ListAuditFindings).Methods(MethodsGetOnly...)

	// ====================
	// FINDINGS
	// ====================
	api.HandleFunc("/findings", handlers.ListFindings).Methods(MethodsGetOnly...)
	api.HandleFunc("/findings", handlers.CreateFinding).Methods(MethodsPostOnly...)
	api.HandleFunc("/findings/{id}", handlers.GetFinding).Methods(MethodsGetOnly...)
	api.HandleFunc("/findings/{id}", handlers.UpdateFinding).Methods(MethodsPutOnly...)
	api.HandleFunc("/findings/{id}", handlers.DeleteFinding).Methods(MethodsDeleteOnly...)

	// ====================
	// REFERENCE DATA
	// ====================
	api.HandleFunc("/standards", handlers.ListStandards).Methods(MethodsGetOnly...)
	api.HandleFunc("/standards", handlers.CreateStandard).Methods(MethodsPostOnly...)
	api.HandleFunc("/standards/{id}", handlers.DeleteStandard).Methods(MethodsDeleteOnly...)

	api.HandleFunc("/departments", handlers.ListDepartments).Methods(MethodsGetOnly...)
	api.HandleFunc("/departments", handlers.CreateDepartment).Methods(MethodsPostOnly...)
	api.HandleFunc("/departments/{id}", handlers.DeleteDepartment).Methods(MethodsDeleteOnly...)

	api.HandleFunc("/approvers", handlers.ListApprovers).Methods(MethodsGetOnly...)
	api.HandleFunc("/approvers", handlers.CreateApprover).Methods(MethodsPostOnly...)
	api.HandleFunc("/approvers/{id}", handlers.DeleteApprover).Methods(MethodsDeleteOnly...)

	// ====================
	// ACTIVITY LOG
	// ====================
	api.HandleFunc("/activities", handlers.ListActivities).Methods(MethodsGetOnly...)
	api.HandleFunc("/activities/ws", handlers.ActivityFeed)

	// ====================
	// DASHBOARD
	// ====================
	api.HandleFunc("/dashboard/summary", handlers.GetDashboardSummary).Methods(MethodsGetOnly...)
}
