package handler

import (
	"net/http"

	"github.com/pesio-ai/be-ops-workflow/internal/service"
	"github.com/pesio-ai/be-ops-workflow/pkg/logger"
)

// PublicPaths are served without a session.
var PublicPaths = []string{
	"/health",
	"/api/v1/auth/signup",
	"/api/v1/auth/signin",
	"/blobs/",
}

// Services bundles the services the HTTP and gRPC handlers call.
type Services struct {
	Approval *service.ApprovalService
	Pipeline *service.PipelineService
	Identity *service.IdentityService
	Vendors  *service.VendorService
	Uploads  *service.UploadService
	Activity *service.ActivityService
	Changes  service.ChangeSource
}

// HTTPHandler handles HTTP requests
type HTTPHandler struct {
	approval *service.ApprovalService
	pipeline *service.PipelineService
	identity *service.IdentityService
	vendors  *service.VendorService
	uploads  *service.UploadService
	activity *service.ActivityService
	changes  service.ChangeSource

	maxUploadBytes int64
	log            *logger.Logger
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(svc Services, maxUploadBytes int64, log *logger.Logger) *HTTPHandler {
	return &HTTPHandler{
		approval:       svc.Approval,
		pipeline:       svc.Pipeline,
		identity:       svc.Identity,
		vendors:        svc.Vendors,
		uploads:        svc.Uploads,
		activity:       svc.Activity,
		changes:        svc.Changes,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

// Register mounts every route on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.Health)

	mux.HandleFunc("/api/v1/auth/signup", h.SignUp)
	mux.HandleFunc("/api/v1/auth/signin", h.SignIn)
	mux.HandleFunc("/api/v1/auth/signout", h.SignOut)
	mux.HandleFunc("/api/v1/auth/session", h.Session)

	mux.HandleFunc("/api/v1/users", h.ListUsers)
	mux.HandleFunc("/api/v1/users/review", h.ReviewUser)
	mux.HandleFunc("/api/v1/users/role", h.SetUserRole)

	mux.HandleFunc("/api/v1/records", h.Records)
	mux.HandleFunc("/api/v1/records/get", h.GetRecord)
	mux.HandleFunc("/api/v1/records/decide", h.DecideRecord)
	mux.HandleFunc("/api/v1/records/delete", h.DeleteRecord)
	mux.HandleFunc("/api/v1/records/export", h.ExportRecords)

	mux.HandleFunc("/api/v1/products", h.Products)
	mux.HandleFunc("/api/v1/products/get", h.GetProduct)
	mux.HandleFunc("/api/v1/products/advance", h.AdvanceProduct)
	mux.HandleFunc("/api/v1/products/override", h.OverrideProduct)
	mux.HandleFunc("/api/v1/products/history", h.ProductHistory)

	mux.HandleFunc("/api/v1/vendors", h.Vendors)
	mux.HandleFunc("/api/v1/vendors/get", h.GetVendor)
	mux.HandleFunc("/api/v1/vendors/update", h.UpdateVendor)
	mux.HandleFunc("/api/v1/vendors/delete", h.DeleteVendor)

	mux.HandleFunc("/api/v1/uploads", h.Upload)
	mux.HandleFunc("/api/v1/activity", h.Activity)
	mux.HandleFunc("/api/v1/changes", h.Changes)
}

// Health reports liveness.
func (h *HTTPHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
