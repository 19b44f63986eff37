package handler

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/pesio-ai/be-ops-workflow/internal/repository"
	"github.com/pesio-ai/be-ops-workflow/internal/rpc/opsv1"
	"github.com/pesio-ai/be-ops-workflow/internal/service"
	"github.com/pesio-ai/be-ops-workflow/pkg/auth"
	"github.com/pesio-ai/be-ops-workflow/pkg/logger"
)

// GRPCHandler implements the OperationsService gRPC interface
type GRPCHandler struct {
	opsv1.UnimplementedOperationsServiceServer
	approval *service.ApprovalService
	pipeline *service.PipelineService
	changes  service.ChangeSource
	log      *logger.Logger
}

// NewGRPCHandler creates a new gRPC handler
func NewGRPCHandler(svc Services, log *logger.Logger) *GRPCHandler {
	return &GRPCHandler{
		approval: svc.Approval,
		pipeline: svc.Pipeline,
		changes:  svc.Changes,
		log:      log.Named("grpc"),
	}
}

// userID extracts the authenticated user ID from context, or returns empty string.
func userID(ctx context.Context) string {
	if uc, err := auth.GetUserContext(ctx); err == nil {
		return uc.UserID
	}
	return ""
}

// SubmitRecord submits an expense or investment for approval
func (h *GRPCHandler) SubmitRecord(ctx context.Context, req *opsv1.SubmitRecordRequest) (*opsv1.Record, error) {
	amount, err := service.ParseDecimal(req.GetAmount())
	if err != nil {
		return nil, mapErrorToGRPC(err)
	}

	rec, err := h.approval.Submit(ctx, &service.SubmitRecordRequest{
		Kind:            req.GetKind(),
		Amount:          amount,
		TransactionDate: req.GetTransactionDate(),
		Category:        req.GetCategory(),
		VendorID:        optional(req.GetVendorId()),
		ProofURL:        optional(req.GetProofUrl()),
		Notes:           optional(req.GetNotes()),
		SubmittedBy:     userID(ctx),
	})
	if err != nil {
		h.log.Debug().Err(err).Msg("gRPC SubmitRecord failed")
		return nil, mapErrorToGRPC(err)
	}
	return recordToProto(rec), nil
}

// DecideRecord approves or rejects a pending record
func (h *GRPCHandler) DecideRecord(ctx context.Context, req *opsv1.DecideRecordRequest) (*opsv1.Record, error) {
	rec, err := h.approval.Decide(ctx, &service.DecideRequest{
		RecordID:        req.GetId(),
		Decision:        req.GetDecision(),
		ActingUserID:    userID(ctx),
		Comment:         optional(req.GetComment()),
		RejectionReason: optional(req.GetRejectionReason()),
	})
	if err != nil {
		h.log.Debug().Err(err).Str("record_id", req.GetId()).Msg("gRPC DecideRecord failed")
		return nil, mapErrorToGRPC(err)
	}
	return recordToProto(rec), nil
}

// GetRecord retrieves a record by ID
func (h *GRPCHandler) GetRecord(ctx context.Context, req *opsv1.GetRequest) (*opsv1.Record, error) {
	rec, err := h.approval.Get(ctx, req.GetId())
	if err != nil {
		return nil, mapErrorToGRPC(err)
	}
	return recordToProto(rec), nil
}

// CreateProduct starts a product at the first stage
func (h *GRPCHandler) CreateProduct(ctx context.Context, req *opsv1.CreateProductRequest) (*opsv1.Product, error) {
	p, err := h.pipeline.Create(ctx, &service.CreateProductRequest{
		Name:       req.GetName(),
		Category:   req.GetCategory(),
		Priority:   req.GetPriority(),
		CreatedBy:  userID(ctx),
		AssignedTo: req.GetAssignedTo(),
	})
	if err != nil {
		return nil, mapErrorToGRPC(err)
	}
	return productToProto(p), nil
}

// AdvanceProduct moves a product one stage forward
func (h *GRPCHandler) AdvanceProduct(ctx context.Context, req *opsv1.AdvanceProductRequest) (*opsv1.Product, error) {
	p, err := advanceWithConfirmation(ctx, h.pipeline, req.GetId(), userID(ctx), req.GetConfirmLaunch())
	if err != nil {
		h.log.Debug().Err(err).Str("product_id", req.GetId()).Msg("gRPC AdvanceProduct failed")
		return nil, mapErrorToGRPC(err)
	}
	return productToProto(p), nil
}

// GetProduct retrieves a product by ID
func (h *GRPCHandler) GetProduct(ctx context.Context, req *opsv1.GetRequest) (*opsv1.Product, error) {
	p, err := h.pipeline.Get(ctx, req.GetId())
	if err != nil {
		return nil, mapErrorToGRPC(err)
	}
	return productToProto(p), nil
}

// ListStageHistory returns a product's stage intervals
func (h *GRPCHandler) ListStageHistory(ctx context.Context, req *opsv1.GetRequest) (*opsv1.StageHistoryResponse, error) {
	entries, err := h.pipeline.History(ctx, req.GetId())
	if err != nil {
		return nil, mapErrorToGRPC(err)
	}

	resp := &opsv1.StageHistoryResponse{
		Entries: make([]*opsv1.StageHistoryEntry, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, stageHistoryToProto(e))
	}
	return resp, nil
}

// WatchChanges streams change events until the client goes away
func (h *GRPCHandler) WatchChanges(req *opsv1.WatchChangesRequest, stream grpc.ServerStreamingServer[opsv1.ChangeEvent]) error {
	ctx := stream.Context()
	events, err := h.changes.Subscribe(ctx, repository.ChangeFilter{Table: req.GetTable(), RowID: req.GetId()})
	if err != nil {
		return mapErrorToGRPC(err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := stream.Send(changeEventToProto(ev)); err != nil {
				return err
			}
		}
	}
}

// Helper functions for proto conversion

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func timeToProto(t *time.Time) *timestamppb.Timestamp {
	if t == nil {
		return nil
	}
	return timestamppb.New(*t)
}

func recordToProto(rec *repository.FinancialRecord) *opsv1.Record {
	if rec == nil {
		return nil
	}

	return &opsv1.Record{
		Id:              rec.ID,
		Kind:            rec.Kind,
		AmountMinor:     rec.AmountMinor,
		TransactionDate: rec.TransactionDate,
		Category:        rec.Category,
		VendorId:        deref(rec.VendorID),
		ProofUrl:        deref(rec.ProofURL),
		Notes:           deref(rec.Notes),
		Status:          rec.Status,
		SubmittedBy:     rec.SubmittedBy,
		ApprovedBy:      deref(rec.ApprovedBy),
		ApprovalComment: deref(rec.ApprovalComment),
		RejectionReason: deref(rec.RejectionReason),
		CreatedAt:       timestamppb.New(rec.CreatedAt),
		DecidedAt:       timeToProto(rec.DecidedAt),
		UpdatedAt:       timestamppb.New(rec.UpdatedAt),
	}
}

func productToProto(p *repository.Product) *opsv1.Product {
	if p == nil {
		return nil
	}

	return &opsv1.Product{
		Id:             p.ID,
		Name:           p.Name,
		Category:       p.Category,
		Priority:       p.Priority,
		Stage:          p.Stage,
		Progress:       int32(p.Progress),
		StageEnteredAt: timestamppb.New(p.StageEnteredAt),
		CreatedBy:      p.CreatedBy,
		AssignedTo:     p.AssignedTo,
		CreatedAt:      timestamppb.New(p.CreatedAt),
		UpdatedAt:      timestamppb.New(p.UpdatedAt),
	}
}

func stageHistoryToProto(e *repository.StageHistoryEntry) *opsv1.StageHistoryEntry {
	return &opsv1.StageHistoryEntry{
		Id:        e.ID,
		ProductId: e.ProductID,
		Stage:     e.Stage,
		EnteredAt: timestamppb.New(e.EnteredAt),
		ExitedAt:  timeToProto(e.ExitedAt),
		MovedBy:   e.MovedBy,
	}
}

func changeEventToProto(ev repository.ChangeEvent) *opsv1.ChangeEvent {
	return &opsv1.ChangeEvent{
		Table:     ev.Table,
		Operation: ev.Operation,
		Id:        ev.RowID,
		At:        timestamppb.New(ev.At),
	}
}
