package client

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/pesio-ai/be-ops-workflow/internal/repository"
	"github.com/pesio-ai/be-ops-workflow/internal/rpc/opsv1"
)

// OpsGRPCClient is a gRPC client for the operations service, used by
// internal tools and other services.
type OpsGRPCClient struct {
	conn   *grpc.ClientConn
	client opsv1.OperationsServiceClient
}

// NewOpsGRPCClient dials addr without TLS.
func NewOpsGRPCClient(addr string, opts ...grpc.DialOption) (*OpsGRPCClient, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(forwardMetadata),
		grpc.WithChainStreamInterceptor(forwardStreamMetadata),
	}, opts...)

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection: %w", err)
	}

	return &OpsGRPCClient{
		conn:   conn,
		client: opsv1.NewOperationsServiceClient(conn),
	}, nil
}

// Close closes the gRPC connection.
func (c *OpsGRPCClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// SubmitRecord submits an expense or investment.
func (c *OpsGRPCClient) SubmitRecord(ctx context.Context, req *opsv1.SubmitRecordRequest) (*repository.FinancialRecord, error) {
	rec, err := c.client.SubmitRecord(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit record: %w", err)
	}
	return recordFromProto(rec), nil
}

// DecideRecord approves or rejects a pending record.
func (c *OpsGRPCClient) DecideRecord(ctx context.Context, req *opsv1.DecideRecordRequest) (*repository.FinancialRecord, error) {
	rec, err := c.client.DecideRecord(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to decide record: %w", err)
	}
	return recordFromProto(rec), nil
}

// GetRecord retrieves a record by ID.
func (c *OpsGRPCClient) GetRecord(ctx context.Context, id string) (*repository.FinancialRecord, error) {
	rec, err := c.client.GetRecord(ctx, &opsv1.GetRequest{Id: id})
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return recordFromProto(rec), nil
}

// CreateProduct starts a product in the pipeline.
func (c *OpsGRPCClient) CreateProduct(ctx context.Context, req *opsv1.CreateProductRequest) (*repository.Product, error) {
	p, err := c.client.CreateProduct(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return productFromProto(p), nil
}

// AdvanceProduct moves a product one stage forward.
func (c *OpsGRPCClient) AdvanceProduct(ctx context.Context, id string, confirmLaunch bool) (*repository.Product, error) {
	p, err := c.client.AdvanceProduct(ctx, &opsv1.AdvanceProductRequest{Id: id, ConfirmLaunch: confirmLaunch})
	if err != nil {
		return nil, fmt.Errorf("failed to advance product: %w", err)
	}
	return productFromProto(p), nil
}

// GetProduct retrieves a product by ID.
func (c *OpsGRPCClient) GetProduct(ctx context.Context, id string) (*repository.Product, error) {
	p, err := c.client.GetProduct(ctx, &opsv1.GetRequest{Id: id})
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return productFromProto(p), nil
}

// StageHistory lists a product's stage intervals.
func (c *OpsGRPCClient) StageHistory(ctx context.Context, productID string) ([]*repository.StageHistoryEntry, error) {
	resp, err := c.client.ListStageHistory(ctx, &opsv1.GetRequest{Id: productID})
	if err != nil {
		return nil, fmt.Errorf("failed to list stage history: %w", err)
	}
	entries := make([]*repository.StageHistoryEntry, 0, len(resp.GetEntries()))
	for _, e := range resp.GetEntries() {
		entries = append(entries, stageHistoryFromProto(e))
	}
	return entries, nil
}

// WatchChanges streams change events until ctx is cancelled or the stream
// ends. The returned channel is closed when the stream stops; the error
// channel receives at most one error.
func (c *OpsGRPCClient) WatchChanges(ctx context.Context, table, id string) (<-chan repository.ChangeEvent, <-chan error, error) {
	stream, err := c.client.WatchChanges(ctx, &opsv1.WatchChangesRequest{Table: table, Id: id})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to watch changes: %w", err)
	}

	events := make(chan repository.ChangeEvent)
	errs := make(chan error, 1)
	go func() {
		defer close(events)
		for {
			ev, err := stream.Recv()
			if err != nil {
				if ctx.Err() == nil {
					errs <- err
				}
				return
			}
			select {
			case events <- changeEventFromProto(ev):
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, errs, nil
}

// Helper functions for proto conversion

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalTime(ts *timestamppb.Timestamp) *time.Time {
	if ts == nil {
		return nil
	}
	t := ts.AsTime()
	return &t
}

func recordFromProto(r *opsv1.Record) *repository.FinancialRecord {
	return &repository.FinancialRecord{
		ID:              r.GetId(),
		Kind:            r.GetKind(),
		AmountMinor:     r.GetAmountMinor(),
		TransactionDate: r.GetTransactionDate(),
		Category:        r.GetCategory(),
		VendorID:        optionalString(r.GetVendorId()),
		ProofURL:        optionalString(r.GetProofUrl()),
		Notes:           optionalString(r.GetNotes()),
		Status:          r.GetStatus(),
		SubmittedBy:     r.GetSubmittedBy(),
		ApprovedBy:      optionalString(r.GetApprovedBy()),
		ApprovalComment: optionalString(r.GetApprovalComment()),
		RejectionReason: optionalString(r.GetRejectionReason()),
		CreatedAt:       r.GetCreatedAt().AsTime(),
		DecidedAt:       optionalTime(r.GetDecidedAt()),
		UpdatedAt:       r.GetUpdatedAt().AsTime(),
	}
}

func productFromProto(p *opsv1.Product) *repository.Product {
	assigned := p.GetAssignedTo()
	if assigned == nil {
		assigned = []string{}
	}
	return &repository.Product{
		ID:             p.GetId(),
		Name:           p.GetName(),
		Category:       p.GetCategory(),
		Priority:       p.GetPriority(),
		Stage:          p.GetStage(),
		Progress:       int(p.GetProgress()),
		StageEnteredAt: p.GetStageEnteredAt().AsTime(),
		CreatedBy:      p.GetCreatedBy(),
		AssignedTo:     assigned,
		CreatedAt:      p.GetCreatedAt().AsTime(),
		UpdatedAt:      p.GetUpdatedAt().AsTime(),
	}
}

func stageHistoryFromProto(e *opsv1.StageHistoryEntry) *repository.StageHistoryEntry {
	return &repository.StageHistoryEntry{
		ID:        e.GetId(),
		ProductID: e.GetProductId(),
		Stage:     e.GetStage(),
		EnteredAt: e.GetEnteredAt().AsTime(),
		ExitedAt:  optionalTime(e.GetExitedAt()),
		MovedBy:   e.GetMovedBy(),
	}
}

func changeEventFromProto(ev *opsv1.ChangeEvent) repository.ChangeEvent {
	return repository.ChangeEvent{
		Table:     ev.GetTable(),
		Operation: ev.GetOperation(),
		RowID:     ev.GetId(),
		At:        ev.GetAt().AsTime(),
	}
}
