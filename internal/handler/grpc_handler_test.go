package handler

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"

	"github.com/pesio-ai/be-ops-workflow/internal/client"
	"github.com/pesio-ai/be-ops-workflow/internal/repository"
	"github.com/pesio-ai/be-ops-workflow/internal/rpc/opsv1"
	"github.com/pesio-ai/be-ops-workflow/internal/service"
	"github.com/pesio-ai/be-ops-workflow/pkg/auth"
	"github.com/pesio-ai/be-ops-workflow/pkg/errors"
	"github.com/pesio-ai/be-ops-workflow/pkg/logger"
)

func newGRPCClient(t *testing.T, ts *testServer) *client.OpsGRPCClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(auth.UnaryServerInterceptor(ts.services.Identity)),
		grpc.ChainStreamInterceptor(auth.StreamServerInterceptor(ts.services.Identity)),
	)
	opsv1.RegisterOperationsServiceServer(srv, NewGRPCHandler(ts.services, logger.Nop()))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	c, err := client.NewOpsGRPCClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestGRPCRecordRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	c := newGRPCClient(t, ts)

	partnerCtx := client.WithBearerToken(context.Background(), ts.partnerToken)
	adminCtx := client.WithBearerToken(context.Background(), ts.adminToken)

	rec, err := c.SubmitRecord(partnerCtx, &opsv1.SubmitRecordRequest{
		Kind:            repository.RecordKindInvestment,
		Amount:          "12.50",
		TransactionDate: "2024-05-01",
		Category:        "Equipment",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1250), rec.AmountMinor)
	assert.Equal(t, ts.partnerID, rec.SubmittedBy)

	_, err = c.DecideRecord(partnerCtx, &opsv1.DecideRecordRequest{Id: rec.ID, Decision: service.DecisionApprove})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	reason := "duplicate"
	decided, err := c.DecideRecord(adminCtx, &opsv1.DecideRecordRequest{
		Id:              rec.ID,
		Decision:        service.DecisionReject,
		RejectionReason: reason,
	})
	require.NoError(t, err)
	assert.Equal(t, repository.RecordStatusRejected, decided.Status)

	_, err = c.DecideRecord(adminCtx, &opsv1.DecideRecordRequest{Id: rec.ID, Decision: service.DecisionApprove})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	got, err := c.GetRecord(partnerCtx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RejectionReason)
	assert.Equal(t, reason, *got.RejectionReason)
}

func TestGRPCRequiresBearerToken(t *testing.T) {
	ts := newTestServer(t)
	c := newGRPCClient(t, ts)

	_, err := c.GetRecord(context.Background(), "missing")
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestGRPCAdvanceAndWatch(t *testing.T) {
	ts := newTestServer(t)
	c := newGRPCClient(t, ts)

	ctx, cancel := context.WithTimeout(client.WithBearerToken(context.Background(), ts.partnerToken), 5*time.Second)
	defer cancel()

	p, err := c.CreateProduct(ctx, &opsv1.CreateProductRequest{Name: "Clay Mask", Category: "Skincare"})
	require.NoError(t, err)
	assert.Equal(t, service.StageIdea, p.Stage)
	assert.Equal(t, repository.PriorityMedium, p.Priority)

	events, errs, err := c.WatchChanges(ctx, repository.TableProducts, p.ID)
	require.NoError(t, err)

	// the stream is registered asynchronously; advance until an event arrives
	var moved *repository.Product
	var ev repository.ChangeEvent
	for ev.RowID == "" {
		moved, err = c.AdvanceProduct(ctx, p.ID, false)
		require.NoError(t, err)
		select {
		case ev = <-events:
		case err := <-errs:
			t.Fatalf("watch failed: %v", err)
		case <-time.After(200 * time.Millisecond):
		}
	}
	assert.Equal(t, repository.OpUpdate, ev.Operation)
	assert.Equal(t, p.ID, ev.RowID)

	history, err := c.StageHistory(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, history, service.StageIndex(moved.Stage)+1)
}

func TestGRPCLaunchNeedsConfirmation(t *testing.T) {
	ts := newTestServer(t)
	c := newGRPCClient(t, ts)

	ctx := client.WithBearerToken(context.Background(), ts.adminToken)
	p, err := c.CreateProduct(ctx, &opsv1.CreateProductRequest{Name: "Lip Oil"})
	require.NoError(t, err)

	ready := service.StageReady
	_, err = ts.services.Pipeline.Override(context.Background(), &service.OverrideProductRequest{
		ProductID:    p.ID,
		ActingUserID: ts.adminID,
		Stage:        &ready,
	})
	require.NoError(t, err)

	_, err = c.AdvanceProduct(ctx, p.ID, false)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	launched, err := c.AdvanceProduct(ctx, p.ID, true)
	require.NoError(t, err)
	assert.Equal(t, service.StageLaunched, launched.Stage)

	got, err := c.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, service.StageLaunched, got.Stage)
}

func TestMapErrorToGRPC(t *testing.T) {
	tests := []struct {
		err  error
		code codes.Code
	}{
		{errors.InvalidInput("amount", "bad"), codes.InvalidArgument},
		{errors.Unauthenticated("no"), codes.Unauthenticated},
		{errors.Forbidden("no"), codes.PermissionDenied},
		{errors.NotFound("record", "1"), codes.NotFound},
		{service.ErrAlreadyDecided, codes.FailedPrecondition},
		{errors.New(errors.ErrCodeConflict, "dup"), codes.AlreadyExists},
		{errors.New(errors.ErrCodeUnavailable, "down"), codes.Unavailable},
		{errors.New(errors.ErrCodeInternal, "secret detail"), codes.Internal},
		{status.Error(codes.Canceled, "gone"), codes.Canceled},
	}
	for _, tt := range tests {
		got := mapErrorToGRPC(tt.err)
		assert.Equal(t, tt.code, status.Code(got), tt.err.Error())
	}

	st, _ := status.FromError(mapErrorToGRPC(errors.New(errors.ErrCodeInternal, "secret detail")))
	assert.Equal(t, "internal error", st.Message())
	assert.NoError(t, mapErrorToGRPC(nil))
}

func TestOperationsServiceDescriptor(t *testing.T) {
	desc := opsv1.OperationsService_ServiceDesc

	d, err := protoregistry.GlobalFiles.FindDescriptorByName(protoreflect.FullName(desc.ServiceName))
	require.NoError(t, err)
	sd, ok := d.(protoreflect.ServiceDescriptor)
	require.True(t, ok)
	assert.Equal(t, desc.Metadata, sd.ParentFile().Path())

	for _, m := range desc.Methods {
		assert.NotNil(t, sd.Methods().ByName(protoreflect.Name(m.MethodName)), m.MethodName)
	}
	watch := sd.Methods().ByName("WatchChanges")
	require.NotNil(t, watch)
	assert.True(t, watch.IsStreamingServer())
}

func TestRecordProtoRoundTrip(t *testing.T) {
	decidedAt := time.Date(2024, 5, 2, 14, 30, 0, 0, time.UTC)
	reason := "duplicate"
	rec := &repository.FinancialRecord{
		ID:              "rec-1",
		Kind:            repository.RecordKindExpense,
		AmountMinor:     1250,
		TransactionDate: "2024-05-01",
		Category:        "Equipment",
		Status:          repository.RecordStatusRejected,
		SubmittedBy:     "partner-1",
		RejectionReason: &reason,
		CreatedAt:       decidedAt.Add(-time.Hour),
		DecidedAt:       &decidedAt,
		UpdatedAt:       decidedAt,
	}

	wire, err := proto.Marshal(recordToProto(rec))
	require.NoError(t, err)

	got := &opsv1.Record{}
	require.NoError(t, proto.Unmarshal(wire, got))
	assert.Equal(t, int64(1250), got.GetAmountMinor())
	assert.Equal(t, reason, got.GetRejectionReason())
	assert.Empty(t, got.GetVendorId())
	assert.True(t, decidedAt.Equal(got.GetDecidedAt().AsTime()))
}
