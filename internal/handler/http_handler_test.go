package handler

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/pesio-ai/be-ops-workflow/internal/client"
	"github.com/pesio-ai/be-ops-workflow/internal/repository"
	"github.com/pesio-ai/be-ops-workflow/internal/repository/memstore"
	"github.com/pesio-ai/be-ops-workflow/internal/service"
	"github.com/pesio-ai/be-ops-workflow/pkg/auth"
	"github.com/pesio-ai/be-ops-workflow/pkg/logger"
)

const testPassword = "correct horse"

type testServer struct {
	handler  http.Handler
	services Services
	store    *memstore.Store
	blobs    *client.MemoryBlobStore

	adminToken   string
	adminID      string
	partnerToken string
	partnerID    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := logger.Nop()
	store := memstore.New(log)
	blobs := client.NewMemoryBlobStore("http://localhost/blobs")
	tokens := auth.NewTokenIssuer("test-secret", "test", time.Hour)

	identity := service.NewIdentityService(store.Users(), store.Sessions(), store.Activity(), nil, tokens,
		service.IdentityConfig{BcryptCost: bcrypt.MinCost, BootstrapAdminEmail: "ada@example.com"}, log)

	svc := Services{
		Approval: service.NewApprovalService(store.Records(), store.Users(), store.Activity(), nil, log),
		Pipeline: service.NewPipelineService(store.Products(), store.Users(), store.Activity(), nil, log),
		Identity: identity,
		Vendors:  service.NewVendorService(store.Vendors(), store.Users(), store.Activity(), log),
		Uploads:  service.NewUploadService(blobs, 1<<20, log),
		Activity: service.NewActivityService(store.Activity(), log),
		Changes:  store,
	}

	mux := http.NewServeMux()
	NewHTTPHandler(svc, 1<<20, log).Register(mux)
	mux.Handle("/blobs/", BlobHandler(blobs, "/blobs/"))

	ts := &testServer{
		handler:  auth.HTTPMiddleware(identity, PublicPaths...)(mux),
		services: svc,
		store:    store,
		blobs:    blobs,
	}

	ts.adminID = ts.signUp(t, "ada@example.com", "Ada").ID
	ts.adminToken = ts.signIn(t, "ada@example.com")

	partner := ts.signUp(t, "linus@example.com", "Linus")
	ts.partnerID = partner.ID
	rec := ts.do(t, ts.adminToken, http.MethodPost, "/api/v1/users/review",
		map[string]string{"id": partner.ID, "status": repository.AccountApproved})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ts.partnerToken = ts.signIn(t, "linus@example.com")
	return ts
}

func (ts *testServer) do(t *testing.T, token, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) signUp(t *testing.T, email, name string) *repository.UserProfile {
	t.Helper()
	rec := ts.do(t, "", http.MethodPost, "/api/v1/auth/signup",
		map[string]string{"email": email, "password": testPassword, "name": name})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var u repository.UserProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	return &u
}

func (ts *testServer) signIn(t *testing.T, email string) string {
	t.Helper()
	rec := ts.do(t, "", http.MethodPost, "/api/v1/auth/signin",
		map[string]string{"email": email, "password": testPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res service.SignInResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode[map[string]errorBody](t, rec)
	return string(body["error"].Code)
}

func (ts *testServer) submitExpense(t *testing.T, token string) *repository.FinancialRecord {
	t.Helper()
	rec := ts.do(t, token, http.MethodPost, "/api/v1/records", map[string]interface{}{
		"kind":             "expense",
		"amount":           "5000",
		"transaction_date": "2024-05-01",
		"category":         "Raw Materials",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[*repository.FinancialRecord](t, rec)
}

func TestHealthIsPublic(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, "", http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, "", http.MethodGet, "/api/v1/records", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, "not-a-token", http.MethodGet, "/api/v1/records", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSubmitAndApproveRecord(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.submitExpense(t, ts.partnerToken)

	assert.Equal(t, repository.RecordStatusPending, rec.Status)
	assert.Equal(t, int64(500000), rec.AmountMinor)
	assert.Equal(t, ts.partnerID, rec.SubmittedBy)

	resp := ts.do(t, ts.adminToken, http.MethodPost, "/api/v1/records/decide",
		map[string]interface{}{"id": rec.ID, "decision": "approve", "comment": "ok"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	decided := decode[*repository.FinancialRecord](t, resp)
	assert.Equal(t, repository.RecordStatusApproved, decided.Status)
	require.NotNil(t, decided.ApprovedBy)
	require.NotNil(t, decided.DecidedAt)

	// a second decision hits the state check
	resp = ts.do(t, ts.adminToken, http.MethodPost, "/api/v1/records/decide",
		map[string]interface{}{"id": rec.ID, "decision": "reject", "rejection_reason": "late"})
	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Equal(t, "INVALID_STATE_TRANSITION", errorCode(t, resp))
}

func TestDecideErrorStatusMapping(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.submitExpense(t, ts.partnerToken)

	tests := []struct {
		name   string
		token  string
		body   map[string]interface{}
		status int
		code   string
	}{
		{
			name:   "partner cannot decide",
			token:  ts.partnerToken,
			body:   map[string]interface{}{"id": rec.ID, "decision": "approve"},
			status: http.StatusForbidden,
			code:   "AUTHORIZATION_ERROR",
		},
		{
			name:   "reject without reason",
			token:  ts.adminToken,
			body:   map[string]interface{}{"id": rec.ID, "decision": "reject"},
			status: http.StatusBadRequest,
			code:   "VALIDATION_ERROR",
		},
		{
			name:   "unknown record",
			token:  ts.adminToken,
			body:   map[string]interface{}{"id": "00000000-0000-0000-0000-000000000000", "decision": "approve"},
			status: http.StatusNotFound,
			code:   "NOT_FOUND",
		},
		{
			name:   "unknown field",
			token:  ts.adminToken,
			body:   map[string]interface{}{"id": rec.ID, "decision": "approve", "extra": true},
			status: http.StatusBadRequest,
			code:   "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.do(t, tt.token, http.MethodPost, "/api/v1/records/decide", tt.body)
			assert.Equal(t, tt.status, resp.Code, resp.Body.String())
			assert.Equal(t, tt.code, errorCode(t, resp))
		})
	}
}

func TestSubmitRecordValidation(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, ts.partnerToken, http.MethodPost, "/api/v1/records", map[string]interface{}{
		"kind":             "expense",
		"amount":           "-5",
		"transaction_date": "2024-05-01",
		"category":         "Raw Materials",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	body := decode[map[string]errorBody](t, resp)
	assert.Equal(t, "amount", body["error"].Field)

	for _, amount := range []string{"1e300000000", "1e-300000000"} {
		resp := ts.do(t, ts.partnerToken, http.MethodPost, "/api/v1/records", map[string]interface{}{
			"kind":             "expense",
			"amount":           amount,
			"transaction_date": "2024-05-01",
			"category":         "Raw Materials",
		})
		assert.Equal(t, http.StatusBadRequest, resp.Code, amount)
		assert.Equal(t, "amount", decode[map[string]errorBody](t, resp)["error"].Field, amount)
	}
}

func TestRecordMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, ts.adminToken, http.MethodGet, "/api/v1/records/decide", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.Code)
	assert.Equal(t, "POST", resp.Header().Get("Allow"))
}

func TestListAndDeleteRecords(t *testing.T) {
	ts := newTestServer(t)
	first := ts.submitExpense(t, ts.partnerToken)
	ts.submitExpense(t, ts.partnerToken)

	resp := ts.do(t, ts.partnerToken, http.MethodGet, "/api/v1/records?status=pending", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	list := decode[struct {
		Records []*repository.FinancialRecord `json:"records"`
		Total   int64                         `json:"total"`
	}](t, resp)
	assert.Equal(t, int64(2), list.Total)
	assert.Len(t, list.Records, 2)

	resp = ts.do(t, ts.partnerToken, http.MethodDelete, "/api/v1/records/delete?id="+first.ID, nil)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.do(t, ts.adminToken, http.MethodDelete, "/api/v1/records/delete?id="+first.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.do(t, ts.adminToken, http.MethodGet, "/api/v1/records/get?id="+first.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestExportRecordsWorkbook(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.submitExpense(t, ts.partnerToken)

	resp := ts.do(t, ts.adminToken, http.MethodGet, "/api/v1/records/export", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Header().Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(resp.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, rec.ID, rows[1][0])
	assert.Equal(t, "expense", rows[1][1])
	assert.Equal(t, "pending", rows[1][2])
	assert.Equal(t, "5000.00", rows[1][3])
	assert.Equal(t, "Raw Materials", rows[1][5])
}

func createProduct(t *testing.T, ts *testServer) *repository.Product {
	t.Helper()
	resp := ts.do(t, ts.partnerToken, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name":     "Rose Serum",
		"category": "Skincare",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decode[*repository.Product](t, resp)
}

func TestAdvanceRequiresLaunchConfirmation(t *testing.T) {
	ts := newTestServer(t)
	p := createProduct(t, ts)
	assert.Equal(t, service.StageIdea, p.Stage)

	for i := 0; i < len(service.Stages)-2; i++ {
		resp := ts.do(t, ts.partnerToken, http.MethodPost, "/api/v1/products/advance", map[string]interface{}{"id": p.ID})
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	}

	resp := ts.do(t, ts.partnerToken, http.MethodGet, "/api/v1/products/get?id="+p.ID, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, service.StageReady, decode[*repository.Product](t, resp).Stage)

	resp = ts.do(t, ts.partnerToken, http.MethodPost, "/api/v1/products/advance", map[string]interface{}{"id": p.ID})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	body := decode[map[string]errorBody](t, resp)
	assert.Equal(t, "confirm_launch", body["error"].Field)

	resp = ts.do(t, ts.partnerToken, http.MethodPost, "/api/v1/products/advance",
		map[string]interface{}{"id": p.ID, "confirm_launch": true})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	launched := decode[*repository.Product](t, resp)
	assert.Equal(t, service.StageLaunched, launched.Stage)
	assert.Equal(t, 100, launched.Progress)

	resp = ts.do(t, ts.partnerToken, http.MethodPost, "/api/v1/products/advance",
		map[string]interface{}{"id": p.ID, "confirm_launch": true})
	assert.Equal(t, http.StatusConflict, resp.Code)

	resp = ts.do(t, ts.partnerToken, http.MethodGet, "/api/v1/products/history?id="+p.ID, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	history := decode[struct {
		Entries []*repository.StageHistoryEntry `json:"entries"`
	}](t, resp)
	assert.Len(t, history.Entries, len(service.Stages))
}

func TestOverrideProductIsAdminOnly(t *testing.T) {
	ts := newTestServer(t)
	p := createProduct(t, ts)

	body := map[string]interface{}{"id": p.ID, "stage": service.StageTesting, "progress": 40}
	resp := ts.do(t, ts.partnerToken, http.MethodPatch, "/api/v1/products/override", body)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.do(t, ts.adminToken, http.MethodPatch, "/api/v1/products/override", body)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	overridden := decode[*repository.Product](t, resp)
	assert.Equal(t, service.StageTesting, overridden.Stage)
	assert.Equal(t, 40, overridden.Progress)
}

func TestSessionAndSignOut(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, ts.partnerToken, http.MethodGet, "/api/v1/auth/session", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	view := decode[service.SessionView](t, resp)
	assert.Equal(t, ts.partnerID, view.User.ID)

	resp = ts.do(t, ts.partnerToken, http.MethodPost, "/api/v1/auth/signout", nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.do(t, ts.partnerToken, http.MethodGet, "/api/v1/auth/session", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestPendingAccountCannotSignIn(t *testing.T) {
	ts := newTestServer(t)
	ts.signUp(t, "newcomer@example.com", "Newcomer")

	resp := ts.do(t, "", http.MethodPost, "/api/v1/auth/signin",
		map[string]string{"email": "newcomer@example.com", "password": testPassword})
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.do(t, "", http.MethodPost, "/api/v1/auth/signup",
		map[string]string{"email": "newcomer@example.com", "password": testPassword, "name": "Again"})
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestVendorLifecycle(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, ts.partnerToken, http.MethodPost, "/api/v1/vendors",
		map[string]interface{}{"name": "Acme Bottles", "category": "Packaging", "email": "sales@acme.test"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	v := decode[*repository.Vendor](t, resp)

	resp = ts.do(t, ts.partnerToken, http.MethodPost, "/api/v1/vendors/update?id="+v.ID,
		map[string]interface{}{"name": "Acme Glass", "category": "Packaging"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, "Acme Glass", decode[*repository.Vendor](t, resp).Name)

	resp = ts.do(t, ts.partnerToken, http.MethodGet, "/api/v1/vendors?search=glass", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Acme Glass")

	resp = ts.do(t, ts.partnerToken, http.MethodDelete, "/api/v1/vendors/delete?id="+v.ID, nil)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.do(t, ts.adminToken, http.MethodDelete, "/api/v1/vendors/delete?id="+v.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)
}

func TestUploadAndServeBlob(t *testing.T) {
	ts := newTestServer(t)

	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("kind", service.UploadKindReceipt))
	fw, err := mw.CreateFormFile("file", "receipt.png")
	require.NoError(t, err)
	_, err = fw.Write(png)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+ts.partnerToken)
	resp := httptest.NewRecorder()
	ts.handler.ServeHTTP(resp, req)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	res := decode[service.UploadResult](t, resp)
	assert.Equal(t, "image/png", res.ContentType)
	assert.True(t, strings.HasPrefix(res.Path, "receipts/"+ts.partnerID+"/"))
	assert.True(t, strings.HasSuffix(res.Path, ".png"))

	blob := ts.do(t, "", http.MethodGet, "/blobs/"+res.Path, nil)
	require.Equal(t, http.StatusOK, blob.Code)
	assert.Equal(t, "image/png", blob.Header().Get("Content-Type"))
	assert.Equal(t, png, blob.Body.Bytes())
}

func TestActivityFeed(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.submitExpense(t, ts.partnerToken)

	resp := ts.do(t, ts.adminToken, http.MethodGet,
		"/api/v1/activity?resource_type=financial_records&resource_id="+rec.ID, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	feed := decode[struct {
		Entries []*repository.ActivityEntry `json:"entries"`
	}](t, resp)
	require.Len(t, feed.Entries, 1)
	assert.Contains(t, feed.Entries[0].Message, "submitted expense")
}

func TestChangesStream(t *testing.T) {
	ts := newTestServer(t)
	srv := httptest.NewServer(ts.handler)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		srv.URL+"/api/v1/changes?table=financial_records&access_token="+ts.partnerToken, nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, ": connected\n", line)

	rec := ts.submitExpense(t, ts.partnerToken)

	var event, data string
	for data == "" {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event: "))
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimSpace(strings.TrimPrefix(line, "data: "))
		}
	}

	assert.Equal(t, "change", event)
	var ev repository.ChangeEvent
	require.NoError(t, json.Unmarshal([]byte(data), &ev))
	assert.Equal(t, repository.TableFinancialRecords, ev.Table)
	assert.Equal(t, rec.ID, ev.RowID)
	assert.Equal(t, repository.OpInsert, ev.Operation)
}

func TestPagination(t *testing.T) {
	tests := []struct {
		query         string
		page, size    int
		limit, offset int
	}{
		{"", 1, 50, 50, 0},
		{"page=3&page_size=20", 3, 20, 20, 40},
		{"page=-4&page_size=500", 1, 50, 50, 0},
		{"page=9223372036854775807&page_size=100", maxPage, 100, 100, (maxPage - 1) * 100},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/records?"+tt.query, nil)
		page, size, limit, offset := pagination(r)
		assert.Equal(t, tt.page, page, tt.query)
		assert.Equal(t, tt.size, size, tt.query)
		assert.Equal(t, tt.limit, limit, tt.query)
		assert.Equal(t, tt.offset, offset, tt.query)
		assert.GreaterOrEqual(t, offset, 0, tt.query)
	}
}
