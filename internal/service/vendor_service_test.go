package service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pesio-ai/be-ops-workflow/internal/repository"
	"github.com/pesio-ai/be-ops-workflow/pkg/errors"
	"github.com/pesio-ai/be-ops-workflow/pkg/logger"
)

func TestVendorService_CRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.vendors.Create(ctx, &VendorRequest{Name: "Acme", Email: strPtr("bad")}, f.partner.ID)
	assert.Equal(t, errors.ErrCodeValidation, errors.CodeOf(err))

	v, err := f.vendors.Create(ctx, &VendorRequest{
		Name:        " Acme Packaging ",
		ContactName: strPtr("Wile"),
		Email:       strPtr("Sales@Acme.test"),
		Category:    "packaging",
	}, f.partner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Packaging", v.Name)
	assert.Equal(t, "sales@acme.test", *v.Email)
	assert.Equal(t, f.partner.ID, v.CreatedBy)

	updated, err := f.vendors.Update(ctx, v.ID, &VendorRequest{Name: "Acme", Category: "printing"}, f.partner.ID)
	require.NoError(t, err)
	assert.Equal(t, "printing", updated.Category)
	assert.Equal(t, f.partner.ID, updated.CreatedBy)
	assert.Nil(t, updated.Email)

	search := "acm"
	list, total, err := f.vendors.List(ctx, repository.VendorFilter{Search: &search})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, v.ID, list[0].ID)

	err = f.vendors.Delete(ctx, v.ID, f.partner.ID)
	assert.Equal(t, errors.ErrCodeForbidden, errors.CodeOf(err))

	require.NoError(t, f.vendors.Delete(ctx, v.ID, f.admin.ID))
	_, err = f.vendors.Get(ctx, v.ID)
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
}

type memBlobs struct {
	mu    sync.Mutex
	files map[string][]byte
	types map[string]string
}

func (m *memBlobs) Upload(_ context.Context, path string, body io.Reader, _ int64, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = data
	m.types[path] = contentType
	return nil
}

func (m *memBlobs) PublicURL(path string) string {
	return "https://blobs.test/" + path
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func TestUploadService_UploadProof(t *testing.T) {
	blobs := &memBlobs{files: map[string][]byte{}, types: map[string]string{}}
	svc := NewUploadService(blobs, 1024, logger.Nop())
	ctx := context.Background()

	res, err := svc.UploadProof(ctx, &UploadRequest{
		OwnerID: "u-1",
		Kind:    UploadKindReceipt,
		Size:    int64(len(pngHeader)),
		Body:    bytes.NewReader(pngHeader),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Path, "receipts/u-1/"))
	assert.True(t, strings.HasSuffix(res.Path, ".png"))
	assert.Equal(t, "https://blobs.test/"+res.Path, res.URL)
	assert.Equal(t, pngHeader, blobs.files[res.Path])
	assert.Equal(t, "image/png", blobs.types[res.Path])

	pdf := []byte("%PDF-1.4\n%âãÏÓ\n")
	res, err = svc.UploadProof(ctx, &UploadRequest{OwnerID: "u-1", Kind: UploadKindPaymentProof, Size: int64(len(pdf)), Body: bytes.NewReader(pdf)})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Path, "payment_proofs/u-1/"))
	assert.True(t, strings.HasSuffix(res.Path, ".pdf"))
}

func TestUploadService_Rejects(t *testing.T) {
	blobs := &memBlobs{files: map[string][]byte{}, types: map[string]string{}}
	svc := NewUploadService(blobs, 16, logger.Nop())
	ctx := context.Background()

	tests := []struct {
		name string
		req  UploadRequest
	}{
		{"unknown kind", UploadRequest{OwnerID: "u", Kind: "invoice", Size: 4, Body: strings.NewReader("%PDF")}},
		{"empty file", UploadRequest{OwnerID: "u", Kind: UploadKindReceipt, Size: 0, Body: strings.NewReader("")}},
		{"too large", UploadRequest{OwnerID: "u", Kind: UploadKindReceipt, Size: 17, Body: bytes.NewReader(pngHeader)}},
		{"plain text", UploadRequest{OwnerID: "u", Kind: UploadKindReceipt, Size: 5, Body: strings.NewReader("hello")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UploadProof(ctx, &tt.req)
			assert.Equal(t, errors.ErrCodeValidation, errors.CodeOf(err))
		})
	}
	assert.Empty(t, blobs.files)
}

func TestAmounts(t *testing.T) {
	tests := []struct {
		in    string
		minor int64
		ok    bool
	}{
		{"5000", 500000, true},
		{"12.5", 1250, true},
		{"0.01", 1, true},
		{"12.50", 1250, true},
		{"12.500", 1250, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"1.001", 0, false},
		{"abc", 0, false},
		{"1.2e1", 1200, true},
		{"1250e-2", 1250, true},
		{"90071992547409.91", 9007199254740991, true},
		{"100000000000000", 0, false},
		{"1e15", 0, false},
		{"1e300000000", 0, false},
		{"1e-300000000", 0, false},
		{"-1e300000000", 0, false},
	}
	for _, tt := range tests {
		minor, err := ParseAmount(tt.in)
		if !tt.ok {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.minor, minor, tt.in)
	}

	assert.Equal(t, "5000.00", FormatAmount(500000))
	assert.Equal(t, "0.05", FormatAmount(5))
}

func TestAmounts_ExtremeExponentsFailFast(t *testing.T) {
	for _, in := range []string{"1e300000000", "1e-300000000", "-4e2000000000"} {
		d, err := ParseDecimal(in)
		require.NoError(t, err, in)

		done := make(chan error, 1)
		go func() {
			_, err := ToMinorUnits(d)
			done <- err
		}()
		select {
		case err := <-done:
			appErr, ok := errors.As(err)
			require.True(t, ok, in)
			assert.Equal(t, errors.ErrCodeValidation, appErr.Code, in)
			assert.Equal(t, "amount", appErr.Field, in)
		case <-time.After(time.Second):
			t.Fatalf("ToMinorUnits(%q) did not return", in)
		}
	}
}
