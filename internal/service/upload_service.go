package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/pesio-ai/be-ops-workflow/pkg/errors"
	"github.com/pesio-ai/be-ops-workflow/pkg/logger"
)

// Upload kinds.
const (
	UploadKindReceipt      = "receipt"
	UploadKindPaymentProof = "payment_proof"
)

// sniffed content type → stored extension
var allowedUploadTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// UploadService stores receipts and payment proofs in the blob store.
type UploadService struct {
	blobs    BlobStore
	maxBytes int64
	log      *logger.Logger
}

// NewUploadService creates a new upload service.
func NewUploadService(blobs BlobStore, maxBytes int64, log *logger.Logger) *UploadService {
	return &UploadService{blobs: blobs, maxBytes: maxBytes, log: log}
}

// UploadRequest describes one uploaded file.
type UploadRequest struct {
	OwnerID string
	Kind    string
	Size    int64
	Body    io.Reader
}

// UploadResult is the stored location of an upload.
type UploadResult struct {
	Path        string `json:"path"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
}

// UploadProof validates and stores a file under
// "{kind}s/{owner}/{random}{ext}". The content type is sniffed from the body.
func (s *UploadService) UploadProof(ctx context.Context, req *UploadRequest) (*UploadResult, error) {
	if req.OwnerID == "" {
		return nil, errors.Unauthenticated("no acting user")
	}
	if req.Kind != UploadKindReceipt && req.Kind != UploadKindPaymentProof {
		return nil, errors.InvalidInput("kind", "kind must be receipt or payment_proof")
	}
	if req.Size <= 0 {
		return nil, errors.InvalidInput("file", "file is empty")
	}
	if req.Size > s.maxBytes {
		return nil, errors.InvalidInput("file", fmt.Sprintf("file exceeds %d bytes", s.maxBytes))
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(req.Body, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, errors.Wrap(err, errors.ErrCodeValidation, "failed to read upload")
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	ext, ok := allowedUploadTypes[contentType]
	if !ok {
		return nil, errors.InvalidInput("file", fmt.Sprintf("unsupported file type %s", contentType))
	}

	path := fmt.Sprintf("%ss/%s/%s%s", req.Kind, req.OwnerID, uuid.NewString(), ext)
	body := io.MultiReader(bytes.NewReader(head), req.Body)
	if err := s.blobs.Upload(ctx, path, body, req.Size, contentType); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeUnavailable, "failed to store upload")
	}

	s.log.Info().
		Str("path", path).
		Str("owner_id", req.OwnerID).
		Int64("size", req.Size).
		Msg("Upload stored")

	return &UploadResult{Path: path, URL: s.blobs.PublicURL(path), ContentType: contentType}, nil
}
