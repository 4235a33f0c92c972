package documents

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"saarthi-backend/internal/extract"
	"saarthi-backend/internal/shared/metrics"
	"saarthi-backend/internal/shared/storage/object"
	"saarthi-backend/internal/shared/telemetry"
	"saarthi-backend/internal/shared/util"
)

// ExtractFunc extracts text from an uploaded payload.
type ExtractFunc func(ctx context.Context, data []byte, declaredMime, fileName string) extract.Result

// TextSource is the read-only view artifact services use to load document text.
type TextSource interface {
	TextFor(ctx context.Context, id string) (string, error)
}

// Service contains business logic for documents.
type Service struct {
	Store   object.ObjectStore
	Repo    Repo
	Extract ExtractFunc
	Now     func() time.Time
}

// NewService builds a Service using the package extractor.
func NewService(store object.ObjectStore, repo Repo) *Service {
	return &Service{Store: store, Repo: repo, Extract: extract.ExtractBytes, Now: time.Now}
}

// Upload detects the file kind from its MIME type, name or content, stores it,
// extracts its text and registers the document. A failed extraction still
// registers the document, with no text.
func (s *Service) Upload(ctx context.Context, fileName, declaredMime string, r io.Reader) (Document, error) {
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read upload: %w", err)
	}
	if !extract.Supported(declaredMime, name, data) {
		return Document{}, ErrUnsupportedType
	}

	obj, err := s.Store.Save(ctx, name, bytes.NewReader(data))
	if err != nil {
		return Document{}, fmt.Errorf("store upload: %w", err)
	}
	mimeType := strings.TrimSpace(declaredMime)
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = obj.MimeType
	}

	res := s.Extract(ctx, data, declaredMime, name)
	doc := Document{
		ID:                  obj.ID,
		OriginalName:        name,
		MimeType:            mimeType,
		StorageKey:          obj.Key,
		StoredPath:          obj.Path,
		SizeBytes:           obj.Size,
		ExtractedText:       res.Text,
		ExtractionSucceeded: res.Success,
		ExtractionReason:    res.Reason,
		TextSnippet:         res.Snippet,
		CreatedAt:           s.now().UTC(),
	}
	if !res.Success {
		doc.ExtractedText = ""
		doc.TextSnippet = ""
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, fmt.Errorf("register document: %w", err)
	}

	metrics.IncUploads()
	fields := map[string]any{
		"document_id": doc.ID,
		"kind":        string(res.Kind),
		"size_bytes":  doc.SizeBytes,
		"extracted":   res.Success,
		"text_chars":  len([]rune(doc.ExtractedText)),
	}
	if !res.Success {
		metrics.IncExtractionFailure(string(res.Class))
		fields["reason"] = res.Reason
		telemetry.Warn("document.extraction_failed", fields)
	} else {
		telemetry.Info("document.uploaded", fields)
	}
	return doc, nil
}

// Get returns a registered document.
func (s *Service) Get(ctx context.Context, id string) (Document, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Document{}, fmt.Errorf("%w: fileId is required", ErrInvalidInput)
	}
	return s.Repo.Get(ctx, id)
}

// TextFor returns the extracted text of a document. It fails with ErrNotFound
// for unknown ids and ErrNoText when extraction did not succeed.
func (s *Service) TextFor(ctx context.Context, id string) (string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !doc.ExtractionSucceeded || strings.TrimSpace(doc.ExtractedText) == "" {
		return "", ErrNoText
	}
	return doc.ExtractedText, nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
