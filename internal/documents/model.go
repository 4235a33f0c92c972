package documents

import "time"

// Document is an uploaded file and the text extracted from it. It is immutable
// once registered.
type Document struct {
	ID                  string
	OriginalName        string
	MimeType            string
	StorageKey          string
	StoredPath          string
	SizeBytes           int64
	ExtractedText       string
	ExtractionSucceeded bool
	ExtractionReason    string
	TextSnippet         string
	CreatedAt           time.Time
}

// DocumentResponse is the outward-facing view of a document.
type DocumentResponse struct {
	FileID               string    `json:"fileId"`
	FileName             string    `json:"fileName"`
	MimeType             string    `json:"mimeType"`
	SizeBytes            int64     `json:"sizeBytes"`
	TextExtracted        bool      `json:"textExtracted"`
	ExtractedTextSnippet string    `json:"extractedTextSnippet"`
	Reason               string    `json:"reason,omitempty"`
	UploadedAt           time.Time `json:"uploadedAt"`
}

// UploadResponse is returned by the upload endpoint.
type UploadResponse struct {
	FileID               string `json:"fileId"`
	FileName             string `json:"fileName"`
	TextExtracted        bool   `json:"textExtracted"`
	ExtractedTextSnippet string `json:"extractedTextSnippet"`
	Reason               string `json:"reason,omitempty"`
	Message              string `json:"message"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		FileID:               doc.ID,
		FileName:             doc.OriginalName,
		MimeType:             doc.MimeType,
		SizeBytes:            doc.SizeBytes,
		TextExtracted:        doc.ExtractionSucceeded,
		ExtractedTextSnippet: doc.TextSnippet,
		Reason:               doc.ExtractionReason,
		UploadedAt:           doc.CreatedAt,
	}
}

func toUploadResponse(doc Document) UploadResponse {
	msg := "File uploaded successfully"
	if !doc.ExtractionSucceeded {
		msg = "File uploaded, but no text could be extracted"
	}
	return UploadResponse{
		FileID:               doc.ID,
		FileName:             doc.OriginalName,
		TextExtracted:        doc.ExtractionSucceeded,
		ExtractedTextSnippet: doc.TextSnippet,
		Reason:               doc.ExtractionReason,
		Message:              msg,
	}
}
