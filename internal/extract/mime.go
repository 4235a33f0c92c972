package extract

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"strings"
)

// Kind is a supported document format.
type Kind string

const (
	KindUnknown Kind = "unknown"
	KindPDF     Kind = "pdf"
	KindDOCX    Kind = "docx"
	KindPPTX    Kind = "pptx"
	KindText    Kind = "txt"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	mimeText = "text/plain"
)

// DetectKind resolves the document kind. A recognised MIME type wins; otherwise
// the extension is used, and zip payloads are sniffed for OOXML parts.
func DetectKind(declaredMime string, fileName string, data []byte) Kind {
	if kind := kindFromMime(declaredMime); kind != KindUnknown {
		return kind
	}
	if kind := KindFromExtension(fileName); kind != KindUnknown {
		return kind
	}
	return mapOOXMLFromZip(data)
}

// KindFromExtension maps a file name's extension to a Kind.
func KindFromExtension(fileName string) Kind {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return KindPDF
	case ".docx":
		return KindDOCX
	case ".pptx":
		return KindPPTX
	case ".txt", ".text", ".md":
		return KindText
	default:
		return KindUnknown
	}
}

// Supported reports whether DetectKind resolves the upload to a known kind.
func Supported(declaredMime string, fileName string, data []byte) bool {
	return DetectKind(declaredMime, fileName, data) != KindUnknown
}

func kindFromMime(mimeType string) Kind {
	switch normalizeMimeType(mimeType) {
	case mimePDF, "application/x-pdf":
		return KindPDF
	case mimeDOCX:
		return KindDOCX
	case mimePPTX:
		return KindPPTX
	case mimeText:
		return KindText
	default:
		return KindUnknown
	}
}

func normalizeMimeType(mimeType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
}

func mapOOXMLFromZip(data []byte) Kind {
	if len(data) < 4 || !bytes.HasPrefix(data, []byte("PK")) {
		return KindUnknown
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return KindUnknown
	}
	for _, f := range zr.File {
		switch strings.ReplaceAll(f.Name, "\\", "/") {
		case "word/document.xml":
			return KindDOCX
		case "ppt/presentation.xml":
			return KindPPTX
		}
	}
	return KindUnknown
}
