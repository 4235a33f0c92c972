package extract

import (
	"bytes"
	"fmt"
	"io"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// MinPDFTextChars is the non-whitespace floor below which a PDF is treated as scanned.
const MinPDFTextChars = 50

func init() {
	// pdfcpu would otherwise create a config directory under the user's home.
	api.DisableConfigDir()
}

func extractPDF(data []byte) Result {
	text, err := readPDFText(data)
	if err != nil {
		return failure(KindPDF, ClassError, err.Error())
	}
	text = clean(text)
	if countNonSpace(text) < MinPDFTextChars {
		reason := ReasonScanned
		if pages := imagePages(data); pages > 0 {
			reason = fmt.Sprintf("%s (%d page(s) with embedded images)", ReasonScanned, pages)
		}
		return failure(KindPDF, ClassScanned, reason)
	}
	return finish(KindPDF, text)
}

func readPDFText(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("pdf text: %w", err)
	}
	return buf.String(), nil
}

// imagePages counts pages that reference image XObjects. Any pdfcpu failure
// counts as zero; the result only refines the scanned reason.
func imagePages(data []byte) (pages int) {
	defer func() {
		if recover() != nil {
			pages = 0
		}
	}()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return 0
	}
	if ctx.Optimize != nil {
		for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
			if len(pdfcpu.ImageObjNrs(ctx, pageNr)) > 0 {
				pages++
			}
		}
		if pages > 0 {
			return pages
		}
	}
	for _, entry := range ctx.Table {
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if subtype, found := sd.Find("Subtype"); found {
			if name, isName := subtype.(types.Name); isName && name == "Image" {
				return 1
			}
		}
	}
	return 0
}

func countNonSpace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
