package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"

	"github.com/puntoventa/backend/internal/domain"
)

// Media types handled by the extractor
const (
	mediaTypePlain = "text/plain"
	mediaTypeCSV   = "text/csv"
	mediaTypePDF   = "application/pdf"
	mediaTypeXLSX  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mediaTypeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Extractor converts uploaded documents into plain text for the
// interpretation pipeline, dispatching on the declared media type
type Extractor struct{}

// NewExtractor creates a new document text extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the plain-text content of the document. Unknown media
// types yield ErrUnsupportedFormat; documents that fail to parse under their
// declared type yield ErrInvalidRequest.
func (e *Extractor) ExtractText(data []byte, mediaType string) (string, error) {
	declared := mediaType
	if parsed, _, err := mime.ParseMediaType(mediaType); err == nil {
		declared = parsed
	}

	switch strings.ToLower(declared) {
	case mediaTypePlain, mediaTypeCSV:
		return string(data), nil
	case mediaTypePDF:
		return extractPDF(data)
	case mediaTypeXLSX:
		return extractXLSX(data)
	case mediaTypeDOCX:
		return extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, mediaType)
	}
}

// extractPDF pulls the plain text out of every page of a PDF
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: unreadable pdf: %v", domain.ErrInvalidRequest, err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: unreadable pdf: %v", domain.ErrInvalidRequest, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, content); err != nil {
		return "", fmt.Errorf("%w: unreadable pdf: %v", domain.ErrInvalidRequest, err)
	}
	return buf.String(), nil
}

// extractXLSX renders every sheet row as one line, cells separated by spaces
func extractXLSX(data []byte) (string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: unreadable spreadsheet: %v", domain.ErrInvalidRequest, err)
	}
	defer file.Close()

	var builder strings.Builder
	for _, sheet := range file.GetSheetList() {
		rows, err := file.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("%w: unreadable sheet %q: %v", domain.ErrInvalidRequest, sheet, err)
		}
		for _, row := range rows {
			line := strings.TrimSpace(strings.Join(row, " "))
			if line == "" {
				continue
			}
			builder.WriteString(line)
			builder.WriteByte('\n')
		}
	}
	return builder.String(), nil
}

// extractDOCX reads the WordprocessingML body of a .docx archive. Text nodes
// (w:t) are concatenated; paragraph ends (w:p) become newlines.
func extractDOCX(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: unreadable docx archive: %v", domain.ErrInvalidRequest, err)
	}

	var document *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			document = f
			break
		}
	}
	if document == nil {
		return "", fmt.Errorf("%w: docx archive has no document body", domain.ErrInvalidRequest)
	}

	body, err := document.Open()
	if err != nil {
		return "", fmt.Errorf("%w: unreadable docx body: %v", domain.ErrInvalidRequest, err)
	}
	defer body.Close()

	var builder strings.Builder
	decoder := xml.NewDecoder(body)
	inText := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: malformed docx xml: %v", domain.ErrInvalidRequest, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
			}
			if t.Name.Local == "p" {
				builder.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				builder.Write(t)
			}
		}
	}
	return builder.String(), nil
}
