// Package ingestion turns uploaded resumes into plain text for matching.
package ingestion

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Supported resume MIME types
const (
	MIMEPlain = "text/plain"
	MIMEPDF   = "application/pdf"
	MIMEDocx  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// UnsupportedTypeError is returned for files that are not plain text, PDF or DOCX.
type UnsupportedTypeError struct {
	MIME string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.MIME)
}

// ExtractResumeText returns the raw text of a resume of the given MIME type.
func ExtractResumeText(mime string, data []byte) (string, error) {
	switch baseMIME(mime) {
	case MIMEPlain:
		return string(data), nil
	case MIMEPDF:
		return extractPDFText(data)
	case MIMEDocx:
		return extractDocxText(data)
	default:
		return "", &UnsupportedTypeError{MIME: mime}
	}
}

// DetectMIME picks a resume MIME type from the file name, falling back to
// content sniffing. A declared type wins when it is one we support.
func DetectMIME(filename, declared string, data []byte) string {
	switch base := baseMIME(declared); base {
	case MIMEPlain, MIMEPDF, MIMEDocx:
		return base
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return MIMEPDF
	case ".docx":
		return MIMEDocx
	case ".txt", ".md":
		return MIMEPlain
	}
	return baseMIME(http.DetectContentType(data))
}

// ReadResumeFile reads a resume from disk and returns its cleaned text.
func ReadResumeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	text, err := ExtractResumeText(DetectMIME(path, "", data), data)
	if err != nil {
		return "", err
	}
	return CleanText(text), nil
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString(" ")
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	return stripXMLTags(doc.Editable().GetContent()), nil
}

// baseMIME drops parameters such as "; charset=utf-8".
func baseMIME(mime string) string {
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	return strings.ToLower(strings.TrimSpace(mime))
}
