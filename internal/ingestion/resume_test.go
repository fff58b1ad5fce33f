package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractResumeText_Plain(t *testing.T) {
	text, err := ExtractResumeText("text/plain; charset=utf-8", []byte("Python developer"))
	require.NoError(t, err)
	assert.Equal(t, "Python developer", text)
}

func TestExtractResumeText_Unsupported(t *testing.T) {
	_, err := ExtractResumeText("image/png", []byte{0x89, 'P', 'N', 'G'})
	require.Error(t, err)

	var typeErr *UnsupportedTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "image/png", typeErr.MIME)
}

func TestExtractResumeText_CorruptPDF(t *testing.T) {
	_, err := ExtractResumeText(MIMEPDF, []byte("not really a pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read pdf")
}

func TestExtractResumeText_CorruptDocx(t *testing.T) {
	_, err := ExtractResumeText(MIMEDocx, []byte("not a zip archive"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse docx")
}

func TestDetectMIME(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		declared string
		data     []byte
		want     string
	}{
		{"declared pdf wins", "resume.bin", "application/pdf", nil, MIMEPDF},
		{"octet-stream falls back to extension", "resume.PDF", "application/octet-stream", nil, MIMEPDF},
		{"docx extension", "cv.docx", "", nil, MIMEDocx},
		{"txt extension", "cv.txt", "", nil, MIMEPlain},
		{"sniffed plain text", "cv", "", []byte("Skills: Go, SQL"), MIMEPlain},
		{"sniffed pdf", "upload", "", []byte("%PDF-1.7\n"), MIMEPDF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectMIME(tt.filename, tt.declared, tt.data))
		})
	}
}

func TestReadResumeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Skills:\tPython, C++ & SQL!\n"), 0o644))

	text, err := ReadResumeFile(path)
	require.NoError(t, err)
	assert.Equal(t, "skills python c sql", text)
}

func TestReadResumeFile_Missing(t *testing.T) {
	_, err := ReadResumeFile(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}
