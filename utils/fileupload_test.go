package utils

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDocumentFile(t *testing.T) {
	tests := []struct {
		name        string
		kind        string
		filename    string
		size        int64
		wantCode    string
		wantMessage string
	}{
		{name: "cv pdf", kind: DocumentCV, filename: "cv.pdf", size: 2048},
		{name: "cv docx any case", kind: DocumentCV, filename: "cv.DOCX", size: 2048},
		{name: "id jpg", kind: DocumentID, filename: "passport.jpg", size: 2048},
		{name: "id pdf", kind: DocumentID, filename: "licence.pdf", size: 2048},
		{name: "photo png", kind: DocumentPhoto, filename: "me.png", size: 2048},
		{name: "photo jpeg any case", kind: DocumentPhoto, filename: "me.JPEG", size: 2048},
		{name: "exactly the limit", kind: DocumentCV, filename: "cv.pdf", size: MaxFileSize},
		{
			name: "over the limit", kind: DocumentCV, filename: "large.pdf", size: MaxFileSize + 1,
			wantCode: "FILE_TOO_LARGE", wantMessage: "10 MB",
		},
		{
			name: "pdf is not a photo", kind: DocumentPhoto, filename: "photo.pdf", size: 2048,
			wantCode: "INVALID_FILE_FORMAT", wantMessage: ".png, .jpg, .jpeg",
		},
		{
			name: "no extension", kind: DocumentCV, filename: "cv", size: 2048,
			wantCode: "INVALID_FILE_FORMAT", wantMessage: ".pdf, .doc, .docx",
		},
		{
			name: "unknown kind", kind: "payslip", filename: "cv.pdf", size: 2048,
			wantCode: "INVALID_DOCUMENT_KIND", wantMessage: "payslip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentFile(&multipart.FileHeader{Filename: tt.filename, Size: tt.size}, tt.kind)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}

			var uploadErr *FileUploadError
			require.ErrorAs(t, err, &uploadErr)
			assert.Equal(t, tt.wantCode, uploadErr.Code)
			assert.Contains(t, uploadErr.Message, tt.wantMessage)
		})
	}
}

func TestIsDocumentKind(t *testing.T) {
	for _, kind := range []string{DocumentCV, DocumentID, DocumentPhoto} {
		assert.True(t, IsDocumentKind(kind), kind)
	}
	assert.False(t, IsDocumentKind("selfie"))
	assert.False(t, IsDocumentKind(""))
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentTypeFor("cv.PDF"))
	assert.Equal(t, "image/jpeg", ContentTypeFor("id.jpg"))
	assert.Equal(t, "application/msword", ContentTypeFor("old-cv.doc"))
	assert.Equal(t, "application/octet-stream", ContentTypeFor("notes.txt"))
}
