package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
)

// spreadsheet uploads are .xlsx, which is a zip container
var spreadsheetMimeTypes = []string{"application/zip", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"}

// ValidateSpreadsheet checks the extension, size and content of an uploaded workbook.
// The read position of file is restored.
func ValidateSpreadsheet(fileHeader *multipart.FileHeader, file io.ReadSeeker, maxSizeMB int) error {
	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".xlsx" {
		return fmt.Errorf("only .xlsx files are accepted, got %q", ext)
	}

	if maxSizeMB > 0 {
		maxSizeBytes := int64(maxSizeMB) * 1024 * 1024
		if fileHeader.Size > maxSizeBytes {
			return fmt.Errorf("file is %.2f MB, the limit is %d MB", float64(fileHeader.Size)/1024/1024, maxSizeMB)
		}
	}

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("could not read file")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("could not rewind file")
	}

	mimeType := http.DetectContentType(buffer[:n])
	if !slices.Contains(spreadsheetMimeTypes, mimeType) {
		return fmt.Errorf("file content is %s, not a spreadsheet", mimeType)
	}
	return nil
}
