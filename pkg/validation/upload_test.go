package validation

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)
	return buf.Bytes()
}

func TestValidateSpreadsheet(t *testing.T) {
	book := workbookBytes(t)

	ok := &multipart.FileHeader{Filename: "fleet.xlsx", Size: int64(len(book))}
	assert.NoError(t, ValidateSpreadsheet(ok, bytes.NewReader(book), 5))

	wrongExt := &multipart.FileHeader{Filename: "fleet.csv", Size: 10}
	assert.Error(t, ValidateSpreadsheet(wrongExt, bytes.NewReader([]byte("a,b")), 5))

	notZip := &multipart.FileHeader{Filename: "fleet.xlsx", Size: 11}
	assert.Error(t, ValidateSpreadsheet(notZip, bytes.NewReader([]byte("hello world")), 5))

	tooBig := &multipart.FileHeader{Filename: "fleet.xlsx", Size: 6 * 1024 * 1024}
	assert.Error(t, ValidateSpreadsheet(tooBig, bytes.NewReader(book), 5))
}
