// Package e2e provides end-to-end tests; this file builds minimal binary files for supported types.
package e2e

import (
	"archive/zip"
	"bytes"

	"github.com/xuri/excelize/v2"
)

// SupportedFileExtensions is the list of file extensions used in E2E file-based tests.
// Covers: plain text (.txt, .md) and OOXML workbooks and documents (.docx, .xlsx, .xlsm).
// The extractor also supports .pdf; PDF is not generated here (no minimal PDF with
// extractable text). .xlsm shares the workbook code path with .xlsx.
var SupportedFileExtensions = []string{
	".txt", ".md",
	".docx", ".xlsx", ".xlsm",
}

// WriteMinimalFile returns the bytes of a minimal file of the given extension
// carrying the given text. For plain types (.txt, .md) the bytes are the raw
// text; for binary types they are a complete file of that format.
func WriteMinimalFile(ext, text string) ([]byte, error) {
	switch ext {
	case ".txt", ".md":
		return []byte(text), nil
	case ".docx":
		return minimalDocx(text), nil
	case ".xlsx", ".xlsm":
		return minimalWorkbook(text), nil
	default:
		return []byte(text), nil
	}
}

func minimalDocx(text string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	fw, _ := w.Create("word/document.xml")
	_, _ = fw.Write([]byte(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>` + text + `</w:t></w:r></w:p></w:body></w:document>`))
	_ = w.Close()
	return buf.Bytes()
}

func minimalWorkbook(text string) []byte {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", text)
	var buf bytes.Buffer
	_, _ = f.WriteTo(&buf)
	return buf.Bytes()
}
