package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// docxDocumentXMLPath is the default path of the main document body inside a .docx zip.
const docxDocumentXMLPath = "word/document.xml"

// contentTypesPath is the path of [Content_Types].xml in OOXML packages.
const contentTypesPath = "[Content_Types].xml"

// docxMainContentType identifies the main document part in DOCX files.
const docxMainContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"

// wtTag matches a <w:t> text run with any attributes.
var wtTag = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

// partNameRe and partNameRe2 extract the main document PartName from
// [Content_Types].xml, covering both attribute orders.
var (
	partNameRe  = regexp.MustCompile(`<Override[^>]+PartName="([^"]+)"[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"`)
	partNameRe2 = regexp.MustCompile(`<Override[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"[^>]+PartName="([^"]+)"`)
)

// xmlEntities undoes the predefined XML escapes that appear inside text runs.
var xmlEntities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
)

// extractDOCX extracts text from .docx bytes. A DOCX is a zip holding an
// OOXML document part; text lives in <w:t> runs grouped into <w:p>
// paragraphs. Runs are concatenated per paragraph and paragraphs joined with
// blank lines, so the document's paragraph structure survives for chunking.
func extractDOCX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract DOCX: not a zip: %w", err)
	}

	docPath := findDocxMainDocumentPath(zr)
	if docPath == "" {
		docPath = docxDocumentXMLPath
	}

	docXML, err := readZipFile(zr, docPath)
	if err != nil {
		return "", err
	}
	if docXML == nil {
		return "", fmt.Errorf("extract DOCX: %s not found", docPath)
	}

	var paragraphs []string
	for _, segment := range strings.Split(string(docXML), "</w:p>") {
		runs := wtTag.FindAllStringSubmatch(segment, -1)
		if len(runs) == 0 {
			continue
		}
		var b strings.Builder
		for _, run := range runs {
			b.WriteString(run[1])
		}
		para := strings.TrimSpace(xmlEntities.Replace(b.String()))
		if para == "" {
			continue
		}
		paragraphs = append(paragraphs, para)
	}
	return strings.Join(paragraphs, "\n\n"), nil
}

// findDocxMainDocumentPath reads the main document path from
// [Content_Types].xml. Returns "" when it cannot be determined, in which case
// the caller falls back to the conventional path.
func findDocxMainDocumentPath(zr *zip.Reader) string {
	data, err := readZipFile(zr, contentTypesPath)
	if err != nil || data == nil {
		return ""
	}
	content := string(data)
	if matches := partNameRe.FindStringSubmatch(content); len(matches) > 1 {
		return strings.TrimPrefix(matches[1], "/")
	}
	if matches := partNameRe2.FindStringSubmatch(content); len(matches) > 1 {
		return strings.TrimPrefix(matches[1], "/")
	}
	return ""
}

// readZipFile returns the contents of name within zr, or nil when the entry
// does not exist.
func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("extract DOCX: open %s: %w", name, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("extract DOCX: read %s: %w", name, err)
		}
		return data, nil
	}
	return nil, nil
}
