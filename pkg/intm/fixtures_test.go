package intm

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

const wNamespace = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

// documentXML wraps body markup in a complete word/document.xml
func documentXML(body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<w:document ` + wNamespace + `><w:body>` + body + `</w:body></w:document>`
}

// para builds a paragraph with an optional style and one run per text
func para(style string, texts ...string) string {
	var b strings.Builder
	b.WriteString("<w:p>")
	if style != "" {
		b.WriteString(`<w:pPr><w:pStyle w:val="` + style + `"/></w:pPr>`)
	}
	for _, t := range texts {
		b.WriteString(`<w:r><w:t xml:space="preserve">` + t + `</w:t></w:r>`)
	}
	b.WriteString("</w:p>")
	return b.String()
}

// cell builds a table cell; span > 0 adds a w:gridSpan
func cell(span int, content string) string {
	var b strings.Builder
	b.WriteString("<w:tc>")
	if span > 0 {
		b.WriteString(`<w:tcPr><w:gridSpan w:val="` + strconv.Itoa(span) + `"/></w:tcPr>`)
	}
	b.WriteString(content)
	b.WriteString("</w:tc>")
	return b.String()
}

func row(cells ...string) string {
	return "<w:tr>" + strings.Join(cells, "") + "</w:tr>"
}

func table(rows ...string) string {
	return "<w:tbl><w:tblPr/>" + strings.Join(rows, "") + "</w:tbl>"
}

// buildPackage creates an in-memory zip with the given members
func buildPackage(t *testing.T, members map[string]string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	// [Content_Types].xml first, like Word writes it
	names := []string{"[Content_Types].xml"}
	for name := range members {
		if name != "[Content_Types].xml" {
			names = append(names, name)
		}
	}
	for _, name := range names {
		content, ok := members[name]
		if !ok {
			continue
		}
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

// buildDocx creates a minimal .docx around body markup
func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	return buildPackage(t, map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"_rels/.rels":         `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`,
		"word/document.xml":   documentXML(body),
	})
}

// writeDocx writes a .docx built from body into dir
func writeDocx(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buildDocx(t, body), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}
