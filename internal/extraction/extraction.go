// Package extraction turns uploaded resume documents into plain text.
package extraction

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// UnreadableDocumentError indicates the uploaded document could not be decoded
type UnreadableDocumentError struct {
	Filename string
	Cause    error
}

func (e *UnreadableDocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unreadable document %s: %v", e.Filename, e.Cause)
	}
	return fmt.Sprintf("unreadable document %s", e.Filename)
}

func (e *UnreadableDocumentError) Unwrap() error {
	return e.Cause
}

// Extract converts an uploaded document to normalized plain text.
// Supported formats are .pdf, .docx and .txt, dispatched on file extension.
func Extract(filename string, data []byte) (string, error) {
	var text string
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err = extractPDFText(bytes.NewReader(data), int64(len(data)))
	case ".docx":
		text, err = extractDocxText(data)
	case ".txt":
		text = string(data)
	default:
		return "", &UnreadableDocumentError{
			Filename: filename,
			Cause:    fmt.Errorf("unsupported file type %q", filepath.Ext(filename)),
		}
	}
	if err != nil {
		return "", &UnreadableDocumentError{Filename: filename, Cause: err}
	}

	text = CleanText(text)
	if text == "" {
		return "", &UnreadableDocumentError{
			Filename: filename,
			Cause:    fmt.Errorf("no text content"),
		}
	}
	return text, nil
}

func extractPDFText(reader io.ReaderAt, size int64) (string, error) {
	pdfReader, err := pdf.NewReader(reader, size)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	content := doc.Editable().GetContent()
	return stripXMLTags(content), nil
}

// stripXMLTags drops raw markup from docx body content, inserting line
// breaks at paragraph boundaries so the structure survives.
func stripXMLTags(content string) string {
	content = strings.ReplaceAll(content, "</w:p>", "\n")

	var sb strings.Builder
	inTag := false
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
