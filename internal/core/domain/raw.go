package domain

import (
	"path/filepath"
	"strings"
)

// RawDocument is an input file before its text is extracted.
type RawDocument struct {
	// URI is the original location (file path or "-" for stdin).
	URI string

	// MIMEType is the content type (e.g., "text/html").
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}

// TitleFromURI derives a human-readable title from a file name.
func TitleFromURI(uri string) string {
	name := filepath.Base(uri)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}
