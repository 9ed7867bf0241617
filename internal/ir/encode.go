package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gowebpki/jcs"
)

// Extension is the file extension of compiled documents.
const Extension = ".scrape"

// EncodeOptions controls the output format.
type EncodeOptions struct {
	// Indent is the per-level indentation string. Empty means compact.
	Indent string
	// Canonical writes RFC 8785 canonical JSON. Indent is ignored.
	Canonical bool
}

// Marshal returns the encoded document.
func Marshal(doc *Document, opts EncodeOptions) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	switch {
	case opts.Canonical:
		data, err = jcs.Transform(data)
		if err != nil {
			return nil, fmt.Errorf("canonicalize document: %w", err)
		}
	case opts.Indent != "":
		data, err = json.MarshalIndent(doc, "", opts.Indent)
		if err != nil {
			return nil, fmt.Errorf("encode document: %w", err)
		}
	}
	return data, nil
}

// Encode writes the encoded document to w.
func Encode(w io.Writer, doc *Document, opts EncodeOptions) error {
	data, err := Marshal(doc, opts)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// Digest returns the hex SHA-256 of the canonical encoding. Two documents
// have the same digest exactly when they carry the same content.
func Digest(doc *Document) (string, error) {
	data, err := Marshal(doc, EncodeOptions{Canonical: true})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// OutputPath returns explicit when set, otherwise the input's base name with
// its extension replaced by .scrape, in the working directory.
func OutputPath(input, explicit string) string {
	if explicit != "" {
		return explicit
	}
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	if ext == base {
		// a dot file has no extension
		ext = ""
	}
	return strings.TrimSuffix(base, ext) + Extension
}
