// Package fileutil provides file, path and encoding helpers shared by the
// generator, the macros and the asset embedder.
package fileutil

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
	ErrUnknownEncoding        = errors.New("unknown encoding")
	ErrDecode                 = errors.New("unable to decode source")
)

// utf8BOM is stripped from decoded text.
const utf8BOM = "\uFEFF"

// embeddableMIME maps the extensions the asset embedder inlines to their MIME
// types. System MIME tables are unreliable for fonts, so these are fixed.
var embeddableMIME = map[string]string{
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".png":   "image/png",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".woff2": "font/woff2",
	".woff":  "font/woff",
}

// EmbeddableExtensions returns the extensions eligible for data URI embedding.
func EmbeddableExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".svg", ".woff2", ".woff"}
}

// WriteTempFile creates a temporary file in dir with the given content and extension.
// An empty dir uses the system temp directory.
// Returns the file path and a cleanup function to remove the file.
func WriteTempFile(dir, content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	tmpFile, err := os.CreateTemp(dir, ".md2slides-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, cleanup, nil
}

// ValidateExtension checks that the extension is safe for use in temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string contains a path separator.
// Used to tell a theme directory apart from a built-in theme name.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like a remote URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// IsLocalRef returns true if ref points at a local file that can be resolved
// against a directory: not a remote, data, file or protocol-relative URL and
// not an anchor.
func IsLocalRef(ref string) bool {
	if ref == "" {
		return false
	}
	if IsURL(ref) ||
		strings.HasPrefix(ref, "file://") ||
		strings.HasPrefix(ref, "data:") ||
		strings.HasPrefix(ref, "//") ||
		strings.HasPrefix(ref, "#") {
		return false
	}
	return true
}

// PathURL returns the URL used to reference path from the generated document.
// With an empty relativeTo the result is an absolute file:// URL; otherwise it
// is a slash-separated path relative to the relativeTo directory.
func PathURL(path, relativeTo string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	if relativeTo == "" {
		return FileURL(absPath), nil
	}

	absBase, err := filepath.Abs(relativeTo)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// FileURL converts an absolute path to a file:// URL.
// Handles both Unix and Windows paths correctly.
func FileURL(absPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absPath),
	}
	return u.String()
}

// MIMEType derives a MIME type from the extension of name.
func MIMEType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := embeddableMIME[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

// DataURI encodes data as a base64 data URI with the MIME type derived from name.
func DataURI(name string, data []byte) string {
	return "data:" + MIMEType(name) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ReadText reads a file and decodes it from the named encoding to UTF-8.
// A leading byte order mark is removed. Undecodable input returns ErrDecode.
func ReadText(path, encoding string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- source paths are user-provided
	if err != nil {
		return "", err
	}
	return DecodeText(data, encoding)
}

// isUTF8 reports whether the encoding label names UTF-8 (or is empty).
func isUTF8(name string) bool {
	return name == "" || name == "utf8" || name == "utf-8"
}

// DecodeText decodes data from the named encoding to UTF-8.
// Names follow the WHATWG encoding labels ("utf-8", "utf8", "latin1", ...).
func DecodeText(data []byte, encoding string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(encoding))
	if isUTF8(name) {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: invalid utf-8 byte sequence", ErrDecode)
		}
		return strings.TrimPrefix(string(data), utf8BOM), nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, encoding)
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return strings.TrimPrefix(string(decoded), utf8BOM), nil
}

// EncodeText encodes UTF-8 text to the named encoding.
// Characters the encoding cannot represent become HTML character references.
func EncodeText(s, encodingName string) ([]byte, error) {
	name := strings.ToLower(strings.TrimSpace(encodingName))
	if isUTF8(name) {
		return []byte(s), nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, encodingName)
	}
	return encoding.HTMLEscapeUnsupported(enc.NewEncoder()).Bytes([]byte(s))
}
