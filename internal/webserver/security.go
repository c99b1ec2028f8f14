package webserver

import (
	"fmt"
	"html"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const (
	// MaxCategoryLength bounds the asset category form field
	MaxCategoryLength = 64
)

// AllowedFileExtensions defines the allowed dataset file extensions
var AllowedFileExtensions = map[string]bool{
	".csv": true,
	".txt": true, // Allow .txt for testing
}

// ValidateDatasetUpload validates an uploaded returns dataset. Content
// semantics are the engine's job; this only rejects what is clearly not
// a tabular text file.
func ValidateDatasetUpload(file multipart.File, header *multipart.FileHeader, maxSize int64) error {
	if strings.TrimSpace(header.Filename) == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	if header.Size > maxSize {
		return fmt.Errorf("file too large: %d bytes (max %d)", header.Size, maxSize)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !AllowedFileExtensions[ext] {
		return fmt.Errorf("invalid file type: %s (allowed: %v)", ext, getAllowedExtensions())
	}

	// Check for path traversal in filename
	if strings.Contains(header.Filename, "..") || strings.Contains(header.Filename, "/") || strings.Contains(header.Filename, "\\") {
		return fmt.Errorf("invalid filename: contains path traversal characters")
	}

	// Read first few bytes to validate it's likely a text file
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && n == 0 {
		return fmt.Errorf("cannot read file content")
	}

	// Reset file pointer
	if seeker, ok := file.(interface{ Seek(int64, int) (int64, error) }); ok {
		seeker.Seek(0, 0)
	}

	for i := 0; i < n; i++ {
		b := buffer[i]
		// Allow printable ASCII, newlines, carriage returns, and tabs
		if b < 32 && b != 10 && b != 13 && b != 9 {
			return fmt.Errorf("file contains invalid characters (not a text file)")
		}
	}

	return nil
}

// SanitizeCategory sanitizes the asset category form field. The engine
// decides whether the category exists; this only neutralizes markup and
// enforces presence and length.
func SanitizeCategory(input string) (string, error) {
	category := strings.TrimSpace(html.EscapeString(input))

	if category == "" {
		return "", fmt.Errorf("investment type cannot be empty")
	}

	if len(category) > MaxCategoryLength {
		return "", fmt.Errorf("investment type too long: %d characters (max %d)", len(category), MaxCategoryLength)
	}

	return category, nil
}

// getAllowedExtensions returns a slice of allowed extensions for error messages
func getAllowedExtensions() []string {
	exts := make([]string, 0, len(AllowedFileExtensions))
	for ext := range AllowedFileExtensions {
		exts = append(exts, ext)
	}
	return exts
}
