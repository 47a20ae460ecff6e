package dataset

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents the supported dataset file formats
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatCSV                // comma separated rows
	FormatTSV                // tab separated rows
)

// FormatInfo contains metadata about a dataset file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	Delimiter   string
	MinSize     int64 // minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatCSV: {
		Format:      FormatCSV,
		Description: "Comma Separated Names Dataset",
		Extensions:  []string{".csv", ".txt"},
		Delimiter:   ",",
		MinSize:     5, // at least one minimal row like "a,f,1"
	},
	FormatTSV: {
		Format:      FormatTSV,
		Description: "Tab Separated Names Dataset",
		Extensions:  []string{".tsv", ".txt"},
		Delimiter:   "\t",
		MinSize:     5,
	},
}

// ValidateFile checks that a file exists, is non-trivially sized and carries
// a supported extension.
func ValidateFile(filename string) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	for _, info := range supportedFormats {
		for _, validExt := range info.Extensions {
			if ext != validExt {
				continue
			}
			if fileInfo.Size() < info.MinSize {
				return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
					filename, fileInfo.Size(), info.Description, info.MinSize)
			}
			return nil
		}
	}
	return fmt.Errorf("file %s has unsupported extension %s", filename, ext)
}

// DetectFileFormat sniffs a file's format from its extension and, for the
// ambiguous .txt case, from the delimiter of the first data row.
func DetectFileFormat(filename string) (FileFormat, error) {
	if err := ValidateFile(filename); err != nil {
		return FormatUnknown, err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".tsv":
		return FormatTSV, nil
	}

	row, err := firstDataRow(filename)
	if err != nil {
		return FormatUnknown, err
	}
	if strings.Count(row, "\t") >= 2 {
		log.Debugf("Detected tab delimiter in %s", filename)
		return FormatTSV, nil
	}
	if strings.Count(row, ",") >= 2 {
		log.Debugf("Detected comma delimiter in %s", filename)
		return FormatCSV, nil
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
}

// firstDataRow returns the first non-blank, non-comment line of a file.
func firstDataRow(filename string) (string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read from file %s: %w", filename, err)
	}
	return "", fmt.Errorf("file %s has no data rows", filename)
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
