// Package dataset reads delimited name-count files and feeds category
// weighted frequency triples into a name index. The index itself never
// computes frequencies; everything observation-related happens here.
package dataset

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bastiangx/nameserve/pkg/nametrie"
	"github.com/charmbracelet/log"
)

// DefaultDelimiter separates the fields of a dataset row.
const DefaultDelimiter = ","

// Row is one parsed observation: a name, a category label and a raw count.
type Row struct {
	Name     string
	Category string
	Count    int
}

// Stats describes a finished load.
type Stats struct {
	Files             int
	Rows              int
	SkippedRows       int
	Names             int
	Categories        int
	TotalObservations int
}

// Loader accumulates rows from one or more delimited files and populates an
// index with frequency = count / total observations. Frequencies are
// relative to the whole batch across every category and file, so all files
// must be parsed before anything is inserted.
type Loader struct {
	delimiter  string
	rows       []Row
	stats      Stats
	names      map[string]struct{}
	categories map[string]struct{}
}

// NewLoader creates a loader for rows separated by delimiter.
// An empty delimiter falls back to the default comma.
func NewLoader(delimiter string) *Loader {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	return &Loader{
		delimiter:  delimiter,
		names:      make(map[string]struct{}),
		categories: make(map[string]struct{}),
	}
}

// LoadFile parses a single dataset file into the pending batch. Blank lines
// and '#' comments are skipped; malformed rows are logged and dropped, never
// fatal.
func (l *Loader) LoadFile(path string) error {
	if err := ValidateFile(path); err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open dataset file %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		row, err := l.parseRow(line)
		if err != nil {
			l.stats.SkippedRows++
			log.Warnf("Skipping %s:%d: %v", filepath.Base(path), lineNo, err)
			continue
		}

		l.rows = append(l.rows, row)
		l.stats.Rows++
		l.stats.TotalObservations += row.Count
		l.names[strings.ToLower(row.Name)] = struct{}{}
		l.categories[row.Category] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read dataset file %s: %w", path, err)
	}

	l.stats.Files++
	log.Debugf("Parsed %s: %d rows so far", filepath.Base(path), l.stats.Rows)
	return nil
}

// LoadDir parses every names_*.csv file in dirPath, in filename order.
func (l *Loader) LoadDir(dirPath string) error {
	pattern := filepath.Join(dirPath, "names_*.csv")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("failed to scan for dataset files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no dataset files found in %s", dirPath)
	}
	sort.Strings(files)

	log.Debugf("Found %d dataset files", len(files))
	for _, file := range files {
		if err := l.LoadFile(file); err != nil {
			return err
		}
	}
	return nil
}

// Populate inserts every pending row into idx with its computed frequency.
func (l *Loader) Populate(idx nametrie.Index) error {
	if l.stats.TotalObservations == 0 {
		return fmt.Errorf("dataset is empty: no observations parsed")
	}

	total := float64(l.stats.TotalObservations)
	for _, row := range l.rows {
		idx.Insert(row.Name, row.Category, float64(row.Count)/total)
	}

	stats := l.Stats()
	log.Debugf("Populated index: %d names, %d categories, %d observations",
		stats.Names, stats.Categories, stats.TotalObservations)
	return nil
}

// Stats returns the counters for everything parsed so far.
func (l *Loader) Stats() Stats {
	stats := l.stats
	stats.Names = len(l.names)
	stats.Categories = len(l.categories)
	return stats
}

// parseRow splits a "name<delim>category<delim>count" line.
func (l *Loader) parseRow(line string) (Row, error) {
	fields := strings.Split(line, l.delimiter)
	if len(fields) != 3 {
		return Row{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}

	name := strings.TrimSpace(fields[0])
	if name == "" {
		return Row{}, fmt.Errorf("empty name field")
	}
	category := strings.TrimSpace(fields[1])

	count, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return Row{}, fmt.Errorf("bad count %q: %w", fields[2], err)
	}
	if count < 0 {
		return Row{}, fmt.Errorf("negative count %d", count)
	}

	return Row{Name: name, Category: category, Count: count}, nil
}
