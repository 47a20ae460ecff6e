package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/nameserve/pkg/nametrie"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "names_1990.csv",
		"# source: birth registry extract\n"+
			"Sam,f,276\n"+
			"Sam,m,51\n"+
			"\n"+
			"Samuel,m,270\n"+
			"not a row\n"+
			"Eve,f,-3\n"+
			"Alice,f,403\n")

	loader := NewLoader(",")
	if err := loader.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	stats := loader.Stats()
	if stats.Rows != 4 {
		t.Errorf("Rows = %d, want 4", stats.Rows)
	}
	if stats.SkippedRows != 2 {
		t.Errorf("SkippedRows = %d, want 2 (malformed and negative)", stats.SkippedRows)
	}
	if stats.Names != 3 {
		t.Errorf("Names = %d, want 3", stats.Names)
	}
	if stats.Categories != 2 {
		t.Errorf("Categories = %d, want 2", stats.Categories)
	}
	if stats.TotalObservations != 1000 {
		t.Errorf("TotalObservations = %d, want 1000", stats.TotalObservations)
	}
}

func TestPopulate(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "names_2000.csv",
		"Sam,f,276\nSam,m,51\nSamuel,m,270\nAlice,f,403\n")

	loader := NewLoader(",")
	if err := loader.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	trie := nametrie.New()
	if err := loader.Populate(trie); err != nil {
		t.Fatalf("Populate: %v", err)
	}

	record, ok := trie.Search("sam")
	if !ok {
		t.Fatal("Search(sam) reported not found after Populate")
	}
	// 276/1000 and 51/1000: frequency is relative to all observations
	// across every category.
	if record["f"] != 0.276 || record["m"] != 0.051 {
		t.Errorf("sam record = %v, want f:0.276 m:0.051", record)
	}
}

func TestPopulateEmptyBatch(t *testing.T) {
	loader := NewLoader(",")
	if err := loader.Populate(nametrie.New()); err == nil {
		t.Error("Populate on an empty batch must fail")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "names_1990.csv", "Ann,f,10\n")
	writeFile(t, dir, "names_1991.csv", "Ann,f,30\nBen,m,60\n")
	writeFile(t, dir, "unrelated.log", "ignore me\n")

	loader := NewLoader(",")
	if err := loader.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	stats := loader.Stats()
	if stats.Files != 2 {
		t.Errorf("Files = %d, want 2", stats.Files)
	}
	if stats.TotalObservations != 100 {
		t.Errorf("TotalObservations = %d, want 100", stats.TotalObservations)
	}

	trie := nametrie.New()
	if err := loader.Populate(trie); err != nil {
		t.Fatalf("Populate: %v", err)
	}
	// The later file's row overwrites the earlier one per category.
	if record, _ := trie.Search("ann"); record["f"] != 0.3 {
		t.Errorf("ann record = %v, want f:0.3 (last write wins)", record)
	}
}

func TestLoadDirEmpty(t *testing.T) {
	loader := NewLoader(",")
	if err := loader.LoadDir(t.TempDir()); err == nil {
		t.Error("LoadDir on a directory without dataset files must fail")
	}
}

func TestDetectFileFormat(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		filename string
		content  string
		want     FileFormat
		wantErr  bool
	}{
		{"plain.csv", "Ann,f,10\n", FormatCSV, false},
		{"plain.tsv", "Ann\tf\t10\n", FormatTSV, false},
		{"sniffed.txt", "# header\nAnn\tf\t10\n", FormatTSV, false},
		{"commas.txt", "Ann,f,10\n", FormatCSV, false},
		{"junk.txt", "no delimiters here\n", FormatUnknown, true},
	}

	for _, tc := range testCases {
		path := writeFile(t, dir, tc.filename, tc.content)
		got, err := DetectFileFormat(path)
		if tc.wantErr != (err != nil) {
			t.Errorf("%s: err = %v, wantErr = %v", tc.filename, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: format = %v, want %v", tc.filename, got, tc.want)
		}
	}

	if err := ValidateFile(filepath.Join(dir, "missing.csv")); err == nil {
		t.Error("ValidateFile on a missing file must fail")
	}
}
