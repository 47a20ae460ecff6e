// Package cli handles cmd line input for DBG and testing the index queries in real-time
package cli

import (
	"bufio"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/nameserve/internal/utils"
	"github.com/bastiangx/nameserve/pkg/nametrie"
	"github.com/charmbracelet/log"
)

// InputHandler processes user input from stdin, running prefix enumerations
// and exact lookups against the index. It accepts flags to control behavior
// such as minimum and maximum prefix length, result limits, and filtering.
type InputHandler struct {
	index           nametrie.Index
	minPrefixLength int
	maxPrefixLength int
	resultLimit     int
	noFilter        bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(index nametrie.Index, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		index:           index,
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		resultLimit:     limit,
		noFilter:        noFilter,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin, and passes the
// trimmed input to handleInput(). A bare line enumerates completions of the
// prefix; a line starting with '=' looks up the exact name.
// Loop terminates if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	log.Print("NameServe CLI")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a prefix and press Enter to list names; prefix with '=' for an exact lookup (Ctrl+C to exit):")

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

// handleInput validates a single query and dispatches it.
func (h *InputHandler) handleInput(line string) {
	exact := strings.HasPrefix(line, "=")
	query := strings.TrimPrefix(line, "=")

	if len(query) < h.minPrefixLength {
		log.Errorf("Query too short: %s", query)
		return
	}
	if len(query) > h.maxPrefixLength {
		log.Errorf("Query too long: %s", query)
		return
	}

	// input filtering by default (unless --no-filter flag is used)
	if !h.noFilter {
		if !utils.IsValidName(query) {
			log.Warnf("No results for query: '%s' (filtered out)", query)
			return
		}
	} else {
		log.Debug("Input filtering disabled - raw queries allowed")
	}

	if exact {
		h.handleSearch(query)
		return
	}
	h.handleEnumerate(query)
}

// handleSearch prints the per-category weights for an exact name.
func (h *InputHandler) handleSearch(name string) {
	start := time.Now()
	weights, found := h.index.Search(name)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for name '%s'", elapsed, name)

	if !found {
		log.Warnf("No entry found for name: '%s'", name)
		return
	}

	labels := make([]string, 0, len(weights))
	for label := range weights {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	log.Printf("Entry '%s' has %d categories:", name, len(labels))
	for _, label := range labels {
		log.Printf("  %-8s %s", label, strconv.FormatFloat(weights[label], 'g', -1, 64))
	}
}

// handleEnumerate prints every stored name beginning with the prefix.
func (h *InputHandler) handleEnumerate(prefix string) {
	start := time.Now()
	lines := h.index.EnumeratePrefix(prefix)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for prefix '%s'", elapsed, prefix)

	if len(lines) == 0 {
		log.Warnf("No names found starting with: '%s'", prefix)
		return
	}

	shown := lines
	if h.resultLimit > 0 && len(shown) > h.resultLimit {
		shown = shown[:h.resultLimit]
	}

	log.Printf("Found %d names starting with '%s':", len(lines), prefix)
	for _, line := range shown {
		log.Print(line)
	}
	if len(shown) < len(lines) {
		log.Printf("... and %d more", len(lines)-len(shown))
	}
}
