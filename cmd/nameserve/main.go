/*
Package main implements the name index server and CLI application.

NameServe answers prefix queries over a trie of given names, each name
carrying the observed frequency of the name per gender category. It can
operate as a MessagePack IPC server for integration with other tools, or as
a CLI application for testing and debugging.

The index is built once at startup from delimited dataset files and is
read-only afterwards. Frequencies are computed while loading as
count / total observations across every category; the trie stores whatever
weights it is given and never recomputes them.

# Usage

Start the server with default settings:

	nserve

Use a custom dataset directory and enable debug mode:

	nserve -data /path/to/datasets -d

Run in CLI mode for interactive testing:

	nserve -c -limit 10 -prmin 2

The data directory should contain delimited files named names_1990.csv,
names_1991.csv, etc., with one "name,category,count" row per observation.
Pointing -data at a single file loads just that file.

# Configuration

Runtime configuration is managed through a TOML file that supports server
parameters, dataset settings, and CLI defaults:

	[server]
	max_limit = 64
	min_prefix = 1
	max_prefix = 60
	enable_filter = true

	[dataset]
	delimiter = ","
	key_field_width = 20

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Requests carry an
id, an op selector and a key:

	{"id": "req1", "op": "search", "k": "sam"}
	{"id": "req2", "op": "complete", "k": "sam", "l": 24}

Search answers with the per-category weights of an exact entry; complete
answers with pre-formatted display lines for every stored name strictly
longer than the queried prefix, in lexicographic order. See pkg/server for
the message structures.

# CLI Mode

CLI mode provides an interactive interface for testing and debugging index
queries. A bare line enumerates names beginning with the prefix; a line
starting with '=' looks up the exact name. This mode is primarily intended
for development and verifying dataset loads before deploying to server mode.

# Command Line Flags

The following flags control application behavior:

	-data string
	    Directory (or single file) containing dataset files (default "data/")
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of results to return (default from config)
	-prmin int
	    Minimum query length
	-prmax int
	    Maximum query length
	-delim string
	    Dataset field delimiter (default from config)
	-width int
	    Minimum display width of the name column (default from config)
	-no-filter
	    Disable input filtering for debugging

The application resolves data and config paths relative to the executable
location, supporting both development and production deployments.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/nameserve/internal/cli"
	"github.com/bastiangx/nameserve/internal/logger"
	"github.com/bastiangx/nameserve/internal/utils"
	"github.com/bastiangx/nameserve/pkg/config"
	"github.com/bastiangx/nameserve/pkg/dataset"
	"github.com/bastiangx/nameserve/pkg/nametrie"
	"github.com/bastiangx/nameserve/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "nameserve"
	gh      = "https://github.com/bastiangx/nameserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	// custom Flags
	showVersion := flag.Bool("version", false, "Show current version")
	dataPath := flag.String("data", "data/", "Directory (or single file) containing the dataset files")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of results to return")
	minPrefix := flag.Int("prmin", defaultConfig.CLI.DefaultMinLen, "Minimum query length (1 < n <= prmax)")
	maxPrefix := flag.Int("prmax", defaultConfig.CLI.DefaultMaxLen, "Maximum query length")
	noFilter := flag.Bool("no-filter", defaultConfig.CLI.DefaultNoFilter, "Disable input filtering (DBG only) - allows raw queries (digits, symbols, etc)")
	delimiter := flag.String("delim", defaultConfig.Dataset.Delimiter, "Dataset field delimiter")
	fieldWidth := flag.Int("width", defaultConfig.Dataset.KeyFieldWidth, "Minimum display width of the name column")
	configPathFlag := flag.String("config", "", "Custom config file path")

	flag.Parse()

	if *showVersion {
		showVersionInfo()
		os.Exit(0)
	}

	// Initialize path resolver for robust path handling
	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	defaultConfigPath, err := pathResolver.GetConfigPath("nameserve-config.toml")
	if err != nil {
		log.Fatalf("Failed to determine config path: (%v)", err)
	}
	appConfig, activePath, err := config.LoadConfigWithPriority(*configPathFlag, defaultConfigPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))

	// Flags win over config values for the knobs they share.
	if *delimiter == defaultConfig.Dataset.Delimiter {
		*delimiter = appConfig.Dataset.Delimiter
	}
	if *fieldWidth == defaultConfig.Dataset.KeyFieldWidth {
		*fieldWidth = appConfig.Dataset.KeyFieldWidth
	}

	trie := nametrie.NewWithFieldWidth(*fieldWidth)
	loader := dataset.NewLoader(*delimiter)

	resolved := resolveDataPath(pathResolver, *dataPath)
	log.Debugf("Using dataset path: %s", resolved)

	if stat, statErr := os.Stat(resolved); statErr == nil && !stat.IsDir() {
		err = loader.LoadFile(resolved)
	} else {
		err = loader.LoadDir(resolved)
	}
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	if err := loader.Populate(trie); err != nil {
		log.Fatalf("Failed to populate index: %v", err)
	}

	stats := loader.Stats()
	log.Debugf("Index ready: names=[%d] categories=[%d] rows=[%d] skipped=[%d]",
		stats.Names, stats.Categories, stats.Rows, stats.SkippedRows)

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minPrefix", *minPrefix,
			"maxPrefix", *maxPrefix,
			"limit", *limit,
			"noFilter", *noFilter)

		inputHandler := cli.NewInputHandler(trie, *minPrefix, *maxPrefix, *limit, *noFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	showStartupInfo(resolved, stats)

	srv := server.NewServer(trie, appConfig)
	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// resolveDataPath leaves existing file paths alone and runs directories
// through the resolver's candidate search.
func resolveDataPath(pathResolver *utils.PathResolver, dataPath string) string {
	if stat, err := os.Stat(dataPath); err == nil && !stat.IsDir() {
		return dataPath
	}
	resolved, err := pathResolver.GetDataDir(dataPath)
	if err != nil {
		log.Fatalf("Failed to resolve data dir:(%v)", err)
	}
	return resolved
}

// showVersionInfo prints the styled version banner.
func showVersionInfo() {
	vlog := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	vlog.SetStyles(styles)

	vlog.Print("")
	vlog.Print("[ NameServe ] Serves given-name frequencies by prefix!")
	vlog.Print("", "version", Version)
	vlog.Print("")
	vlog.Print("use -h or --help to see available options")
	vlog.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dataDir string, stats dataset.Stats) {
	pid := os.Getpid()
	ilog := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

	println("===========")
	println(" NameServe ")
	println("===========")
	ilog.Infof("Version: %s", Version)
	ilog.Infof("Process ID: [ %d ]", pid)
	ilog.Infof("data dir: ( %s )", dataDir)
	ilog.Infof("names: [ %d ] categories: [ %d ]", stats.Names, stats.Categories)
	ilog.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")
}
