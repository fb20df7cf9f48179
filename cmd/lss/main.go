package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-errors/errors"
	"github.com/integrii/flaggy"
	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/lss-dev/lss/internal/config"
	"github.com/lss-dev/lss/internal/display"
	"github.com/lss-dev/lss/internal/logging"
	"github.com/lss-dev/lss/internal/progress"
	"github.com/lss-dev/lss/internal/sizecache"
	"github.com/lss-dev/lss/internal/traverse"
)

var (
	version = "unversioned"

	sortSize       = false
	sortName       = false
	sortType       = false
	reverseSort    = false
	dirSizes       = false
	recalculate    = false
	verbose        = false
	ignoreSymlinks = false
	sizeFormat     = ""
	ignoreList     = ""
	configFile     = ""
)

func main() {
	flaggy.SetName("lss")
	flaggy.SetDescription("directory listing with cached recursive sizes")

	flaggy.Bool(&sortSize, "s", "size", "Sort by size (enables directory size calculation)")
	flaggy.Bool(&sortName, "n", "name", "Sort by name instead of size")
	flaggy.Bool(&sortType, "t", "type", "Sort by entry type instead of size")
	flaggy.Bool(&reverseSort, "r", "reverse", "Reverse the sort order")
	flaggy.Bool(&dirSizes, "d", "dir-sizes", "Calculate recursive directory sizes")
	flaggy.Bool(&recalculate, "", "recalculate", "Ignore the existing cache and recompute all directory sizes")
	flaggy.Bool(&verbose, "v", "verbose", "Verbose diagnostics instead of the spinner")
	flaggy.Bool(&ignoreSymlinks, "", "ignore-symlinks", "Do not follow symlinks when sizing directories")
	flaggy.String(&sizeFormat, "f", "size-format", "Size format: bytes, decimal (KB/MB), binary (KiB/MiB)")
	flaggy.String(&ignoreList, "i", "ignore", "Comma-separated ignore patterns (gitignore syntax)")
	flaggy.String(&configFile, "c", "config", "Path to a config file")
	flaggy.SetVersion(version)
	flaggy.Parse()

	if err := run(); err != nil {
		if verbose {
			log.Fatal(errors.Wrap(err, 0).ErrorStack())
		}
		log.Fatal(err.Error())
	}
}

func run() error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Verbose = true
	}
	if ignoreSymlinks {
		cfg.IgnoreSymlinks = true
	}
	if sizeFormat != "" {
		cfg.SizeFormat = sizeFormat
	}

	format, err := display.ParseFormat(cfg.SizeFormat)
	if err != nil {
		return err
	}

	logger := logging.New(os.Stderr, cfg.Verbose)

	store, _, err := sizecache.Load(cfg.CachePath, logger)
	if err != nil {
		return err
	}

	var ignoreFn traverse.IgnoreFunc
	if ignoreList != "" {
		patterns := splitPatterns(ignoreList)
		logger.Info(fmt.Sprintf("ignore patterns: %v", patterns))
		ignoreFn = ignorePredicate(patterns)
	}

	tctx := &traverse.Context{
		Cache:          store,
		Log:            logger,
		IgnoreSymlinks: cfg.IgnoreSymlinks,
		ForceRecompute: recalculate,
	}

	entries, err := tctx.ScanRoot(".", ignoreFn)
	if err != nil {
		return err
	}

	var tracker progress.SpinnerProgressTracker = progress.NoopSpinnerProgressTracker{}
	if !cfg.Verbose {
		tracker = progress.NewTermSpinner(os.Stderr, len(entries))
	}

	calcSizes := dirSizes || sortSize
	if calcSizes {
		tracker.SetMessage("calculating directory sizes")
		for i, e := range entries {
			tctx.ResolveSize(e)
			tracker.SetDone(i + 1)
		}
		if err := sizecache.Save(store, cfg.CachePath, logger); err != nil {
			tracker.SetError(err)
			tracker.MarkFinished()
			return err
		}
	}
	tracker.MarkFinished()

	mode := display.SortBySize
	switch {
	case sortName:
		mode = display.SortByName
	case sortType:
		mode = display.SortByType
	}
	sorted := display.Sort(entries, mode, reverseSort)

	display.Render(os.Stdout, sorted, format)

	fmt.Println()
	fmt.Printf("Total items: %d\n", len(sorted))
	if calcSizes {
		if recalculate {
			fmt.Println("Note: all directory sizes were recalculated and the cache was updated")
		} else {
			fmt.Println("Note: directory sizes loaded from cache where available")
		}
		fmt.Printf("Cache location: %s\n", cfg.CachePath)
	}
	return nil
}

// ignorePredicate compiles the patterns once and answers per path. The
// traversal engine only ever sees the yes/no callback. Directories are
// matched with a trailing slash so dir-only patterns ("build/") behave as
// in gitignore.
func ignorePredicate(patterns []string) traverse.IgnoreFunc {
	gi := gitignore.CompileIgnoreLines(patterns...)
	return func(path string) bool {
		name := filepath.Base(path)
		if info, err := os.Lstat(path); err == nil && info.IsDir() {
			return gi.MatchesPath(name + "/")
		}
		return gi.MatchesPath(name)
	}
}

func splitPatterns(list string) []string {
	var out []string
	for _, p := range strings.Split(list, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
