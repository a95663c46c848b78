// Package simpleindex generates a static PEP 503 "simple repository" index
// from a directory of built wheel files.
//
// The output is the two-level tree that package installers crawl:
//
//	<output-dir>/index.html           links to every project
//	<output-dir>/<project>/index.html links to every wheel of one project
//
// Generation is a pure function of the wheel directory listing and the base
// URL: the output tree is fully regenerated on every run, so re-running over
// the same input produces byte-identical output, and a project that is no
// longer present in the input leaves no stale page behind.
package simpleindex

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/datawire/dlib/dlog"

	"github.com/datawire/wheelhouse/pkg/python/pep503"
	"github.com/datawire/wheelhouse/pkg/python/pypa/bdist"
)

// Config is the full parameter set for one generation run.
type Config struct {
	// WheelsDir is the directory to scan (non-recursively) for ".whl" files.
	// It must already exist.
	WheelsDir string `json:"wheelsDir"`
	// OutputDir is the directory to regenerate the index tree in.  It is
	// created (parents included) if absent, and wiped first if present.
	OutputDir string `json:"outputDir"`
	// BaseURL is the URL prefix under which the wheel files themselves are
	// downloadable; it is distinct from wherever the index pages end up
	// being hosted.
	BaseURL string `json:"baseURL"`
}

// Summary reports what one generation run did.
type Summary struct {
	// Scanned counts the ".whl" directory entries that were considered.
	Scanned int
	// Parsed counts the entries that had valid wheel filenames.
	Parsed int
	// Rejected lists the entries that did not, in directory-listing order.
	Rejected []string
	// Packages maps each normalized project name to the sorted wheel
	// filenames that belong to it.
	Packages map[string][]string
}

// safeName reports whether a distribution name is confined to the characters
// that PEP 503 allows in a project name.  The normalized form of anything
// else could not be trusted as a directory name.
func safeName(name string) bool {
	for _, char := range name {
		if !(('a' <= char && char <= 'z') ||
			('A' <= char && char <= 'Z') ||
			('0' <= char && char <= '9') ||
			char == '.' ||
			char == '-' ||
			char == '_') {
			return false
		}
	}
	return true
}

// Generate scans cfg.WheelsDir and regenerates the index tree in
// cfg.OutputDir.
//
// A candidate file whose name does not parse as a wheel filename is warned
// about, counted in the Summary, and skipped; it never aborts the run.  A
// missing wheel directory is a fatal error, reported before anything is
// written.  An input directory containing no wheels at all is not an error:
// the (empty) root page is still written and the run succeeds.
func Generate(ctx context.Context, cfg Config) (*Summary, error) {
	entries, err := os.ReadDir(cfg.WheelsDir)
	if err != nil {
		return nil, fmt.Errorf("list wheel directory: %w", err)
	}

	summary := &Summary{
		Packages: make(map[string][]string),
	}
	groups := make(map[string]map[string]struct{})
	for _, entry := range entries {
		filename := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(filename, ".whl") {
			continue
		}
		summary.Scanned++
		info, err := bdist.ParseFilename(filename)
		if err == nil && !safeName(info.Distribution) {
			err = fmt.Errorf("illegal character in distribution name: %q", filename)
		}
		if err != nil {
			dlog.Warnf(ctx, "skipping: %v", err)
			summary.Rejected = append(summary.Rejected, filename)
			continue
		}
		summary.Parsed++
		pkgname := pep503.Normalize(info.Distribution)
		if groups[pkgname] == nil {
			groups[pkgname] = make(map[string]struct{})
		}
		groups[pkgname][filename] = struct{}{}
	}
	pkgnames := make([]string, 0, len(groups))
	for pkgname, set := range groups {
		pkgnames = append(pkgnames, pkgname)
		filenames := make([]string, 0, len(set))
		for filename := range set {
			filenames = append(filenames, filename)
		}
		sort.Strings(filenames)
		summary.Packages[pkgname] = filenames
	}
	sort.Strings(pkgnames)
	if summary.Parsed == 0 {
		dlog.Warnf(ctx, "no wheel files found in %q", cfg.WheelsDir)
	}

	// Fully regenerate the output tree; a stale page for a project that is
	// no longer present in the input must not survive.
	if err := os.RemoveAll(cfg.OutputDir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o777); err != nil {
		return nil, err
	}
	for _, pkgname := range pkgnames {
		pkgdir := filepath.Join(cfg.OutputDir, pkgname)
		if err := os.MkdirAll(pkgdir, 0o777); err != nil {
			return nil, err
		}
		page := pep503.RenderProjectPage(pkgname, summary.Packages[pkgname], cfg.BaseURL)
		if err := os.WriteFile(filepath.Join(pkgdir, "index.html"), []byte(page), 0o666); err != nil {
			return nil, err
		}
	}
	rootPage := pep503.RenderRootPage(pkgnames)
	if err := os.WriteFile(filepath.Join(cfg.OutputDir, "index.html"), []byte(rootPage), 0o666); err != nil {
		return nil, err
	}

	return summary, nil
}
