// Package locator finds the definitions catalog through the layered
// search path: an explicit override directory first, then the well-known
// XDG config locations, then any registered extra filesystems (typically
// embed.FS resources compiled into the binary — the analog of loading a
// resource from the program's own search path).
//
// Locating is read-only probing. A failure to stat the override path is
// a diagnostic, not an error: the locator logs it and falls through to
// the next candidate.
package locator

import (
	"io/fs"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/crsops/pkg/logging"
	"github.com/arthur-debert/crsops/pkg/types"
)

// AppDir is the subdirectory searched under each XDG config root.
const AppDir = "crsops"

// Origin identifies which layer of the search path produced a location.
type Origin string

const (
	OriginOverride  Origin = "override"
	OriginWellKnown Origin = "well-known"
	OriginResource  Origin = "resource"
)

// Location is a readable definitions source found by Locate.
type Location struct {
	path   string
	origin Origin
	read   func() ([]byte, error)
}

// Path returns the location's path, for diagnostics.
func (l Location) Path() string { return l.path }

// Origin reports which search-path layer matched.
func (l Location) Origin() Origin { return l.origin }

// ReadFile reads the definitions content.
func (l Location) ReadFile() ([]byte, error) { return l.read() }

func (l Location) String() string {
	return string(l.origin) + ":" + l.path
}

// Locate returns the first readable definitions source, probing in order:
// overrideDir/filename, then AppDir/filename under the XDG config roots,
// then filename inside each extra filesystem. ok is false when nothing
// matched; the resolver treats that as a permanently absent source.
func Locate(fsys types.FS, overrideDir, filename string, extra []fs.FS) (Location, bool) {
	logger := logging.GetLogger("locator")

	if overrideDir != "" {
		candidate := filepath.Join(overrideDir, filename)
		info, err := fsys.Stat(candidate)
		switch {
		case err == nil && info.Mode().IsRegular():
			logger.Debug().Str("path", candidate).Msg("Using definitions from override directory")
			return Location{
				path:   candidate,
				origin: OriginOverride,
				read:   func() ([]byte, error) { return fsys.ReadFile(candidate) },
			}, true
		case err != nil:
			// Permission or stat errors degrade to "absent": the
			// override is skipped, not fatal.
			logger.Debug().Err(err).Str("path", candidate).Msg("Override definitions not usable, continuing search")
		default:
			logger.Debug().Str("path", candidate).Msg("Override candidate is not a regular file, continuing search")
		}
	}

	for _, candidate := range wellKnownCandidates(filename) {
		info, err := fsys.Stat(candidate)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		logger.Debug().Str("path", candidate).Msg("Using definitions from well-known location")
		return Location{
			path:   candidate,
			origin: OriginWellKnown,
			read:   func() ([]byte, error) { return fsys.ReadFile(candidate) },
		}, true
	}

	for _, resource := range extra {
		resource := resource
		info, err := fs.Stat(resource, filename)
		if err != nil || info.IsDir() {
			continue
		}
		logger.Debug().Str("path", filename).Msg("Using embedded definitions resource")
		return Location{
			path:   filename,
			origin: OriginResource,
			read:   func() ([]byte, error) { return fs.ReadFile(resource, filename) },
		}, true
	}

	logger.Debug().Str("filename", filename).Msg("No definitions source found")
	return Location{}, false
}

// wellKnownCandidates lists the fixed search locations for a filename:
// $XDG_CONFIG_HOME/crsops first, then each directory of $XDG_CONFIG_DIRS.
func wellKnownCandidates(filename string) []string {
	candidates := make([]string, 0, 1+len(xdg.ConfigDirs))
	candidates = append(candidates, filepath.Join(xdg.ConfigHome, AppDir, filename))
	for _, dir := range xdg.ConfigDirs {
		candidates = append(candidates, filepath.Join(dir, AppDir, filename))
	}
	return candidates
}
