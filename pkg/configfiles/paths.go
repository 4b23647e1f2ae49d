package configfiles

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"
)

// Paths is the resolved set of candidate file locations for one document
// base name. Fields are empty (or empty slices) when no matching file exists.
// Computed fresh on every load cycle; never persisted.
type Paths struct {
	User     string   // <basename>.json
	Official string   // <basename>.official.json
	Others   []string // any other <basename>.*.json, sorted
}

// DefaultDir returns the default configuration directory, under the
// platform's user config directory.
func DefaultDir() string {
	return filepath.Join(xdg.ConfigHome, "tf2-bot-detector", "cfg")
}

// ResolvePaths scans dir for documents with the given base name and sorts
// them into tiers. A missing directory resolves to empty Paths, not an
// error: a fresh install simply has no documents yet.
func ResolvePaths(dir, basename string) (Paths, error) {
	var paths Paths

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return paths, nil
		}
		return paths, fmt.Errorf("scan config dir: %w", err)
	}

	userName := basename + ".json"
	officialName := basename + ".official.json"

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch {
		case name == userName:
			paths.User = filepath.Join(dir, name)
		case name == officialName:
			paths.Official = filepath.Join(dir, name)
		case strings.HasPrefix(name, basename+".") && strings.HasSuffix(name, ".json"):
			paths.Others = append(paths.Others, filepath.Join(dir, name))
		}
	}

	// Deterministic merge order for the third-party tier.
	sort.Strings(paths.Others)

	return paths, nil
}

// UserPath returns the path the user tier of basename is persisted to.
func UserPath(dir, basename string) string {
	return filepath.Join(dir, basename+".json")
}

// OfficialPath returns the path the official tier of basename is persisted
// to. Only the official authority may write it.
func OfficialPath(dir, basename string) string {
	return filepath.Join(dir, basename+".official.json")
}
