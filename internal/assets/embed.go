// Package assets provides the embedded slip artwork: the garment-part line
// drawings referenced by layout elements. Embedding keeps print output
// self-contained so generated HTML never reaches for files on disk.
package assets

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed svg/*.svg
var svgFiles embed.FS

var (
	rawOnce  sync.Once
	rawCache map[string]string
)

func loadAll() {
	rawCache = make(map[string]string)
	entries, err := svgFiles.ReadDir("svg")
	if err != nil {
		return
	}
	for _, entry := range entries {
		data, err := svgFiles.ReadFile("svg/" + entry.Name())
		if err != nil {
			continue
		}
		rawCache[entry.Name()] = strings.TrimSpace(string(data))
	}
}

// Raw returns the inline SVG markup for an asset name.
func Raw(name string) (string, error) {
	rawOnce.Do(loadAll)
	svg, ok := rawCache[name]
	if !ok {
		return "", fmt.Errorf("unknown slip asset: %s", name)
	}
	return svg, nil
}

// Exists reports whether an asset name is known.
func Exists(name string) bool {
	rawOnce.Do(loadAll)
	_, ok := rawCache[name]
	return ok
}

// Names lists all embedded asset names, sorted.
func Names() []string {
	rawOnce.Do(loadAll)
	names := make([]string, 0, len(rawCache))
	for name := range rawCache {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
