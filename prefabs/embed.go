package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultScene is the spec loaded when no other is named.
const DefaultScene = "scene.yaml"

//go:embed *.yaml
var PrefabsFS embed.FS

// Dir is where on-disk overrides of the embedded specs live.
var Dir = "prefabs"

// Load returns the spec from disk when present, else the embedded copy.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(DiskPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

// ModTime reports the on-disk modification time of a spec.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(DiskPath(cleanPrefabPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// DiskPath returns where the on-disk override of name would live.
func DiskPath(name string) string {
	return filepath.Join(Dir, filepath.FromSlash(cleanPrefabPath(name)))
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}
