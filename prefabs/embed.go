package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Dir is the on-disk override directory. A file there shadows the embedded
// copy with the same name and is what the watcher observes.
const Dir = "prefabs"

//go:embed *.yaml scripts/*.tengo
var files embed.FS

// Load reads a YAML prefab such as "world.yaml" or "prefabs/world.yaml".
func Load(name string) ([]byte, error) {
	return read(strings.TrimPrefix(filepath.ToSlash(name), Dir+"/"))
}

// LoadScript reads a tengo script. The name may be bare ("life.tengo") or
// carry any of the scripts/ or prefabs/scripts/ prefixes.
func LoadScript(name string) ([]byte, error) {
	return read(ScriptKey(name))
}

// ScriptKey normalises a script reference to its "scripts/<file>" form, so
// the different spellings of one script compare equal.
func ScriptKey(name string) string {
	if name == "" {
		return ""
	}
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, Dir+"/")
	s = strings.TrimPrefix(s, "scripts/")
	return path.Join("scripts", s)
}

func read(key string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(key))); err == nil {
		return data, nil
	}
	return files.ReadFile(key)
}
