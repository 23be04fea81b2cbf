package extract

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// BuiltinPrefix marks a schema reference that names an embedded schema
// rather than a file, as in "builtin:erc20-transfer".
const BuiltinPrefix = "builtin:"

//go:embed schemas/*.yaml
var schemaFS embed.FS

var (
	builtinMu sync.RWMutex
	builtins  = make(map[string]*Schema)
)

// LoadBuiltin loads an embedded schema by name (e.g. "erc20-transfer").
// Parsed schemas are cached; callers must not modify the result.
func LoadBuiltin(name string) (*Schema, error) {
	builtinMu.RLock()
	if s, ok := builtins[name]; ok {
		builtinMu.RUnlock()
		return s, nil
	}
	builtinMu.RUnlock()

	data, err := schemaFS.ReadFile("schemas/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("builtin schema %q not found: %w", name, err)
	}

	s, err := ParseSchema(data)
	if err != nil {
		return nil, fmt.Errorf("parsing builtin schema %q: %w", name, err)
	}

	builtinMu.Lock()
	builtins[name] = s
	builtinMu.Unlock()

	return s, nil
}

// BuiltinSchemas returns the names of all embedded schemas, sorted.
func BuiltinSchemas() ([]string, error) {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("reading schemas directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") {
			names = append(names, strings.TrimSuffix(name, ".yaml"))
		}
	}
	sort.Strings(names)
	return names, nil
}

// ResolveSchema loads ref as a builtin when it carries BuiltinPrefix and
// as a schema file otherwise.
func ResolveSchema(ref string) (*Schema, error) {
	if name, ok := strings.CutPrefix(ref, BuiltinPrefix); ok {
		return LoadBuiltin(name)
	}
	return LoadSchema(ref)
}
