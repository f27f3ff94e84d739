package aliases

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml"

	"github.com/tomklaasen/eventbrite-tool/internal/names"
)

// Table maps a normalized name key to the canonical spelling it should be
// filed under. It corrects known typos and variants across events.
type Table map[string]Name

type Name struct {
	First string
	Last  string
}

// Load reads an alias table from a TOML file of "raw name" = "First Last"
// pairs. Keys are normalized at load time so lookups agree with the
// normalizer. A missing file yields an empty table and found=false so the
// caller can warn instead of failing.
func Load(path string) (Table, bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Table{}, false, nil
	}

	tree, err := toml.LoadFile(path)
	if err != nil {
		return nil, true, err
	}

	table := Table{}
	for _, key := range tree.Keys() {
		canonical, ok := tree.Get(key).(string)
		if !ok {
			return nil, true, fmt.Errorf("alias for %q is not a string", key)
		}

		table[names.Normalize(key)] = splitName(canonical)
	}

	return table, true, nil
}

// Lookup returns the canonical name for a normalized key. Absence of a match
// is not an error; the raw name passes through unchanged at the call site.
func (t Table) Lookup(key string) (Name, bool) {
	name, ok := t[key]
	return name, ok
}

// splitName breaks "First Last" on the last space. Single-token values
// become a first name with no last name.
func splitName(full string) Name {
	full = strings.TrimSpace(full)

	if i := strings.LastIndex(full, " "); i >= 0 {
		return Name{strings.TrimSpace(full[:i]), full[i+1:]}
	}

	return Name{First: full}
}
