package testutil

import (
	"fmt"
	"sort"
	"strings"
)

// DiffProperties returns a description of how the session properties in got differ from
// those in want, or "" if they are the same.
func DiffProperties(got, want map[string]string) string {
	keys := map[string]struct{}{}
	for key := range got {
		keys[key] = struct{}{}
	}
	for key := range want {
		keys[key] = struct{}{}
	}

	var sorted []string
	for key := range keys {
		sorted = append(sorted, key)
	}
	sort.Strings(sorted)

	var diffs []string
	for _, key := range sorted {
		gv, gok := got[key]
		wv, wok := want[key]
		if !gok {
			diffs = append(diffs, fmt.Sprintf("missing %s=%q", key, wv))
		} else if !wok {
			diffs = append(diffs, fmt.Sprintf("extra %s=%q", key, gv))
		} else if gv != wv {
			diffs = append(diffs, fmt.Sprintf("%s: got %q want %q", key, gv, wv))
		}
	}
	return strings.Join(diffs, "; ")
}
