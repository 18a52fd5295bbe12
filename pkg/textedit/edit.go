// Package textedit applies batches of byte-range replacements to an
// in-memory registry of sources. It is the integration surface a
// rename-refactor producer needs: it hands over a list of (path, range,
// replacement) edits and gets back the rewritten sources.
package textedit

import (
	"fmt"
	"sort"
)

// Edit replaces the half-open byte range [Start, End) of the source at
// Path with Text.
type Edit struct {
	Path  string
	Start int
	End   int
	Text  string
}

// Apply applies all edits in one batch and returns a new source map;
// the input map is left untouched. Edits may arrive in any order but
// must be non-overlapping within a file and must reference known paths
// and in-bounds ranges.
func Apply(sources map[string]string, edits []Edit) (map[string]string, error) {
	byPath := make(map[string][]Edit)
	for _, e := range edits {
		src, ok := sources[e.Path]
		if !ok {
			return nil, fmt.Errorf("edit references unknown source %q", e.Path)
		}
		if e.Start < 0 || e.End < e.Start || e.End > len(src) {
			return nil, fmt.Errorf("edit range [%d, %d) out of bounds for %q (%d bytes)", e.Start, e.End, e.Path, len(src))
		}
		byPath[e.Path] = append(byPath[e.Path], e)
	}

	result := make(map[string]string, len(sources))
	for path, src := range sources {
		result[path] = src
	}

	for path, fileEdits := range byPath {
		sort.Slice(fileEdits, func(i, j int) bool {
			return fileEdits[i].Start < fileEdits[j].Start
		})
		for i := 1; i < len(fileEdits); i++ {
			if fileEdits[i].Start < fileEdits[i-1].End {
				return nil, fmt.Errorf("overlapping edits in %q at byte %d", path, fileEdits[i].Start)
			}
		}

		// Apply back to front so earlier offsets stay valid.
		src := result[path]
		for i := len(fileEdits) - 1; i >= 0; i-- {
			e := fileEdits[i]
			src = src[:e.Start] + e.Text + src[e.End:]
		}
		result[path] = src
	}
	return result, nil
}
