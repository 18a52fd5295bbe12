package textedit_test

import (
	"testing"

	"github.com/leapstack-labs/satchel/pkg/textedit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySingleFile(t *testing.T) {
	sources := map[string]string{
		"a.src": "var counter = counter + 1",
	}
	// Rename both occurrences of "counter" to "total"; edits arrive
	// out of order.
	edits := []textedit.Edit{
		{Path: "a.src", Start: 14, End: 21, Text: "total"},
		{Path: "a.src", Start: 4, End: 11, Text: "total"},
	}

	got, err := textedit.Apply(sources, edits)
	require.NoError(t, err)
	assert.Equal(t, "var total = total + 1", got["a.src"])

	// Input registry untouched.
	assert.Equal(t, "var counter = counter + 1", sources["a.src"])
}

func TestApplyGroupsByFile(t *testing.T) {
	sources := map[string]string{
		"a.src": "use old;",
		"b.src": "old.run()",
		"c.src": "unrelated",
	}
	edits := []textedit.Edit{
		{Path: "a.src", Start: 4, End: 7, Text: "new"},
		{Path: "b.src", Start: 0, End: 3, Text: "new"},
	}

	got, err := textedit.Apply(sources, edits)
	require.NoError(t, err)
	assert.Equal(t, "use new;", got["a.src"])
	assert.Equal(t, "new.run()", got["b.src"])
	assert.Equal(t, "unrelated", got["c.src"])
}

func TestApplyInsertionAndDeletion(t *testing.T) {
	sources := map[string]string{"a.src": "abcdef"}

	got, err := textedit.Apply(sources, []textedit.Edit{
		{Path: "a.src", Start: 3, End: 3, Text: "XYZ"}, // pure insertion
		{Path: "a.src", Start: 0, End: 1, Text: ""},    // pure deletion
	})
	require.NoError(t, err)
	assert.Equal(t, "bcXYZdef", got["a.src"])
}

func TestApplyValidation(t *testing.T) {
	sources := map[string]string{"a.src": "0123456789"}

	tests := []struct {
		name    string
		edits   []textedit.Edit
		wantErr string
	}{
		{
			name:    "unknown source",
			edits:   []textedit.Edit{{Path: "missing.src", Start: 0, End: 1}},
			wantErr: "unknown source",
		},
		{
			name:    "negative start",
			edits:   []textedit.Edit{{Path: "a.src", Start: -1, End: 1}},
			wantErr: "out of bounds",
		},
		{
			name:    "end before start",
			edits:   []textedit.Edit{{Path: "a.src", Start: 5, End: 2}},
			wantErr: "out of bounds",
		},
		{
			name:    "end past input",
			edits:   []textedit.Edit{{Path: "a.src", Start: 0, End: 11}},
			wantErr: "out of bounds",
		},
		{
			name: "overlapping edits",
			edits: []textedit.Edit{
				{Path: "a.src", Start: 0, End: 5, Text: "x"},
				{Path: "a.src", Start: 4, End: 8, Text: "y"},
			},
			wantErr: "overlapping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := textedit.Apply(sources, tt.edits)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestApplyNoEdits(t *testing.T) {
	sources := map[string]string{"a.src": "unchanged"}
	got, err := textedit.Apply(sources, nil)
	require.NoError(t, err)
	assert.Equal(t, sources, got)
}
