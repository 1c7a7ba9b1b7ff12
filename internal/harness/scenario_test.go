package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalScenario = `
name: minimal
description: "one step"
steps:
  - path: []
`

func TestParseScenario_Minimal(t *testing.T) {
	s, err := ParseScenario([]byte(minimalScenario))
	require.NoError(t, err)
	assert.Equal(t, "minimal", s.Name)
	require.Len(t, s.Steps, 1)
	assert.Empty(t, s.Steps[0].Path)
	assert.Nil(t, s.Steps[0].Expect)
}

func TestParseScenario_RejectsUnknownFields(t *testing.T) {
	_, err := ParseScenario([]byte(minimalScenario + "assertion: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenario_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing name",
			yaml: "description: d\nsteps: [{path: []}]\n",
			want: "name is required",
		},
		{
			name: "missing description",
			yaml: "name: n\nsteps: [{path: []}]\n",
			want: "description is required",
		},
		{
			name: "no steps",
			yaml: "name: n\ndescription: d\n",
			want: "steps list is required",
		},
		{
			name: "both trees",
			yaml: "name: n\ndescription: d\ntree: x\ntree_file: y\nsteps: [{path: []}]\n",
			want: "mutually exclusive",
		},
		{
			name: "untitled item",
			yaml: "name: n\ndescription: d\nitems: [{props: {genre: [A]}}]\nsteps: [{path: []}]\n",
			want: "items[0]: title is required",
		},
		{
			name: "unknown expected error",
			yaml: "name: n\ndescription: d\nsteps: [{path: [], expect: {error: boom}}]\n",
			want: `unknown error "boom"`,
		},
		{
			name: "assertion step out of range",
			yaml: "name: n\ndescription: d\nsteps: [{path: []}]\nassertions: [{type: event_count, step: 1, kind: clear}]\n",
			want: "step 1 out of range",
		},
		{
			name: "unknown assertion",
			yaml: "name: n\ndescription: d\nsteps: [{path: []}]\nassertions: [{type: trace_contains}]\n",
			want: `unknown assertion type "trace_contains"`,
		},
		{
			name: "container_items without label",
			yaml: "name: n\ndescription: d\nsteps: [{path: []}]\nassertions: [{type: container_items}]\n",
			want: "label is required",
		},
		{
			name: "label_order without labels",
			yaml: "name: n\ndescription: d\nsteps: [{path: []}]\nassertions: [{type: label_order}]\n",
			want: "labels list is required",
		},
		{
			name: "event_count with bad kind",
			yaml: "name: n\ndescription: d\nsteps: [{path: []}]\nassertions: [{type: event_count, kind: folder}]\n",
			want: `unknown event kind "folder"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadScenario_ResolvesTreeFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tree.yaml"), []byte("children: [{property: genre}]\n"), 0644))
	path := filepath.Join(dir, "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalScenario+"tree_file: tree.yaml\n"), 0644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tree.yaml"), s.TreeFile)
}

func TestLoadScenario_MissingTreeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalScenario+"tree_file: nope.yaml\n"), 0644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tree file not found")
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}
