package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mediatree/internal/category"
)

func writeTree(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runValidateCmd(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestValidateValidTree(t *testing.T) {
	treeFile := filepath.Join("..", "..", "testdata", "trees", "genre_director.yaml")

	output, err := runValidateCmd(t, "text", treeFile)
	require.NoError(t, err)
	assert.Contains(t, output, "✓ Tree valid")
}

func TestValidateValidTreeJSON(t *testing.T) {
	path := writeTree(t, "tree.cue", `children: [{property: "genre", use_heading: true}]`)

	output, err := runValidateCmd(t, "json", path)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)

	data := resp.Data.(map[string]any)
	assert.Equal(t, true, data["valid"])
	assert.Equal(t, category.Fingerprint(category.DefaultTree()), data["fingerprint"])
}

func TestValidateReportsAllErrors(t *testing.T) {
	path := writeTree(t, "tree.yaml", `
bucket_size: 5
children:
  - use_heading: false
  - property: director
`)

	output, err := runValidateCmd(t, "text", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, output, "✗ Validation failed")
	assert.Contains(t, output, category.ErrCodeBucketWithoutProperty)
	assert.Contains(t, output, category.ErrCodeUngroupedChild)
}

func TestValidateUnknownPropertyJSON(t *testing.T) {
	path := writeTree(t, "tree.yaml", "children:\n  - property: colour\n")

	output, err := runValidateCmd(t, "json", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
		Error  *CLIError        `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalidTree, resp.Error.Code)
	require.Len(t, resp.Data.Errors, 1)
	assert.Equal(t, category.ErrCodeUnknownProperty, resp.Data.Errors[0].Code)
	assert.Equal(t, "root.children[0]", resp.Data.Errors[0].Path)
}

func TestValidateAnyProperty(t *testing.T) {
	path := writeTree(t, "tree.yaml", "children:\n  - property: colour\n")

	_, err := runValidateCmd(t, "text", "--any-property", path)
	require.NoError(t, err)
}

func TestValidateMissingFile(t *testing.T) {
	output, err := runValidateCmd(t, "text", "/nonexistent/tree.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeNotFound)
	assert.Contains(t, output, "not found")
}

func TestValidateUnsupportedExtension(t *testing.T) {
	path := writeTree(t, "tree.toml", "")

	_, err := runValidateCmd(t, "text", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeLoadFailed)
}

func TestValidateMalformedYAML(t *testing.T) {
	path := writeTree(t, "tree.yaml", "children: [\n")

	output, err := runValidateCmd(t, "text", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, output, "E210")
}
