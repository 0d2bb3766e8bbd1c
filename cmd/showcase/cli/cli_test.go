package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	_ "github.com/rksiitd1/amazing-dashboard/testing"
)

const testPass = "6f1c1d4e-8a41-4a7c-9d55-3c2f6f0c9b10"

func TestSampleCommandReplaysPass(t *testing.T) {
	first := new(bytes.Buffer)
	require.Equal(t, 0, SampleCommand(SampleOptions{Pass: testPass, Stdout: first, Stderr: new(bytes.Buffer)}))
	second := new(bytes.Buffer)
	require.Equal(t, 0, SampleCommand(SampleOptions{Pass: testPass, Stdout: second, Stderr: new(bytes.Buffer)}))

	assert.Equal(t, first.String(), second.String())
	lines := strings.Split(strings.TrimSpace(first.String()), "\n")
	require.Len(t, lines, 367)
	assert.Equal(t, "Date,Value,Category", lines[0])
}

func TestSampleCommandWritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sample.csv")
	stderr := new(bytes.Buffer)
	require.Equal(t, 0, SampleCommand(SampleOptions{Pass: testPass, Out: out, Stderr: stderr}))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("Date,Value,Category\n2024-01-01,")))
	assert.Contains(t, stderr.String(), testPass)
}

func TestSampleCommandRejectsBadPass(t *testing.T) {
	stderr := new(bytes.Buffer)
	assert.Equal(t, 1, SampleCommand(SampleOptions{Pass: "nope", Stdout: new(bytes.Buffer), Stderr: stderr}))
	assert.Contains(t, stderr.String(), "invalid pass id")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDescribeCommandHuman(t *testing.T) {
	path := writeFile(t, "data.csv", "x,y\n1,2\n2,4\n3,6\n4,8\n5,10\n6,12\n")
	stdout := new(bytes.Buffer)
	require.Equal(t, 0, DescribeCommand(DescribeOptions{Path: path, Stdout: stdout, Stderr: new(bytes.Buffer)}))

	out := stdout.String()
	assert.Contains(t, out, "6 rows x 2 columns")
	assert.Contains(t, out, "Data Preview")
	assert.Contains(t, out, "Data Statistics")
	assert.Contains(t, out, "3.500000")
}

func TestDescribeCommandJSON(t *testing.T) {
	path := writeFile(t, "labels.csv", "city\nParis\nRome\nParis\n")
	stdout := new(bytes.Buffer)
	require.Equal(t, 0, DescribeCommand(DescribeOptions{Path: path, JSONOutput: true, Stdout: stdout, Stderr: new(bytes.Buffer)}))

	var summary DescribeSummary
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &summary))
	assert.Equal(t, 3, summary.Rows)
	assert.Equal(t, []string{"count", "unique", "top", "freq"}, summary.Order)
	assert.Equal(t, []string{"Paris"}, summary.Stats["top"])
	assert.Equal(t, []string{"2"}, summary.Stats["freq"])
}

func TestDescribeCommandXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"a", "b"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{1, 2}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{3, 4}))
	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	stdout := new(bytes.Buffer)
	require.Equal(t, 0, DescribeCommand(DescribeOptions{Path: path, JSONOutput: true, Stdout: stdout, Stderr: new(bytes.Buffer)}))
	var summary DescribeSummary
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &summary))
	assert.Equal(t, []string{"a", "b"}, summary.Columns)
	assert.Equal(t, []string{"2.000000", "3.000000"}, summary.Stats["mean"])
}

func TestDescribeCommandErrors(t *testing.T) {
	stderr := new(bytes.Buffer)
	assert.Equal(t, 1, DescribeCommand(DescribeOptions{Path: filepath.Join(t.TempDir(), "missing.csv"), Stderr: stderr}))

	stderr.Reset()
	path := writeFile(t, "notes.txt", "hello")
	assert.Equal(t, 1, DescribeCommand(DescribeOptions{Path: path, Stdout: new(bytes.Buffer), Stderr: stderr}))
	assert.Contains(t, stderr.String(), "unsupported file format")
}

func TestRootCommandDefaultsToServe(t *testing.T) {
	served := 0
	root := NewRootCommand(func(ctx context.Context) error {
		served++
		return nil
	})
	root.SetArgs([]string{})
	require.NoError(t, root.ExecuteContext(context.Background()))
	root.SetArgs([]string{"serve"})
	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Equal(t, 2, served)
}

func TestRootCommandSample(t *testing.T) {
	root := NewRootCommand(func(ctx context.Context) error { return nil })
	stdout := new(bytes.Buffer)
	root.SetOut(stdout)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"sample", "--pass", testPass})
	require.NoError(t, root.Execute())
	assert.True(t, strings.HasPrefix(stdout.String(), "Date,Value,Category\n"))

	root.SetArgs([]string{"sample", "--pass", "bad"})
	assert.ErrorIs(t, root.Execute(), ErrExit)
}
