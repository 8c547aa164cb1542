package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("JWT_SECRET_KEY", "segredo-de-teste")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommands(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"migrate", "sweep-overdue", "export-statement"}, names)
}

func TestSweepOverdueOnEmptyStore(t *testing.T) {
	out, err := execute(t, "sweep-overdue", "--as-of", "2026-02-01")
	require.NoError(t, err)
	assert.Contains(t, out, "0 cotas marcadas como OVERDUE")
}

func TestSweepOverdueRejectsBadDate(t *testing.T) {
	_, err := execute(t, "sweep-overdue", "--as-of", "01/02/2026")
	assert.Error(t, err)
}

func TestExportStatementRequiresBlock(t *testing.T) {
	_, err := execute(t, "export-statement")
	assert.Error(t, err)
}

func TestExportStatementUnknownBlock(t *testing.T) {
	out := t.TempDir() + "/extras.xlsx"
	_, err := execute(t, "export-statement", "--block", "inexistente", "--out", out)
	assert.Error(t, err)
	assert.NoFileExists(t, out)
}
