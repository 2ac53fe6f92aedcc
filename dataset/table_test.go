// SPDX-License-Identifier: MIT

package dataset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IDEAL-Lab/shapley-value-simple-game/dataset"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadTableAttachesOwnerMap(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "region.csv")
	indexPath := filepath.Join(dir, "region-index.json")
	ownerPath := filepath.Join(dir, "region-owner.json")

	writeFile(t, csvPath, "r_regionkey,r_name\n1,AMERICA\n2,ASIA\n")
	writeFile(t, indexPath, `{"row-0": 0, "row-1": 1}`)
	writeFile(t, ownerPath, `{"row-0": 7, "row-1": 9}`)

	table, err := dataset.LoadTable("region", csvPath, indexPath, ownerPath)
	require.NoError(t, err)

	assert.Equal(t, []string{"r_regionkey", "r_name"}, table.Header)
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, "AMERICA", table.Rows[0]["r_name"])
	assert.True(t, table.OwnerMap[0].Contains(7))
	assert.True(t, table.OwnerMap[1].Contains(9))
}

func TestLoadTableRejectsUnresolvedRowKey(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "t.csv")
	indexPath := filepath.Join(dir, "t-index.json")
	ownerPath := filepath.Join(dir, "t-owner.json")

	writeFile(t, csvPath, "a\n1\n")
	writeFile(t, indexPath, `{"row-0": 0}`)
	writeFile(t, ownerPath, `{}`)

	_, err := dataset.LoadTable("t", csvPath, indexPath, ownerPath)
	assert.ErrorIs(t, err, dataset.ErrInvalidAssignment)
}

func TestLoadTableWithoutAssignment(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "plain.csv")
	writeFile(t, csvPath, "a,b\n1,2\n3,4\n")

	table, err := dataset.LoadTableWithoutAssignment("plain", csvPath)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
	assert.Empty(t, table.OwnerMap)
}
