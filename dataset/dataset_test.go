// SPDX-License-Identifier: MIT

package dataset_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IDEAL-Lab/shapley-value-simple-game/dataset"
)

func writeSmallDataset(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, "region.csv"), "r_regionkey,r_name\n1,AMERICA\n")
	writeFile(t, filepath.Join(dir, "nation.csv"), "n_nationkey,n_regionkey\n10,1\n11,1\n")
}

func writeSmallAssignment(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, "region-index.json"), `{"row-0": 0}`)
	writeFile(t, filepath.Join(dir, "region-owner.json"), `{"row-0": 1}`)
	writeFile(t, filepath.Join(dir, "nation-index.json"), `{"row-0": 0, "row-1": 1}`)
	writeFile(t, filepath.Join(dir, "nation-owner.json"), `{"row-0": 2, "row-1": 3}`)
}

func TestLoadWithoutAssignment(t *testing.T) {
	csvDir := t.TempDir()
	writeSmallDataset(t, csvDir)

	ds, err := dataset.Load(nil, "tpch", csvDir, "")
	require.NoError(t, err)
	assert.Len(t, ds.Tables, 2)
	assert.True(t, ds.OwnerSet.IsEmpty())
}

func TestLoadWithAssignmentUnionsOwners(t *testing.T) {
	csvDir := t.TempDir()
	assignDir := t.TempDir()
	writeSmallDataset(t, csvDir)
	writeSmallAssignment(t, assignDir)

	ds, err := dataset.Load(nil, "tpch", csvDir, assignDir)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.OwnerSet.Len())
	assert.True(t, ds.OwnerSet.Contains(1))
	assert.True(t, ds.OwnerSet.Contains(2))
	assert.True(t, ds.OwnerSet.Contains(3))
}

func TestJoinNestedLoopEquality(t *testing.T) {
	csvDir := t.TempDir()
	writeSmallDataset(t, csvDir)

	ds, err := dataset.Load(nil, "tpch", csvDir, "")
	require.NoError(t, err)

	plan := dataset.JoinPlan{
		InitTable: "region",
		Steps: []dataset.JoinStep{
			{TableToJoin: "nation", LeftJoinKeys: []string{"r_regionkey"}, RightJoinKeys: []string{"n_regionkey"}},
		},
	}
	rows, err := dataset.Join(ds, plan)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestJoinMissingTable(t *testing.T) {
	csvDir := t.TempDir()
	writeSmallDataset(t, csvDir)
	ds, err := dataset.Load(nil, "tpch", csvDir, "")
	require.NoError(t, err)

	_, err = dataset.Join(ds, dataset.JoinPlan{InitTable: "missing"})
	assert.ErrorIs(t, err, dataset.ErrMissingTable)
}
