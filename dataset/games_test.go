// SPDX-License-Identifier: MIT

package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IDEAL-Lab/shapley-value-simple-game/dataset"
)

func TestGamesFromDataSetBuildsOneGamePerJoinedRow(t *testing.T) {
	csvDir := t.TempDir()
	assignDir := t.TempDir()
	writeSmallDataset(t, csvDir)
	writeSmallAssignment(t, assignDir)

	ds, err := dataset.Load(nil, "tpch", csvDir, assignDir)
	require.NoError(t, err)

	reg := dataset.NewRegistry()
	reg.Add("tpch", dataset.JoinPlan{
		InitTable: "region",
		Steps: []dataset.JoinStep{
			{TableToJoin: "nation", LeftJoinKeys: []string{"r_regionkey"}, RightJoinKeys: []string{"n_regionkey"}},
		},
	})

	games, err := dataset.GamesFromDataSet(reg, ds)
	require.NoError(t, err)
	require.Len(t, games, 2)

	for _, g := range games {
		assert.Equal(t, 2, g.OwnerLen())
		assert.True(t, g.OwnerSet.Contains(1))
	}
}

func TestGamesFromDataSetUnknownPlan(t *testing.T) {
	csvDir := t.TempDir()
	writeSmallDataset(t, csvDir)
	ds, err := dataset.Load(nil, "unregistered", csvDir, "")
	require.NoError(t, err)

	_, err = dataset.GamesFromDataSet(dataset.NewRegistry(), ds)
	assert.ErrorIs(t, err, dataset.ErrMissingJoinPlan)
}
