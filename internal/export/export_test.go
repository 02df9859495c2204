package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/shelfforge/internal/costing"
	"github.com/piwi3910/shelfforge/internal/engine"
	"github.com/piwi3910/shelfforge/internal/material"
	"github.com/piwi3910/shelfforge/internal/model"
)

func testModel(t *testing.T) model.Model {
	t.Helper()
	m, err := model.New(800, 300, 2000, 18, true,
		[]model.Shelf{{Z: 500}, {Z: 1000}, {Z: 1500}},
		[]model.Divider{{XCenter: 400}})
	require.NoError(t, err)
	return m
}

func testBreakdown(m model.Model) costing.Breakdown {
	return costing.Estimate(m, material.Get("melamine_pb"),
		costing.DefaultHardware(), costing.DefaultRates(), costing.DefaultOptions())
}

func requireNonEmptyFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestCollectLabelInfosExpandsQuantities(t *testing.T) {
	m := testModel(t)
	infos := CollectLabelInfos(m, "melamine_pb")

	// 2 sides + 1 bottom + 1 top + 1 divider + 3 shelves x 2 bays.
	assert.Len(t, infos, 11)

	var sides []LabelInfo
	for _, info := range infos {
		if info.Label == "Side" {
			sides = append(sides, info)
		}
	}
	require.Len(t, sides, 2)
	assert.Equal(t, 1, sides[0].Index)
	assert.Equal(t, 2, sides[0].Total)
	assert.Equal(t, 2, sides[1].Index)
	assert.Equal(t, sides[0].PanelID, sides[1].PanelID)

	for _, info := range infos {
		assert.Equal(t, 18.0, info.Thickness)
		assert.Equal(t, "melamine_pb", info.Material)
	}
}

func TestReportPDF(t *testing.T) {
	m := testModel(t)
	path := filepath.Join(t.TempDir(), "report.pdf")

	err := ReportPDF(path, m, testBreakdown(m), nil, engine.Report{})
	require.NoError(t, err)
	requireNonEmptyFile(t, path)
}

func TestLabelsPDF(t *testing.T) {
	m := testModel(t)
	path := filepath.Join(t.TempDir(), "labels.pdf")

	require.NoError(t, LabelsPDF(path, m, "melamine_pb"))
	requireNonEmptyFile(t, path)
}

func TestCutListXLSX(t *testing.T) {
	m := testModel(t)
	path := filepath.Join(t.TempDir(), "cutlist.xlsx")

	require.NoError(t, CutListXLSX(path, m, testBreakdown(m)))
	requireNonEmptyFile(t, path)
}

func TestPanelsDXF(t *testing.T) {
	m := testModel(t)
	path := filepath.Join(t.TempDir(), "panels.dxf")

	require.NoError(t, PanelsDXF(path, m))
	requireNonEmptyFile(t, path)
}
