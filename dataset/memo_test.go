package dataset

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellLoadsOnce(t *testing.T) {
	calls := 0
	cell := NewCell(func() (*Dataset, error) {
		calls++
		return &Dataset{Path: "x"}, nil
	})
	assert.False(t, cell.Loaded())

	first, err := cell.Get()
	require.NoError(t, err)
	second, err := cell.Get()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
	assert.True(t, cell.Loaded())

	cell.Invalidate()
	assert.False(t, cell.Loaded())
	third, err := cell.Get()
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, calls)
}

func TestCellDoesNotCacheErrors(t *testing.T) {
	calls := 0
	cell := NewCell(func() (*Dataset, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("boom")
		}
		return &Dataset{}, nil
	})
	_, err := cell.Get()
	assert.Error(t, err)
	_, err = cell.Get()
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestFileCellServesStaleUntilInvalidated(t *testing.T) {
	path := writeFile(t, "main_data.csv", sampleCSV)
	cell := FileCell(path)

	ds, err := cell.Get()
	require.NoError(t, err)
	require.Len(t, ds.Readings, 3)

	require.NoError(t, os.WriteFile(path, []byte("datetime,station,PM2.5,PM10,SO2,NO2,CO,O3\n"), 0o644))
	ds, err = cell.Get()
	require.NoError(t, err)
	assert.Len(t, ds.Readings, 3)

	cell.Invalidate()
	ds, err = cell.Get()
	require.NoError(t, err)
	assert.Empty(t, ds.Readings)
}
