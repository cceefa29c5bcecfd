package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tegar-ganang/air-quality-dicoding/dataset"
	"github.com/tegar-ganang/air-quality-dicoding/stations"
)

const warehouseCSV = `datetime,station,PM2.5,PM10,SO2,NO2,CO,O3
2013-03-01 00:00:00,Aotizhongxin,10,20,3,15,300,70
2013-03-02 00:00:00,Aotizhongxin,30,40,5,25,500,NA
2013-04-01 00:00:00,Aotizhongxin,NA,60,7,35,700,90
2013-03-01 00:00:00,Changping,150,160,9,45,900,20
`

func TestOpenWarehouseRequiresDSN(t *testing.T) {
	_, err := openWarehouse("  ")
	assert.ErrorIs(t, err, ErrNoDSN)
}

func TestExportDataset(t *testing.T) {
	db, err := openWarehouse(sqlitePrefix + filepath.Join(t.TempDir(), "warehouse.db"))
	require.NoError(t, err)

	ds, err := dataset.Read(strings.NewReader(warehouseCSV))
	require.NoError(t, err)
	ds.Path = "main_data.csv"

	res, err := exportDataset(db, ds, stations.Default().Names())
	require.NoError(t, err)
	assert.Equal(t, getMD5String("main_data.csv")[:6], res.Batch)
	assert.Equal(t, 4, res.Readings)
	// Aotizhongxin: March for all six, April for five (no PM2.5). Changping: March for all six.
	assert.Equal(t, 17, res.MonthlyMeans)

	var missing int64
	require.NoError(t, db.Model(&WarehouseReading{}).Where("pm25 IS NULL").Count(&missing).Error)
	assert.EqualValues(t, 1, missing)

	var mean WarehouseMonthlyMean
	require.NoError(t, db.Where("station = ? AND pollutant = ?", "Aotizhongxin", "PM2.5").Order("month").First(&mean).Error)
	assert.InDelta(t, 20.0, mean.Mean, 1e-9)

	var row WarehouseReading
	require.NoError(t, db.Where("station = ?", "Changping").First(&row).Error)
	assert.Equal(t, "Suburban", row.AreaType)
	require.NotNil(t, row.PM25)
	assert.InDelta(t, 150.0, *row.PM25, 1e-9)

	// Exporting the same dataset again replaces the batch.
	_, err = exportDataset(db, ds, stations.Default().Names())
	require.NoError(t, err)
	var total int64
	require.NoError(t, db.Model(&WarehouseReading{}).Count(&total).Error)
	assert.EqualValues(t, 4, total)
}
