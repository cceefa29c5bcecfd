package main

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tegar-ganang/air-quality-dicoding/aggregate"
	"github.com/tegar-ganang/air-quality-dicoding/dataset"
	"github.com/tegar-ganang/air-quality-dicoding/domain/models"
)

const (
	sqlitePrefix    = "sqlite:"
	exportBatchSize = 5000
)

var ErrNoDSN = errors.New("warehouse dsn is not configured")

// WarehouseReading is one exported row. Missing pollutant levels are NULL.
type WarehouseReading struct {
	ID        uint      `gorm:"primaryKey"`
	Batch     string    `gorm:"size:32;index"`
	Timestamp time.Time `gorm:"index"`
	Station   string    `gorm:"size:64;index"`
	AreaType  string    `gorm:"size:16"`
	PM25      *float64  `gorm:"column:pm25"`
	PM10      *float64  `gorm:"column:pm10"`
	SO2       *float64  `gorm:"column:so2"`
	NO2       *float64  `gorm:"column:no2"`
	CO        *float64  `gorm:"column:co"`
	O3        *float64  `gorm:"column:o3"`
}

func (WarehouseReading) TableName() string {
	return "air_readings"
}

// WarehouseMonthlyMean is the monthly mean of one pollutant at one station.
type WarehouseMonthlyMean struct {
	ID        uint      `gorm:"primaryKey"`
	Batch     string    `gorm:"size:32;index"`
	Station   string    `gorm:"size:64;index"`
	Pollutant string    `gorm:"size:8"`
	Month     time.Time `gorm:"index"`
	Mean      float64
}

func (WarehouseMonthlyMean) TableName() string {
	return "air_monthly_means"
}

type ExportResult struct {
	Batch        string
	Readings     int
	MonthlyMeans int
}

func getMD5String(input string) string {
	hasher := md5.New()
	hasher.Write([]byte(input))
	return hex.EncodeToString(hasher.Sum(nil))
}

// openWarehouse connects to MySQL, or to SQLite when dsn starts with "sqlite:".
func openWarehouse(dsn string) (*gorm.DB, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, ErrNoDSN
	}
	dialector := mysql.Open(dsn)
	if strings.HasPrefix(dsn, sqlitePrefix) {
		dialector = sqlite.Open(strings.TrimPrefix(dsn, sqlitePrefix))
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("connect warehouse: %w", err)
	}
	if err := db.AutoMigrate(&WarehouseReading{}, &WarehouseMonthlyMean{}); err != nil {
		return nil, fmt.Errorf("migrate warehouse: %w", err)
	}
	return db, nil
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func toWarehouseReading(batch string, r models.Reading) WarehouseReading {
	return WarehouseReading{
		Batch:     batch,
		Timestamp: r.Timestamp,
		Station:   r.Station,
		AreaType:  string(r.AreaType),
		PM25:      nullable(r.Levels[models.PM25.Index()]),
		PM10:      nullable(r.Levels[models.PM10.Index()]),
		SO2:       nullable(r.Levels[models.SO2.Index()]),
		NO2:       nullable(r.Levels[models.NO2.Index()]),
		CO:        nullable(r.Levels[models.CO.Index()]),
		O3:        nullable(r.Levels[models.O3.Index()]),
	}
}

// monthlyMeans computes the per-station monthly means of every pollutant, skipping
// months without data.
func monthlyMeans(batch string, ds *dataset.Dataset, names []string) []WarehouseMonthlyMean {
	byStation := make(map[string][]models.Reading)
	for _, r := range ds.Readings {
		byStation[r.Station] = append(byStation[r.Station], r)
	}
	var out []WarehouseMonthlyMean
	for _, name := range names {
		rows := byStation[name]
		if len(rows) == 0 {
			continue
		}
		for _, p := range models.Pollutants {
			for _, point := range aggregate.MonthlyTrend(rows, p) {
				if point.Value == nil {
					continue
				}
				out = append(out, WarehouseMonthlyMean{
					Batch:     batch,
					Station:   name,
					Pollutant: p.String(),
					Month:     point.Time,
					Mean:      *point.Value,
				})
			}
		}
	}
	return out
}

// exportDataset writes the readings and monthly means of ds under a batch id derived
// from the dataset path. A previous export of the same batch is replaced.
func exportDataset(db *gorm.DB, ds *dataset.Dataset, names []string) (ExportResult, error) {
	res := ExportResult{Batch: getMD5String(ds.Path)[:6]}

	readings := make([]WarehouseReading, 0, len(ds.Readings))
	for _, r := range ds.Readings {
		readings = append(readings, toWarehouseReading(res.Batch, r))
	}
	means := monthlyMeans(res.Batch, ds, names)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("batch = ?", res.Batch).Delete(&WarehouseReading{}).Error; err != nil {
			return err
		}
		if err := tx.Where("batch = ?", res.Batch).Delete(&WarehouseMonthlyMean{}).Error; err != nil {
			return err
		}
		if len(readings) > 0 {
			if err := tx.CreateInBatches(readings, exportBatchSize).Error; err != nil {
				return err
			}
		}
		if len(means) > 0 {
			if err := tx.CreateInBatches(means, exportBatchSize).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("export batch %s: %w", res.Batch, err)
	}
	res.Readings = len(readings)
	res.MonthlyMeans = len(means)
	return res, nil
}
