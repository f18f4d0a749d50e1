package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gorm.io/gorm"

	"github.com/qauzy/proxydump/component/database"
	matFs "github.com/qauzy/proxydump/component/fs"
	"github.com/qauzy/proxydump/component/geodata"
	"github.com/qauzy/proxydump/component/sorting"
	C "github.com/qauzy/proxydump/constant"
	"github.com/qauzy/proxydump/models"
)

const insertBatchSize = 500

// ExportSQLite replaces the contents of the proxies table in dbPath with the
// enriched storage. Staging, delete and copy run in one transaction: any
// failure rolls back and leaves the previously committed rows untouched.
func ExportSQLite(storage *models.ProxyStorage, geo geodata.Handle, dbPath string) (err error) {
	if _, statErr := os.Stat(dbPath); errors.Is(statErr, fs.ErrNotExist) {
		if err := matFs.Touch(dbPath); err != nil {
			return fmt.Errorf("create database %s: %w", dbPath, err)
		}
	}
	if err := matFs.CheckWritable(dbPath); err != nil {
		return err
	}

	db, err := database.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := database.Close(db); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if !db.Migrator().HasTable(&models.Record{}) {
		if err := db.Migrator().CreateTable(&models.Record{}); err != nil {
			return fmt.Errorf("create table %s: %w", C.ProxyTable, err)
		}
	}

	proxies := sorting.Sorted(storage.All(), sorting.ByTimeout)
	return db.Transaction(func(tx *gorm.DB) error {
		return swap(tx, geo, proxies)
	})
}

func swap(tx *gorm.DB, geo geodata.Handle, proxies []models.Proxy) error {
	err := tx.Exec("CREATE TEMPORARY TABLE " + C.StagingTable + " AS SELECT * FROM " + C.ProxyTable + " WHERE 0").Error
	if err != nil {
		return fmt.Errorf("create staging table: %w", err)
	}

	records, err := enrich(geo, proxies, models.NewRecord)
	if err != nil {
		return err
	}
	// The staging table carries no constraints, so ids are assigned here.
	for i := range records {
		records[i].ID = uint(i + 1)
	}
	if len(records) > 0 {
		if err := tx.Table(C.StagingTable).CreateInBatches(records, insertBatchSize).Error; err != nil {
			return fmt.Errorf("fill staging table: %w", err)
		}
	}

	for _, stmt := range []string{
		"DELETE FROM " + C.ProxyTable,
		"INSERT INTO " + C.ProxyTable + " SELECT * FROM " + C.StagingTable,
		"DROP TABLE " + C.StagingTable,
	} {
		if err := tx.Exec(stmt).Error; err != nil {
			return fmt.Errorf("%s: %w", stmt, err)
		}
	}
	return nil
}
