// Package catalog implements the persistent work catalog (C7) from
// spec.md §3, §4.7: a single-table store of input files with probed
// attributes and a status lifecycle, backed by GORM + SQLite — the same
// stack mantonx-viewra's transcode session store uses.
package catalog

import (
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	revuperrors "github.com/five82/revup/internal/errors"
)

// Status values for the record lifecycle (spec.md §3):
// pending -> processing -> done, with skipped as a sink state entered at
// insert time only.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusDone       = "done"
	StatusSkipped    = "skipped"
)

// Record is a catalog row, per spec.md §3 "Catalog record".
type Record struct {
	ID uint `gorm:"primaryKey"`

	Filename string `gorm:"uniqueIndex;not null"`
	Filepath string `gorm:"not null;index"`

	Width               int64
	Height              int64
	Duration            float64
	PixelFormat         string
	DisplayAspectRatio  string
	SampleAspectRatio   string
	ContainerFormat     string
	SizeBytes           int64
	FolderSizeBytes     int64
	Bitrate             int64
	Codec               string
	MaxResolutionPolicy int64
	ContentHash         string

	Status string `gorm:"not null;default:'pending';index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName names the table "video_info", matching the column family
// spec.md §3 describes (and the original's video_info table).
func (Record) TableName() string {
	return "video_info"
}

// Catalog is a single locked handle onto the store (§4.7, §5: "all access
// within one run goes through a single locked handle").
type Catalog struct {
	mu sync.Mutex
	db *gorm.DB
}

// Open opens (creating if necessary) the catalog database at path and
// ensures its schema.
func Open(path string) (*Catalog, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, revuperrors.NewCatalogError("failed to open catalog database", err)
	}

	c := &Catalog{db: db}
	if err := c.EnsureSchema(); err != nil {
		return nil, err
	}
	return c, nil
}

// Close releases the underlying database connection.
func (c *Catalog) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return revuperrors.NewCatalogError("failed to access underlying database handle", err)
	}
	return sqlDB.Close()
}

// EnsureSchema idempotently creates the catalog's schema (§4.7).
func (c *Catalog) EnsureSchema() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.db.AutoMigrate(&Record{}); err != nil {
		return revuperrors.NewCatalogError("failed to migrate catalog schema", err)
	}
	return nil
}

// InsertIfAbsent inserts rec keyed by Filename if no record with that
// filename exists. Records whose Height exceeds maxResolutionPolicy are
// inserted with status skipped; otherwise pending (§4.7, §8 property 5).
// Returns whether a row was inserted.
func (c *Catalog) InsertIfAbsent(rec *Record, maxResolutionPolicy int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var existing Record
	err := c.db.Where("filename = ?", rec.Filename).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return false, revuperrors.NewCatalogError("failed to query catalog for "+rec.Filename, err)
	}

	rec.MaxResolutionPolicy = maxResolutionPolicy
	if rec.Height > maxResolutionPolicy {
		rec.Status = StatusSkipped
	} else {
		rec.Status = StatusPending
	}

	if err := c.db.Create(rec).Error; err != nil {
		return false, revuperrors.NewCatalogError("failed to insert catalog record for "+rec.Filename, err)
	}
	return true, nil
}

// Transition performs an unconditional status write for the record with
// the given filepath (§4.7).
func (c *Catalog) Transition(filepath, status string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.db.Model(&Record{}).Where("filepath = ?", filepath).Update("status", status).Error
	if err != nil {
		return revuperrors.NewCatalogError("failed to transition "+filepath+" to "+status, err)
	}
	return nil
}

// ClearStaleProcessing resets any record left in status=processing from a
// prior crashed run back to pending, except the file about to start
// (§4.7, and the original's `UPDATE video_info SET status = 'pending'
// WHERE status = 'processing' AND filepath != ?1`, run once per file
// before it starts — see SPEC_FULL.md's Supplemented Features).
func (c *Catalog) ClearStaleProcessing(exceptFilepath string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.db.Model(&Record{}).
		Where("status = ? AND filepath != ?", StatusProcessing, exceptFilepath).
		Update("status", StatusPending).Error
	if err != nil {
		return revuperrors.NewCatalogError("failed to clear stale processing records", err)
	}
	return nil
}

// QueryByPrefixAndStatus reconstructs the work list from catalog entries
// whose filepath is under pathPrefix and whose status is one of statuses,
// preserving the order statuses were given in (§4.7, §4.8 step 3:
// processing entries first, then pending ones).
func (c *Catalog) QueryByPrefixAndStatus(pathPrefix string, statuses ...string) ([]Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []Record
	for _, status := range statuses {
		var batch []Record
		err := c.db.Where("filepath LIKE ? AND status = ?", pathPrefix+"%", status).
			Order("filepath").Find(&batch).Error
		if err != nil {
			return nil, revuperrors.NewCatalogError("failed to query catalog by prefix and status", err)
		}
		out = append(out, batch...)
	}
	return out, nil
}
