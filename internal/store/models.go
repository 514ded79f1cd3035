package store

import (
	"time"

	"gorm.io/datatypes"
)

// CrateBlob is one ingestion-cache row: the raw documentation-tool JSON for
// a (name, version) pair plus provenance, mirroring the teacher's
// models.Stage field layout (string-typed gorm columns, a JSON payload
// column, an autoCreateTime-style timestamp). The payload is stored as
// datatypes.JSON rather than a plain blob since it genuinely is a JSON
// document, not opaque bytes.
type CrateBlob struct {
	Name    string `gorm:"primaryKey;type:varchar(255)"`
	Version string `gorm:"primaryKey;type:varchar(64)"`

	Blob      datatypes.JSON
	ItemCount int

	IngestedAt time.Time `gorm:"index"`
}

// TableName keeps the cache table name stable and explicit.
func (CrateBlob) TableName() string { return "crate_blobs" }
