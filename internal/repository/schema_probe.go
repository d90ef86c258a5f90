package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/craftfolio/engine/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ColumnSet is the lower-cased column names a table currently has.
type ColumnSet map[string]bool

// Has reports whether the named column exists.
func (s ColumnSet) Has(name string) bool { return s[strings.ToLower(name)] }

// SchemaInspector reports which columns a table currently has. A failed
// inspection reports no columns rather than an error; callers degrade.
type SchemaInspector interface {
	Columns(ctx context.Context, table string) ColumnSet
}

// SchemaProbe inspects INFORMATION_SCHEMA for the live column set of a
// table. Deployed databases can lag the application's expected shape, so
// every write path consults the probe instead of assuming the full schema.
//
// Results are memoized for the process lifetime: mid-run schema changes are
// out of scope, and re-probing per request would be a round trip wasted.
// Probe failures are not cached, so a transient catalog error does not pin
// a table to "no columns" forever.
type SchemaProbe struct {
	db *gorm.DB

	mu    sync.Mutex
	cache map[string]ColumnSet
}

// NewSchemaProbe returns a probe backed by the shared connection pool.
func NewSchemaProbe(db *gorm.DB) *SchemaProbe {
	return &SchemaProbe{db: db, cache: map[string]ColumnSet{}}
}

// Columns returns the live column set for table. Errors degrade to an empty
// set; they never propagate to the caller.
func (p *SchemaProbe) Columns(ctx context.Context, table string) ColumnSet {
	table = strings.ToLower(table)

	p.mu.Lock()
	if cs, ok := p.cache[table]; ok {
		p.mu.Unlock()
		return cs
	}
	p.mu.Unlock()

	cs, err := p.query(ctx, table)
	if err != nil {
		logger.L().Warn("schema probe failed, treating columns as absent",
			zap.String("table", table), zap.Error(err))
		return ColumnSet{}
	}

	p.mu.Lock()
	p.cache[table] = cs
	p.mu.Unlock()
	return cs
}

func (p *SchemaProbe) query(ctx context.Context, table string) (ColumnSet, error) {
	rows, err := p.db.WithContext(ctx).Raw(
		`SELECT COLUMN_NAME FROM INFORMATION_SCHEMA.COLUMNS
		 WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?`, table,
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cs := ColumnSet{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cs[strings.ToLower(name)] = true
	}
	return cs, rows.Err()
}
