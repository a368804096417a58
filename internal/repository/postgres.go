package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"mortgage/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresRepository reads the property dataset from a PostgreSQL table
type PostgresRepository struct {
	db    *sqlx.DB
	table string
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn, table string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return &PostgresRepository{db: db, table: table}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// propertyRow mirrors one selected row; NULL cells scan as invalid
type propertyRow struct {
	State    sql.NullString  `db:"state"`
	District sql.NullString  `db:"district"`
	LandArea sql.NullFloat64 `db:"land_area"`
	Price    sql.NullFloat64 `db:"price"`
	NumRooms sql.NullInt64   `db:"num_rooms"`
}

func (p propertyRow) toRecord() model.PropertyRecord {
	rec := model.PropertyRecord{
		State:    p.State.String,
		District: strings.TrimSpace(p.District.String),
	}
	if p.LandArea.Valid {
		v := p.LandArea.Float64
		rec.LandArea = &v
	}
	if p.Price.Valid {
		v := p.Price.Float64
		rec.Price = &v
	}
	if p.NumRooms.Valid {
		v := int(p.NumRooms.Int64)
		rec.NumRooms = &v
	}
	return rec
}

// LoadDataset checks the table's columns then selects every row
func (r *PostgresRepository) LoadDataset(ctx context.Context) (*model.Dataset, error) {
	schema, table := splitTableName(r.table)

	var columns []string
	err := r.db.SelectContext(ctx, &columns, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = $1
		  AND table_schema = COALESCE(NULLIF($2, ''), current_schema())
		ORDER BY ordinal_position`, table, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", r.table, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s not found or has no columns", r.table)
	}

	hasRooms, err := checkColumns(columns)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", r.table, err)
	}

	var rows []propertyRow
	if err := r.db.SelectContext(ctx, &rows, buildSelectQuery(r.table, hasRooms)); err != nil {
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}

	ds := &model.Dataset{
		Records:  make([]model.PropertyRecord, len(rows)),
		HasRooms: hasRooms,
		Origin:   "postgres:" + r.table,
	}
	for i, row := range rows {
		ds.Records[i] = row.toRecord()
	}
	return ds, nil
}

// splitTableName separates an optional schema prefix
func splitTableName(name string) (schema, table string) {
	if i := strings.Index(name, "."); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

// quoteTableName quotes each part of a possibly schema-qualified name
func quoteTableName(name string) string {
	schema, table := splitTableName(name)
	if schema == "" {
		return pq.QuoteIdentifier(table)
	}
	return pq.QuoteIdentifier(schema) + "." + pq.QuoteIdentifier(table)
}

// buildSelectQuery casts numeric columns so text or numeric storage scans
// into float64. num_rooms is selected as NULL when the column is absent.
func buildSelectQuery(table string, hasRooms bool) string {
	rooms := "NULL::bigint AS num_rooms"
	if hasRooms {
		rooms = "num_rooms::bigint AS num_rooms"
	}
	return fmt.Sprintf(`
		SELECT state, district,
		       land_area::double precision AS land_area,
		       price::double precision AS price,
		       %s
		FROM %s`, rooms, quoteTableName(table))
}
