package extract

import (
	"bytes"
	"database/sql"
	"encoding/binary"
	"fmt"

	"github.com/paulmach/orb/encoding/wkb"
	_ "modernc.org/sqlite"
)

// GPKGSink writes edges into a GeoPackage: a single `edges` feature layer
// in EPSG:4326 with node_start, node_end, category, lanes, oneway and
// maxspeed attributes.
type GPKGSink struct {
	db   *sql.DB
	tx   *sql.Tx
	stmt *sql.Stmt
}

const gpkgSchema = `
CREATE TABLE gpkg_spatial_ref_sys (
	srs_name TEXT NOT NULL,
	srs_id INTEGER NOT NULL PRIMARY KEY,
	organization TEXT NOT NULL,
	organization_coordsys_id INTEGER NOT NULL,
	definition TEXT NOT NULL,
	description TEXT
);
INSERT INTO gpkg_spatial_ref_sys VALUES
	('Undefined Cartesian', -1, 'NONE', -1, 'undefined', NULL),
	('Undefined Geographic', 0, 'NONE', 0, 'undefined', NULL),
	('WGS 84', 4326, 'EPSG', 4326,
	 'GEOGCS["WGS 84",DATUM["WGS_1984",SPHEROID["WGS 84",6378137,298.257223563]],PRIMEM["Greenwich",0],UNIT["degree",0.0174532925199433]]',
	 NULL);
CREATE TABLE gpkg_contents (
	table_name TEXT NOT NULL PRIMARY KEY,
	data_type TEXT NOT NULL,
	identifier TEXT UNIQUE,
	description TEXT DEFAULT '',
	last_change DATETIME NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
	min_x DOUBLE, min_y DOUBLE, max_x DOUBLE, max_y DOUBLE,
	srs_id INTEGER,
	CONSTRAINT fk_gc_r_srs_id FOREIGN KEY (srs_id) REFERENCES gpkg_spatial_ref_sys(srs_id)
);
INSERT INTO gpkg_contents (table_name, data_type, identifier, srs_id)
	VALUES ('edges', 'features', 'edges', 4326);
CREATE TABLE gpkg_geometry_columns (
	table_name TEXT NOT NULL,
	column_name TEXT NOT NULL,
	geometry_type_name TEXT NOT NULL,
	srs_id INTEGER NOT NULL,
	z TINYINT NOT NULL,
	m TINYINT NOT NULL,
	CONSTRAINT pk_geom_cols PRIMARY KEY (table_name, column_name)
);
INSERT INTO gpkg_geometry_columns VALUES ('edges', 'geom', 'LINESTRING', 4326, 0, 0);
CREATE TABLE edges (
	fid INTEGER PRIMARY KEY AUTOINCREMENT,
	geom BLOB,
	node_start INTEGER NOT NULL,
	node_end INTEGER NOT NULL,
	category TEXT(20),
	lanes INTEGER,
	oneway TEXT(8),
	maxspeed INTEGER
);
`

// NewGPKGSink creates the GeoPackage at path. The file must not exist.
func NewGPKGSink(path string) (*GPKGSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// GeoPackage container markers.
	if _, err := db.Exec("PRAGMA application_id = 0x47504B47"); err != nil {
		db.Close()
		return nil, fmt.Errorf("gpkg init: %w", err)
	}
	if _, err := db.Exec("PRAGMA user_version = 10300"); err != nil {
		db.Close()
		return nil, fmt.Errorf("gpkg init: %w", err)
	}
	if _, err := db.Exec(gpkgSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("gpkg schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		db.Close()
		return nil, err
	}
	stmt, err := tx.Prepare(`INSERT INTO edges (geom, node_start, node_end, category, lanes, oneway, maxspeed)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		db.Close()
		return nil, err
	}
	return &GPKGSink{db: db, tx: tx, stmt: stmt}, nil
}

func (s *GPKGSink) WriteEdge(e Edge) error {
	blob, err := gpkgGeometry(e)
	if err != nil {
		return err
	}
	var maxspeed any
	if e.MaxSpeed.Valid {
		maxspeed = int64(e.MaxSpeed.KMH)
	}
	_, err = s.stmt.Exec(blob, int64(e.Node1), int64(e.Node2),
		e.Category.String(), int64(e.Lanes), e.OneWay.String(), maxspeed)
	return err
}

// Close commits the feature transaction and closes the database.
func (s *GPKGSink) Close() error {
	s.stmt.Close()
	if err := s.tx.Commit(); err != nil {
		s.db.Close()
		return err
	}
	return s.db.Close()
}

// gpkgGeometry encodes a GeoPackage binary geometry: the "GP" header
// (version 0, little-endian, no envelope) followed by the WKB body.
func gpkgGeometry(e Edge) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('G')
	buf.WriteByte('P')
	buf.WriteByte(0)    // version
	buf.WriteByte(0x01) // flags: little-endian, envelope absent
	if err := binary.Write(&buf, binary.LittleEndian, int32(4326)); err != nil {
		return nil, err
	}
	body, err := wkb.Marshal(e.Geometry, binary.LittleEndian)
	if err != nil {
		return nil, err
	}
	buf.Write(body)
	return buf.Bytes(), nil
}
