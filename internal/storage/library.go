package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/lagvtt/backend/internal/models"
	"github.com/marcboeker/go-duckdb"
)

// UnitLibrary keeps units by label and background images by name so they can
// be reused across maps.
type UnitLibrary interface {
	SaveUnit(ctx context.Context, u models.SavedUnit) error
	GetUnit(ctx context.Context, label string) (*models.SavedUnit, error)
	ListUnits(ctx context.Context) ([]models.SavedUnit, error)
	DeleteUnit(ctx context.Context, label string) error
	SaveImage(ctx context.Context, img models.SavedImage) error
	ListImages(ctx context.Context) ([]models.SavedImage, error)
	DeleteImage(ctx context.Context, name string) error
	Close() error
}

// LibraryOptions tunes the DuckDB connection.
type LibraryOptions struct {
	Threads     int
	MemoryLimit string
}

// DuckLibrary implements UnitLibrary on a DuckDB file.
type DuckLibrary struct {
	db     *sql.DB
	dbPath string
}

// OpenLibrary opens (or creates) the library at dbPath. An empty path keeps
// the library in memory.
func OpenLibrary(dbPath string, opts LibraryOptions) (*DuckLibrary, error) {
	fmt.Printf("[Library] Opening database at: %q\n", dbPath)

	connector, err := duckdb.NewConnector(dbPath, func(execer driver.ExecerContext) error {
		var pragmas []string
		if opts.MemoryLimit != "" {
			pragmas = append(pragmas, fmt.Sprintf("PRAGMA memory_limit='%s'", opts.MemoryLimit))
		}
		if opts.Threads > 0 {
			pragmas = append(pragmas, fmt.Sprintf("PRAGMA threads=%d", opts.Threads))
		}
		for _, pragma := range pragmas {
			if _, err := execer.ExecContext(context.Background(), pragma, nil); err != nil {
				fmt.Printf("[Library] Pragma warning: %v\n", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB connector: %w", err)
	}

	db := sql.OpenDB(connector)
	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS units (
			label  VARCHAR PRIMARY KEY,
			type   VARCHAR NOT NULL,
			colour VARCHAR NOT NULL,
			size   VARCHAR NOT NULL,
			token  VARCHAR NOT NULL,
			noface BOOLEAN NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS images (
			name VARCHAR PRIMARY KEY,
			url  VARCHAR NOT NULL
		)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
	}

	return &DuckLibrary{db: db, dbPath: dbPath}, nil
}

// Close releases the database.
func (l *DuckLibrary) Close() error {
	return l.db.Close()
}

// SaveUnit inserts or replaces the unit stored under u.Label.
func (l *DuckLibrary) SaveUnit(ctx context.Context, u models.SavedUnit) error {
	if u.Label == "" {
		return fmt.Errorf("saving unit: empty label")
	}
	if u.Size == "" {
		u.Size = models.DefaultSize
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO units (label, type, colour, size, token, noface) VALUES (?, ?, ?, ?, ?, ?)`,
		u.Label, u.Type, string(u.Colour), u.Size, u.Token, u.NoFace)
	if err != nil {
		return fmt.Errorf("saving unit %s: %w", u.Label, err)
	}
	return nil
}

// GetUnit returns the unit stored under label.
func (l *DuckLibrary) GetUnit(ctx context.Context, label string) (*models.SavedUnit, error) {
	row := l.db.QueryRowContext(ctx,
		`SELECT label, type, colour, size, token, noface FROM units WHERE label = ?`, label)
	u, err := scanUnit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("unit %s: %w", label, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading unit %s: %w", label, err)
	}
	return u, nil
}

// ListUnits returns every saved unit ordered by label.
func (l *DuckLibrary) ListUnits(ctx context.Context) ([]models.SavedUnit, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT label, type, colour, size, token, noface FROM units ORDER BY label`)
	if err != nil {
		return nil, fmt.Errorf("listing units: %w", err)
	}
	defer rows.Close()

	units := make([]models.SavedUnit, 0)
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("listing units: %w", err)
		}
		units = append(units, *u)
	}
	return units, rows.Err()
}

// DeleteUnit removes the unit stored under label.
func (l *DuckLibrary) DeleteUnit(ctx context.Context, label string) error {
	return l.deleteRow(ctx, `DELETE FROM units WHERE label = ?`, "unit", label)
}

// SaveImage inserts or replaces the image stored under img.Name.
func (l *DuckLibrary) SaveImage(ctx context.Context, img models.SavedImage) error {
	if img.Name == "" {
		return fmt.Errorf("saving image: empty name")
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO images (name, url) VALUES (?, ?)`, img.Name, img.URL)
	if err != nil {
		return fmt.Errorf("saving image %s: %w", img.Name, err)
	}
	return nil
}

// ListImages returns every saved image ordered by name.
func (l *DuckLibrary) ListImages(ctx context.Context) ([]models.SavedImage, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT name, url FROM images ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}
	defer rows.Close()

	images := make([]models.SavedImage, 0)
	for rows.Next() {
		var img models.SavedImage
		if err := rows.Scan(&img.Name, &img.URL); err != nil {
			return nil, fmt.Errorf("listing images: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// DeleteImage removes the image stored under name.
func (l *DuckLibrary) DeleteImage(ctx context.Context, name string) error {
	return l.deleteRow(ctx, `DELETE FROM images WHERE name = ?`, "image", name)
}

func (l *DuckLibrary) deleteRow(ctx context.Context, query, kind, key string) error {
	res, err := l.db.ExecContext(ctx, query, key)
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", kind, key, err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("%s %s: %w", kind, key, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUnit(r rowScanner) (*models.SavedUnit, error) {
	var u models.SavedUnit
	var colour string
	if err := r.Scan(&u.Label, &u.Type, &colour, &u.Size, &u.Token, &u.NoFace); err != nil {
		return nil, err
	}
	u.Colour = models.Colour(colour)
	return &u, nil
}
