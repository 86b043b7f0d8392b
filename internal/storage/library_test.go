// library_test.go - Tests for the DuckDB-backed unit library
package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/lagvtt/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestLibrary(t *testing.T) *DuckLibrary {
	lib, err := OpenLibrary(filepath.Join(t.TempDir(), "library.duckdb"), LibraryOptions{Threads: 1, MemoryLimit: "256MB"})
	require.NoError(t, err)
	t.Cleanup(func() { lib.Close() })
	return lib
}

func TestLibrary_Units(t *testing.T) {
	ctx := context.Background()
	lib := createTestLibrary(t)

	grog := models.SavedUnit{Label: "Grog", Type: "Orc Boss", Colour: models.ColourGreen, Size: "L", Token: "tok", NoFace: true}
	require.NoError(t, lib.SaveUnit(ctx, grog))
	require.NoError(t, lib.SaveUnit(ctx, models.SavedUnit{Label: "Alf", Type: "Elf"}))

	got, err := lib.GetUnit(ctx, "Grog")
	require.NoError(t, err)
	assert.Equal(t, grog, *got)

	// empty size is stored as the default
	alf, err := lib.GetUnit(ctx, "Alf")
	require.NoError(t, err)
	assert.Equal(t, "M", alf.Size)

	units, err := lib.ListUnits(ctx)
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "Alf", units[0].Label)
	assert.Equal(t, "Grog", units[1].Label)

	// saving under an existing label replaces it
	grog.Type = "Orc Warlord"
	require.NoError(t, lib.SaveUnit(ctx, grog))
	got, err = lib.GetUnit(ctx, "Grog")
	require.NoError(t, err)
	assert.Equal(t, "Orc Warlord", got.Type)

	require.NoError(t, lib.DeleteUnit(ctx, "Grog"))
	_, err = lib.GetUnit(ctx, "Grog")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(lib.DeleteUnit(ctx, "Grog"), ErrNotFound))

	assert.Error(t, lib.SaveUnit(ctx, models.SavedUnit{Type: "Nameless"}))
}

func TestLibrary_Images(t *testing.T) {
	ctx := context.Background()
	lib := createTestLibrary(t)

	images, err := lib.ListImages(ctx)
	require.NoError(t, err)
	assert.Empty(t, images)

	require.NoError(t, lib.SaveImage(ctx, models.SavedImage{Name: "tavern", URL: "http://img/tavern.png"}))
	require.NoError(t, lib.SaveImage(ctx, models.SavedImage{Name: "cave", URL: "http://img/cave.png"}))
	require.NoError(t, lib.SaveImage(ctx, models.SavedImage{Name: "cave", URL: "http://img/cave2.png"}))

	images, err = lib.ListImages(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.SavedImage{
		{Name: "cave", URL: "http://img/cave2.png"},
		{Name: "tavern", URL: "http://img/tavern.png"},
	}, images)

	require.NoError(t, lib.DeleteImage(ctx, "cave"))
	assert.True(t, errors.Is(lib.DeleteImage(ctx, "cave"), ErrNotFound))
	assert.Error(t, lib.SaveImage(ctx, models.SavedImage{URL: "http://x"}))
}

func TestLibrary_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "library.duckdb")

	lib, err := OpenLibrary(path, LibraryOptions{})
	require.NoError(t, err)
	require.NoError(t, lib.SaveUnit(ctx, models.SavedUnit{Label: "Keeper", Type: "Dwarf", Size: "S"}))
	require.NoError(t, lib.Close())

	lib, err = OpenLibrary(path, LibraryOptions{})
	require.NoError(t, err)
	defer lib.Close()

	u, err := lib.GetUnit(ctx, "Keeper")
	require.NoError(t, err)
	assert.Equal(t, "Dwarf", u.Type)
}

func TestSavedUnitPlacement(t *testing.T) {
	u := models.Unit{Label: "Grog", Type: "Orc", X: 4, Y: 5, Colour: models.ColourRed, Size: "L"}
	saved := models.SavedUnitFrom(u)
	assert.Equal(t, models.Unit{Label: "Grog", Type: "Orc", X: 1, Y: 2, Colour: models.ColourRed, Size: "L"}, saved.Place(1, 2))
}
