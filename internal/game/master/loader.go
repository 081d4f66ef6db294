package master

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File names read by LoadDir.
const (
	GearsFile  = "gears.json"
	ShipsFile  = "ships.json"
	TablesFile = "tables.yaml"
)

// LoadDir builds a Registry from the master snapshot in dir. tables.yaml is
// optional and is merged over DefaultTables.
//
// Precondition: dir contains gears.json and ships.json.
// Postcondition: Returns a populated Registry or a non-nil error.
func LoadDir(dir string) (*Registry, error) {
	tables := DefaultTables()
	tablesPath := filepath.Join(dir, TablesFile)
	if _, err := os.Stat(tablesPath); err == nil {
		override, err := LoadTables(tablesPath)
		if err != nil {
			return nil, err
		}
		tables = tables.Merge(override)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat %q: %w", tablesPath, err)
	}

	gearData, err := os.ReadFile(filepath.Join(dir, GearsFile))
	if err != nil {
		return nil, fmt.Errorf("reading gears: %w", err)
	}
	shipData, err := os.ReadFile(filepath.Join(dir, ShipsFile))
	if err != nil {
		return nil, fmt.Errorf("reading ships: %w", err)
	}
	return Build(gearData, shipData, tables)
}

// Build parses raw gear and ship JSON and indexes the result.
//
// Postcondition: Returns a populated Registry or a non-nil error.
func Build(gearData, shipData []byte, tables Tables) (*Registry, error) {
	a, err := NewAdapter(tables)
	if err != nil {
		return nil, fmt.Errorf("master: %w", err)
	}
	gearRecs, err := ParseGearRecords(gearData)
	if err != nil {
		return nil, err
	}
	shipRecs, err := ParseShipRecords(shipData)
	if err != nil {
		return nil, err
	}
	gears := make([]*MasterGear, 0, len(gearRecs))
	for _, rec := range gearRecs {
		gears = append(gears, a.Gear(rec))
	}
	ships := make([]*MasterShip, 0, len(shipRecs))
	for _, rec := range shipRecs {
		ships = append(ships, a.Ship(rec))
	}
	return NewRegistry(gears, ships, tables)
}
