package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/zatekoja/facilityqualityinsights/pkg/config"
)

// Store holds the five quality datasets, loaded once at process start and
// read-only afterwards.
type Store struct {
	PatientExperience      *Table
	Infections             *Table
	Readmissions           *Table
	MortalityComplications *Table
	TimelyCare             *Table
}

// Tables returns every dataset in the store.
func (s *Store) Tables() []*Table {
	return []*Table{
		s.PatientExperience,
		s.Infections,
		s.Readmissions,
		s.MortalityComplications,
		s.TimelyCare,
	}
}

// Load reads the five configured dataset files into a Store. File format is
// chosen by extension: .xlsx/.xlsm via excelize, anything else as CSV.
func Load(cfg *config.DatasetsConfig) (*Store, error) {
	type source struct {
		name string
		file string
		dst  **Table
	}

	store := &Store{}
	sources := []source{
		{"Patient Experience", cfg.PatientExperienceFile, &store.PatientExperience},
		{"Infections", cfg.InfectionsFile, &store.Infections},
		{"Readmission", cfg.ReadmissionsFile, &store.Readmissions},
		{"Complication & Death", cfg.MortalityComplicationsFile, &store.MortalityComplications},
		{"Timely Care", cfg.TimelyCareFile, &store.TimelyCare},
	}

	for _, src := range sources {
		table, err := LoadTable(src.name, cfg.Path(src.file))
		if err != nil {
			return nil, fmt.Errorf("failed to load %s dataset: %w", src.name, err)
		}
		*src.dst = table
	}

	return store, nil
}

// LoadTable reads a single tabular file into a Table. The first row is the
// header.
func LoadTable(name, path string) (*Table, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readExcel(path)
	default:
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: file %s has no header row", name, path)
	}

	return NewTable(name, rows[0], rows[1:]), nil
}

func readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return rows, nil
}
