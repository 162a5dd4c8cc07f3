// Package export writes the faction rosters as a spreadsheet.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"git.home.luguber.info/inful/gallerygen/internal/content"
	"git.home.luguber.info/inful/gallerygen/internal/markup"
)

// Role distinguishes players from masters.
type Role string

const (
	RolePlayer Role = "player"
	RoleMaster Role = "master"
)

// Row is one roster line.
type Row struct {
	Slug    string
	Faction string
	Role    Role
	Name    string
	Owner   string
	Text    string
	Image   string
}

var header = []string{"slug", "faction", "role", "name", "owner", "text", "image"}

func (r Row) values() []string {
	return []string{r.Slug, r.Faction, string(r.Role), r.Name, r.Owner, r.Text, r.Image}
}

// Rows flattens records into roster rows: per record players then masters,
// input order preserved. Image is the full-size href the gallery links to.
func Rows(records []*content.FactionRecord, opts markup.ImageOptions) []Row {
	var rows []Row
	for _, rec := range records {
		base := markup.BaseHref(opts.BaseRoot, rec.Slug)
		faction := markup.DisplayName(rec.Name, rec.Slug)
		add := func(role Role, items []content.Item) {
			for _, it := range items {
				full, _ := markup.ImagePaths(base, it.Image, opts)
				rows = append(rows, Row{
					Slug:    rec.Slug,
					Faction: faction,
					Role:    role,
					Name:    it.Name,
					Owner:   it.Owner,
					Text:    it.Text,
					Image:   full,
				})
			}
		}
		add(RolePlayer, rec.Players)
		add(RoleMaster, rec.Masters)
	}
	return rows
}

// Write stores rows at path. The format follows the extension: .xlsx or .csv.
func Write(path string, rows []Row) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return writeXLSX(path, rows)
	case ".csv":
		return writeCSV(path, rows)
	default:
		return fmt.Errorf("unsupported export format %q (use .xlsx or .csv)", filepath.Ext(path))
	}
}

func writeCSV(path string, rows []Row) error {
	f, err := os.Create(path) // #nosec G304 -- path is chosen by the operator
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write(r.values()); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// SheetName is the worksheet holding the roster.
const SheetName = "Roster"

func writeXLSX(path string, rows []Row) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", toCells(header)); err != nil {
		return err
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, toCells(r.values())); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
