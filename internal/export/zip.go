package export

import (
	"archive/zip"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Abdeldjalil-bch/anomal/internal/dataset"
)

// Default spreadsheet names inside the archive, used when the user leaves
// the filename inputs empty.
const (
	DefaultUniqueName    = "lignes_uniques"
	DefaultDuplicateName = "lignes_dupliquees"
)

// ErrNothingToExport is returned when both partitions are empty.
var ErrNothingToExport = errors.New("nothing to export")

// BuildZip writes a zip archive containing up to two single-sheet xlsx
// files, one per non-empty partition. Each spreadsheet carries all
// original columns of the source table.
func BuildZip(w *zip.Writer, unique, duplicate *dataset.Table, uniqueName, duplicateName string) error {
	uniqueName = SanitizeFilename(uniqueName, DefaultUniqueName)
	duplicateName = SanitizeFilename(duplicateName, DefaultDuplicateName)

	wrote := false
	if unique != nil && unique.NumRows() > 0 {
		if err := addSheet(w, unique, uniqueName, "Lignes_Uniques"); err != nil {
			return err
		}
		wrote = true
	}
	if duplicate != nil && duplicate.NumRows() > 0 {
		if err := addSheet(w, duplicate, duplicateName, "Lignes_Dupliquees"); err != nil {
			return err
		}
		wrote = true
	}
	if !wrote {
		return ErrNothingToExport
	}
	return nil
}

func addSheet(zw *zip.Writer, t *dataset.Table, filename, sheet string) error {
	entry, err := zw.Create(filename + ".xlsx")
	if err != nil {
		return fmt.Errorf("create zip entry %s: %w", filename, err)
	}
	if err := WriteXLSX(entry, t, sheet); err != nil {
		return fmt.Errorf("write %s.xlsx: %w", filename, err)
	}
	return nil
}

// ZipFilename returns the timestamped archive name for a download.
func ZipFilename(now time.Time) string {
	return "analyse_lignes_" + now.Format("20060102_150405") + ".zip"
}

// SanitizeFilename strips path separators and surrounding whitespace from
// a user-supplied filename, falling back when nothing usable remains.
func SanitizeFilename(name, fallback string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimSuffix(name, ".xlsx")
	replacer := strings.NewReplacer("/", "_", "\\", "_", "..", "_", ":", "_")
	name = strings.Trim(replacer.Replace(name), ". ")
	if name == "" {
		return fallback
	}
	return name
}
