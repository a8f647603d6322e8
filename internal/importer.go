package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Importer reads subscription records from a file. Imported records are fed
// through the store, which re-assigns ids.
type Importer interface {
	Import(path string) ([]Subscription, error)
}

// ImporterFunc is a function that implements Importer
type ImporterFunc func(path string) ([]Subscription, error)

func (f ImporterFunc) Import(path string) ([]Subscription, error) {
	return f(path)
}

// importers is the registry of available import formats
var importers = map[string]Importer{}

// RegisterImporter registers an importer with the given format name
func RegisterImporter(format string, imp Importer) {
	importers[format] = imp
}

// GetImporter returns the importer for the given format
func GetImporter(format string) (Importer, error) {
	imp, ok := importers[format]
	if !ok {
		return nil, fmt.Errorf("unknown import format: %s (available: %v)", format, AvailableFormats())
	}
	return imp, nil
}

// AvailableFormats returns the registered import format names, sorted
func AvailableFormats() []string {
	var formats []string
	for name := range importers {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}

// ParseImportArg parses an import argument that may have a format prefix.
// Returns (format, path). Without a valid prefix the format is inferred
// from the file extension.
// Example: "json:backup.txt" → ("json", "backup.txt")
// Example: "subs.xlsx" → ("xlsx", "subs.xlsx")
func ParseImportArg(arg string) (format, path string) {
	if idx := strings.Index(arg, ":"); idx != -1 {
		prefix := arg[:idx]
		if _, ok := importers[prefix]; ok {
			return prefix, arg[idx+1:]
		}
	}
	ext := strings.TrimPrefix(strings.ToLower(getExt(arg)), ".")
	if _, ok := importers[ext]; ok {
		return ext, arg
	}
	return "", arg
}

func getExt(path string) string {
	if idx := strings.LastIndex(path, "."); idx != -1 {
		return path[idx:]
	}
	return ""
}

// ImportJSON reads a JSON array of subscription records, the same shape the
// store persists under the "subscriptions" key.
func ImportJSON(path string) ([]Subscription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var subs []Subscription
	if err := json.Unmarshal(data, &subs); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return subs, nil
}

// ImportXLSX reads subscriptions from an xlsx sheet. The header row is
// located by column names (Provider, Amount, Cycle, Start, Renewal,
// Details), so workbooks produced by ExportXLSX round-trip.
func ImportXLSX(path string) ([]Subscription, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}

	// Find header row and column indices
	cols := map[string]int{}
	dataStartRow := -1
	for i, row := range rows {
		for j, cell := range row {
			switch strings.ToLower(strings.TrimSpace(cell)) {
			case "provider", "service provider":
				cols["provider"] = j
			case "amount":
				cols["amount"] = j
			case "cycle", "billing cycle":
				cols["cycle"] = j
			case "started", "start date":
				cols["start"] = j
			case "renews", "renewal date":
				cols["renewal"] = j
			case "details":
				cols["details"] = j
			}
		}
		if len(cols) >= 5 {
			dataStartRow = i + 1
			break
		}
		cols = map[string]int{}
	}
	if dataStartRow < 0 {
		return nil, fmt.Errorf("could not find required columns (Provider, Amount, Cycle, Start Date, Renewal Date)")
	}

	cell := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var subs []Subscription
	for i := dataStartRow; i < len(rows); i++ {
		row := rows[i]

		provider := cell(row, "provider")
		amountStr := cell(row, "amount")
		if provider == "" || amountStr == "" {
			continue
		}

		amountStr = strings.ReplaceAll(amountStr, ",", ".")
		amount, err := strconv.ParseFloat(amountStr, 64)
		if err != nil {
			continue
		}

		subs = append(subs, Subscription{
			ServiceProvider: provider,
			Amount:          amount,
			BillingCycle:    BillingCycle(cell(row, "cycle")),
			StartDate:       cell(row, "start"),
			RenewalDate:     cell(row, "renewal"),
			Details:         cell(row, "details"),
		})
	}

	return subs, nil
}

func init() {
	// Register built-in importers
	RegisterImporter("json", ImporterFunc(ImportJSON))
	RegisterImporter("xlsx", ImporterFunc(ImportXLSX))
}
