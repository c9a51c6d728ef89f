package hardware

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MachineCSVHeader is the column layout produced by the collector export script.
var MachineCSVHeader = []string{
	"ComputerName", "Manufacturer", "Model", "OSName", "OSVersion", "BuildNumber",
	"Processor", "PhysicalCores", "LogicalCores", "TotalMemoryGB", "Disks", "Applications",
}

var (
	ErrEmptyImport   = errors.New("no data provided")
	ErrInvalidCSV    = errors.New("invalid CSV format")
	ErrFieldMismatch = errors.New("CSV header/data mismatch")
)

// ReadMachineCSV parses a machine-data export: one header row followed by one
// data row. Disks and applications are ';'-separated lists inside their cells.
func ReadMachineCSV(r io.Reader) (MachineProfile, []string, error) {
	var profile MachineProfile

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return profile, nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}
	rows = dropBlankRows(rows)
	if len(rows) == 0 {
		return profile, nil, ErrEmptyImport
	}
	if len(rows) < 2 {
		return profile, nil, ErrInvalidCSV
	}

	header, data := rows[0], rows[1]
	if len(header) != len(data) {
		return profile, nil, ErrFieldMismatch
	}

	var apps []string
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		value := strings.TrimSpace(data[i])

		switch key {
		case "computername":
			profile.ComputerName = value
		case "manufacturer":
			profile.Manufacturer = value
		case "model":
			profile.Model = value
		case "osname":
			profile.OSName = value
		case "osversion":
			profile.OSVersion = value
		case "buildnumber":
			profile.BuildNumber = value
		case "processor":
			profile.Processor = value
		case "physicalcores":
			if n, err := strconv.Atoi(value); err == nil {
				profile.PhysicalCores = n
			}
		case "logicalcores":
			if n, err := strconv.Atoi(value); err == nil {
				profile.LogicalCores = n
			}
		case "totalmemorygb":
			profile.TotalMemory = value
		case "disks":
			profile.Disks = parseDisks(value)
		case "applications":
			apps = splitList(value)
		}
	}

	return profile, apps, nil
}

// WriteMachineCSV renders a profile in the same layout ReadMachineCSV accepts.
func WriteMachineCSV(w io.Writer, p MachineProfile, apps []string) error {
	disks := make([]string, 0, len(p.Disks))
	for _, d := range p.Disks {
		disks = append(disks, strings.Join([]string{d.Name, d.FileSystem, d.Size, d.Free}, " "))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(MachineCSVHeader); err != nil {
		return err
	}
	record := []string{
		p.ComputerName, p.Manufacturer, p.Model, p.OSName, p.OSVersion, p.BuildNumber,
		p.Processor, strconv.Itoa(p.PhysicalCores), strconv.Itoa(p.LogicalCores), p.TotalMemory,
		strings.Join(disks, ";"), strings.Join(apps, ";"),
	}
	if err := cw.Write(record); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// parseDisks reads "Name FS Size Free" entries. A size may carry its unit as
// a separate token ("476.34 GB"), which stays attached to the number.
// Entries with fewer than four fields are skipped.
func parseDisks(value string) []DiskInfo {
	var disks []DiskInfo
	for _, entry := range strings.Split(value, ";") {
		parts := diskFields(entry)
		if len(parts) < 4 {
			continue
		}
		disks = append(disks, DiskInfo{
			Name:       parts[0],
			FileSystem: parts[1],
			Size:       parts[2],
			Free:       parts[3],
		})
	}
	return disks
}

func diskFields(entry string) []string {
	var out []string
	for _, tok := range strings.Fields(entry) {
		if n := len(out); n > 2 && isSizeUnit(tok) && isNumber(out[n-1]) {
			out[n-1] += " " + tok
			continue
		}
		out = append(out, tok)
	}
	return out
}

func isSizeUnit(s string) bool {
	switch strings.ToUpper(s) {
	case "B", "KB", "MB", "GB", "TB":
		return true
	}
	return false
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ";") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func dropBlankRows(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		blank := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				blank = false
				break
			}
		}
		if !blank {
			out = append(out, row)
		}
	}
	return out
}
