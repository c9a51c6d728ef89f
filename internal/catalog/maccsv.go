package catalog

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/MacMatch/internal/hardware"
)

// MacColumns are the catalog columns, matched case-insensitively.
var MacColumns = []string{
	"model", "chip", "cores_cpu", "cores_gpu", "ram_gb", "storage_gb",
	"display_inches", "display_nits", "refresh_hz", "weight_kg", "ports",
	"msrp_aed", "launch_date", "battery_wh", "wifi",
}

var launchLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01",
	"01/02/2006",
	"1/2/2006",
	"2 Jan 2006",
	"January 2006",
	"2006",
}

// ParseMacCSV reads a catalog table. Missing or malformed cells default to
// zero or empty; rows without a model are dropped. The delimiter is sniffed
// from the header line.
func ParseMacCSV(r io.Reader) ([]hardware.MacSpec, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4096)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("reading catalog header: %w", err)
	}

	cr := csv.NewReader(br)
	cr.Comma = sniffDelimiter(head)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading catalog header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var macs []hardware.MacSpec
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading catalog row: %w", err)
		}

		row := cells{cols: cols, rec: rec}
		m := hardware.MacSpec{
			Model:         row.str("model"),
			Chip:          row.str("chip"),
			CoresCPU:      row.intVal("cores_cpu"),
			CoresGPU:      row.intVal("cores_gpu"),
			RAMGB:         row.intVal("ram_gb"),
			StorageGB:     row.intVal("storage_gb"),
			DisplayInches: row.floatVal("display_inches"),
			DisplayNits:   row.intVal("display_nits"),
			RefreshHz:     row.intVal("refresh_hz"),
			WeightKg:      row.floatVal("weight_kg"),
			Ports:         row.str("ports"),
			MSRP:          row.intVal("msrp_aed"),
			LaunchDate:    row.date("launch_date"),
			BatteryWh:     row.floatVal("battery_wh"),
			Wifi:          row.str("wifi"),
		}
		if m.Model == "" {
			continue
		}
		macs = append(macs, m)
	}
	return macs, nil
}

func sniffDelimiter(head []byte) rune {
	line := string(head)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	best, bestCount := ',', strings.Count(line, ",")
	for _, d := range []rune{';', '\t', '|'} {
		if n := strings.Count(line, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

type cells struct {
	cols map[string]int
	rec  []string
}

func (c cells) str(name string) string {
	i, ok := c.cols[name]
	if !ok || i >= len(c.rec) {
		return ""
	}
	return strings.TrimSpace(c.rec[i])
}

func (c cells) intVal(name string) int {
	s := c.str(name)
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	// "3,999" or "16.0"
	if v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return int(v)
	}
	return 0
}

func (c cells) floatVal(name string) float64 {
	v, err := strconv.ParseFloat(c.str(name), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func (c cells) date(name string) time.Time {
	s := c.str(name)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range launchLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
