package hardware

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

const (
	// DefaultMemoryGB is assumed when the total memory string cannot be read.
	DefaultMemoryGB = 8
	// DefaultStorageGB is assumed for ranking when no disk reports a usable size.
	DefaultStorageGB = 256
)

// DiskInfo is one logical disk as reported by the inventory collector.
// Sizes keep the collector's "value unit" text form.
type DiskInfo struct {
	Name       string `json:"name"`
	FileSystem string `json:"file_system"`
	Size       string `json:"size_gb"`
	Free       string `json:"free_gb"`
}

// MachineProfile describes the Windows machine being replaced.
type MachineProfile struct {
	ComputerName  string     `json:"computer_name"`
	Manufacturer  string     `json:"manufacturer"`
	Model         string     `json:"model"`
	OSName        string     `json:"os_name"`
	OSVersion     string     `json:"os_version"`
	BuildNumber   string     `json:"build_number"`
	Processor     string     `json:"processor"`
	PhysicalCores int        `json:"physical_cores"`
	LogicalCores  int        `json:"logical_cores"`
	TotalMemory   string     `json:"total_memory_gb"`
	Disks         []DiskInfo `json:"disks"`
}

// ParseGB reads the leading numeric token of a capacity string such as
// "15.8 GB" or "476.34GB".
func ParseGB(s string) (float64, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, false
	}
	tok := strings.TrimRightFunc(fields[0], unicode.IsLetter)
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// MemoryValue returns the unrounded total memory in GB, or 0 if unreadable.
func (p MachineProfile) MemoryValue() float64 {
	v, ok := ParseGB(p.TotalMemory)
	if !ok {
		return 0
	}
	return v
}

// MemoryGB returns the total memory rounded to whole GB, falling back to
// DefaultMemoryGB.
func (p MachineProfile) MemoryGB() int {
	v, ok := ParseGB(p.TotalMemory)
	if !ok {
		return DefaultMemoryGB
	}
	return int(math.Round(v))
}

// StorageGB returns the largest disk size in whole GB, or fallback when no
// disk reports a positive size.
func (p MachineProfile) StorageGB(fallback int) int {
	largest := 0
	for _, d := range p.Disks {
		v, ok := ParseGB(d.Size)
		if !ok {
			continue
		}
		if gb := int(math.Round(v)); gb > largest {
			largest = gb
		}
	}
	if largest <= 0 {
		return fallback
	}
	return largest
}

// Clone returns a deep copy so stored profiles are never shared.
func (p MachineProfile) Clone() MachineProfile {
	out := p
	if p.Disks != nil {
		out.Disks = make([]DiskInfo, len(p.Disks))
		copy(out.Disks, p.Disks)
	}
	return out
}
