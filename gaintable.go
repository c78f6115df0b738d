package ad936x

import (
	"github.com/wippyai/ad936x/errors"
)

// GainTableKind is the RX gain table layout.
type GainTableKind uint8

const (
	// FullGainTable controls LNA, mixer, TIA and LPF from one index.
	FullGainTable GainTableKind = iota
	// SplitGainTable controls LNA and mixer only; the LPF gain is set
	// separately.
	SplitGainTable
)

func (k GainTableKind) String() string {
	if k == SplitGainTable {
		return "Split"
	}
	return "Full"
}

// GainEntry is one row of a gain table: the values of registers 0x131
// to 0x133 and the absolute gain they produce, in dB.
type GainEntry struct {
	Reg131  uint8
	Reg132  uint8
	Reg133  uint8
	AbsGain int8
}

const (
	// MaxGainEntries is the capacity of a gain table.
	MaxGainEntries = 90

	fullTableSize  = 77
	splitTableSize = 41
	bands          = 3

	gainTableStartHz = 0
	gainTableEndHz   = 6_000_000_000
)

// GainTable is an RX gain table. NewGainTable returns the recommended
// table for a band; entries are addressed from 1.
type GainTable struct {
	kind     GainTableKind
	maxIndex int
	entries  [MaxGainEntries]GainEntry
}

// NewGainTable returns the recommended table of the given kind for the
// band containing loHz: below 1.3 GHz, below 4 GHz, or above.
func NewGainTable(kind GainTableKind, loHz uint64) GainTable {
	band := 2
	switch {
	case loHz < 1_300_000_000:
		band = 0
	case loHz < 4_000_000_000:
		band = 1
	}

	t := GainTable{kind: kind}
	src := fullTables[band]
	if kind == SplitGainTable {
		src = splitTables[band]
	}
	t.maxIndex = copy(t.entries[:], src)
	return t
}

// Entry returns entry i, 1 <= i <= MaxIndex. Other indices panic.
func (t *GainTable) Entry(i int) GainEntry {
	if i < 1 || i > t.maxIndex {
		errors.Violate(errors.OutOfRange(errors.PhaseAccess, "gain_table_entry", i, 1, t.maxIndex))
	}
	return t.entries[i-1]
}

// SetEntry replaces entry i, 1 <= i <= MaxGainEntries, growing the table
// to at least i entries. Other indices panic.
func (t *GainTable) SetEntry(i int, e GainEntry) {
	if i < 1 || i > MaxGainEntries {
		errors.Violate(errors.OutOfRange(errors.PhaseAccess, "gain_table_set_entry", i, 1, MaxGainEntries))
	}
	t.entries[i-1] = e
	t.maxIndex = max(t.maxIndex, i)
}

// Entries returns the used part of the table.
func (t *GainTable) Entries() []GainEntry {
	return t.entries[:t.maxIndex]
}

func (t *GainTable) Kind() GainTableKind { return t.kind }

// MaxIndex is the highest index in use.
func (t *GainTable) MaxIndex() int { return t.maxIndex }

// FrequencyRange is the LO range the table applies to, in Hz.
func (t *GainTable) FrequencyRange() (startHz, endHz uint64) {
	return gainTableStartHz, gainTableEndHz
}

var fullTables = [bands][]GainEntry{
	{ // 800 MHz
		{0x00, 0x00, 0x20, -1},
		{0x00, 0x00, 0x00, -1},
		{0x00, 0x00, 0x00, -1},
		{0x00, 0x01, 0x00, 0},
		{0x00, 0x02, 0x00, 1},
		{0x00, 0x03, 0x00, 2},
		{0x00, 0x04, 0x00, 3},
		{0x00, 0x05, 0x00, 4},
		{0x01, 0x03, 0x20, 5},
		{0x01, 0x04, 0x00, 6},
		{0x01, 0x05, 0x00, 7},
		{0x01, 0x06, 0x00, 8},
		{0x01, 0x07, 0x00, 9},
		{0x01, 0x08, 0x00, 10},
		{0x01, 0x09, 0x00, 11},
		{0x01, 0x0A, 0x00, 12},
		{0x01, 0x0B, 0x00, 13},
		{0x01, 0x0C, 0x00, 14},
		{0x01, 0x0D, 0x00, 15},
		{0x01, 0x0E, 0x00, 16},
		{0x02, 0x09, 0x20, 17},
		{0x02, 0x0A, 0x00, 18},
		{0x02, 0x0B, 0x00, 19},
		{0x02, 0x0C, 0x00, 20},
		{0x02, 0x0D, 0x00, 21},
		{0x02, 0x0E, 0x00, 22},
		{0x02, 0x0F, 0x00, 23},
		{0x02, 0x10, 0x00, 24},
		{0x02, 0x2B, 0x20, 25},
		{0x02, 0x2C, 0x00, 26},
		{0x04, 0x28, 0x20, 27},
		{0x04, 0x29, 0x00, 28},
		{0x04, 0x2A, 0x00, 29},
		{0x04, 0x2B, 0x00, 30},
		{0x24, 0x20, 0x20, 31},
		{0x24, 0x21, 0x00, 32},
		{0x44, 0x20, 0x20, 33},
		{0x44, 0x21, 0x00, 34},
		{0x44, 0x22, 0x00, 35},
		{0x44, 0x23, 0x00, 36},
		{0x44, 0x24, 0x00, 37},
		{0x44, 0x25, 0x00, 38},
		{0x44, 0x26, 0x00, 39},
		{0x44, 0x27, 0x00, 40},
		{0x44, 0x28, 0x00, 41},
		{0x44, 0x29, 0x00, 42},
		{0x44, 0x2A, 0x00, 43},
		{0x44, 0x2B, 0x00, 44},
		{0x44, 0x2C, 0x00, 45},
		{0x44, 0x2D, 0x00, 46},
		{0x44, 0x2E, 0x00, 47},
		{0x44, 0x2F, 0x00, 48},
		{0x44, 0x30, 0x00, 49},
		{0x44, 0x31, 0x00, 50},
		{0x44, 0x32, 0x00, 51},
		{0x64, 0x2E, 0x20, 52},
		{0x64, 0x2F, 0x00, 53},
		{0x64, 0x30, 0x00, 54},
		{0x64, 0x31, 0x00, 55},
		{0x64, 0x32, 0x00, 56},
		{0x64, 0x33, 0x00, 57},
		{0x64, 0x34, 0x00, 58},
		{0x64, 0x35, 0x00, 59},
		{0x64, 0x36, 0x00, 60},
		{0x64, 0x37, 0x00, 61},
		{0x64, 0x38, 0x00, 62},
		{0x65, 0x38, 0x20, 63},
		{0x66, 0x38, 0x20, 64},
		{0x67, 0x38, 0x20, 65},
		{0x68, 0x38, 0x20, 66},
		{0x69, 0x38, 0x20, 67},
		{0x6A, 0x38, 0x20, 68},
		{0x6B, 0x38, 0x20, 69},
		{0x6C, 0x38, 0x20, 70},
		{0x6D, 0x38, 0x20, 71},
		{0x6E, 0x38, 0x20, 72},
		{0x6F, 0x38, 0x20, 73},
	},
	{ // 2300 MHz
		{0x00, 0x00, 0x20, -3},
		{0x00, 0x00, 0x00, -3},
		{0x00, 0x00, 0x00, -3},
		{0x00, 0x01, 0x00, -2},
		{0x00, 0x02, 0x00, -1},
		{0x00, 0x03, 0x00, 0},
		{0x00, 0x04, 0x00, 1},
		{0x00, 0x05, 0x00, 2},
		{0x01, 0x03, 0x20, 3},
		{0x01, 0x04, 0x00, 4},
		{0x01, 0x05, 0x00, 5},
		{0x01, 0x06, 0x00, 6},
		{0x01, 0x07, 0x00, 7},
		{0x01, 0x08, 0x00, 8},
		{0x01, 0x09, 0x00, 9},
		{0x01, 0x0A, 0x00, 10},
		{0x01, 0x0B, 0x00, 11},
		{0x01, 0x0C, 0x00, 12},
		{0x01, 0x0D, 0x00, 13},
		{0x01, 0x0E, 0x00, 14},
		{0x02, 0x09, 0x20, 15},
		{0x02, 0x0A, 0x00, 16},
		{0x02, 0x0B, 0x00, 17},
		{0x02, 0x0C, 0x00, 18},
		{0x02, 0x0D, 0x00, 19},
		{0x02, 0x0E, 0x00, 20},
		{0x02, 0x0F, 0x00, 21},
		{0x02, 0x10, 0x00, 22},
		{0x02, 0x2B, 0x20, 23},
		{0x02, 0x2C, 0x00, 24},
		{0x04, 0x27, 0x20, 25},
		{0x04, 0x28, 0x00, 26},
		{0x04, 0x29, 0x00, 27},
		{0x04, 0x2A, 0x00, 28},
		{0x04, 0x2B, 0x00, 29},
		{0x24, 0x21, 0x20, 30},
		{0x24, 0x22, 0x00, 31},
		{0x44, 0x20, 0x20, 32},
		{0x44, 0x21, 0x00, 33},
		{0x44, 0x22, 0x00, 34},
		{0x44, 0x23, 0x00, 35},
		{0x44, 0x24, 0x00, 36},
		{0x44, 0x25, 0x00, 37},
		{0x44, 0x26, 0x00, 38},
		{0x44, 0x27, 0x00, 39},
		{0x44, 0x28, 0x00, 40},
		{0x44, 0x29, 0x00, 41},
		{0x44, 0x2A, 0x00, 42},
		{0x44, 0x2B, 0x00, 43},
		{0x44, 0x2C, 0x00, 44},
		{0x44, 0x2D, 0x00, 45},
		{0x44, 0x2E, 0x00, 46},
		{0x44, 0x2F, 0x00, 47},
		{0x44, 0x30, 0x00, 48},
		{0x44, 0x31, 0x00, 49},
		{0x64, 0x2E, 0x20, 50},
		{0x64, 0x2F, 0x00, 51},
		{0x64, 0x30, 0x00, 52},
		{0x64, 0x31, 0x00, 53},
		{0x64, 0x32, 0x00, 54},
		{0x64, 0x33, 0x00, 55},
		{0x64, 0x34, 0x00, 56},
		{0x64, 0x35, 0x00, 57},
		{0x64, 0x36, 0x00, 58},
		{0x64, 0x37, 0x00, 59},
		{0x64, 0x38, 0x00, 60},
		{0x65, 0x38, 0x20, 61},
		{0x66, 0x38, 0x20, 62},
		{0x67, 0x38, 0x20, 63},
		{0x68, 0x38, 0x20, 64},
		{0x69, 0x38, 0x20, 65},
		{0x6A, 0x38, 0x20, 66},
		{0x6B, 0x38, 0x20, 67},
		{0x6C, 0x38, 0x20, 68},
		{0x6D, 0x38, 0x20, 69},
		{0x6E, 0x38, 0x20, 70},
		{0x6F, 0x38, 0x20, 71},
	},
	{ // 5500 MHz
		{0x00, 0x00, 0x20, -10},
		{0x00, 0x00, 0x00, -10},
		{0x00, 0x00, 0x00, -10},
		{0x00, 0x00, 0x00, -10},
		{0x00, 0x00, 0x00, -10},
		{0x00, 0x01, 0x00, -9},
		{0x00, 0x02, 0x00, -8},
		{0x00, 0x03, 0x00, -7},
		{0x01, 0x01, 0x20, -6},
		{0x01, 0x02, 0x00, -5},
		{0x01, 0x03, 0x00, -4},
		{0x01, 0x04, 0x20, -3},
		{0x01, 0x05, 0x00, -2},
		{0x01, 0x06, 0x00, -1},
		{0x01, 0x07, 0x00, 0},
		{0x01, 0x08, 0x00, 1},
		{0x01, 0x09, 0x00, 2},
		{0x01, 0x0A, 0x00, 3},
		{0x01, 0x0B, 0x00, 4},
		{0x01, 0x0C, 0x00, 5},
		{0x02, 0x08, 0x20, 6},
		{0x02, 0x09, 0x00, 7},
		{0x02, 0x0A, 0x00, 8},
		{0x02, 0x0B, 0x20, 9},
		{0x02, 0x0C, 0x00, 10},
		{0x02, 0x0D, 0x00, 11},
		{0x02, 0x0E, 0x00, 12},
		{0x02, 0x0F, 0x00, 13},
		{0x02, 0x2A, 0x20, 14},
		{0x02, 0x2B, 0x00, 15},
		{0x04, 0x27, 0x20, 16},
		{0x04, 0x28, 0x00, 17},
		{0x04, 0x29, 0x00, 18},
		{0x04, 0x2A, 0x00, 19},
		{0x04, 0x2B, 0x00, 20},
		{0x04, 0x2C, 0x00, 21},
		{0x04, 0x2D, 0x00, 22},
		{0x24, 0x20, 0x20, 23},
		{0x24, 0x21, 0x00, 24},
		{0x24, 0x22, 0x00, 25},
		{0x44, 0x20, 0x20, 26},
		{0x44, 0x21, 0x00, 27},
		{0x44, 0x22, 0x00, 28},
		{0x44, 0x23, 0x00, 29},
		{0x44, 0x24, 0x00, 30},
		{0x44, 0x25, 0x00, 31},
		{0x44, 0x26, 0x00, 32},
		{0x44, 0x27, 0x00, 33},
		{0x44, 0x28, 0x00, 34},
		{0x44, 0x29, 0x00, 35},
		{0x44, 0x2A, 0x00, 36},
		{0x44, 0x2B, 0x00, 37},
		{0x44, 0x2C, 0x00, 38},
		{0x44, 0x2D, 0x00, 39},
		{0x44, 0x2E, 0x00, 40},
		{0x64, 0x2E, 0x20, 41},
		{0x64, 0x2F, 0x00, 42},
		{0x64, 0x30, 0x00, 43},
		{0x64, 0x31, 0x00, 44},
		{0x64, 0x32, 0x00, 45},
		{0x64, 0x33, 0x00, 46},
		{0x64, 0x34, 0x00, 47},
		{0x64, 0x35, 0x00, 48},
		{0x64, 0x36, 0x00, 49},
		{0x64, 0x37, 0x00, 50},
		{0x64, 0x38, 0x00, 51},
		{0x65, 0x38, 0x20, 52},
		{0x66, 0x38, 0x20, 53},
		{0x67, 0x38, 0x20, 54},
		{0x68, 0x38, 0x20, 55},
		{0x69, 0x38, 0x20, 56},
		{0x6A, 0x38, 0x20, 57},
		{0x6B, 0x38, 0x20, 58},
		{0x6C, 0x38, 0x20, 59},
		{0x6D, 0x38, 0x20, 60},
		{0x6E, 0x38, 0x20, 61},
		{0x6F, 0x38, 0x20, 62},
	},
}

var splitTables = [bands][]GainEntry{
	{ // 800 MHz
		{0x00, 0x18, 0x20, -1},
		{0x00, 0x18, 0x00, -1},
		{0x00, 0x18, 0x00, -1},
		{0x00, 0x18, 0x00, -1},
		{0x00, 0x18, 0x00, -1},
		{0x00, 0x18, 0x00, -1},
		{0x00, 0x18, 0x20, -1},
		{0x01, 0x18, 0x20, 2},
		{0x02, 0x18, 0x20, 8},
		{0x04, 0x18, 0x20, 13},
		{0x04, 0x38, 0x20, 19},
		{0x05, 0x38, 0x20, 20},
		{0x06, 0x38, 0x20, 21},
		{0x07, 0x38, 0x20, 22},
		{0x08, 0x38, 0x20, 23},
		{0x09, 0x38, 0x20, 24},
		{0x0A, 0x38, 0x20, 25},
		{0x0B, 0x38, 0x20, 26},
		{0x0C, 0x38, 0x20, 27},
		{0x0D, 0x38, 0x20, 28},
		{0x0E, 0x38, 0x20, 29},
		{0x0F, 0x38, 0x20, 30},
		{0x24, 0x38, 0x20, 31},
		{0x25, 0x38, 0x20, 32},
		{0x44, 0x38, 0x20, 33},
		{0x45, 0x38, 0x20, 34},
		{0x46, 0x38, 0x20, 35},
		{0x47, 0x38, 0x20, 36},
		{0x48, 0x38, 0x20, 37},
		{0x64, 0x38, 0x20, 38},
		{0x65, 0x38, 0x20, 39},
		{0x66, 0x38, 0x20, 40},
		{0x67, 0x38, 0x20, 41},
		{0x68, 0x38, 0x20, 42},
		{0x69, 0x38, 0x20, 43},
		{0x6A, 0x38, 0x20, 44},
		{0x6B, 0x38, 0x20, 45},
		{0x6C, 0x38, 0x20, 46},
		{0x6D, 0x38, 0x20, 47},
		{0x6E, 0x38, 0x20, 48},
		{0x6F, 0x38, 0x20, 49},
	},
	{ // 2300 MHz
		{0x00, 0x18, 0x20, -3},
		{0x00, 0x18, 0x00, -3},
		{0x00, 0x18, 0x00, -3},
		{0x00, 0x18, 0x00, -3},
		{0x00, 0x18, 0x00, -3},
		{0x00, 0x18, 0x00, -3},
		{0x00, 0x18, 0x00, -3},
		{0x00, 0x18, 0x20, -3},
		{0x01, 0x18, 0x20, 0},
		{0x02, 0x18, 0x20, 6},
		{0x04, 0x18, 0x20, 12},
		{0x04, 0x38, 0x20, 18},
		{0x05, 0x38, 0x20, 19},
		{0x06, 0x38, 0x20, 20},
		{0x07, 0x38, 0x20, 21},
		{0x08, 0x38, 0x20, 22},
		{0x09, 0x38, 0x20, 23},
		{0x0A, 0x38, 0x20, 24},
		{0x0B, 0x38, 0x20, 25},
		{0x0C, 0x38, 0x20, 26},
		{0x0D, 0x38, 0x20, 27},
		{0x0E, 0x38, 0x20, 28},
		{0x0F, 0x38, 0x20, 29},
		{0x25, 0x38, 0x20, 30},
		{0x26, 0x38, 0x20, 31},
		{0x44, 0x38, 0x20, 32},
		{0x45, 0x38, 0x20, 33},
		{0x46, 0x38, 0x20, 34},
		{0x47, 0x38, 0x20, 35},
		{0x64, 0x38, 0x20, 36},
		{0x65, 0x38, 0x20, 37},
		{0x66, 0x38, 0x20, 38},
		{0x67, 0x38, 0x20, 39},
		{0x68, 0x38, 0x20, 40},
		{0x69, 0x38, 0x20, 41},
		{0x6A, 0x38, 0x20, 42},
		{0x6B, 0x38, 0x20, 43},
		{0x6C, 0x38, 0x20, 44},
		{0x6D, 0x38, 0x20, 45},
		{0x6E, 0x38, 0x20, 46},
		{0x6F, 0x38, 0x20, 47},
	},
	{ // 5500 MHz
		{0x00, 0x18, 0x20, -10},
		{0x00, 0x18, 0x00, -10},
		{0x00, 0x18, 0x00, -10},
		{0x00, 0x18, 0x00, -10},
		{0x00, 0x18, 0x00, -10},
		{0x00, 0x18, 0x00, -10},
		{0x00, 0x18, 0x00, -10},
		{0x00, 0x18, 0x00, -10},
		{0x00, 0x18, 0x00, -10},
		{0x00, 0x18, 0x00, -10},
		{0x01, 0x18, 0x20, -7},
		{0x02, 0x18, 0x20, -2},
		{0x04, 0x18, 0x20, 3},
		{0x04, 0x38, 0x20, 9},
		{0x05, 0x38, 0x20, 10},
		{0x06, 0x38, 0x20, 11},
		{0x07, 0x38, 0x20, 12},
		{0x08, 0x38, 0x20, 13},
		{0x09, 0x38, 0x20, 14},
		{0x0A, 0x38, 0x20, 15},
		{0x0B, 0x38, 0x20, 16},
		{0x0C, 0x38, 0x20, 17},
		{0x0D, 0x38, 0x20, 18},
		{0x0E, 0x38, 0x20, 19},
		{0x0F, 0x38, 0x20, 20},
		{0x62, 0x38, 0x20, 22},
		{0x25, 0x38, 0x20, 24},
		{0x26, 0x38, 0x20, 25},
		{0x44, 0x38, 0x20, 26},
		{0x64, 0x38, 0x20, 27},
		{0x65, 0x38, 0x20, 28},
		{0x66, 0x38, 0x20, 29},
		{0x67, 0x38, 0x20, 30},
		{0x68, 0x38, 0x20, 31},
		{0x69, 0x38, 0x20, 32},
		{0x6A, 0x38, 0x20, 33},
		{0x6B, 0x38, 0x20, 34},
		{0x6C, 0x38, 0x20, 35},
		{0x6D, 0x38, 0x20, 36},
		{0x6E, 0x38, 0x20, 37},
		{0x6F, 0x38, 0x20, 38},
	},
}
