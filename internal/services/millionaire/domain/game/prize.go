package game

import (
	"errors"
	"fmt"
	"sort"
)

var defaultPrizes = []int64{
	100, 200, 300, 500, 1_000,
	2_000, 4_000, 8_000, 16_000, 32_000,
	64_000, 125_000, 250_000, 500_000, 1_000_000,
}

var defaultGuaranteedLevels = []int{4, 9}

// PrizeTable maps each level to the amount won once it is answered.
type PrizeTable struct {
	amounts    []int64
	guaranteed []int // sorted ascending
}

// DefaultPrizeTable returns the 15-level table with checkpoints at levels 4 and 9.
func DefaultPrizeTable() PrizeTable {
	table, err := NewPrizeTable(defaultPrizes, defaultGuaranteedLevels)
	if err != nil {
		panic(err)
	}
	return table
}

// NewPrizeTable validates and builds a prize table. Amounts must be positive
// and strictly increasing; guaranteed levels must be distinct table indexes.
func NewPrizeTable(amounts []int64, guaranteed []int) (PrizeTable, error) {
	if len(amounts) == 0 {
		return PrizeTable{}, errors.New("prize table is empty")
	}
	for i, amount := range amounts {
		if amount <= 0 {
			return PrizeTable{}, fmt.Errorf("prize for level %d must be positive", i)
		}
		if i > 0 && amount <= amounts[i-1] {
			return PrizeTable{}, fmt.Errorf("prize for level %d must exceed level %d", i, i-1)
		}
	}
	levels := append([]int(nil), guaranteed...)
	sort.Ints(levels)
	for i, level := range levels {
		if level < 0 || level >= len(amounts) {
			return PrizeTable{}, fmt.Errorf("guaranteed level %d out of range", level)
		}
		if i > 0 && level == levels[i-1] {
			return PrizeTable{}, fmt.Errorf("guaranteed level %d repeated", level)
		}
	}
	return PrizeTable{
		amounts:    append([]int64(nil), amounts...),
		guaranteed: levels,
	}, nil
}

// Levels returns the number of levels in the table.
func (t PrizeTable) Levels() int {
	return len(t.amounts)
}

// MaxLevel returns the index of the last level.
func (t PrizeTable) MaxLevel() int {
	return len(t.amounts) - 1
}

// Amount returns the prize for answering level, or 0 outside the table.
func (t PrizeTable) Amount(level int) int64 {
	if level < 0 || level >= len(t.amounts) {
		return 0
	}
	return t.amounts[level]
}

// Top returns the prize for answering every level.
func (t PrizeTable) Top() int64 {
	if len(t.amounts) == 0 {
		return 0
	}
	return t.amounts[len(t.amounts)-1]
}

// IsGuaranteed reports whether level is a checkpoint.
func (t PrizeTable) IsGuaranteed(level int) bool {
	i := sort.SearchInts(t.guaranteed, level)
	return i < len(t.guaranteed) && t.guaranteed[i] == level
}

// GuaranteedLevels returns the checkpoint levels in ascending order.
func (t PrizeTable) GuaranteedLevels() []int {
	return append([]int(nil), t.guaranteed...)
}

// Guaranteed returns the amount kept on failure after answering every level up
// to and including answered: the prize of the highest checkpoint at or below
// answered, or 0 before the first checkpoint.
func (t PrizeTable) Guaranteed(answered int) int64 {
	// index of the first checkpoint strictly above answered
	i := sort.SearchInts(t.guaranteed, answered+1)
	if i == 0 {
		return 0
	}
	return t.amounts[t.guaranteed[i-1]]
}

// Amounts returns a copy of every level's prize.
func (t PrizeTable) Amounts() []int64 {
	return append([]int64(nil), t.amounts...)
}
