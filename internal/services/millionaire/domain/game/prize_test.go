package game

import "testing"

func TestDefaultPrizeTable(t *testing.T) {
	table := DefaultPrizeTable()
	if table.Levels() != 15 {
		t.Fatalf("levels = %d, want 15", table.Levels())
	}
	if table.Top() != 1_000_000 {
		t.Fatalf("top = %d, want 1000000", table.Top())
	}
	if table.Amount(0) != 100 {
		t.Fatalf("level 0 = %d, want 100", table.Amount(0))
	}
	if table.Amount(4) != 1_000 || table.Amount(9) != 32_000 {
		t.Fatalf("checkpoint amounts = %d, %d", table.Amount(4), table.Amount(9))
	}
	if table.Amount(-1) != 0 || table.Amount(15) != 0 {
		t.Fatal("expected zero outside the table")
	}
	if !table.IsGuaranteed(4) || !table.IsGuaranteed(9) || table.IsGuaranteed(5) {
		t.Fatalf("guaranteed levels = %v", table.GuaranteedLevels())
	}
}

func TestPrizeTableGuaranteed(t *testing.T) {
	table := DefaultPrizeTable()
	tests := []struct {
		answered int
		want     int64
	}{
		{answered: -1, want: 0},
		{answered: 0, want: 0},
		{answered: 3, want: 0},
		{answered: 4, want: 1_000},
		{answered: 5, want: 1_000},
		{answered: 8, want: 1_000},
		{answered: 9, want: 32_000},
		{answered: 14, want: 32_000},
	}
	for _, tc := range tests {
		if got := table.Guaranteed(tc.answered); got != tc.want {
			t.Errorf("Guaranteed(%d) = %d, want %d", tc.answered, got, tc.want)
		}
	}
}

func TestNewPrizeTableValidation(t *testing.T) {
	tests := []struct {
		name       string
		amounts    []int64
		guaranteed []int
	}{
		{name: "empty", amounts: nil},
		{name: "non positive", amounts: []int64{0, 10}},
		{name: "not increasing", amounts: []int64{10, 10}},
		{name: "guaranteed out of range", amounts: []int64{10, 20}, guaranteed: []int{2}},
		{name: "guaranteed negative", amounts: []int64{10, 20}, guaranteed: []int{-1}},
		{name: "guaranteed repeated", amounts: []int64{10, 20}, guaranteed: []int{1, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewPrizeTable(tc.amounts, tc.guaranteed); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNewPrizeTableCopiesInput(t *testing.T) {
	amounts := []int64{10, 20, 30}
	table, err := NewPrizeTable(amounts, []int{1})
	if err != nil {
		t.Fatalf("new prize table: %v", err)
	}
	amounts[0] = 999
	if table.Amount(0) != 10 {
		t.Fatalf("amount = %d, want 10", table.Amount(0))
	}
}
