package captable

import "testing"

func TestParseStyle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ConversionStyle
	}{
		{"Pre-money", "pre-money", StylePreMoney},
		{"Post-money", "post-money", StylePostMoney},
		{"MFN", "mfn", StyleMFN},
		{"MFN post-money", "mfn-post-money", StyleMFNPostMoney},
		{"Mixed case", "Post-Money", StylePostMoney},
		{"Surrounding whitespace", "  pre-money ", StylePreMoney},
		{"Empty falls back to placeholder", "", StylePreMoneyDefault},
		{"Unknown falls back to placeholder", "common", StylePreMoneyDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseStyle(tt.input)
			if result != tt.expected {
				t.Errorf("ParseStyle(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSplitHoldings(t *testing.T) {
	holdings := []Holding{
		{Name: "Founders", Category: "Founder", Shares: 6000000},
		{Name: "Early employees", Category: "Employee", Shares: 2000000},
		{Name: "Pool", Category: "Option pool", Shares: 2000000},
		{Name: "Pool (case variant)", Category: "option POOL", Shares: 500000},
	}

	common, options := SplitHoldings(holdings)
	if common != 8000000 {
		t.Errorf("common = %v, expected 8000000", common)
	}
	if options != 2500000 {
		t.Errorf("options = %v, expected 2500000", options)
	}
}

func TestHasTag(t *testing.T) {
	note := Note{Tags: []string{"side-letter", "MFN "}}
	if !note.HasTag("mfn") {
		t.Errorf("HasTag(mfn) = false, expected true")
	}
	if note.HasTag("pro-rata") {
		t.Errorf("HasTag(pro-rata) = true, expected false")
	}
}

func TestOwnershipSumSkipsTotalRow(t *testing.T) {
	table := Table{
		Status: TableOK,
		Rows: []Row{
			{Kind: RowCommon, Ownership: 0.6},
			{Kind: RowNote, Ownership: 0.4},
			{Kind: RowTotal, Ownership: 1},
		},
	}
	if sum := table.OwnershipSum(); sum != 1.0 {
		t.Errorf("OwnershipSum() = %v, expected 1.0", sum)
	}
}
