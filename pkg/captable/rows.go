package captable

// RowKind discriminates the variants of a cap-table row. Consumers should
// switch on the kind rather than probe for populated fields.
type RowKind string

const (
	RowCommon            RowKind = "common"
	RowNote              RowKind = "note"
	RowSeries            RowKind = "series"
	RowOptionPoolRefresh RowKind = "optionPoolRefresh"
	RowTotal             RowKind = "total"
)

// TableStatus qualifies a whole ownership table.
type TableStatus string

const (
	// TableOK marks a fully computed table.
	TableOK TableStatus = "ok"

	// TableError marks a table zeroed out because a note is structurally
	// invalid.
	TableError TableStatus = "error"

	// TableTBD marks a table that cannot be modeled yet, e.g. when every
	// note is uncapped.
	TableTBD TableStatus = "tbd"
)

// Row is one line of an ownership table. Which fields are meaningful depends
// on Kind: Category applies to common rows, Invested and Price to note and
// series rows, MFN to note rows, and Reason to rows in error or tbd tables.
type Row struct {
	Kind      RowKind `json:"kind"`
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name"`
	Category  string  `json:"category,omitempty"`
	Shares    float64 `json:"shares"`
	Ownership float64 `json:"ownership"`
	Invested  float64 `json:"invested,omitempty"`
	Price     float64 `json:"price,omitempty"`
	MFN       bool    `json:"mfn,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

// Table is an ownership snapshot. The Total row, when present, aggregates
// the others and is excluded from ownership-sum invariants.
type Table struct {
	Status TableStatus `json:"status"`
	Reason string      `json:"reason,omitempty"`
	Rows   []Row       `json:"rows"`
}

// OwnershipSum adds the ownership fractions of all non-total rows. For a
// fully computed table this sums to 1 within floating tolerance.
func (t Table) OwnershipSum() float64 {
	sum := 0.0
	for _, row := range t.Rows {
		if row.Kind == RowTotal {
			continue
		}
		sum += row.Ownership
	}
	return sum
}
