package models

// RawRow is one decoded line of an iCompta export.
type RawRow []string

// Cell returns the cell at index i and whether the row is long enough.
func (r RawRow) Cell(i int) (string, bool) {
	if i < 0 || i >= len(r) {
		return "", false
	}
	return r[i], true
}

// ColumnName returns a readable name for a known column index.
func ColumnName(i int) string {
	switch i {
	case ColumnDate:
		return "date"
	case ColumnCategory:
		return "category"
	case ColumnPayee:
		return "payee"
	case ColumnAmount:
		return "amount"
	case ColumnStatus:
		return "status"
	case ColumnComment:
		return "comment"
	default:
		return "column"
	}
}
