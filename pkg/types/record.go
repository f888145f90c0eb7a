package types

// UanRecord is one extracted member profile row. Missing portal data is
// tolerated as empty fields and is never fatal to a lookup.
type UanRecord struct {
	UAN         string
	Name        string
	JoiningDate string
	ExitDate    string
}

// UanRecordHeaders is the fixed column order of the profile lookup export.
var UanRecordHeaders = []string{"UAN", "Name", "Joining Date", "Exit Date"}

// Cells returns the record as a spreadsheet row in header order.
func (r UanRecord) Cells() []string {
	return []string{r.UAN, r.Name, r.JoiningDate, r.ExitDate}
}

// EcrDownloadItem is one downloaded statement, keyed by the portal's
// transaction reference and wage month.
type EcrDownloadItem struct {
	TransactionRef string
	WageMonth      string
	FilePath       string
}

// ServiceDetailTable is the scraped service detail grid for one member.
// Headers and every row have matching arity; rows that would violate
// that are dropped before they reach the table.
type ServiceDetailTable struct {
	UAN     string
	Headers []string
	Rows    [][]string
}

// AppendRow adds a row when its cell count matches the header count.
// It returns false for a malformed row so the caller can log and skip it.
func (t *ServiceDetailTable) AppendRow(cells []string) bool {
	if len(cells) != len(t.Headers) {
		return false
	}
	t.Rows = append(t.Rows, cells)
	return true
}

// IsEmpty returns true when no rows were collected for the member.
func (t *ServiceDetailTable) IsEmpty() bool {
	return len(t.Rows) == 0
}
