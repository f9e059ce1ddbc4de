package entity

// MonthSummary resume o que uma execução produziu para um mês.
type MonthSummary struct {
	Provider   string   `json:"provider"`
	Month      string   `json:"month"`
	Year       int      `json:"year"`
	OutputFile string   `json:"output_file"`
	RowCount   int      `json:"row_count"`
	Generators []string `json:"generators"`
	Delivered  bool     `json:"delivered"`
}
