package analytics

// DailyCount is one point of the daily click series.
type DailyCount struct {
	Date  string `json:"date"  doc:"Day in YYYY-MM-DD (UTC)" example:"2024-01-15"`
	Count int    `json:"count" doc:"Clicks on that day"       example:"12"`
}

// BlockCount pairs a block with its click total.
type BlockCount struct {
	BlockID string `json:"blockId" doc:"Block ID"`
	Count   int    `json:"count"   doc:"Click total" example:"42"`
}

// Summary aggregates click activity over the requested range.
type Summary struct {
	Range       string         `json:"range"       doc:"Range the summary covers"       example:"30d"`
	TotalClicks int            `json:"totalClicks" doc:"Total clicks in the range"      example:"128"`
	ActiveDays  int            `json:"activeDays"  doc:"Days with at least one click"   example:"9"`
	Daily       []DailyCount   `json:"daily"       doc:"Daily series in ascending date order"`
	Countries   map[string]int `json:"countries"   doc:"Clicks by visitor country code"`
	Referrers   map[string]int `json:"referrers"   doc:"Clicks by referrer"`
	TopBlocks   []BlockCount   `json:"topBlocks"   doc:"Best performing blocks, highest first"`
}

// BlockStats maps block IDs to all-time click counts.
type BlockStats struct {
	Stats map[string]int `json:"stats" doc:"All-time click count per block ID"`
}
