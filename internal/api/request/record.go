package request

// LegRequest carries the fields of a purchase or sale leg. Which emotion
// vocabulary applies depends on where the leg is used.
type LegRequest struct {
	Amount  float64 `json:"amount"`
	Shares  int     `json:"shares"`
	Date    string  `json:"date"`
	Emotion string  `json:"emotion"`
	Reason  string  `json:"reason"`
}

// CreateRecordRequest creates a stock record from its initial purchase entry.
type CreateRecordRequest struct {
	Code     string     `json:"code"`
	Market   string     `json:"market"`
	Name     string     `json:"name"`
	Position string     `json:"position"`
	Purchase LegRequest `json:"purchase"`
	TagIDs   []string   `json:"tagIds"`
}

// UpdateRecordRequest edits the record's own fields and its purchase leg.
type UpdateRecordRequest struct {
	Code     *string     `json:"code,omitempty"`
	Market   *string     `json:"market,omitempty"`
	Name     *string     `json:"name,omitempty"`
	Position *string     `json:"position,omitempty"`
	Purchase *LegRequest `json:"purchase,omitempty"`
}

// SetTagsRequest replaces a record's tag links.
type SetTagsRequest struct {
	TagIDs []string `json:"tagIds"`
}
