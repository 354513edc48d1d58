package types

// RequestQuery narrows the rows the request store returns. Role scoping is
// applied afterwards by the workflow package, never in SQL.
type RequestQuery struct {
	Status string `json:"status,omitempty"`
	Type   string `json:"type,omitempty"`
	Search string `json:"search,omitempty"`
}
