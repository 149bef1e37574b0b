package entity

// RawBar is one provider record. Every field is the provider's numeric string.
type RawBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// RawMeta mirrors the provider's "Meta Data" block.
type RawMeta struct {
	Information   string `json:"1. Information"`
	Symbol        string `json:"2. Symbol"`
	LastRefreshed string `json:"3. Last Refreshed"`
	Interval      string `json:"4. Interval"`
	OutputSize    string `json:"5. Output Size"`
	TimeZone      string `json:"6. Time Zone"`
}

// RawPayload is the untransformed series returned by the fetcher, keyed by timestamp string.
type RawPayload struct {
	Meta RawMeta           `json:"meta"`
	Bars map[string]RawBar `json:"bars"`
}

// Empty reports whether the payload carries no records.
func (p RawPayload) Empty() bool {
	return len(p.Bars) == 0
}
