package recorder

// RunStatus marks the outcome of a newsletter run.
type RunStatus string

const (
	StatusOK              RunStatus = "OK"
	StatusPartial         RunStatus = "PARTIAL"
	StatusFetchFailed     RunStatus = "FETCH_FAILED"
	StatusTemplateMissing RunStatus = "TEMPLATE_MISSING"
	StatusPublishFailed   RunStatus = "PUBLISH_FAILED"
)

// AssetSnapshot is the recorded price state of one asset at run time.
type AssetSnapshot struct {
	Symbol    string
	Price     float64
	Change24h float64
	Volume24h float64
	MarketCap float64
	Live      bool
}

// RunRecord holds everything persisted about one newsletter run.
type RunRecord struct {
	WeekLabel      string
	SentimentValue int
	SentimentClass string
	Published      bool
	PagesURL       string
	Status         RunStatus
	Note           string
	Trending       string
	Snapshots      []AssetSnapshot
}

// Recorder persists run history for analysis.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	Close() error
}
