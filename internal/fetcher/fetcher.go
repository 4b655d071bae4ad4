package fetcher

import "CryptoIntel/internal/model"

// PriceFetcher returns one PriceRecord per tracked asset, keyed by symbol.
type PriceFetcher interface {
	FetchPrices() (map[string]model.PriceRecord, error)
	Name() string
}

// SentimentFetcher returns the current market sentiment reading.
type SentimentFetcher interface {
	FetchSentiment() (model.SentimentReading, error)
	Name() string
}

// TrendingFetcher returns the currently trending coins. Best-effort: callers
// treat a failure as non-fatal.
type TrendingFetcher interface {
	FetchTrending() ([]model.TrendingCoin, error)
}

// MockPriceFetcher returns controllable fixed data for development and testing.
type MockPriceFetcher struct {
	Records map[string]model.PriceRecord
	Err     error
}

func (m *MockPriceFetcher) Name() string { return "mock" }

func (m *MockPriceFetcher) FetchPrices() (map[string]model.PriceRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Records, nil
}

// MockSentimentFetcher returns a fixed sentiment reading.
type MockSentimentFetcher struct {
	Reading model.SentimentReading
	Err     error
}

func (m *MockSentimentFetcher) Name() string { return "mock" }

func (m *MockSentimentFetcher) FetchSentiment() (model.SentimentReading, error) {
	if m.Err != nil {
		return model.SentimentReading{}, m.Err
	}
	return m.Reading, nil
}

// MockTrendingFetcher returns a fixed trending list.
type MockTrendingFetcher struct {
	Coins []model.TrendingCoin
	Err   error
}

func (m *MockTrendingFetcher) FetchTrending() ([]model.TrendingCoin, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Coins, nil
}
