package model

// SentimentReading is the current Fear & Greed index value (0-100) with its
// qualitative label, e.g. 61 "Greed".
type SentimentReading struct {
	Value          int
	Classification string
}

// TrendingCoin is one entry from the trending-coins feed.
type TrendingCoin struct {
	Name   string
	Symbol string
	Rank   int
}
