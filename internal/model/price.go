package model

// PriceRecord holds the market snapshot for one tracked asset.
type PriceRecord struct {
	Symbol    string
	Price     float64
	Change24h float64
	Volume24h float64
	MarketCap float64
	ATH       float64
	ATL       float64
	// Live is false when the data source does not cover the asset and the
	// record carries static fallback values instead of a fetched quote.
	Live bool
}

// Asset maps an internal symbol to its data-source id. An empty CoinGeckoID
// means the asset is not listed and must be filled from static fallback data.
type Asset struct {
	Symbol      string
	CoinGeckoID string
}

// Assets is the fixed set of tracked assets, in display order.
var Assets = []Asset{
	{Symbol: "btc", CoinGeckoID: "bitcoin"},
	{Symbol: "eth", CoinGeckoID: "ethereum"},
	{Symbol: "usdt", CoinGeckoID: "tether"},
	{Symbol: "dai", CoinGeckoID: "dai"},
	{Symbol: "pls"},
	{Symbol: "hex"},
}
