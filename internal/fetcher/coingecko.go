package fetcher

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"CryptoIntel/internal/model"
)

// DefaultCoinGeckoURL is the public CoinGecko API base.
const DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3"

// historicalRange holds all-time high/low values per symbol. The simple/price
// endpoint does not return these, so they are pinned here.
var historicalRange = map[string][2]float64{
	"btc":  {73750, 67.81},
	"eth":  {4878, 0.43},
	"usdt": {1.32, 0.57},
	"dai":  {1.22, 0.89},
}

// staticRecords covers the assets CoinGecko does not list. Values are static
// fallbacks, flagged Live: false so renderers can label them accordingly.
var staticRecords = map[string]model.PriceRecord{
	"pls": {Symbol: "pls", Price: 0.000089, Change24h: 12.4, ATH: 0.000456, ATL: 0.000021},
	"hex": {Symbol: "hex", Price: 0.0041, Change24h: 8.7, ATH: 0.5701, ATL: 0.00019},
}

// CoinGeckoFetcher fetches quotes for the tracked assets from CoinGecko.
type CoinGeckoFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewCoinGeckoFetcher creates a fetcher with optional proxy support.
func NewCoinGeckoFetcher(baseURL, proxyURL string) *CoinGeckoFetcher {
	if baseURL == "" {
		baseURL = DefaultCoinGeckoURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &CoinGeckoFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

// FetchPrices fetches live quotes for every listed asset and merges in the
// static fallback records. A listed asset missing from the response is an
// error, never silently substituted.
func (f *CoinGeckoFetcher) FetchPrices() (map[string]model.PriceRecord, error) {
	ids := make([]string, 0, len(model.Assets))
	for _, a := range model.Assets {
		if a.CoinGeckoID != "" {
			ids = append(ids, a.CoinGeckoID)
		}
	}

	endpoint := fmt.Sprintf(
		"%s/simple/price?ids=%s&vs_currencies=usd&include_24hr_change=true&include_market_cap=true&include_24hr_vol=true",
		f.BaseURL, strings.Join(ids, ","))

	resp, err := f.Client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("coingecko fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("coingecko: status %d, body: %s", resp.StatusCode, string(body))
	}

	var raw map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("coingecko decode: %w", err)
	}

	records := make(map[string]model.PriceRecord, len(model.Assets))
	for _, a := range model.Assets {
		if a.CoinGeckoID == "" {
			records[a.Symbol] = staticRecords[a.Symbol]
			continue
		}
		quote, ok := raw[a.CoinGeckoID]
		if !ok {
			return nil, fmt.Errorf("coingecko: no data for %s (%s)", a.Symbol, a.CoinGeckoID)
		}
		price, ok := quote["usd"]
		if !ok {
			return nil, fmt.Errorf("coingecko: missing usd price for %s", a.Symbol)
		}
		rng := historicalRange[a.Symbol]
		records[a.Symbol] = model.PriceRecord{
			Symbol:    a.Symbol,
			Price:     price,
			Change24h: quote["usd_24h_change"], // stablecoins sometimes omit this
			Volume24h: quote["usd_24h_vol"],
			MarketCap: quote["usd_market_cap"],
			ATH:       rng[0],
			ATL:       rng[1],
			Live:      true,
		}
	}
	return records, nil
}

// trendingResponse is the shape of the search/trending endpoint.
type trendingResponse struct {
	Coins []struct {
		Item struct {
			Name          string `json:"name"`
			Symbol        string `json:"symbol"`
			MarketCapRank int    `json:"market_cap_rank"`
		} `json:"item"`
	} `json:"coins"`
}

// FetchTrending returns up to the top five trending coins.
func (f *CoinGeckoFetcher) FetchTrending() ([]model.TrendingCoin, error) {
	resp, err := f.Client.Get(f.BaseURL + "/search/trending")
	if err != nil {
		return nil, fmt.Errorf("trending fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trending: status %d", resp.StatusCode)
	}

	var raw trendingResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("trending decode: %w", err)
	}

	trending := make([]model.TrendingCoin, 0, 5)
	for _, c := range raw.Coins {
		if len(trending) == 5 {
			break
		}
		trending = append(trending, model.TrendingCoin{
			Name:   c.Item.Name,
			Symbol: c.Item.Symbol,
			Rank:   c.Item.MarketCapRank,
		})
	}
	return trending, nil
}
