package fetcher

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func quotePayload() map[string]map[string]float64 {
	return map[string]map[string]float64{
		"bitcoin": {
			"usd": 67234.5, "usd_24h_change": 2.4,
			"usd_24h_vol": 28_000_000_000, "usd_market_cap": 1_320_000_000_000,
		},
		"ethereum": {
			"usd": 2531.12, "usd_24h_change": -1.2,
			"usd_24h_vol": 12_000_000_000, "usd_market_cap": 305_000_000_000,
		},
		"tether": {
			"usd": 1.0, "usd_24h_vol": 45_000_000_000, "usd_market_cap": 112_000_000_000,
		},
		"dai": {
			"usd": 0.999, "usd_24h_change": 0.01,
			"usd_24h_vol": 150_000_000, "usd_market_cap": 5_300_000_000,
		},
	}
}

func priceServer(t *testing.T, payload any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
}

func TestFetchPrices(t *testing.T) {
	srv := priceServer(t, quotePayload())
	defer srv.Close()

	f := NewCoinGeckoFetcher(srv.URL, "")
	records, err := f.FetchPrices()
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(records) != 6 {
		t.Fatalf("expected 6 records, got %d", len(records))
	}

	btc := records["btc"]
	if !btc.Live {
		t.Error("btc should be live")
	}
	if btc.Price != 67234.5 || btc.Change24h != 2.4 {
		t.Errorf("btc record: %+v", btc)
	}
	if btc.ATH != 73750 || btc.ATL != 67.81 {
		t.Errorf("btc historical range: %+v", btc)
	}

	// Stablecoins may omit 24h change; that is not an error.
	if usdt := records["usdt"]; usdt.Change24h != 0 {
		t.Errorf("usdt change: got %f, want 0", usdt.Change24h)
	}

	// PLS and HEX are static fallbacks, flagged as such.
	pls := records["pls"]
	if pls.Live {
		t.Error("pls should not be live")
	}
	if pls.Price != 0.000089 {
		t.Errorf("pls static price: %f", pls.Price)
	}
	if hex := records["hex"]; hex.Live || hex.Price != 0.0041 {
		t.Errorf("hex static record: %+v", hex)
	}
}

func TestFetchPrices_MissingAsset(t *testing.T) {
	payload := quotePayload()
	delete(payload, "ethereum")
	srv := priceServer(t, payload)
	defer srv.Close()

	f := NewCoinGeckoFetcher(srv.URL, "")
	if _, err := f.FetchPrices(); err == nil {
		t.Fatal("expected error when a tracked asset is missing from the response")
	}
}

func TestFetchPrices_MissingPriceField(t *testing.T) {
	payload := quotePayload()
	delete(payload["bitcoin"], "usd")
	srv := priceServer(t, payload)
	defer srv.Close()

	f := NewCoinGeckoFetcher(srv.URL, "")
	if _, err := f.FetchPrices(); err == nil {
		t.Fatal("expected error when the usd price is missing")
	}
}

func TestFetchPrices_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := NewCoinGeckoFetcher(srv.URL, "")
	if _, err := f.FetchPrices(); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestFetchTrending(t *testing.T) {
	payload := map[string]any{
		"coins": []map[string]any{
			{"item": map[string]any{"name": "Solana", "symbol": "SOL", "market_cap_rank": 5}},
			{"item": map[string]any{"name": "Sui", "symbol": "SUI", "market_cap_rank": 18}},
			{"item": map[string]any{"name": "Pepe", "symbol": "PEPE", "market_cap_rank": 25}},
			{"item": map[string]any{"name": "Render", "symbol": "RNDR", "market_cap_rank": 30}},
			{"item": map[string]any{"name": "Arweave", "symbol": "AR", "market_cap_rank": 60}},
			{"item": map[string]any{"name": "Kaspa", "symbol": "KAS", "market_cap_rank": 33}},
		},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/trending" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	f := NewCoinGeckoFetcher(srv.URL, "")
	coins, err := f.FetchTrending()
	if err != nil {
		t.Fatalf("fetch trending: %v", err)
	}
	if len(coins) != 5 {
		t.Fatalf("expected top 5, got %d", len(coins))
	}
	if coins[0].Name != "Solana" || coins[0].Rank != 5 {
		t.Errorf("first trending coin: %+v", coins[0])
	}
}
