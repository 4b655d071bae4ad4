package fetcher

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"CryptoIntel/internal/model"
)

// DefaultFearGreedURL is the public alternative.me Fear & Greed API base.
const DefaultFearGreedURL = "https://api.alternative.me"

// FearGreedFetcher fetches the current Fear & Greed index.
type FearGreedFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewFearGreedFetcher creates a fetcher with optional proxy support.
func NewFearGreedFetcher(baseURL, proxyURL string) *FearGreedFetcher {
	if baseURL == "" {
		baseURL = DefaultFearGreedURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &FearGreedFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *FearGreedFetcher) Name() string { return "alternative.me" }

// fngResponse is the /fng/ endpoint shape. Values arrive as strings.
type fngResponse struct {
	Data []struct {
		Value          string `json:"value"`
		Classification string `json:"value_classification"`
	} `json:"data"`
}

// FetchSentiment returns the latest index reading.
func (f *FearGreedFetcher) FetchSentiment() (model.SentimentReading, error) {
	resp, err := f.Client.Get(f.BaseURL + "/fng/")
	if err != nil {
		return model.SentimentReading{}, fmt.Errorf("fear/greed fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return model.SentimentReading{}, fmt.Errorf("fear/greed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var raw fngResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return model.SentimentReading{}, fmt.Errorf("fear/greed decode: %w", err)
	}
	if len(raw.Data) == 0 {
		return model.SentimentReading{}, fmt.Errorf("fear/greed: empty data")
	}

	value, err := strconv.Atoi(raw.Data[0].Value)
	if err != nil {
		return model.SentimentReading{}, fmt.Errorf("fear/greed: bad value %q: %w", raw.Data[0].Value, err)
	}
	return model.SentimentReading{
		Value:          value,
		Classification: raw.Data[0].Classification,
	}, nil
}
