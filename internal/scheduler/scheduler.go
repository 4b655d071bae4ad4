package scheduler

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"CryptoIntel/internal/calendar"
	"CryptoIntel/internal/config"
	"CryptoIntel/internal/fetcher"
	"CryptoIntel/internal/model"
	"CryptoIntel/internal/recorder"
	"CryptoIntel/internal/render"
	"CryptoIntel/internal/social"
)

// Publisher is the remote destination for the rendered newsletter.
type Publisher interface {
	Enabled() bool
	PagesURL() string
	Publish(html string) (string, error)
}

// Pipeline runs one full newsletter cycle: fetch, render, publish, social.
type Pipeline struct {
	Cfg       *config.Config
	Prices    fetcher.PriceFetcher
	Sentiment fetcher.SentimentFetcher
	Trending  fetcher.TrendingFetcher
	Renderer  *render.Renderer
	Publisher Publisher
	Recorder  recorder.Recorder
	Now       func() time.Time
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Run executes one newsletter cycle. Only a fetch failure aborts the run;
// everything after the fetch degrades to partial output and is reported via
// the log and the run record.
func (p *Pipeline) Run() error {
	log.Println("[INFO] newsletter run starting")

	var prices map[string]model.PriceRecord
	var sentiment model.SentimentReading

	// The two fetches are independent; run them concurrently.
	var g errgroup.Group
	g.Go(func() error {
		var err error
		if prices, err = p.Prices.FetchPrices(); err != nil {
			return fmt.Errorf("fetch prices: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if sentiment, err = p.Sentiment.FetchSentiment(); err != nil {
			return fmt.Errorf("fetch sentiment: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Printf("[ERROR] %v", err)
		p.record(&recorder.RunRecord{Status: recorder.StatusFetchFailed, Note: err.Error()})
		return err
	}

	week := calendar.WeekOf(p.now())
	log.Printf("[INFO] newsletter week: %s", week.Label())
	log.Printf("[INFO] fear & greed: %d (%s)", sentiment.Value, sentiment.Classification)

	rec := &recorder.RunRecord{
		WeekLabel:      week.Label(),
		SentimentValue: sentiment.Value,
		SentimentClass: sentiment.Classification,
		Status:         recorder.StatusOK,
		Snapshots:      snapshots(prices),
	}

	// Render and publish. A missing template is reported, not fatal: the
	// social outputs below are still produced.
	html, err := p.Renderer.Render(prices, sentiment, week)
	switch {
	case errors.Is(err, render.ErrTemplateMissing):
		log.Printf("[WARN] %v, skipping HTML generation", err)
		rec.Status = recorder.StatusTemplateMissing
		rec.Note = err.Error()
	case err != nil:
		log.Printf("[ERROR] render: %v", err)
		rec.Status = recorder.StatusPartial
		rec.Note = err.Error()
	default:
		outPath := filepath.Join(p.Cfg.Newsletter.OutputDir, p.Cfg.GitHub.FilePath)
		if werr := os.WriteFile(outPath, []byte(html), 0o644); werr != nil {
			log.Printf("[ERROR] write %s: %v", outPath, werr)
			rec.Status = recorder.StatusPartial
			rec.Note = werr.Error()
		} else {
			log.Printf("[INFO] newsletter written: %s", outPath)
			p.publish(html, rec)
		}
	}

	if p.Trending != nil {
		if coins, terr := p.Trending.FetchTrending(); terr != nil {
			log.Printf("[WARN] trending fetch: %v", terr)
		} else {
			rec.Trending = trendingSummary(coins)
			log.Printf("[INFO] trending: %s", rec.Trending)
		}
	}

	p.writeSocial(prices, week, rec)
	p.record(rec)

	log.Printf("[INFO] newsletter run complete (status %s)", rec.Status)
	return nil
}

func (p *Pipeline) publish(html string, rec *recorder.RunRecord) {
	if p.Publisher == nil || !p.Publisher.Enabled() {
		log.Println("[WARN] GitHub credentials not found, skipping deployment")
		return
	}
	url, err := p.Publisher.Publish(html)
	if err != nil {
		log.Printf("[ERROR] %v", err)
		rec.Status = recorder.StatusPublishFailed
		rec.Note = err.Error()
		return
	}
	rec.Published = true
	rec.PagesURL = url
	log.Printf("[INFO] deployed, live at %s", url)
}

func (p *Pipeline) writeSocial(prices map[string]model.PriceRecord, week model.WeekRange, rec *recorder.RunRecord) {
	tweets := social.Thread(prices, week, p.pagesURL(), p.Cfg.Social.TwitterHandle)
	threadPath := filepath.Join(p.Cfg.Newsletter.OutputDir, "twitter_thread.txt")
	if err := os.WriteFile(threadPath, []byte(social.FormatThreadFile(tweets)), 0o644); err != nil {
		log.Printf("[ERROR] write %s: %v", threadPath, err)
		rec.Status = recorder.StatusPartial
	} else {
		log.Printf("[INFO] twitter thread written: %s", threadPath)
	}

	captionPath := filepath.Join(p.Cfg.Newsletter.OutputDir, "instagram_caption.txt")
	if err := os.WriteFile(captionPath, []byte(social.Caption(prices, week)), 0o644); err != nil {
		log.Printf("[ERROR] write %s: %v", captionPath, err)
		rec.Status = recorder.StatusPartial
	} else {
		log.Printf("[INFO] instagram caption written: %s", captionPath)
	}
}

func (p *Pipeline) pagesURL() string {
	if p.Publisher != nil && p.Publisher.Enabled() {
		return p.Publisher.PagesURL()
	}
	user := p.Cfg.GitHub.Username
	if user == "" {
		user = "your-username"
	}
	return fmt.Sprintf("https://%s.github.io/%s", user, p.Cfg.GitHub.Repo)
}

func (p *Pipeline) record(rec *recorder.RunRecord) {
	if p.Recorder == nil {
		return
	}
	if err := p.Recorder.RecordRun(rec); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
}

func snapshots(prices map[string]model.PriceRecord) []recorder.AssetSnapshot {
	snaps := make([]recorder.AssetSnapshot, 0, len(model.Assets))
	for _, a := range model.Assets {
		r, ok := prices[a.Symbol]
		if !ok {
			continue
		}
		snaps = append(snaps, recorder.AssetSnapshot{
			Symbol:    r.Symbol,
			Price:     r.Price,
			Change24h: r.Change24h,
			Volume24h: r.Volume24h,
			MarketCap: r.MarketCap,
			Live:      r.Live,
		})
	}
	return snaps
}

func trendingSummary(coins []model.TrendingCoin) string {
	parts := make([]string, 0, len(coins))
	for _, c := range coins {
		parts = append(parts, fmt.Sprintf("%s (%s) #%d", c.Name, c.Symbol, c.Rank))
	}
	return strings.Join(parts, ", ")
}

// Scheduler runs the pipeline on a weekly cron schedule.
type Scheduler struct {
	Cron     *cron.Cron
	Pipeline *Pipeline
}

// NewScheduler creates a new Scheduler.
func NewScheduler(p *Pipeline) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Pipeline: p,
	}
}

// Register adds the weekly run to the cron table.
func (s *Scheduler) Register(weeklyCron string) error {
	if _, err := s.Cron.AddFunc(weeklyCron, func() {
		if err := s.Pipeline.Run(); err != nil {
			log.Printf("[ERROR] scheduled run: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}
