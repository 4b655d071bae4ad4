package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"CryptoIntel/internal/config"
	"CryptoIntel/internal/fetcher"
	"CryptoIntel/internal/publisher"
	"CryptoIntel/internal/recorder"
	"CryptoIntel/internal/render"
	"CryptoIntel/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] Crypto Intel Weekly starting...")

	// Best-effort: credentials may come from a .env file.
	_ = godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetchers
	cg := fetcher.NewCoinGeckoFetcher(cfg.DataSource.CoinGeckoURL, cfg.Proxy)
	fg := fetcher.NewFearGreedFetcher(cfg.DataSource.SentimentURL, cfg.Proxy)
	log.Printf("[INFO] data sources: %s, %s", cg.Name(), fg.Name())

	// Init publisher
	pub := publisher.NewGitHubPublisher(
		cfg.GitHub.Token, cfg.GitHub.Username, cfg.GitHub.Repo, cfg.GitHub.FilePath, cfg.Proxy)
	if !pub.Enabled() {
		log.Println("[WARN] GITHUB_TOKEN / GITHUB_USERNAME not set, deployment will be skipped")
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	pipe := &scheduler.Pipeline{
		Cfg:       cfg,
		Prices:    cg,
		Sentiment: fg,
		Trending:  cg,
		Renderer:  render.NewRenderer(cfg.Newsletter.TemplatePath),
		Publisher: pub,
		Recorder:  rec,
	}

	// Without a cron schedule this is a one-shot run. Errors are logged, not
	// re-raised: partial output is acceptable and the exit code stays 0.
	if cfg.Schedule.WeeklyCron == "" {
		if err := pipe.Run(); err != nil {
			log.Printf("[ERROR] run: %v", err)
		}
		log.Println("[INFO] Crypto Intel Weekly finished")
		return
	}

	sched := scheduler.NewScheduler(pipe)
	if err := sched.Register(cfg.Schedule.WeeklyCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing run now")
		go func() {
			if err := pipe.Run(); err != nil {
				log.Printf("[ERROR] run: %v", err)
			}
		}()
	}

	log.Printf("[INFO] Crypto Intel Weekly is running on schedule %q. Press Ctrl+C to stop.", cfg.Schedule.WeeklyCron)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	log.Println("[INFO] Crypto Intel Weekly stopped")
}
