// Copyright (c) 2025 cblomart
// Licensed under the MIT License

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ainewsagg/internal/aggregator"
	"ainewsagg/internal/api"
	"ainewsagg/internal/cache"
	"ainewsagg/internal/classifier"
	"ainewsagg/internal/config"
	"ainewsagg/internal/extractor"
	"ainewsagg/internal/fetcher"
	"ainewsagg/internal/poller"
	"ainewsagg/internal/storage"

	_ "ainewsagg/docs"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize cache for hot data
	cacheManager := cache.NewManager(cfg.CacheTTL)

	// Initialize persistent storage
	storageManager, err := storage.NewStorage(cfg.DataDir)
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}
	defer storageManager.Close()

	// Initialize the content pipeline
	contentExtractor := extractor.New()
	llmClassifier := classifier.New(cfg.LLM)
	rssFetcher := fetcher.NewRSSFetcher(contentExtractor, llmClassifier)
	arxivFetcher := fetcher.NewArxivFetcher(cfg.Arxiv)

	// Initialize news aggregator
	agg := aggregator.New(rssFetcher, arxivFetcher, storageManager, cacheManager, cfg.Feeds)

	// Initialize background poller; it runs a first aggregation immediately
	backgroundPoller := poller.New(agg, cfg.PollInterval)
	backgroundPoller.Start()

	// Initialize API server
	server := api.NewServer(storageManager, backgroundPoller, llmClassifier, contentExtractor, cacheManager, cfg)

	log.Printf("Starting AI News Aggregator server on port %d", cfg.Port)
	log.Printf("Data directory: %s", cfg.DataDir)
	log.Printf("Cache TTL: %v", cfg.CacheTTL)
	log.Printf("Background polling interval: %v", cfg.PollInterval)
	log.Printf("Configured feeds: %d, ArXiv categories: %d", len(cfg.Feeds), len(cfg.Arxiv.Categories))

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Create a context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start signal handler in goroutine
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, stopping services...")
		backgroundPoller.Stop()
		cancel() // Cancel the context to stop the server
	}()

	// Start the server with context for graceful shutdown
	if err := server.StartWithContext(ctx); err != nil && err != context.Canceled {
		log.Fatal("Failed to start server:", err)
	}
}
