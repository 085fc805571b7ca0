// Command summarizer reads a search batch as JSON, runs the generation
// engine, and writes the result as JSON to stdout. Provider credentials
// come from the environment (GROQ_API_KEY, GEMINI_API_KEY); a provider
// without a credential is simply absent from the registry.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/openjuris/summarizer/internal/config"
	"github.com/openjuris/summarizer/internal/health"
	_ "github.com/openjuris/summarizer/internal/metrics" // register collectors
	"github.com/openjuris/summarizer/internal/prompts"
	"github.com/openjuris/summarizer/internal/providers"
	"github.com/openjuris/summarizer/internal/summarizer"
)

func main() {
	input := flag.String("input", "-", "path to the search batch JSON, or - for stdin")
	mode := flag.String("mode", "", "prompt mode: comprehensive (default), quick, citations")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	logger = logger.With(zap.String("request_id", uuid.New().String()))

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	catalog := prompts.NewCatalog()
	if dir := cfg.Summarize.PromptDir; dir != "" {
		if err := catalog.LoadDirectory(dir); err != nil {
			logger.Fatal("Failed to load prompt overrides", zap.Error(err))
		}
	}

	registry := providers.NewRegistryFromConfig(cfg.Providers, logger)

	if port := config.MetricsPort(); port > 0 {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			health.NewChecker(registry, logger).RegisterRoutes(mux)
			addr := fmt.Sprintf(":%d", port)
			logger.Info("Metrics endpoint listening", zap.String("addr", addr))
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Warn("Metrics endpoint stopped", zap.Error(err))
			}
		}()
	}
	engine, err := summarizer.New(registry, catalog, summarizer.OptionsFromConfig(cfg.Summarize), logger)
	if err != nil {
		logger.Fatal("Failed to construct engine", zap.Error(err))
	}

	batch, err := readBatch(*input)
	if err != nil {
		logger.Fatal("Failed to read search batch", zap.Error(err))
	}

	result, err := engine.Summarize(context.Background(), batch, prompts.Mode(*mode))
	if err != nil {
		logger.Fatal("Summarize failed", zap.Error(err))
	}

	if result.Success {
		if stats, err := summarizer.ComputeStats(result); err == nil {
			logger.Info("Summary complete",
				zap.Int("word_count", stats.WordCount),
				zap.Int("citation_count", stats.CitationCount),
				zap.Int("source_count", stats.SourceCount),
				zap.String("mode", string(stats.Mode)),
			)
		}
	} else {
		logger.Warn("Summary not produced", zap.String("reason", result.Error))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		logger.Fatal("Failed to encode result", zap.Error(err))
	}
	if !result.Success {
		os.Exit(1)
	}
}

func readBatch(path string) (summarizer.SearchBatch, error) {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return summarizer.SearchBatch{}, err
		}
		defer f.Close()
		r = f
	}
	var batch summarizer.SearchBatch
	dec := json.NewDecoder(r)
	if err := dec.Decode(&batch); err != nil {
		return summarizer.SearchBatch{}, fmt.Errorf("decode batch: %w", err)
	}
	return batch, nil
}
