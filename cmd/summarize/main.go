package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/zatekoja/facilityqualityinsights/internal/adapters/dataset"
	"github.com/zatekoja/facilityqualityinsights/internal/application/services"
	"github.com/zatekoja/facilityqualityinsights/internal/infrastructure/clients/anthropic"
	"github.com/zatekoja/facilityqualityinsights/internal/infrastructure/observability"
	"github.com/zatekoja/facilityqualityinsights/pkg/config"
)

// summarize produces one dashboard summary from the command line, useful for
// smoke-testing datasets and the generation credential without the server.
func main() {
	facility := flag.String("facility", "", "Facility name to summarize")
	flag.Parse()

	if *facility == "" {
		fmt.Fprintln(os.Stderr, "usage: summarize -facility \"Mercy General Hospital\"")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, "development")

	store, err := dataset.Load(&cfg.Datasets)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load datasets: %v\n", err)
		os.Exit(1)
	}

	resolver := services.NewResolverService(store, cfg.Resolver)
	extractor := services.NewExtractorService(store, cfg.Resolver)
	narrative := anthropic.NewClient(&cfg.Anthropic)
	summaries := services.NewSummaryService(resolver, extractor, narrative, nil, 0, nil)

	text, err := summaries.DashboardSummary(context.Background(), *facility)
	if err != nil {
		fmt.Fprintf(os.Stderr, "summary failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(text)
}
