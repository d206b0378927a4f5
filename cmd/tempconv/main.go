package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/i474232898/temperature-converter/internal/config"
	"github.com/i474232898/temperature-converter/internal/converter"
	"github.com/i474232898/temperature-converter/internal/observability"
	"github.com/i474232898/temperature-converter/internal/store"
	"github.com/i474232898/temperature-converter/internal/usagelog"
	"github.com/i474232898/temperature-converter/internal/weather"
	"github.com/i474232898/temperature-converter/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg)
	metrics := observability.NewUnregisteredMetrics()

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	var provider weather.Provider = providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIBaseURL, cfg.WeatherAPIKey, cfg.LookupRetries)
	if cfg.LookupCacheTTL > 0 {
		provider = weather.NewCachedProvider(provider, cfg.LookupCacheTTL, metrics)
	}
	weatherSvc := weather.NewService(provider, store.NewMemoryStore(1, 0, nil), log, metrics)

	history := usagelog.NewRecorder(usagelog.NewFileLog(cfg.HistoryFile), nil)
	conv := converter.NewService(weatherSvc, history, log, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run(ctx, os.Args[1:], os.Stdout, conv)
}

// run performs exactly one action chosen by args and prints its result.
// Precedence when several flags are given: help, temp, zip, read.
func run(ctx context.Context, args []string, out io.Writer, conv *converter.Service) {
	fs := pflag.NewFlagSet("tempconv", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	temp := fs.StringP("temp", "t", "", "input temperature and scale")
	zip := fs.StringP("zip", "z", "", "input zip code")
	help := fs.BoolP("help", "h", false, "print help")
	read := fs.BoolP("read", "r", false, "print use history")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(out, conv.Invalid(ctx, usagelog.OriginCLI))
		return
	}

	switch {
	case *help:
		fmt.Fprintln(out, conv.Help(ctx, usagelog.OriginCLI))

	case fs.Changed("temp"):
		c, err := conv.Convert(ctx, usagelog.OriginCLI, *temp)
		if err != nil {
			fmt.Fprintln(out, err)
			return
		}
		fmt.Fprintln(out, converter.FormatConversion(c))

	case fs.Changed("zip"):
		report, err := conv.Lookup(ctx, usagelog.OriginCLI, *zip)
		if err != nil {
			fmt.Fprintln(out, err)
			return
		}
		fmt.Fprintln(out, converter.FormatZipReport(report))

	case *read:
		text, err := conv.History(ctx, usagelog.OriginCLI)
		if err != nil {
			fmt.Fprintln(out, err)
			return
		}
		fmt.Fprintln(out, converter.FormatHistory(text))

	default:
		fmt.Fprintln(out, conv.Invalid(ctx, usagelog.OriginCLI))
	}
}
