package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"frizo/margin_sdk/internal/config"
	"frizo/margin_sdk/internal/logger"
	"frizo/margin_sdk/internal/margin"
	"frizo/margin_sdk/internal/portfolio"
	"frizo/margin_sdk/internal/version"
	"frizo/margin_sdk/pkg/utils"
)

// options are the command line overrides of the configured request defaults
type options struct {
	date              string
	reportingCcy      string
	calculationCcy    string
	requestType       string
	clientMultiplier  bool
	tradesCSV         string
	aggregatePosition bool
}

func main() {
	// Command line flags
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		configFile  = flag.String("config", "", "Path to a dotenv configuration file")
		logLevel    = flag.String("log-level", "", "Log level (debug, info, warn, error)")
		opts        options
	)
	flag.StringVar(&opts.date, "date", "", "Valuation date (YYYY-MM-DD), default today")
	flag.StringVar(&opts.reportingCcy, "ccy", "", "Reporting currency")
	flag.StringVar(&opts.calculationCcy, "calc-ccy", "", "Calculation currency, inferred by the service when empty")
	flag.StringVar(&opts.requestType, "type", "", "Request type (STANDARD, FULL)")
	flag.BoolVar(&opts.clientMultiplier, "client-multiplier", false, "Apply the client multiplier")
	flag.StringVar(&opts.tradesCSV, "trades", "", "Trade blotter CSV, each trade sent as XML")
	flag.BoolVar(&opts.aggregatePosition, "positions", false, "Aggregate blotter trades into positions before sending")
	flag.Parse()

	// Handle version flag
	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	// Handle help flag
	if *showHelp {
		fmt.Printf("marginreq %s\n\n", version.Short())
		fmt.Println("Usage: marginreq [flags] <portfolio file or directory>...")
		flag.PrintDefaults()
		os.Exit(0)
	}

	// Load configuration
	var files []string
	if *configFile != "" {
		files = append(files, *configFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Override log level from command line
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	// Initialize logger
	log := logger.New(cfg.LogLevel)
	logger.SetDefault(log)

	log.Debug("Starting marginreq",
		"version", version.Short(),
		"user_agent", version.UserAgent(),
		"environment", cfg.Environment,
	)

	if err := run(cfg, opts, flag.Args(), os.Stdout, log); err != nil {
		log.Error("Failed to build margin request", "error", err)
		os.Exit(1)
	}
}

// run builds the request and writes its JSON envelope to out
func run(cfg *config.Config, opts options, paths []string, out io.Writer, log *logger.Logger) error {
	applyOverrides(cfg, opts)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	typ, err := cfg.Type()
	if err != nil {
		return err
	}
	date, err := cfg.Date(time.Now())
	if err != nil {
		return err
	}

	items, err := collectItems(paths, opts, log)
	if err != nil {
		return err
	}

	var reqOpts []margin.Option
	if cfg.CalculationCurrency != "" {
		reqOpts = append(reqOpts, margin.WithCalculationCurrency(cfg.CalculationCurrency))
	}

	req, err := margin.NewRequest(date, cfg.ReportingCurrency, items, typ, cfg.ApplyClientMultiplier, reqOpts...)
	if err != nil {
		return err
	}

	log.Info("Margin request built",
		"type", req.Type(),
		"valuation_date", req.ValuationDate(),
		"reporting_currency", req.ReportingCurrency(),
		"files", req.PortfolioDataLen(),
	)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(req)
}

func applyOverrides(cfg *config.Config, opts options) {
	if opts.date != "" {
		cfg.ValuationDate = opts.date
	}
	if opts.reportingCcy != "" {
		cfg.ReportingCurrency = strings.ToUpper(opts.reportingCcy)
	}
	if opts.calculationCcy != "" {
		cfg.CalculationCurrency = strings.ToUpper(opts.calculationCcy)
	}
	if opts.requestType != "" {
		cfg.RequestType = opts.requestType
	}
	if opts.clientMultiplier {
		cfg.ApplyClientMultiplier = true
	}
}

// collectItems expands directories and reads every file, in argument order,
// followed by the blotter trades or positions.
func collectItems(paths []string, opts options, log *logger.Logger) ([]margin.PortfolioItem, error) {
	items := make([]margin.PortfolioItem, 0, len(paths))

	for _, p := range paths {
		var files []string
		switch {
		case utils.DirExists(p):
			listed, err := utils.ListFiles(p)
			if err != nil {
				return nil, err
			}
			files = listed
		case utils.FileExists(p):
			files = []string{p}
		default:
			return nil, fmt.Errorf("portfolio input not found: %s", p)
		}

		for _, f := range files {
			file, err := margin.ReadPortfolioDataFile(f)
			if err != nil {
				return nil, err
			}
			log.Debug("Portfolio file added", "file", filepath.Base(f), "bytes", len(file.Data()))
			items = append(items, margin.File(file))
		}
	}

	if opts.tradesCSV == "" {
		return items, nil
	}

	blotter, err := os.Open(opts.tradesCSV)
	if err != nil {
		return nil, fmt.Errorf("failed to open trade blotter: %w", err)
	}
	defer blotter.Close()

	trades, err := portfolio.ReadTradesCSV(blotter)
	if err != nil {
		return nil, err
	}

	if opts.aggregatePosition {
		positions, err := portfolio.FromTrades(trades)
		if err != nil {
			return nil, err
		}
		return append(items, utils.Map(positions, func(p *portfolio.Position) margin.PortfolioItem {
			return margin.Object(p)
		})...), nil
	}

	return append(items, utils.Map(trades, func(t *portfolio.Trade) margin.PortfolioItem {
		return margin.Object(t)
	})...), nil
}
