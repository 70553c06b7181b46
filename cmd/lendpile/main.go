package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hoozter/lendpile/internal/config"
	"github.com/hoozter/lendpile/internal/timeline"
	"github.com/hoozter/lendpile/pkg/constants"
	"github.com/hoozter/lendpile/pkg/datetime"
	"github.com/hoozter/lendpile/pkg/output"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to portfolio file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	targetDate := flag.String("target-date", "", "solve the monthly payment required to pay each loan off by this date")
	flag.Parse()

	portfolio, err := config.LoadPortfolio(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load portfolio at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := initializeLogger(portfolio.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := portfolio.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if outputFormat != constants.OutputFormatPretty && outputFormat != constants.OutputFormatCSV {
		logger.Fatal(fmt.Sprintf("invalid output format %s, must be one of %s or %s",
			outputFormat, constants.OutputFormatPretty, constants.OutputFormatCSV),
			zap.String("op", "main"),
		)
	}

	loans, warnings := portfolio.Convert()
	for _, warning := range warnings {
		logger.Warn("Portfolio warning: "+warning,
			zap.String("op", "main"),
		)
	}

	engine := timeline.NewEngine(logger)

	for i := range loans {
		rows := engine.BuildTimeline(&loans[i])
		switch outputFormat {
		case constants.OutputFormatPretty:
			output.PrettyFormat(loans[i].Name, rows)
		case constants.OutputFormatCSV:
			output.CsvFormat(loans[i].Name, rows)
		}
	}

	if *targetDate != "" {
		target, err := datetime.ParseDate(*targetDate)
		if err != nil {
			logger.Fatal("failed to parse target date",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		for i := range loans {
			required, ok := engine.RequiredPayment(&loans[i], target)
			if !ok {
				fmt.Printf("Loan %s cannot be paid off by %s (target not after loan start)\n", loans[i].Name, *targetDate)
				continue
			}
			fmt.Printf("Loan %s requires a monthly payment of %.2f %s to be paid off by %s\n",
				loans[i].Name, required, loans[i].CurrencyOrDefault(), *targetDate)
		}
	}
}
