package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/txreport/internal/config"
	"github.com/carson-networks/txreport/internal/currency"
	"github.com/carson-networks/txreport/internal/loader"
	"github.com/carson-networks/txreport/internal/logging"
	"github.com/carson-networks/txreport/internal/masking"
	"github.com/carson-networks/txreport/internal/menu"
	"github.com/carson-networks/txreport/internal/report"
	"github.com/carson-networks/txreport/internal/service"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}
	if err := envConfig.Validate(); err != nil {
		logrus.WithError(err).Fatal("config.Validate")
		return
	}

	logger, logCloser := logging.SetupLogging(logging.Options{
		Level: envConfig.LogLevel,
		File:  envConfig.LogFile,
	})
	defer logCloser.Close()
	logger.Info("txreport starting")

	if envConfig.APIKey == "" {
		logger.Warn("API_KEY is not set, foreign currency amounts will count as zero")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rates := currency.NewAPILayerClient(envConfig.RatesURL, envConfig.APIKey, envConfig.RatesTimeout)
	converter := currency.NewConverter(rates, currency.Options{
		Reference:   envConfig.ReferenceCurrency,
		Convertible: envConfig.ConvertibleCurrencies,
		CacheTTL:    envConfig.RatesCacheTTL,
	}, logger)

	svc := service.NewService(loader.NewReaders(logger), converter, logger)

	hook := logging.NewHook(logger)
	printer := report.NewPrinter(os.Stdout, masking.NewMasker(hook), converter, envConfig.ReportCategories, hook)

	defaultPaths := map[loader.Source]string{
		loader.SourceJSON: envConfig.JSONPath,
		loader.SourceCSV:  envConfig.CSVPath,
		loader.SourceXLSX: envConfig.XLSXPath,
	}

	runner := menu.NewRunner(os.Stdin, os.Stdout, svc, printer, defaultPaths, logger)
	if err := runner.Run(ctx); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, context.Canceled) {
			logger.WithError(err).Info("txreport stopped before the menu was complete")
			return
		}
		logger.WithError(err).Error("menu.Run")
		logCloser.Close()
		os.Exit(1)
	}
}
