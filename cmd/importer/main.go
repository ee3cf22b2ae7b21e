package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"go-gin-jobboard/internal/app"
	"go-gin-jobboard/internal/core/config"
	"go-gin-jobboard/internal/core/logger"
	"go-gin-jobboard/internal/importer"
)

// 把爬下来的 JSON 职位数据灌进库：公司按名称去重，职位逐条插入
func main() {
	file := pflag.StringP("file", "f", "job_data.json", "path to the scraped job JSON array")
	cfgPath := pflag.StringP("config", "c", os.Getenv("CONFIG_PATH"), "config file path")
	dryRun := pflag.Bool("dry-run", false, "parse and count without writing")
	pflag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()
	log = log.Named("importer")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal("open input", zap.String("file", *file), zap.Error(err))
	}
	entries, err := importer.Load(f)
	_ = f.Close()
	if err != nil {
		log.Fatal("parse input", zap.String("file", *file), zap.Error(err))
	}
	log.Info("entries loaded", zap.String("file", *file), zap.Int("count", len(entries)))

	db, store, err := app.OpenDB(ctx, cfg, log)
	if err != nil {
		log.Fatal("db", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	res, err := importer.New(store, log, *dryRun).Run(ctx, entries)
	if err != nil {
		log.Error("import aborted", zap.Error(err),
			zap.Int("companies", res.Companies), zap.Int("jobs", res.Jobs))
		return
	}
	log.Info("import finished",
		zap.Bool("dry_run", *dryRun),
		zap.Int("companies_created", res.Companies),
		zap.Int("companies_reused", res.CompaniesFound),
		zap.Int("jobs", res.Jobs),
		zap.Int("skipped", res.Skipped),
	)
}
