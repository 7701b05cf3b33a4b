package main

import (
	"context"
	"flag"
	"log"
	"time"

	"jobradar/internal/app"
	"jobradar/internal/config"
	"jobradar/internal/database/migration"
)

// One-shot aggregation run, for cron-less deployments and local inspection.
func main() {
	timeoutMin := flag.Int("timeout", 10, "run timeout in minutes")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg, log.Default())
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	r := migration.Runner{Dir: "migrations"}
	if err := r.Run(migCtx, c.DB.SQLDB()); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(*timeoutMin)*time.Minute)
	defer cancel()

	for _, sum := range c.Engine.RunAll(ctx) {
		status := "SUCCESS"
		if sum.Error != "" {
			status = "DEGRADED"
		}
		log.Printf("source=%s status=%s found=%d created=%d updated=%d duration=%dms error=%q",
			sum.Source, status, sum.JobsFound, sum.JobsCreated, sum.JobsUpdated, sum.DurationMS, sum.Error)
	}
}
