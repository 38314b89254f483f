package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"bitbucket.org/mmdatafocus/roserial_backend/config"
	"bitbucket.org/mmdatafocus/roserial_backend/ledger"
	"bitbucket.org/mmdatafocus/roserial_backend/storage"
)

// Replays the transaction log against the stored unit set and reports drift.
// With --repair the replayed projection replaces the stored units.

func main() {
	repair := flag.Bool("repair", false, "Replace the unit set with the replayed projection")
	flag.Parse()

	switch storage.GetStorageProvider() {
	case storage.ProviderRedis:
		config.ConnectRedisWithRetry()
	case storage.ProviderMySQL:
		config.ConnectDatabaseWithRetry()
	}

	ctx := context.Background()
	svc := ledger.New(storage.NewFromEnv(), nil)
	if err := svc.Load(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "load failed: %v\n", err)
		os.Exit(1)
	}

	drift, err := svc.RebuildUnits(ctx, *repair)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rebuild failed: %v\n", err)
		os.Exit(1)
	}

	if drift == 0 {
		fmt.Println("unit set matches the transaction log")
		return
	}
	if *repair {
		fmt.Printf("repaired %d drifted units\n", drift)
		return
	}
	fmt.Printf("%d drifted units found (run with --repair to fix)\n", drift)
	os.Exit(2)
}
