package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"bitbucket.org/mmdatafocus/roserial_backend/config"
	"bitbucket.org/mmdatafocus/roserial_backend/ledger"
	"bitbucket.org/mmdatafocus/roserial_backend/storage"
)

func main() {
	dryRun := flag.Bool("dry-run", true, "Show current counts only (no writes)")
	confirm := flag.String("confirm", "", "Type RESET to proceed when dry-run=false")
	flag.Parse()

	if !*dryRun && strings.TrimSpace(*confirm) != "RESET" {
		fmt.Fprintln(os.Stderr, "set --confirm=RESET to proceed")
		os.Exit(1)
	}

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

	fmt.Printf("provider=%s products=%d units=%d transactions=%d warehouses=%d customers=%d plans=%d orders=%d\n",
		storage.GetStorageProvider(),
		len(svc.Products()), len(svc.Units()), len(svc.Transactions()),
		len(svc.Warehouses()), len(svc.Customers()),
		len(svc.ProductionPlans()), len(svc.SalesOrders()))

	if *dryRun {
		fmt.Println("dry-run: nothing deleted")
		return
	}

	if err := svc.ResetDatabase(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "reset failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("ledger reset to default catalog")
}
