package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/roserial_backend/config"
	"bitbucket.org/mmdatafocus/roserial_backend/ledger"
	"bitbucket.org/mmdatafocus/roserial_backend/models"
	"bitbucket.org/mmdatafocus/roserial_backend/models/reports"
	"bitbucket.org/mmdatafocus/roserial_backend/storage"
)

func main() {
	report := flag.String("report", "general", "Report to export: general, database, history, plan, orders")
	out := flag.String("out", "", "Output .xlsx path (defaults to <report>_<date>.xlsx)")
	planID := flag.String("plan-id", "", "Plan id (report=plan)")
	fromStr := flag.String("from", "", "History start date YYYY-MM-DD (report=history)")
	toStr := flag.String("to", "", "History end date YYYY-MM-DD (report=history)")
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

	filename := strings.TrimSpace(*out)
	if filename == "" {
		filename = fmt.Sprintf("%s_%s.xlsx", *report, time.Now().Format("20060102"))
	}

	var err error
	switch *report {
	case "general":
		err = reports.ExportGeneralReport(svc, filename)
	case "database":
		err = reports.ExportFullDatabase(svc, filename)
	case "history":
		var from, to time.Time
		if from, err = parseDate(*fromStr); err != nil {
			fmt.Fprintf(os.Stderr, "invalid from date: %v\n", err)
			os.Exit(1)
		}
		if to, err = parseDate(*toStr); err != nil {
			fmt.Fprintf(os.Stderr, "invalid to date: %v\n", err)
			os.Exit(1)
		}
		txs := svc.GetHistoryByDateRange([]models.TransactionType{
			models.TransactionTypeInbound,
			models.TransactionTypeOutbound,
			models.TransactionTypeTransfer,
		}, from, to)
		err = reports.ExportTransactionHistory(svc, txs, filename)
	case "plan":
		if strings.TrimSpace(*planID) == "" {
			fmt.Fprintln(os.Stderr, "--plan-id is required for report=plan")
			os.Exit(1)
		}
		err = reports.ExportPlanDetail(svc, *planID, filename)
	case "orders":
		err = reports.ExportSalesOrders(svc, filename)
	default:
		fmt.Fprintf(os.Stderr, "unknown report %q\n", *report)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", filename)
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}
