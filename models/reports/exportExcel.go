package reports

import (
	"fmt"
	"strings"

	"bitbucket.org/mmdatafocus/roserial_backend/ledger"
	"bitbucket.org/mmdatafocus/roserial_backend/models"
	"github.com/xuri/excelize/v2"
)

// Read-only spreadsheet projections of the ledger. Everything here consumes
// the public getters; nothing writes back.

const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04"
)

func setRow(f *excelize.File, sheet string, rowNo int, values ...interface{}) {
	col := 'A'
	for _, v := range values {
		f.SetCellValue(sheet, fmt.Sprintf("%c%d", col, rowNo), v)
		col++
	}
}

// ExportFullDatabase writes every serial unit with its full lifecycle state.
func ExportFullDatabase(svc *ledger.Service, filename string) error {
	f := excelize.NewFile()
	sheet := "Dữ liệu chi tiết"
	f.SetSheetName("Sheet1", sheet)

	setRow(f, sheet, 1, "STT", "Số Serial / IMEI", "Model", "Trạng thái", "Vị trí hiện tại", "Ngày nhập kho", "Ngày xuất kho", "Tên Khách hàng", "Đã từng Tái nhập")

	for i, u := range svc.Units() {
		model := u.ProductID
		if p, ok := svc.GetProductByID(u.ProductID); ok {
			model = p.Model
		}
		status := "Tồn kho"
		if u.Status == models.UnitStatusSold {
			status = "Đã bán"
		}
		exportDate := "-"
		if u.ExportDate != nil {
			exportDate = u.ExportDate.Format(dateTimeLayout)
		}
		customer := u.CustomerName
		if customer == "" {
			customer = "-"
		}
		reimported := "Không"
		if u.IsReimported {
			reimported = "Có"
		}
		setRow(f, sheet, i+2, i+1, u.SerialNumber, model, status, u.WarehouseLocation,
			u.ImportDate.Format(dateTimeLayout), exportDate, customer, reimported)
	}

	return f.SaveAs(filename)
}

// ExportGeneralReport writes the inbound history and the per-product stock
// summary.
func ExportGeneralReport(svc *ledger.Service, filename string) error {
	f := excelize.NewFile()

	inbound := "Lịch sử Nhập kho"
	f.SetSheetName("Sheet1", inbound)
	setRow(f, inbound, 1, "Ngày Nhập", "Model", "Tên Lô / Kế hoạch", "Kho Nhập", "Số Lượng", "Loại", "Danh sách IMEI")
	row := 2
	for _, tx := range svc.Transactions() {
		if tx.Type != models.TransactionTypeInbound {
			continue
		}
		model := tx.ProductID
		if p, ok := svc.GetProductByID(tx.ProductID); ok {
			model = p.Model
		}
		plan := tx.PlanName
		if plan == "" {
			plan = "-"
		}
		kind := "Nhập mới"
		if tx.IsReimportTx {
			kind = "Tái nhập"
		}
		setRow(f, inbound, row, tx.Date.Format(dateLayout), model, plan, tx.ToLocation,
			tx.Quantity, kind, strings.Join(tx.SerialNumbers, ", "))
		row++
	}

	summary := "Báo cáo Tồn kho"
	if _, err := f.NewSheet(summary); err != nil {
		return err
	}
	setRow(f, summary, 1, "Tên Model", "Thương hiệu", "Thông số", "Tồn kho (Mới)", "Đã bán", "Tổng")
	units := svc.Units()
	for i, p := range svc.Products() {
		inStock, sold, total := 0, 0, 0
		for _, u := range units {
			if u.ProductID != p.ID {
				continue
			}
			total++
			switch u.Status {
			case models.UnitStatusNew:
				inStock++
			case models.UnitStatusSold:
				sold++
			}
		}
		setRow(f, summary, i+2, p.Model, p.Brand, p.Specs, inStock, sold, total)
	}

	return f.SaveAs(filename)
}

// ExportTransactionHistory writes an already-filtered transaction list, one
// row per transaction.
func ExportTransactionHistory(svc *ledger.Service, transactions []models.Transaction, filename string) error {
	f := excelize.NewFile()
	sheet := "Dữ liệu"
	f.SetSheetName("Sheet1", sheet)

	setRow(f, sheet, 1, "Thời gian", "Loại", "Model", "Tên Lô / Kế hoạch", "Số lượng", "Đối tác/Vị trí", "Danh sách Serial")

	for i, tx := range transactions {
		var kind, counterpart string
		switch tx.Type {
		case models.TransactionTypeInbound:
			kind = "Nhập kho (Mới)"
			if tx.IsReimportTx {
				kind = "Nhập kho (Tái nhập)"
			}
			counterpart = tx.ToLocation
		case models.TransactionTypeOutbound:
			kind = "Xuất kho"
			counterpart = tx.Customer
		case models.TransactionTypeTransfer:
			kind = "Điều chuyển"
			counterpart = tx.ToLocation
		}
		if counterpart == "" {
			counterpart = "-"
		}
		model := tx.ProductID
		if p, ok := svc.GetProductByID(tx.ProductID); ok {
			model = p.Model
		}
		plan := tx.PlanName
		if plan == "" {
			plan = "-"
		}
		setRow(f, sheet, i+2, tx.Date.Format(dateTimeLayout), kind, model, plan,
			tx.Quantity, counterpart, strings.Join(tx.SerialNumbers, ", "))
	}

	return f.SaveAs(filename)
}

// ExportPlanDetail writes one production plan with the current state of each
// declared serial.
func ExportPlanDetail(svc *ledger.Service, planID string, filename string) error {
	progress, err := svc.GetPlanProgress(planID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	sheet := "Chi tiết Kế hoạch"
	f.SetSheetName("Sheet1", sheet)

	setRow(f, sheet, 1, "STT", "Serial / IMEI", "Trạng thái", "Vị trí hiện tại")
	for i, p := range progress {
		var state string
		switch p.State {
		case models.PlanSerialInStock:
			state = "Đã nhập kho (Tồn)"
		case models.PlanSerialSold:
			state = "Đã bán"
		default:
			state = "Chưa sản xuất"
		}
		location := p.Location
		if location == "" {
			location = "-"
		}
		setRow(f, sheet, i+2, i+1, p.Serial, state, location)
	}

	return f.SaveAs(filename)
}

// ExportSalesOrders writes the order book with per-item scan progress.
func ExportSalesOrders(svc *ledger.Service, filename string) error {
	f := excelize.NewFile()
	sheet := "Danh sách Đơn hàng"
	f.SetSheetName("Sheet1", sheet)

	setRow(f, sheet, 1, "Mã Đơn", "Loại", "Trạng thái", "Khách hàng / Kho đến", "Ngày tạo", "Chi tiết")

	for i, order := range svc.SalesOrders() {
		kind := "Xuất bán"
		if order.Type == models.SalesOrderTypeTransfer {
			kind = "Điều chuyển"
		}
		status := "Chờ xử lý"
		if order.Status == models.SalesOrderStatusCompleted {
			status = "Hoàn thành"
		}
		target := order.CustomerName
		if target == "" {
			target = order.DestinationWarehouse
		}
		if target == "" {
			target = "-"
		}
		details := make([]string, 0, len(order.Items))
		for _, it := range order.Items {
			model := it.ProductID
			if p, ok := svc.GetProductByID(it.ProductID); ok {
				model = p.Model
			}
			details = append(details, fmt.Sprintf("%s (x%d, đã quét: %d)", model, it.Quantity, it.ScannedCount))
		}
		setRow(f, sheet, i+2, order.Code, kind, status, target,
			order.CreatedDate.Format(dateTimeLayout), strings.Join(details, "; "))
	}

	return f.SaveAs(filename)
}
