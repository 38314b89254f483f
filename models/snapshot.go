package models

// StorageKey is the fixed key the aggregate snapshot lives under, carried
// over from the browser build so existing blobs keep loading.
const StorageKey = "RO_MASTER_DB_V3_FINAL"

// Snapshot is the whole persisted aggregate. It is written as one blob and
// read back wholesale at startup. Transactions are stored newest-first.
type Snapshot struct {
	Products        []Product        `json:"products"`
	Units           []SerialUnit     `json:"units"`
	Transactions    []Transaction    `json:"transactions"`
	Warehouses      []Warehouse      `json:"warehouses"`
	Customers       []Customer       `json:"customers"`
	ProductionPlans []ProductionPlan `json:"productionPlans"`
	SalesOrders     []SalesOrder     `json:"salesOrders"`
}

// DefaultSnapshot is the built-in seed catalog used when no blob exists or
// the stored one cannot be decoded: the standing warehouses and customers of
// the RO business, with empty units and transactions.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		Warehouses: []Warehouse{
			{ID: "wh-01", Name: "Kho Tổng (Hà Nội)", Address: "Thanh Xuân, Hà Nội"},
			{ID: "wh-02", Name: "Kho Chi Nhánh (HCM)", Address: "Quận 7, TP.HCM"},
			{ID: "wh-03", Name: "Kho Đà Nẵng", Address: "Hải Châu, Đà Nẵng"},
		},
		Customers: []Customer{
			{ID: "cus-01", Name: "Đại lý Điện máy Xanh", Type: CustomerTypeDealer, Phone: "18001061"},
			{ID: "cus-02", Name: "Đại lý Karofi Cầu Giấy", Type: CustomerTypeDealer, Phone: "0901234567"},
			{ID: "cus-03", Name: "Khách lẻ (Vãng lai)", Type: CustomerTypeRetail},
		},
	}
}

// Clone returns a snapshot whose top-level slices are independent of the
// receiver's. Element structs are copied by value; nested slices
// (serial lists) stay shared and must be treated as read-only.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := &Snapshot{
		Products:        append([]Product(nil), s.Products...),
		Units:           append([]SerialUnit(nil), s.Units...),
		Transactions:    append([]Transaction(nil), s.Transactions...),
		Warehouses:      append([]Warehouse(nil), s.Warehouses...),
		Customers:       append([]Customer(nil), s.Customers...),
		ProductionPlans: append([]ProductionPlan(nil), s.ProductionPlans...),
		SalesOrders:     append([]SalesOrder(nil), s.SalesOrders...),
	}
	return out
}
