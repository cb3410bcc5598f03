package erp

import "time"

// ===== Модуль MM (закупки): LFA1, MARA, EKKO, EKPO =====

var TabLFA1 = Table{
	Name: "LFA1",
	Columns: []Column{
		{"LIFNR", "text"},
		{"NAME1", "text"},
		{"LAND1", "text"},
		{"ORT01", "text"},
	},
}

// Vendor — поставщик (LFA1).
type Vendor struct {
	Lifnr string // код поставщика, V00001
	Name1 string
	Land1 string
	Ort01 string
}

func (v Vendor) Row() []any { return []any{v.Lifnr, v.Name1, v.Land1, v.Ort01} }

var TabMARA = Table{
	Name: "MARA",
	Columns: []Column{
		{"MATNR", "text"},
		{"MTART", "text"},
		{"MAKTX", "text"},
		{"STPRS", "double precision"},
	},
}

// Material — материал (MARA) со стандартной ценой STPRS.
type Material struct {
	Matnr string
	Mtart string
	Maktx string
	Stprs float64
}

func (m Material) Row() []any { return []any{m.Matnr, m.Mtart, m.Maktx, m.Stprs} }

var TabEKKO = Table{
	Name: "EKKO",
	Columns: []Column{
		{"EBELN", "text"},
		{"BUKRS", "text"},
		{"LIFNR", "text"},
		{"AEDAT", "date"},
	},
}

// PurchaseOrder — тестата заказа на закупку (EKKO).
type PurchaseOrder struct {
	Ebeln string
	Bukrs string
	Lifnr string
	Aedat time.Time
}

func (o PurchaseOrder) Row() []any { return []any{o.Ebeln, o.Bukrs, o.Lifnr, o.Aedat} }

var TabEKPO = Table{
	Name: "EKPO",
	Columns: []Column{
		{"EBELN", "text"},
		{"EBELP", "bigint"},
		{"MATNR", "text"},
		{"MENGE", "bigint"},
		{"NETPR", "double precision"},
		{"NETWR", "double precision"},
	},
}

// PurchaseOrderItem — позиция заказа (EKPO). EBELP идёт с шагом 10.
type PurchaseOrderItem struct {
	Ebeln string
	Ebelp int
	Matnr string
	Menge int
	Netpr float64
	Netwr float64
}

func (i PurchaseOrderItem) Row() []any {
	return []any{i.Ebeln, i.Ebelp, i.Matnr, i.Menge, i.Netpr, i.Netwr}
}
