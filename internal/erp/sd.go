package erp

import "time"

// ===== Модуль SD (продажи): KNA1, VBAK, VBAP =====

var TabKNA1 = Table{
	Name: "KNA1",
	Columns: []Column{
		{"KUNNR", "text"},
		{"NAME1", "text"},
		{"LAND1", "text"},
		{"ORT01", "text"},
	},
}

// Customer — клиент (KNA1).
type Customer struct {
	Kunnr string
	Name1 string
	Land1 string
	Ort01 string
}

func (c Customer) Row() []any { return []any{c.Kunnr, c.Name1, c.Land1, c.Ort01} }

var TabVBAK = Table{
	Name: "VBAK",
	Columns: []Column{
		{"VBELN", "text"},
		{"VKORG", "text"},
		{"KUNNR", "text"},
		{"AUDAT", "date"},
	},
}

// SalesOrder — тестата сбытового заказа (VBAK).
type SalesOrder struct {
	Vbeln string
	Vkorg string
	Kunnr string
	Audat time.Time
}

func (o SalesOrder) Row() []any { return []any{o.Vbeln, o.Vkorg, o.Kunnr, o.Audat} }

var TabVBAP = Table{
	Name: "VBAP",
	Columns: []Column{
		{"VBELN", "text"},
		{"POSNR", "bigint"},
		{"MATNR", "text"},
		{"KWMENG", "bigint"},
		{"NETPR", "double precision"},
		{"NETWR", "double precision"},
	},
}

// SalesOrderItem — позиция сбытового заказа (VBAP).
// NETPR = STPRS материала с наценкой 1.30–1.80.
type SalesOrderItem struct {
	Vbeln  string
	Posnr  int
	Matnr  string
	Kwmeng int
	Netpr  float64
	Netwr  float64
}

func (i SalesOrderItem) Row() []any {
	return []any{i.Vbeln, i.Posnr, i.Matnr, i.Kwmeng, i.Netpr, i.Netwr}
}
