package erp

import "time"

// ===== Модуль PM (техобслуживание): CSKS, EQUI, AFIH, AFVC =====

var TabCSKS = Table{
	Name: "CSKS",
	Columns: []Column{
		{"KOSTL", "text"},
		{"KTEXT", "text"},
	},
}

// CostCenter — центр затрат (CSKS).
type CostCenter struct {
	Kostl string
	Ktext string
}

func (c CostCenter) Row() []any { return []any{c.Kostl, c.Ktext} }

var TabEQUI = Table{
	Name: "EQUI",
	Columns: []Column{
		{"EQUNR", "text"},
		{"EQKTX", "text"},
		{"KOSTL", "text"},
	},
}

// Equipment — единица оборудования (EQUI), привязана к центру затрат.
type Equipment struct {
	Equnr string
	Eqktx string
	Kostl string
}

func (e Equipment) Row() []any { return []any{e.Equnr, e.Eqktx, e.Kostl} }

var TabAFIH = Table{
	Name: "AFIH",
	Columns: []Column{
		{"AUFNR", "text"},
		{"EQUNR", "text"},
		{"ILART", "text"},
		{"ERDAT", "date"},
	},
}

// MaintOrder — заказ ТОРО (AFIH). ILART: PM01 — аварийный, PM02 — плановый.
type MaintOrder struct {
	Aufnr string
	Equnr string
	Ilart string
	Erdat time.Time
}

func (o MaintOrder) Row() []any { return []any{o.Aufnr, o.Equnr, o.Ilart, o.Erdat} }

var TabAFVC = Table{
	Name: "AFVC",
	Columns: []Column{
		{"AUFNR", "text"},
		{"VORNR", "text"},
		{"ARBEI", "bigint"},
		{"COST_MAT", "double precision"},
		{"COST_TOT", "double precision"},
	},
}

// MaintOperation — операция заказа ТОРО (AFVC).
// COST_TOT = ARBEI * ставка + COST_MAT.
type MaintOperation struct {
	Aufnr   string
	Vornr   string
	Arbei   int
	CostMat float64
	CostTot float64
}

func (op MaintOperation) Row() []any {
	return []any{op.Aufnr, op.Vornr, op.Arbei, op.CostMat, op.CostTot}
}
