package erp

import "time"

// ===== Модуль FI (финансы): BKPF, BSEG =====

var TabBKPF = Table{
	Name: "BKPF",
	Columns: []Column{
		{"BUKRS", "text"},
		{"BELNR", "text"},
		{"GJAHR", "bigint"},
		{"BLART", "text"},
		{"BLDAT", "date"},
		{"BUDAT", "date"},
		{"AWKEY", "text"},
	},
}

// JournalDoc — шапка бухгалтерского документа (BKPF).
// AWKEY хранит номер заказа EKKO — связка для three-way match.
type JournalDoc struct {
	Bukrs string
	Belnr string
	Gjahr int
	Blart string
	Bldat time.Time
	Budat time.Time
	Awkey string
}

func (d JournalDoc) Row() []any {
	return []any{d.Bukrs, d.Belnr, d.Gjahr, d.Blart, d.Bldat, d.Budat, d.Awkey}
}

var TabBSEG = Table{
	Name: "BSEG",
	Columns: []Column{
		{"BUKRS", "text"},
		{"BELNR", "text"},
		{"GJAHR", "bigint"},
		{"BUZEI", "bigint"},
		{"BSCHL", "text"},
		{"HKONT", "text"},
		{"SHKZG", "text"},
		{"WRBTR", "double precision"},
		{"EBELN", "text"},
		{"EBELP", "bigint"},
	},
}

// JournalLine — позиция документа (BSEG). SHKZG: S = дебет, H = кредит.
// Обратная ссылка на EKPO есть только у дебетовых строк.
type JournalLine struct {
	Bukrs string
	Belnr string
	Gjahr int
	Buzei int
	Bschl string
	Hkont string
	Shkzg string
	Wrbtr float64
	Ebeln *string
	Ebelp *int
}

func (l JournalLine) Row() []any {
	return []any{l.Bukrs, l.Belnr, l.Gjahr, l.Buzei, l.Bschl, l.Hkont, l.Shkzg, l.Wrbtr, l.Ebeln, l.Ebelp}
}
