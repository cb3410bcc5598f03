package erp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowWidthsMatchTables(t *testing.T) {
	now := time.Now()
	cases := []struct {
		tab Table
		row RowSource
	}{
		{TabLFA1, Vendor{Lifnr: "V00001"}},
		{TabMARA, Material{Matnr: "MAT-00001"}},
		{TabEKKO, PurchaseOrder{Ebeln: "4500000001", Aedat: now}},
		{TabEKPO, PurchaseOrderItem{Ebeln: "4500000001", Ebelp: 10}},
		{TabBKPF, JournalDoc{Belnr: "1900000000", Bldat: now, Budat: now}},
		{TabBSEG, JournalLine{Belnr: "1900000000", Buzei: 1}},
		{TabKNA1, Customer{Kunnr: "C00001"}},
		{TabVBAK, SalesOrder{Vbeln: "1000000001", Audat: now}},
		{TabVBAP, SalesOrderItem{Vbeln: "1000000001", Posnr: 10}},
		{TabCSKS, CostCenter{Kostl: "CC001"}},
		{TabEQUI, Equipment{Equnr: "EQ00001"}},
		{TabAFIH, MaintOrder{Aufnr: "400000001", Erdat: now}},
		{TabAFVC, MaintOperation{Aufnr: "400000001", Vornr: "10"}},
	}
	require.Len(t, cases, len(Catalog()))
	for _, c := range cases {
		assert.Len(t, c.row.Row(), len(c.tab.Columns), c.tab.Name)
	}
}

func TestCatalogNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, tab := range Catalog() {
		require.False(t, seen[tab.Name], tab.Name)
		seen[tab.Name] = true
		require.NotEmpty(t, tab.Columns, tab.Name)
	}
}

func TestJournalLineNullableBackref(t *testing.T) {
	// у кредитовой строки ссылки на заказ нет — в базе это NULL
	row := JournalLine{Belnr: "1900000000", Buzei: 1, Shkzg: "H"}.Row()
	assert.Nil(t, row[8])
	assert.Nil(t, row[9])

	ebeln := "4500000001"
	ebelp := 10
	row = JournalLine{Belnr: "1900000000", Buzei: 2, Shkzg: "S", Ebeln: &ebeln, Ebelp: &ebelp}.Row()
	assert.NotNil(t, row[8])
	assert.NotNil(t, row[9])
}
