package gen

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sirupsen/logrus"

	"sapacademy/internal/erp"
	"sapacademy/internal/pg"
)

// Словарь описаний материалов — промышленная номенклатура из исходного
// датасета, менять нельзя: на ней построены учебные запросы.
var materialTypes = []string{
	"Cuscinetto a sfera",
	"Motore Elettrico 50kW",
	"Cavo di Rame 100m",
	"Quadro Elettrico",
	"Valvola di Pressione",
	"Sensore Termico",
	"Pompa Idraulica",
}

// MMData — результат чистого синтеза модуля закупок.
type MMData struct {
	Vendors   []erp.Vendor
	Materials []erp.Material
	Orders    []erp.PurchaseOrder
	Items     []erp.PurchaseOrderItem
}

// SynthesizeMM — листовой генератор: ничего не читает, строит мастер-данные
// и закупочные документы в памяти. Все FK берутся из только что собранных
// срезов, висячих ссылок не бывает по построению.
func SynthesizeMM(r *rand.Rand, f *gofakeit.Faker, now time.Time, vol Volumes) MMData {
	vendors := make([]erp.Vendor, 0, vol.Vendors)
	for i := 0; i < vol.Vendors; i++ {
		vendors = append(vendors, erp.Vendor{
			Lifnr: fmt.Sprintf("V%05d", i+1),
			Name1: f.Company(),
			Land1: countryKey,
			Ort01: f.City(),
		})
	}

	materials := make([]erp.Material, 0, vol.Materials)
	for i := 0; i < vol.Materials; i++ {
		model := strings.ToUpper(f.Lexify("??")) + "-" + f.Numerify("###")
		materials = append(materials, erp.Material{
			Matnr: fmt.Sprintf("MAT-%05d", i+1),
			Mtart: "ROH",
			Maktx: fmt.Sprintf("%s - Mod. %s", materialTypes[r.Intn(len(materialTypes))], model),
			Stprs: round2(uniform(r, 10.0, 5000.0)),
		})
	}

	orders := make([]erp.PurchaseOrder, 0, vol.PurchaseOrders)
	for i := 0; i < vol.PurchaseOrders; i++ {
		orders = append(orders, erp.PurchaseOrder{
			Ebeln: fmt.Sprintf("45%08d", i+1),
			Bukrs: companyCode,
			Lifnr: vendors[r.Intn(len(vendors))].Lifnr,
			Aedat: dateBack(r, now, 730), // двухлетнее окно для аналитики
		})
	}

	var items []erp.PurchaseOrderItem
	for _, o := range orders {
		numItems := 1 + r.Intn(5)
		for j := 0; j < numItems; j++ {
			mat := materials[r.Intn(len(materials))]
			qty := 1 + r.Intn(100)
			// цена позиции отклоняется от стандартной на ±10% (скидки/надбавки)
			netPrice := round2(mat.Stprs * uniform(r, 0.90, 1.10))
			items = append(items, erp.PurchaseOrderItem{
				Ebeln: o.Ebeln,
				Ebelp: (j + 1) * 10, // 10, 20, 30 — нумерация позиций с шагом
				Matnr: mat.Matnr,
				Menge: qty,
				Netpr: netPrice,
				Netwr: round2(float64(qty) * netPrice),
			})
		}
	}

	return MMData{Vendors: vendors, Materials: materials, Orders: orders, Items: items}
}

// RunMM синтезирует модуль MM и перезаписывает его четыре таблицы.
func (e *Engine) RunMM(ctx context.Context, r *rand.Rand, f *gofakeit.Faker, now time.Time) (map[string]int, error) {
	data := SynthesizeMM(r, f, now, e.vol)

	writes := []struct {
		tab  erp.Table
		rows [][]any
	}{
		{erp.TabLFA1, erp.RowsOf(data.Vendors)},
		{erp.TabMARA, erp.RowsOf(data.Materials)},
		{erp.TabEKKO, erp.RowsOf(data.Orders)},
		{erp.TabEKPO, erp.RowsOf(data.Items)},
	}
	counts := map[string]int{}
	for _, w := range writes {
		if err := pg.Replace(ctx, e.db, w.tab, w.rows); err != nil {
			return counts, err
		}
		counts[w.tab.Name] = len(w.rows)
		e.log.WithFields(logrus.Fields{"table": w.tab.Name, "rows": len(w.rows)}).Info("table replaced")
	}
	return counts, nil
}
