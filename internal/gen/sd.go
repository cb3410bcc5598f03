package gen

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sirupsen/logrus"

	"sapacademy/internal/erp"
	"sapacademy/internal/pg"
)

// MatRef — то немногое, что SD читает из MARA: код и стандартная цена.
type MatRef struct {
	Matnr string
	Stprs float64
}

// SDData — клиенты и сбытовые заказы.
type SDData struct {
	Customers []erp.Customer
	Orders    []erp.SalesOrder
	Items     []erp.SalesOrderItem
}

// SynthesizeSD продаёт закупленные материалы: цена позиции — стандартная
// себестоимость с наценкой 1.30–1.80, чтобы запросы по марже имели смысл.
func SynthesizeSD(r *rand.Rand, f *gofakeit.Faker, now time.Time, vol Volumes, materials []MatRef) SDData {
	customers := make([]erp.Customer, 0, vol.Customers)
	for i := 0; i < vol.Customers; i++ {
		customers = append(customers, erp.Customer{
			Kunnr: fmt.Sprintf("C%05d", i+1),
			Name1: f.Company(),
			Land1: countryKey,
			Ort01: f.City(),
		})
	}

	orders := make([]erp.SalesOrder, 0, vol.SalesOrders)
	for i := 0; i < vol.SalesOrders; i++ {
		orders = append(orders, erp.SalesOrder{
			Vbeln: fmt.Sprintf("10%08d", i+1),
			Vkorg: companyCode,
			Kunnr: customers[r.Intn(len(customers))].Kunnr,
			Audat: dateBack(r, now, 365),
		})
	}

	var items []erp.SalesOrderItem
	for _, o := range orders {
		numItems := 1 + r.Intn(4)
		for j := 0; j < numItems; j++ {
			mat := materials[r.Intn(len(materials))]
			qty := 1 + r.Intn(50)
			netPrice := round2(mat.Stprs * uniform(r, 1.30, 1.80))
			items = append(items, erp.SalesOrderItem{
				Vbeln:  o.Vbeln,
				Posnr:  (j + 1) * 10,
				Matnr:  mat.Matnr,
				Kwmeng: qty,
				Netpr:  netPrice,
				Netwr:  round2(float64(qty) * netPrice),
			})
		}
	}

	return SDData{Customers: customers, Orders: orders, Items: items}
}

func (e *Engine) readMaterials(ctx context.Context) ([]MatRef, error) {
	rows, err := e.db.QueryContext(ctx, `select "MATNR", "STPRS" from "MARA" order by "MATNR"`)
	if err != nil {
		if pg.IsUndefinedTable(err) {
			return nil, fmt.Errorf(`read "MARA": %w (run the MM generator first)`, err)
		}
		return nil, fmt.Errorf(`read "MARA": %w`, err)
	}
	defer rows.Close()

	var out []MatRef
	for rows.Next() {
		var m MatRef
		if err := rows.Scan(&m.Matnr, &m.Stprs); err != nil {
			return nil, fmt.Errorf(`scan "MARA": %w`, err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf(`"MARA" is empty (run the MM generator first)`)
	}
	return out, nil
}

// RunSD перечитывает материалы и перезаписывает KNA1/VBAK/VBAP.
func (e *Engine) RunSD(ctx context.Context, r *rand.Rand, f *gofakeit.Faker, now time.Time) (map[string]int, error) {
	materials, err := e.readMaterials(ctx)
	if err != nil {
		return nil, err
	}
	data := SynthesizeSD(r, f, now, e.vol, materials)

	writes := []struct {
		tab  erp.Table
		rows [][]any
	}{
		{erp.TabKNA1, erp.RowsOf(data.Customers)},
		{erp.TabVBAK, erp.RowsOf(data.Orders)},
		{erp.TabVBAP, erp.RowsOf(data.Items)},
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
