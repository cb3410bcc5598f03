package gen

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"sapacademy/internal/erp"
	"sapacademy/internal/pg"
)

const (
	docNumberStart = 1900000000 // типичный номерной диапазон фактур

	// Намеренная инъекция расхождений для упражнений по variance-анализу:
	// ровно 20% строк получают цену, отличную от заказа, в пределах
	// [-10%, +15%]. Это фича датасета, не дефект.
	varianceRate = 0.20
	varianceLo   = 0.90
	varianceHi   = 1.15
)

// POHead/POItem — срез закупочных данных, который FI перечитывает из БД.
type POHead struct {
	Ebeln string
	Lifnr string
	Aedat time.Time
}

type POItem struct {
	Ebeln string
	Ebelp int
	Netwr float64
}

// FIData — бухгалтерские документы, производные от закупок.
type FIData struct {
	Docs  []erp.JournalDoc
	Lines []erp.JournalLine
}

// SynthesizeFI строит по одному документу на заказ: дебетовая строка на
// каждую позицию (счёт затрат 400000) и одна кредитовая на поставщика.
// Кредит равен текущей сумме дебетов без округления — документ сходится в
// ноль по построению, даже когда отдельные строки возмущены.
func SynthesizeFI(r *rand.Rand, orders []POHead, items []POItem) FIData {
	itemsByOrder := make(map[string][]POItem, len(orders))
	for _, it := range items {
		itemsByOrder[it.Ebeln] = append(itemsByOrder[it.Ebeln], it)
	}

	var out FIData
	docNumber := docNumberStart
	for _, o := range orders {
		// фактура приходит через 5–30 дней после заказа
		budat := o.Aedat.AddDate(0, 0, 5+r.Intn(26))
		gjahr := budat.Year()
		belnr := strconv.Itoa(docNumber)
		docNumber++

		out.Docs = append(out.Docs, erp.JournalDoc{
			Bukrs: companyCode,
			Belnr: belnr,
			Gjahr: gjahr,
			Blart: "RE",
			Bldat: budat,
			Budat: budat,
			Awkey: o.Ebeln,
		})

		var debits []erp.JournalLine
		buzei := 2 // строка 1 зарезервирована под кредит поставщика
		total := 0.0
		for _, it := range itemsByOrder[o.Ebeln] {
			amount := it.Netwr
			if r.Float64() < varianceRate {
				amount = round2(it.Netwr * uniform(r, varianceLo, varianceHi))
			}
			total += amount

			ebeln := it.Ebeln
			ebelp := it.Ebelp
			debits = append(debits, erp.JournalLine{
				Bukrs: companyCode,
				Belnr: belnr,
				Gjahr: gjahr,
				Buzei: buzei,
				Bschl: "86", // приёмка/фактура
				Hkont: "400000",
				Shkzg: "S",
				Wrbtr: amount,
				Ebeln: &ebeln,
				Ebelp: &ebelp,
			})
			buzei++
		}

		out.Lines = append(out.Lines, erp.JournalLine{
			Bukrs: companyCode,
			Belnr: belnr,
			Gjahr: gjahr,
			Buzei: 1,
			Bschl: "31", // фактура поставщика
			Hkont: o.Lifnr,
			Shkzg: "H",
			Wrbtr: total,
		})
		out.Lines = append(out.Lines, debits...)
	}
	return out
}

func (e *Engine) readPurchaseOrders(ctx context.Context) ([]POHead, []POItem, error) {
	rows, err := e.db.QueryContext(ctx, `select "EBELN", "LIFNR", "AEDAT" from "EKKO" order by "EBELN"`)
	if err != nil {
		if pg.IsUndefinedTable(err) {
			return nil, nil, fmt.Errorf(`read "EKKO": %w (run the MM generator first)`, err)
		}
		return nil, nil, fmt.Errorf(`read "EKKO": %w`, err)
	}
	defer rows.Close()

	var orders []POHead
	for rows.Next() {
		var h POHead
		if err := rows.Scan(&h.Ebeln, &h.Lifnr, &h.Aedat); err != nil {
			return nil, nil, fmt.Errorf(`scan "EKKO": %w`, err)
		}
		orders = append(orders, h)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	itemRows, err := e.db.QueryContext(ctx, `select "EBELN", "EBELP", "NETWR" from "EKPO" order by "EBELN", "EBELP"`)
	if err != nil {
		if pg.IsUndefinedTable(err) {
			return nil, nil, fmt.Errorf(`read "EKPO": %w (run the MM generator first)`, err)
		}
		return nil, nil, fmt.Errorf(`read "EKPO": %w`, err)
	}
	defer itemRows.Close()

	var items []POItem
	for itemRows.Next() {
		var it POItem
		if err := itemRows.Scan(&it.Ebeln, &it.Ebelp, &it.Netwr); err != nil {
			return nil, nil, fmt.Errorf(`scan "EKPO": %w`, err)
		}
		items = append(items, it)
	}
	if err := itemRows.Err(); err != nil {
		return nil, nil, err
	}
	return orders, items, nil
}

// RunFI перечитывает закупки и перезаписывает BKPF/BSEG.
func (e *Engine) RunFI(ctx context.Context, r *rand.Rand) (map[string]int, error) {
	orders, items, err := e.readPurchaseOrders(ctx)
	if err != nil {
		return nil, err
	}
	data := SynthesizeFI(r, orders, items)

	if err := pg.Replace(ctx, e.db, erp.TabBKPF, erp.RowsOf(data.Docs)); err != nil {
		return nil, err
	}
	e.log.WithFields(logrus.Fields{"table": "BKPF", "rows": len(data.Docs)}).Info("table replaced")

	if err := pg.Replace(ctx, e.db, erp.TabBSEG, erp.RowsOf(data.Lines)); err != nil {
		return map[string]int{"BKPF": len(data.Docs)}, err
	}
	e.log.WithFields(logrus.Fields{"table": "BSEG", "rows": len(data.Lines)}).Info("table replaced")

	return map[string]int{"BKPF": len(data.Docs), "BSEG": len(data.Lines)}, nil
}
