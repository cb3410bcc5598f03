package gen

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sirupsen/logrus"

	"sapacademy/internal/erp"
	"sapacademy/internal/pg"
)

// Центры затрат виртуального сталелитейного завода — фиксированный список.
var costCenterNames = []string{
	"Manutenzione Elettrica",
	"Reparto Laminazione",
	"Servizi Generali",
	"Magazzino Ricambi",
	"Produzione Acciaio",
}

var equipmentTypes = []string{
	"Motore Laminatoio a Caldo",
	"Quadro Elettrico di Commutazione",
	"Trasformatore MT/BT",
	"Pompa Idraulica Principale",
	"Carroponte Elettrico 50t",
	"Sensore Termico Forno",
	"Nastro Trasportatore",
}

// PMData — активы и заказы техобслуживания.
type PMData struct {
	CostCenters []erp.CostCenter
	Equipment   []erp.Equipment
	Orders      []erp.MaintOrder
	Operations  []erp.MaintOperation
}

// SynthesizePM — листовой генератор модуля ТОРО: оборудование по центрам
// затрат, заказы PM01 (аварийные) и PM02 (плановые), операции с затратами
// манодопера + запчасти.
func SynthesizePM(r *rand.Rand, f *gofakeit.Faker, now time.Time, vol Volumes) PMData {
	centers := make([]erp.CostCenter, 0, len(costCenterNames))
	for i, name := range costCenterNames {
		centers = append(centers, erp.CostCenter{
			Kostl: fmt.Sprintf("CC%03d", i+1),
			Ktext: name,
		})
	}

	equipment := make([]erp.Equipment, 0, vol.Equipment)
	for i := 0; i < vol.Equipment; i++ {
		equipment = append(equipment, erp.Equipment{
			Equnr: fmt.Sprintf("EQ%05d", i+1),
			Eqktx: fmt.Sprintf("%s - Z%d", equipmentTypes[r.Intn(len(equipmentTypes))], 1+r.Intn(99)),
			Kostl: centers[r.Intn(len(centers))].Kostl,
		})
	}

	orders := make([]erp.MaintOrder, 0, vol.MaintOrders)
	for i := 0; i < vol.MaintOrders; i++ {
		ilart := "PM01"
		if r.Intn(2) == 1 {
			ilart = "PM02"
		}
		orders = append(orders, erp.MaintOrder{
			Aufnr: fmt.Sprintf("400%06d", i+1),
			Equnr: equipment[r.Intn(len(equipment))].Equnr,
			Ilart: ilart,
			Erdat: dateBack(r, now, 365),
		})
	}

	var operations []erp.MaintOperation
	for _, o := range orders {
		numOps := 1 + r.Intn(3)
		for j := 0; j < numOps; j++ {
			hours := 2 + r.Intn(47) // 2–48 часов на устранение
			partsCost := round2(uniform(r, 100.0, 15000.0))
			operations = append(operations, erp.MaintOperation{
				Aufnr:   o.Aufnr,
				Vornr:   strconv.Itoa((j + 1) * 10),
				Arbei:   hours,
				CostMat: partsCost,
				CostTot: round2(float64(hours)*hourlyRate + partsCost),
			})
		}
	}

	return PMData{CostCenters: centers, Equipment: equipment, Orders: orders, Operations: operations}
}

// RunPM синтезирует модуль ТОРО и перезаписывает его четыре таблицы.
func (e *Engine) RunPM(ctx context.Context, r *rand.Rand, f *gofakeit.Faker, now time.Time) (map[string]int, error) {
	data := SynthesizePM(r, f, now, e.vol)

	writes := []struct {
		tab  erp.Table
		rows [][]any
	}{
		{erp.TabCSKS, erp.RowsOf(data.CostCenters)},
		{erp.TabEQUI, erp.RowsOf(data.Equipment)},
		{erp.TabAFIH, erp.RowsOf(data.Orders)},
		{erp.TabAFVC, erp.RowsOf(data.Operations)},
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
