package gen

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sirupsen/logrus"

	"sapacademy/internal/config"
)

// Общие константы учебного датасета.
const (
	companyCode = "1000" // BUKRS/VKORG
	countryKey  = "IT"   // LAND1 — датасет итальянский
	hourlyRate  = 45.0   // ставка манодопера для COST_TOT
)

// Volumes — объёмы генерации (см. config).
type Volumes = config.Volumes

// Engine держит единственную зависимость генераторов — engine-handle к
// Postgres. Никакого процесс-глобального состояния.
type Engine struct {
	db  *sql.DB
	log *logrus.Logger
	vol config.Volumes
}

func NewEngine(db *sql.DB, log *logrus.Logger, vol config.Volumes) *Engine {
	return &Engine{db: db, log: log, vol: vol}
}

// Порядок зависимостей: MM раньше FI и SD (они перечитывают его таблицы),
// PM независим.
var moduleOrder = []string{"mm", "fi", "sd", "pm"}

func normalizeModules(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return append([]string(nil), moduleOrder...), nil
	}
	want := map[string]bool{}
	for _, m := range requested {
		m = strings.ToLower(strings.TrimSpace(m))
		if m == "" {
			continue
		}
		known := false
		for _, k := range moduleOrder {
			if m == k {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("unknown module %q (want mm, fi, sd, pm)", m)
		}
		want[m] = true
	}
	out := make([]string, 0, len(want))
	for _, k := range moduleOrder {
		if want[k] {
			out = append(out, k)
		}
	}
	return out, nil
}

// Run прогоняет запрошенные генераторы в порядке зависимостей одним батчем.
// Возвращает число записанных строк по таблицам; первая ошибка фатальна —
// ремедия всегда «перезапустить с нуля», replace-семантика это позволяет.
func (e *Engine) Run(ctx context.Context, seed int64, modules []string) (map[string]int, error) {
	mods, err := normalizeModules(modules)
	if err != nil {
		return nil, err
	}
	r, f := NewRand(seed)
	now := time.Now().UTC()

	counts := map[string]int{}
	for _, m := range mods {
		var c map[string]int
		switch m {
		case "mm":
			c, err = e.RunMM(ctx, r, f, now)
		case "fi":
			c, err = e.RunFI(ctx, r)
		case "sd":
			c, err = e.RunSD(ctx, r, f, now)
		case "pm":
			c, err = e.RunPM(ctx, r, f, now)
		}
		if err != nil {
			return counts, fmt.Errorf("generator %s: %w", m, err)
		}
		for k, v := range c {
			counts[k] = v
		}
	}
	return counts, nil
}

// NewRand отдаёт пару источников случайности под общим seed: rand — для
// чисел и выборок, faker — для названий фирм и городов. Seed=0 допустим
// только вне тестов.
func NewRand(seed int64) (*rand.Rand, *gofakeit.Faker) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(seed))
	f := gofakeit.New(uint64(seed))
	return r, f
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }

func uniform(r *rand.Rand, lo, hi float64) float64 { return lo + r.Float64()*(hi-lo) }

// dateBack — равномерная дата в окне [now-maxDays, now], без времени суток.
func dateBack(r *rand.Rand, now time.Time, maxDays int) time.Time {
	d := now.AddDate(0, 0, -r.Intn(maxDays+1))
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
