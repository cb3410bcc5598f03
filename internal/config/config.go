package config

import (
	"encoding/json"
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Volumes — объёмы генерации. Значения по умолчанию повторяют исходный
// учебный датасет, менять их стоит только вместе с методичкой.
type Volumes struct {
	Vendors        int `json:"vendors"`
	Materials      int `json:"materials"`
	PurchaseOrders int `json:"purchaseOrders"`
	Customers      int `json:"customers"`
	SalesOrders    int `json:"salesOrders"`
	Equipment      int `json:"equipment"`
	MaintOrders    int `json:"maintOrders"`
}

type Config struct {
	Port       string `json:"port"`
	DBURL      string `json:"dbUrl"`
	LessonsDir string `json:"lessonsDir"`

	// Seed=0 — взять из часов (только для «боевых» прогонов; тесты всегда
	// передают seed явно).
	Seed int64 `json:"seed"`

	CORSOrigins string `json:"corsOrigins"` // через запятую; пусто = *

	Volumes Volumes `json:"volumes"`
}

func def() Config {
	return Config{
		Port:        "8080",
		DBURL:       "",
		LessonsDir:  "lessons",
		Seed:        0,
		CORSOrigins: "",
		Volumes: Volumes{
			Vendors:        50,
			Materials:      100,
			PurchaseOrders: 500,
			Customers:      40,
			SalesOrders:    300,
			Equipment:      60,
			MaintOrders:    250,
		},
	}
}

func loadJSON(path string) (Config, error) {
	c := def()
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return c, err
	}
	return c, nil
}

func getenv(k, fallback string) string {
	if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func getenvInt64(k string, fallback int64) int64 {
	if v, ok := os.LookupEnv(k); ok {
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

// LoadWithPath читает JSON по указанному пути, потом применяет ENV и флаги.
// Перед ENV подхватываем .env (как dotenv у исходного дашборда).
func LoadWithPath(jsonPath string) Config {
	_ = godotenv.Load()

	cfg := def()

	// JSON (если файл существует)
	if st, err := os.Stat(jsonPath); err == nil && !st.IsDir() {
		if c2, err := loadJSON(jsonPath); err == nil {
			cfg = c2
		}
	}

	// ENV overrides. DATABASE_URL — исторический алиас, его знают все
	// генераторы и секрет-стор.
	cfg.Port = getenv("ACADEMY_PORT", cfg.Port)
	cfg.DBURL = getenv("ACADEMY_DB_URL", getenv("DATABASE_URL", cfg.DBURL))
	cfg.LessonsDir = getenv("ACADEMY_LESSONS_DIR", cfg.LessonsDir)
	cfg.Seed = getenvInt64("ACADEMY_SEED", cfg.Seed)
	cfg.CORSOrigins = getenv("ACADEMY_CORS_ORIGINS", cfg.CORSOrigins)

	// Flags overrides
	configPath := flag.String("config", jsonPath, "Path to config JSON")
	port := flag.String("port", cfg.Port, "HTTP port")
	db := flag.String("db", cfg.DBURL, "Postgres URL")
	lessonsDir := flag.String("lessons", cfg.LessonsDir, "Path to lessons directory")
	seed := flag.Int64("seed", cfg.Seed, "RNG seed (0 = derive from clock)")

	flag.Parse()

	// Если через флаг передали другой конфиг — перечитаем JSON-слой;
	// явно переданные флаги всё равно сильнее
	if *configPath != jsonPath {
		if c2, err := loadJSON(*configPath); err == nil {
			cfg = c2
		}
		flag.Visit(func(fl *flag.Flag) {
			switch fl.Name {
			case "port":
				cfg.Port = strings.TrimSpace(*port)
			case "db":
				cfg.DBURL = strings.TrimSpace(*db)
			case "lessons":
				cfg.LessonsDir = strings.TrimSpace(*lessonsDir)
			case "seed":
				cfg.Seed = *seed
			}
		})
		return cfg
	}

	cfg.Port = strings.TrimSpace(*port)
	cfg.DBURL = strings.TrimSpace(*db)
	cfg.LessonsDir = strings.TrimSpace(*lessonsDir)
	cfg.Seed = *seed

	return cfg
}

// Origins разворачивает CORSOrigins в срез; пустая строка — nil (открытый CORS).
func (c Config) Origins() []string {
	if strings.TrimSpace(c.CORSOrigins) == "" {
		return nil
	}
	parts := strings.Split(c.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
