package api

import (
	"context"
	"database/sql"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"sapacademy/internal/pg"
)

// Журнал аудита песочницы — аналог транзакции SM20. Append-only, таблица
// создаётся при первом обращении; генераторы его никогда не читают.
const auditDDL = `create table if not exists "Z_SM20_AUDIT" (
  "ID" text primary key,
  "TIMESTAMP" timestamp with time zone,
  "USERNAME" varchar(50),
  "MODULO" varchar(50),
  "QUERY" text,
  "STATUS" varchar(20)
)`

type AuditLog struct {
	db  *sql.DB
	log *logrus.Logger

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy

	dropped atomic.Uint64
}

func NewAuditLog(db *sql.DB, log *logrus.Logger) *AuditLog {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &AuditLog{
		db:      db,
		log:     log,
		entropy: ulid.Monotonic(src, 0),
	}
}

func (a *AuditLog) newID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), a.entropy).String()
}

// Write — best-effort side-channel: сбой записи не влияет на вызывающего,
// но не глотается молча — считаем и пишем в debug-лог.
func (a *AuditLog) Write(ctx context.Context, username, module, query, status string) {
	err := func() error {
		if err := pg.EnsureTable(ctx, a.db, auditDDL); err != nil {
			return err
		}
		_, err := a.db.ExecContext(ctx,
			`insert into "Z_SM20_AUDIT" ("ID", "TIMESTAMP", "USERNAME", "MODULO", "QUERY", "STATUS") values ($1, $2, $3, $4, $5, $6)`,
			a.newID(), time.Now().UTC(), username, module, query, status)
		return err
	}()
	if err != nil {
		a.dropped.Add(1)
		a.log.WithError(err).Debug("audit write dropped")
	}
}

// Dropped — сколько записей аудита потеряно с момента старта.
func (a *AuditLog) Dropped() uint64 { return a.dropped.Load() }

type AuditEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Username  string    `json:"username"`
	Module    string    `json:"module"`
	Query     string    `json:"query"`
	Status    string    `json:"status"`
}

func (a *AuditLog) Recent(ctx context.Context, limit int) ([]AuditEntry, error) {
	rows, err := a.db.QueryContext(ctx,
		`select "ID", "TIMESTAMP", "USERNAME", "MODULO", "QUERY", "STATUS" from "Z_SM20_AUDIT" order by "TIMESTAMP" desc limit $1`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AuditEntry
	for rows.Next() {
		var e AuditEntry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Username, &e.Module, &e.Query, &e.Status); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GET /api/audit?limit=50
func AuditListHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 50
		if lv := c.Query("limit"); lv != "" {
			if n, err := strconv.Atoi(lv); err == nil && n > 0 && n <= 1000 {
				limit = n
			}
		}
		entries, err := d.Audit.Recent(c.Request.Context(), limit)
		if err != nil {
			if pg.IsUndefinedTable(err) {
				// лога ещё нет — песочницу никто не трогал
				c.JSON(http.StatusOK, gin.H{"entries": []AuditEntry{}})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if entries == nil {
			entries = []AuditEntry{}
		}
		c.JSON(http.StatusOK, gin.H{"entries": entries})
	}
}

// GET /api/audit/stats
func AuditStatsHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"dropped": d.Audit.Dropped()})
	}
}
