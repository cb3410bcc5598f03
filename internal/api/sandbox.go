package api

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Песочница выполняет присланный SQL как есть — никакой грамматики поверх
// того, что скажет Postgres. Это осознанное ограничение учебного стенда.

type sandboxReq struct {
	Query string `json:"query" binding:"required"`
}

type chartPayload struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type sandboxResp struct {
	User     string        `json:"user"`
	Columns  []string      `json:"columns"`
	Rows     [][]any       `json:"rows"`
	RowCount int           `json:"rowCount"`
	Chart    *chartPayload `json:"chart,omitempty"`
}

const sessionHeader = "X-Session-User"

// sessionUser отдаёт псевдоним сессии из заголовка либо выдаёт гостевой
// (хвост ULID вместо случайных цифр исходника).
func sessionUser(c *gin.Context, a *AuditLog) string {
	u := strings.TrimSpace(c.GetHeader(sessionHeader))
	if u == "" {
		id := a.newID()
		u = "GUEST_" + id[len(id)-4:]
	}
	c.Header(sessionHeader, u)
	return u
}

// POST /api/sandbox/:module
func SandboxHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		module := strings.ToUpper(strings.TrimSpace(c.Param("module")))
		user := sessionUser(c, d.Audit)

		var req sandboxReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}

		ctx := c.Request.Context()
		cols, rows, err := runQuery(ctx, d.DB, req.Query)
		if err != nil {
			// сбой запроса — штатный исход урока: в лог и обратно студенту
			d.Audit.Write(ctx, user, module, req.Query, "ERROR")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		d.Audit.Write(ctx, user, module, req.Query, "SUCCESS")

		c.JSON(http.StatusOK, sandboxResp{
			User:     user,
			Columns:  cols,
			Rows:     rows,
			RowCount: len(rows),
			Chart:    chartHint(cols, rows),
		})
	}
}

func runQuery(ctx context.Context, db *sql.DB, query string) ([]string, [][]any, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	out := [][]any{}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		for i, v := range vals {
			switch t := v.(type) {
			case []byte:
				vals[i] = string(t)
			case time.Time:
				// колонки date отдаём без времени суток
				if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
					vals[i] = t.Format("2006-01-02")
				} else {
					vals[i] = t.Format(time.RFC3339)
				}
			}
		}
		out = append(out, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return cols, out, nil
}

// chartHint — бар-чарт уместен, когда первая колонка текстовая, вторая
// числовая (как в исходном дашборде). Иначе nil.
func chartHint(cols []string, rows [][]any) *chartPayload {
	if len(cols) < 2 || len(rows) == 0 {
		return nil
	}
	p := &chartPayload{
		Labels: make([]string, 0, len(rows)),
		Values: make([]float64, 0, len(rows)),
	}
	for _, row := range rows {
		label, ok := row[0].(string)
		if !ok {
			return nil
		}
		value, ok := asFloat(row[1])
		if !ok {
			return nil
		}
		p.Labels = append(p.Labels, label)
		p.Values = append(p.Values, value)
	}
	return p
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int64:
		return float64(t), true
	case int32:
		return float64(t), true
	case int:
		return float64(t), true
	default:
		return 0, false
	}
}
