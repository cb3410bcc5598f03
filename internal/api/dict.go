package api

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"sapacademy/internal/erp"
	"sapacademy/internal/pg"
)

// ===== DATA DICTIONARY =====

var tableNameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

type dictColumn struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type dictTable struct {
	Table   string       `json:"table"`
	Columns []dictColumn `json:"columns"`
}

// GET /api/dict — каталог генерируемых таблиц с тракт-рекордами.
func DictListHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		out := make([]dictTable, 0, len(erp.Catalog()))
		for _, t := range erp.Catalog() {
			cols := make([]dictColumn, 0, len(t.Columns))
			for _, col := range t.Columns {
				cols = append(cols, dictColumn{Name: col.Name, Type: col.Type})
			}
			out = append(out, dictTable{Table: t.Name, Columns: cols})
		}
		c.JSON(http.StatusOK, out)
	}
}

// GET /api/dict/:table — шапка и первые строки таблицы (как в исходном
// справочнике: select * ... limit 3). Работает и для Z_*-таблиц импортёра.
func DictSampleHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.ToUpper(strings.TrimSpace(c.Param("table")))
		if !tableNameRe.MatchString(name) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid table name"})
			return
		}
		cols, rows, err := runQuery(c.Request.Context(), d.DB,
			fmt.Sprintf(`select * from "%s" limit 3`, name))
		if err != nil {
			if pg.IsUndefinedTable(err) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"table": name, "columns": cols, "rows": rows})
	}
}
