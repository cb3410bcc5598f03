package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type seedReq struct {
	Modules []string `json:"modules"` // пусто = все четыре
	Seed    int64    `json:"seed"`    // 0 = seed из конфига либо из часов
}

// POST /api/admin/seed — перегенерация учебного датасета без перезапуска
// сервиса. Порядок зависимостей соблюдает Engine.
func SeedHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req seedReq
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
				return
			}
		}
		seed := req.Seed
		if seed == 0 {
			seed = d.Seed
		}

		counts, err := d.Engine.Run(c.Request.Context(), seed, req.Modules)
		if err != nil {
			status := http.StatusInternalServerError
			if strings.Contains(err.Error(), "unknown module") {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error(), "written": counts})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "written": counts})
	}
}
