// api/router.go
package api

import (
	"database/sql"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sapacademy/internal/gen"
	"sapacademy/internal/lessons"
)

// Deps — всё, что нужно обработчикам; передаётся явно, без глобалов.
type Deps struct {
	DB      *sql.DB
	Log     *logrus.Logger
	Lessons map[string]lessons.Module
	Engine  *gen.Engine
	Audit   *AuditLog
	Seed    int64    // seed по умолчанию для /admin/seed
	Origins []string // CORS; пусто = открыто
}

func NewRouter(d *Deps) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(d.Origins) > 0 {
		corsCfg.AllowOrigins = d.Origins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, sessionHeader)
	corsCfg.ExposeHeaders = append(corsCfg.ExposeHeaders, sessionHeader)
	r.Use(cors.New(corsCfg))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

		apiGroup.GET("/dict", DictListHandler(d))
		apiGroup.GET("/dict/:table", DictSampleHandler(d))

		apiGroup.GET("/lessons", LessonsListHandler(d))
		apiGroup.GET("/lessons/:module", LessonHandler(d))

		apiGroup.POST("/sandbox/:module", SandboxHandler(d))

		apiGroup.GET("/audit", AuditListHandler(d))
		apiGroup.GET("/audit/stats", AuditStatsHandler(d))

		apiGroup.POST("/import", ImportHandler(d))
		apiGroup.POST("/admin/seed", SeedHandler(d))
	}

	return r
}

func RunServer(addr string, d *Deps) {
	r := NewRouter(d)
	_ = r.Run(addr)
}
