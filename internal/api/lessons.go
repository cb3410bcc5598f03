package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

// ===== MASTER HANDBOOK =====

type lessonListItem struct {
	Module string `json:"module"`
	Title  string `json:"title"`
	Levels int    `json:"levels"`
}

// GET /api/lessons
func LessonsListHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		out := make([]lessonListItem, 0, len(d.Lessons))
		for key, m := range d.Lessons {
			out = append(out, lessonListItem{Module: key, Title: m.Title, Levels: len(m.Levels)})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Module < out[j].Module })
		c.JSON(http.StatusOK, out)
	}
}

// GET /api/lessons/:module
func LessonHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.ToLower(strings.TrimSpace(c.Param("module")))
		m, ok := d.Lessons[key]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
			return
		}
		c.JSON(http.StatusOK, m)
	}
}
