package api

import (
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"sapacademy/internal/config"
	"sapacademy/internal/erp"
	"sapacademy/internal/pg"
)

// ===== DATA IMPORTER =====

// Импорт пользовательской таблицы: CSV или XLSX, replace-семантика, все
// колонки текстовые (типизация — забота учебных запросов через cast).

// POST /api/import  (multipart: file, table)
func ImportHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := sessionUser(c, d.Audit)
		ctx := c.Request.Context()

		table := strings.ToUpper(strings.TrimSpace(c.PostForm("table")))
		if table == "" {
			table = "Z_CUSTOM_TABLE"
		}
		if !tableNameRe.MatchString(table) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid table name"})
			return
		}

		file, hdr, err := c.Request.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "multipart file not found (field name 'file')"})
			return
		}
		defer file.Close()

		header, records, err := parseUpload(file, hdr)
		if err != nil {
			config.LogError(d.Log, "api", "ImportHandler", "parse "+hdr.Filename, err)
			d.Audit.Write(ctx, user, "IMPORTER", "UPLOAD_FAILED", "ERROR")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		tab := erp.Table{Name: table}
		for _, h := range header {
			tab.Columns = append(tab.Columns, erp.Column{Name: h, Type: "text"})
		}
		rows := make([][]any, 0, len(records))
		for _, rec := range records {
			row := make([]any, len(header))
			for i := range header {
				if i < len(rec) {
					row[i] = rec[i]
				} else {
					row[i] = nil // короткая строка — добиваем null'ами
				}
			}
			rows = append(rows, row)
		}

		if err := pg.Replace(ctx, d.DB, tab, rows); err != nil {
			config.LogError(d.Log, "api", "ImportHandler", "replace "+table, err)
			d.Audit.Write(ctx, user, "IMPORTER", "UPLOAD_FAILED", "ERROR")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		d.Audit.Write(ctx, user, "IMPORTER", "CREATE TABLE "+table, "SUCCESS")
		c.JSON(http.StatusOK, gin.H{"table": table, "rows": len(rows)})
	}
}

func parseUpload(file multipart.File, hdr *multipart.FileHeader) ([]string, [][]string, error) {
	switch ext := strings.ToLower(filepath.Ext(hdr.Filename)); ext {
	case ".csv":
		return parseCSV(file)
	case ".xlsx":
		return parseXLSX(file)
	default:
		return nil, nil, fmt.Errorf("unsupported file type %q (want .csv or .xlsx)", ext)
	}
}

func parseCSV(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	all, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("csv: %w", err)
	}
	return splitHeader(all)
}

// parseXLSX берёт первый лист книги; пустые хвостовые ячейки excelize
// просто не возвращает, недостающее добивается null'ами при записи.
func parseXLSX(r io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("xlsx: workbook has no sheets")
	}
	all, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("xlsx: %w", err)
	}
	return splitHeader(all)
}

func splitHeader(all [][]string) ([]string, [][]string, error) {
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("file is empty")
	}
	header := all[0]
	if len(header) == 0 {
		return nil, nil, fmt.Errorf("header row is empty")
	}
	seen := map[string]struct{}{}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("COL_%d", i+1)
		}
		h = strings.ReplaceAll(h, `"`, "")
		if _, dup := seen[h]; dup {
			h = fmt.Sprintf("%s_%d", h, i+1)
		}
		seen[h] = struct{}{}
		header[i] = h
	}
	return header, all[1:], nil
}
