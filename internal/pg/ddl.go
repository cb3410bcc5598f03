package pg

import (
	"fmt"
	"strings"

	"sapacademy/internal/erp"
)

// Имена в стиле SAP — верхний регистр, поэтому всегда в кавычках.
// Регистр НЕ нормализуем: учебные запросы пишутся как "EKKO"."EBELN".
func sqlIdent(s string) string { return `"` + s + `"` }

func createSQL(t erp.Table) string {
	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		cols = append(cols, fmt.Sprintf("%s %s", sqlIdent(c.Name), c.Type))
	}
	return fmt.Sprintf("create table %s (\n  %s\n)", sqlIdent(t.Name), strings.Join(cols, ",\n  "))
}

func dropSQL(t erp.Table) string {
	return fmt.Sprintf("drop table if exists %s", sqlIdent(t.Name))
}

// insertSQL строит multi-row insert на n строк: values ($1,..),($k+1,..),...
func insertSQL(t erp.Table, n int) string {
	var sb strings.Builder
	names := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		names = append(names, sqlIdent(c.Name))
	}
	fmt.Fprintf(&sb, "insert into %s (%s) values ", sqlIdent(t.Name), strings.Join(names, ", "))
	p := 1
	for row := 0; row < n; row++ {
		if row > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for col := 0; col < len(t.Columns); col++ {
			if col > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", p)
			p++
		}
		sb.WriteByte(')')
	}
	return sb.String()
}
