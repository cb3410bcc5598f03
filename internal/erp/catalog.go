package erp

// Статический каталог таблиц в стиле S/4HANA. Имена колонок фиксированы —
// учебные запросы в справочнике завязаны на них дословно.

type Column struct {
	Name string
	Type string // SQL-тип Postgres
}

type Table struct {
	Name    string
	Columns []Column
}

// RowSource — одна запись, умеющая отдать себя кортежем значений
// в порядке колонок своей таблицы.
type RowSource interface {
	Row() []any
}

func RowsOf[T RowSource](items []T) [][]any {
	out := make([][]any, 0, len(items))
	for _, it := range items {
		out = append(out, it.Row())
	}
	return out
}

// Catalog возвращает все генерируемые таблицы (без аудита — он append-only
// и живёт отдельно).
func Catalog() []Table {
	return []Table{
		TabLFA1, TabMARA, TabEKKO, TabEKPO,
		TabBKPF, TabBSEG,
		TabKNA1, TabVBAK, TabVBAP,
		TabCSKS, TabEQUI, TabAFIH, TabAFVC,
	}
}
