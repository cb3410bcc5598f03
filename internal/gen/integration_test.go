package gen

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"sapacademy/internal/config"
	"sapacademy/internal/pg"
)

func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("academy"),
		tcpostgres.WithUsername("academy"),
		tcpostgres.WithPassword("academy"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	url, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := pg.Open(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`select count(*) from "`+table+`"`).Scan(&n))
	return n
}

func TestGeneratorsAgainstPostgres(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()
	engine := NewEngine(db, config.GetLogger(), testVolumes())

	t.Run("fi before mm surfaces a read failure", func(t *testing.T) {
		_, err := engine.Run(ctx, 1, []string{"fi"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "EKKO")
	})

	t.Run("mm end to end", func(t *testing.T) {
		counts, err := engine.Run(ctx, 42, []string{"mm"})
		require.NoError(t, err)
		require.Equal(t, 500, counts["EKKO"])
		require.Equal(t, 500, countRows(t, db, "EKKO"))
		require.Equal(t, 50, countRows(t, db, "LFA1"))
		require.Equal(t, 100, countRows(t, db, "MARA"))

		ekpo := countRows(t, db, "EKPO")
		require.GreaterOrEqual(t, ekpo, 500)
		require.LessOrEqual(t, ekpo, 2500)

		// NETWR = round(MENGE * NETPR, 2) для каждой позиции
		var bad int
		require.NoError(t, db.QueryRow(
			`select count(*) from "EKPO" where abs("NETWR" - round(("MENGE" * "NETPR")::numeric, 2)) > 1e-6`,
		).Scan(&bad))
		require.Zero(t, bad)
	})

	t.Run("replace is idempotent, not additive", func(t *testing.T) {
		_, err := engine.Run(ctx, 43, []string{"mm"})
		require.NoError(t, err)
		// после второго прогона — ровно одно поколение данных
		require.Equal(t, 500, countRows(t, db, "EKKO"))
		require.Equal(t, 50, countRows(t, db, "LFA1"))
	})

	t.Run("mm then fi cross-module", func(t *testing.T) {
		counts, err := engine.Run(ctx, 44, []string{"mm", "fi"})
		require.NoError(t, err)
		require.Equal(t, counts["EKKO"], counts["BKPF"], "one accounting doc per purchase order")
		require.Equal(t, countRows(t, db, "EKKO"), countRows(t, db, "BKPF"))

		// каждый документ сходится в ноль
		var worst sql.NullFloat64
		require.NoError(t, db.QueryRow(`
			select max(abs(saldo)) from (
				select "BELNR",
				       sum(case when "SHKZG" = 'S' then "WRBTR" else -"WRBTR" end) as saldo
				from "BSEG" group by "BELNR"
			) t`).Scan(&worst))
		require.True(t, worst.Valid)
		require.Less(t, worst.Float64, 1e-6)

		// кредитовая строка одна на документ и стоит первой
		var credits, docs int
		require.NoError(t, db.QueryRow(`select count(*) from "BSEG" where "SHKZG" = 'H' and "BUZEI" = 1`).Scan(&credits))
		require.NoError(t, db.QueryRow(`select count(*) from "BKPF"`).Scan(&docs))
		require.Equal(t, docs, credits)
	})

	t.Run("sd and pm complete the dataset", func(t *testing.T) {
		_, err := engine.Run(ctx, 45, []string{"sd", "pm"})
		require.NoError(t, err)
		require.Equal(t, 40, countRows(t, db, "KNA1"))
		require.Equal(t, 300, countRows(t, db, "VBAK"))
		require.Equal(t, 5, countRows(t, db, "CSKS"))
		require.Equal(t, 60, countRows(t, db, "EQUI"))
		require.Equal(t, 250, countRows(t, db, "AFIH"))

		// наценка в допустимых границах
		var bad int
		require.NoError(t, db.QueryRow(`
			select count(*) from "VBAP" vbap
			join "MARA" mara on vbap."MATNR" = mara."MATNR"
			where vbap."NETPR" / mara."STPRS" not between 1.299 and 1.801`).Scan(&bad))
		require.Zero(t, bad)
	})
}
