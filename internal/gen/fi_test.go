package gen

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func synthProcurement(t *testing.T, seed int64) (MMData, []POHead, []POItem) {
	t.Helper()
	r, f := NewRand(seed)
	mm := SynthesizeMM(r, f, testNow(), testVolumes())

	heads := make([]POHead, 0, len(mm.Orders))
	for _, o := range mm.Orders {
		heads = append(heads, POHead{Ebeln: o.Ebeln, Lifnr: o.Lifnr, Aedat: o.Aedat})
	}
	items := make([]POItem, 0, len(mm.Items))
	for _, it := range mm.Items {
		items = append(items, POItem{Ebeln: it.Ebeln, Ebelp: it.Ebelp, Netwr: it.Netwr})
	}
	return mm, heads, items
}

func TestSynthesizeFIOneDocPerOrder(t *testing.T) {
	_, heads, items := synthProcurement(t, 100)
	r, _ := NewRand(101)
	fi := SynthesizeFI(r, heads, items)

	require.Equal(t, len(heads), len(fi.Docs))
	for i, d := range fi.Docs {
		assert.Equal(t, "1000", d.Bukrs)
		assert.Equal(t, "RE", d.Blart)
		assert.Equal(t, strconv.Itoa(docNumberStart+i), d.Belnr)
		assert.Equal(t, heads[i].Ebeln, d.Awkey)
		assert.Equal(t, d.Budat.Year(), d.Gjahr)

		lag := int(d.Budat.Sub(heads[i].Aedat).Hours() / 24)
		assert.GreaterOrEqual(t, lag, 5)
		assert.LessOrEqual(t, lag, 30)
	}
}

func TestSynthesizeFIDocumentsBalanceExactly(t *testing.T) {
	_, heads, items := synthProcurement(t, 102)
	r, _ := NewRand(103)
	fi := SynthesizeFI(r, heads, items)

	lifnrByOrder := map[string]string{}
	for _, h := range heads {
		lifnrByOrder[h.Ebeln] = h.Lifnr
	}
	awkeyByDoc := map[string]string{}
	for _, d := range fi.Docs {
		awkeyByDoc[d.Belnr] = d.Awkey
	}

	credit := map[string]float64{}
	debitSum := map[string]float64{}
	lastBuzei := map[string]int{}
	for _, l := range fi.Lines {
		switch l.Shkzg {
		case "H":
			require.Equal(t, 1, l.Buzei, "credit line is always line 1")
			require.Equal(t, "31", l.Bschl)
			require.Equal(t, lifnrByOrder[awkeyByDoc[l.Belnr]], l.Hkont)
			require.Nil(t, l.Ebeln)
			require.Nil(t, l.Ebelp)
			credit[l.Belnr] = l.Wrbtr
		case "S":
			require.Equal(t, "86", l.Bschl)
			require.Equal(t, "400000", l.Hkont)
			require.NotNil(t, l.Ebeln)
			require.NotNil(t, l.Ebelp)
			// дебеты нумеруются с 2 строго по возрастанию
			if lastBuzei[l.Belnr] == 0 {
				require.Equal(t, 2, l.Buzei)
			} else {
				require.Equal(t, lastBuzei[l.Belnr]+1, l.Buzei)
			}
			lastBuzei[l.Belnr] = l.Buzei
			debitSum[l.Belnr] += l.Wrbtr
		default:
			t.Fatalf("unexpected SHKZG %q", l.Shkzg)
		}
	}

	require.Equal(t, len(fi.Docs), len(credit))
	for belnr, c := range credit {
		// кредит равен сумме дебетов по построению, без допуска
		require.Equal(t, debitSum[belnr], c, "document %s", belnr)
	}
}

func TestSynthesizeFIVarianceInjection(t *testing.T) {
	mm, heads, items := synthProcurement(t, 104)
	require.GreaterOrEqual(t, len(mm.Items), 1000, "sample too small for the rate check")

	r, _ := NewRand(105)
	fi := SynthesizeFI(r, heads, items)

	type lineKey struct {
		Ebeln string
		Ebelp int
	}
	orderValue := map[lineKey]float64{}
	for _, it := range mm.Items {
		orderValue[lineKey{it.Ebeln, it.Ebelp}] = it.Netwr
	}

	debits := 0
	deviated := 0
	for _, l := range fi.Lines {
		if l.Shkzg != "S" {
			continue
		}
		debits++
		src := orderValue[lineKey{*l.Ebeln, *l.Ebelp}]
		require.Greater(t, src, 0.0)
		if l.Wrbtr == src {
			continue
		}
		deviated++
		ratio := l.Wrbtr / src
		assert.GreaterOrEqual(t, ratio, 0.899, "line %s/%d", *l.Ebeln, *l.Ebelp)
		assert.LessOrEqual(t, ratio, 1.1506, "line %s/%d", *l.Ebeln, *l.Ebelp)
	}

	require.Equal(t, len(mm.Items), debits)
	rate := float64(deviated) / float64(debits)
	assert.Greater(t, rate, 0.15, "variance rate too low: %f", rate)
	assert.Less(t, rate, 0.25, "variance rate too high: %f", rate)
}
