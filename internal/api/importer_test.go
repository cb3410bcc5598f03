package api

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVHeaderAndRows(t *testing.T) {
	in := "MATNR,QTY\nMAT-1,10\nMAT-2,20\n"
	header, rows, err := parseCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"MATNR", "QTY"}, header)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"MAT-1", "10"}, rows[0])
}

func TestParseCSVRaggedRowsAllowed(t *testing.T) {
	in := "A,B,C\n1,2\n1,2,3\n"
	header, rows, err := parseCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Len(t, header, 3)
	assert.Len(t, rows, 2)
	assert.Len(t, rows[0], 2) // короткая строка добивается null'ами при записи
}

func TestSplitHeaderSanitizesNames(t *testing.T) {
	header, rows, err := splitHeader([][]string{
		{"A", "", `B"quoted`, "A"},
		{"1", "2", "3", "4"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "COL_2", "Bquoted", "A_4"}, header)
	assert.Len(t, rows, 1)
}

func TestSplitHeaderEmptyFile(t *testing.T) {
	_, _, err := splitHeader(nil)
	require.Error(t, err)
}
