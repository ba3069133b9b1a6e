package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestYearMonth(t *testing.T) {
	t.Parallel()

	require.Equal(t, "1914-04", YearMonth(1914, 4))
	require.Equal(t, "2024-12", YearMonth(2024, 12))

	// detail view keeps the month unpadded
	require.Equal(t, "1914-4", YearMonthDetail(1914, 4))
	require.Equal(t, "2024-12", YearMonthDetail(2024, 12))
}
