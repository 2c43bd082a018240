package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDedupDates(t *testing.T) {
	require.Equal(t,
		[]string{"2024-07-01", "2024-07-02", "2024-07-03"},
		DedupDates([]string{"2024-07-01", "2024-07-02", "2024-07-01", "2024-07-03", "2024-07-02"}))
}

func TestDedupDatesPreservesOrder(t *testing.T) {
	require.Equal(t,
		[]string{"2024-07-03", "2024-07-01"},
		DedupDates([]string{"2024-07-03", "2024-07-01", "2024-07-03"}))
}

func TestDedupDatesEmpty(t *testing.T) {
	require.Empty(t, DedupDates(nil))
	require.Empty(t, DedupDates([]string{}))
}
