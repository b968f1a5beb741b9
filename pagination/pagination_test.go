package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/upostnikova0/java-shareit/pagination"
)

func TestPage(t *testing.T) {
	tests := []struct {
		name        string
		from, size  int
		limit       int
		offset      int
		expectError bool
	}{
		{name: "first page", from: 0, size: 10, limit: 10, offset: 0},
		{name: "second page", from: 10, size: 10, limit: 10, offset: 10},
		{name: "from inside a page snaps to its start", from: 7, size: 5, limit: 5, offset: 5},
		{name: "single element pages", from: 3, size: 1, limit: 1, offset: 3},
		{name: "negative from", from: -1, size: 10, expectError: true},
		{name: "zero size", from: 0, size: 0, expectError: true},
		{name: "negative size", from: 0, size: -5, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset, err := pagination.Page(tt.from, tt.size)

			if tt.expectError {
				require.ErrorIs(t, err, pagination.ErrInvalid)
				return
			}

			require.Nil(t, err)
			require.Equal(t, tt.limit, limit)
			require.Equal(t, tt.offset, offset)
		})
	}
}
