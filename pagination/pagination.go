// Package pagination implements the from/size paging convention shared by the
// listing endpoints: from is the index of the first element, size the page
// size, and the served page is the one containing element from.
package pagination

import "errors"

var ErrInvalid = errors.New("invalid pagination bounds")

// Page validates from/size and returns the LIMIT/OFFSET pair for the query.
// The offset snaps to a page boundary: element from is on page from/size, so
// the query starts at (from/size)*size.
func Page(from, size int) (limit, offset int, err error) {
	if from < 0 || size <= 0 {
		return 0, 0, ErrInvalid
	}

	return size, (from / size) * size, nil
}
