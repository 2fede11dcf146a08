package util

// Matrix2 is a 2-dimensional sparse matrix addressed by a pair of comparable
// coordinates. Cells that were never set are absent, not zero-valued.
type Matrix2[X comparable, Y comparable, V any] map[X]map[Y]V

func NewMatrix2[X comparable, Y comparable, V any]() Matrix2[X, Y, V] {
	return Matrix2[X, Y, V]{}
}

// Set stores value at coordinates (x, y), allocating the column map on first
// use of x.
func (m Matrix2[X, Y, V]) Set(x X, y Y, value V) {
	col, ok := m[x]
	if !ok {
		col = map[Y]V{}
		m[x] = col
	}
	col[y] = value
}

// Get returns a pointer to the value at (x, y), or nil if that cell was
// never set. The pointer does not alias the cell; write changed values back
// with Set.
func (m Matrix2[X, Y, V]) Get(x X, y Y) *V {
	col, ok := m[x]
	if !ok {
		return nil
	}

	v, ok := col[y]
	if !ok {
		return nil
	}

	return &v
}
