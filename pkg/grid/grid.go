package grid

// GetGridCoords converts a linear tile index into column and row for a grid cols wide.
func GetGridCoords(index, cols int) (x, y int) {
	return index % cols, index / cols
}

// Shape picks the column and row count for n tiles: the smallest square that holds them,
// with empty trailing rows dropped.
func Shape(n int) (cols, rows int) {
	if n <= 0 {
		return 1, 1
	}
	cols = 1
	for cols*cols < n {
		cols++
	}
	rows = (n + cols - 1) / cols
	return cols, rows
}
