package catalog

// NavigateGrid moves card focus for an arrow key. Left/right step by one card,
// up/down by one row of cols cards. The result is clamped to [0, n-1]; handled
// is false for keys that are not grid movement.
func NavigateGrid(focus int, key string, cols, n int) (next int, handled bool) {
	if n <= 0 {
		return 0, false
	}
	if cols < 1 {
		cols = 1
	}
	switch key {
	case "right":
		next = focus + 1
	case "left":
		next = focus - 1
	case "down":
		next = focus + cols
	case "up":
		next = focus - cols
	default:
		return focus, false
	}
	if next < 0 {
		next = 0
	}
	if next > n-1 {
		next = n - 1
	}
	return next, true
}
