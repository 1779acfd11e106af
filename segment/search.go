package segment

import "sort"

// locateIndex returns the smallest index i such that epochs[i] >= et,
// or len(epochs) if et is past every endpoint. When directory is non-empty
// it holds the endpoint value at every 100th index (directory[k] =
// epochs[min((k+1)*100-1, len(epochs)-1)]) and is used to narrow the search
// range before the final binary search, per spec.md §4.2.2/§4.2.4.
func locateIndex(epochs []float64, directory []float64, et float64) int {
	lo, hi := 0, len(epochs)
	if len(directory) > 0 {
		block := sort.Search(len(directory), func(k int) bool { return directory[k] >= et })
		lo = block * 100
		hi = (block + 1) * 100
		if hi > len(epochs) {
			hi = len(epochs)
		}
		if lo > len(epochs) {
			lo = len(epochs)
		}
	}
	rel := sort.Search(hi-lo, func(i int) bool { return epochs[lo+i] >= et })
	return lo + rel
}

// neville evaluates the Lagrange interpolating polynomial through (x,y) at
// xEval using Neville's recursive scheme (no monomial expansion, no
// explicit barycentric weights).
func neville(x, y []float64, xEval float64) float64 {
	n := len(x)
	p := make([]float64, n)
	copy(p, y)
	for k := 1; k < n; k++ {
		for i := 0; i < n-k; i++ {
			p[i] = ((xEval-x[i+k])*p[i] + (x[i]-xEval)*p[i+1]) / (x[i] - x[i+k])
		}
	}
	return p[0]
}

// hermiteValueAndDerivative evaluates, at xEval, the unique polynomial of
// degree 2*len(x)-1 matching both y[i] and dy[i] at each x[i], using the
// classical divided-difference construction with doubled nodes, and
// returns both the value and its derivative.
func hermiteValueAndDerivative(x, y, dy []float64, xEval float64) (value, deriv float64) {
	n := len(x)
	m := 2 * n
	z := make([]float64, m)
	table := make([][]float64, m)
	for i := range table {
		table[i] = make([]float64, m)
	}
	for i := 0; i < n; i++ {
		z[2*i] = x[i]
		z[2*i+1] = x[i]
		table[2*i][0] = y[i]
		table[2*i+1][0] = y[i]
		table[2*i+1][1] = dy[i]
		if i != 0 {
			table[2*i][1] = (table[2*i][0] - table[2*i-1][0]) / (z[2*i] - z[2*i-1])
		}
	}
	for j := 2; j < m; j++ {
		for i := j; i < m; i++ {
			table[i][j] = (table[i][j-1] - table[i-1][j-1]) / (z[i] - z[i-j])
		}
	}

	value = table[0][0]
	run, drun := 1.0, 0.0
	for i := 1; i < m; i++ {
		factor := xEval - z[i-1]
		newRun := run * factor
		newDrun := drun*factor + run
		run, drun = newRun, newDrun
		coeff := table[i][i]
		value += coeff * run
		deriv += coeff * drun
	}
	return value, deriv
}
