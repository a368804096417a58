package regression

import "sort"

// featureThreshold is the minimum gap between two sorted feature values
// for a split to be placed between them
const featureThreshold = 1e-7

// treeNode is a node of a fitted regression tree. Leaves have left == -1.
type treeNode struct {
	feature   int
	threshold float64
	left      int
	right     int
	value     float64
	samples   int
}

// RegressionTree is a binary regression tree fit on squared error
type RegressionTree struct {
	nodes []treeNode
}

type treeParams struct {
	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
}

// treeBuilder grows a tree over the rows listed in idx
type treeBuilder struct {
	x      [][]float64
	y      []float64
	params treeParams
	nodes  []treeNode
}

func fitTree(x [][]float64, y []float64, idx []int, params treeParams) *RegressionTree {
	b := &treeBuilder{x: x, y: y, params: params}
	rows := make([]int, len(idx))
	copy(rows, idx)
	b.build(rows, 0)
	return &RegressionTree{nodes: b.nodes}
}

// build appends the subtree for rows and returns its node index
func (b *treeBuilder) build(rows []int, depth int) int {
	var sum, sumSq float64
	for _, i := range rows {
		sum += b.y[i]
		sumSq += b.y[i] * b.y[i]
	}
	n := float64(len(rows))
	mean := sum / n

	id := len(b.nodes)
	b.nodes = append(b.nodes, treeNode{left: -1, right: -1, value: mean, samples: len(rows)})

	impurity := sumSq/n - mean*mean
	if depth >= b.params.maxDepth ||
		len(rows) < b.params.minSamplesSplit ||
		len(rows) < 2*b.params.minSamplesLeaf ||
		impurity <= 1e-12*max(1, mean*mean) {
		return id
	}

	feature, threshold, ok := b.bestSplit(rows, sum)
	if !ok {
		return id
	}

	var left, right []int
	for _, i := range rows {
		if b.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	l := b.build(left, depth+1)
	r := b.build(right, depth+1)
	b.nodes[id].feature = feature
	b.nodes[id].threshold = threshold
	b.nodes[id].left = l
	b.nodes[id].right = r
	return id
}

// bestSplit scans every feature and candidate threshold, scoring splits by
// Friedman's improvement (nR*sumL - nL*sumR)^2 / (nL*nR). Ties keep the
// first split found, so results depend only on the data and feature order.
func (b *treeBuilder) bestSplit(rows []int, total float64) (int, float64, bool) {
	minLeaf := b.params.minSamplesLeaf
	n := len(rows)
	sorted := make([]int, n)

	// Scores are never negative, so any valid split beats the initial
	// value, including one with zero improvement.
	bestFeature, bestThreshold := -1, 0.0
	bestScore := -1.0

	for f := 0; f < len(b.x[rows[0]]); f++ {
		copy(sorted, rows)
		sort.SliceStable(sorted, func(i, j int) bool {
			return b.x[sorted[i]][f] < b.x[sorted[j]][f]
		})

		var sumLeft float64
		for k := 1; k < n; k++ {
			sumLeft += b.y[sorted[k-1]]
			if k < minLeaf || n-k < minLeaf {
				continue
			}

			lo := b.x[sorted[k-1]][f]
			hi := b.x[sorted[k]][f]
			if hi <= lo+featureThreshold {
				continue
			}

			nl, nr := float64(k), float64(n-k)
			diff := nr*sumLeft - nl*(total-sumLeft)
			score := diff * diff / (nl * nr)
			if score > bestScore {
				bestScore = score
				bestFeature = f
				bestThreshold = (lo + hi) / 2
				if bestThreshold == hi {
					bestThreshold = lo
				}
			}
		}
	}

	return bestFeature, bestThreshold, bestFeature >= 0
}

// Predict walks the tree for one sample
func (t *RegressionTree) Predict(x []float64) float64 {
	i := 0
	for t.nodes[i].left >= 0 {
		if x[t.nodes[i].feature] <= t.nodes[i].threshold {
			i = t.nodes[i].left
		} else {
			i = t.nodes[i].right
		}
	}
	return t.nodes[i].value
}

// Depth returns the depth of the deepest leaf
func (t *RegressionTree) Depth() int {
	var walk func(i int) int
	walk = func(i int) int {
		if t.nodes[i].left < 0 {
			return 0
		}
		return 1 + max(walk(t.nodes[i].left), walk(t.nodes[i].right))
	}
	return walk(0)
}

// Leaves returns the number of leaf nodes
func (t *RegressionTree) Leaves() int {
	count := 0
	for _, n := range t.nodes {
		if n.left < 0 {
			count++
		}
	}
	return count
}
