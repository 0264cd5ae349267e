package perm

import "slices"

// Seq returns a slice containing the sequence [0, 1, 2, ..., n-1].
// It is the identity ordering of n generators.
//
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	if n <= 0 {
		return []int{}
	}
	result := make([]int, n)
	for i := range result {
		result[i] = i
	}
	return result
}

// Factorial returns n! (n factorial), the product 1 × 2 × ... × n.
// For n <= 1, Factorial returns 1.
//
// Factorial(k) is the number of generator orderings the brute-force closure
// visits for k generators.
func Factorial(n int) int {
	result := 1
	for i := 2; i <= n; i++ {
		result *= i
	}
	return result
}

// Generate returns orderings of [0, 1, ..., n-1] using Heap's algorithm.
//
// If limit > 0, Generate returns at most limit orderings.
// If limit <= 0, Generate returns all n! orderings.
//
// Each returned slice is a separate allocation, safe to modify without affecting others.
//
// Generate handles edge cases gracefully:
//   - n = 0: returns [[]] (one empty ordering)
//   - n = 1: returns [[0]] (one single-element ordering)
//
// Heap's algorithm produces the orderings in a non-lexicographic order, but
// produces each exactly once. Callers that need a stable order must not rely
// on anything beyond that.
func Generate(n, limit int) [][]int {
	if n <= 0 {
		return [][]int{{}}
	}
	if n == 1 {
		return [][]int{{0}}
	}

	order := Seq(n)
	state := make([]int, n)

	capacity := limit
	if capacity <= 0 || n <= 12 {
		capacity = Factorial(min(n, 12))
	}
	result := make([][]int, 0, capacity)
	result = append(result, slices.Clone(order))

	for i := 0; i < n && (limit <= 0 || len(result) < limit); {
		if state[i] < i {
			if i&1 == 0 {
				order[0], order[i] = order[i], order[0]
			} else {
				order[state[i]], order[i] = order[i], order[state[i]]
			}
			result = append(result, slices.Clone(order))
			state[i]++
			i = 0
		} else {
			state[i] = 0
			i++
		}
	}
	return result
}

// Combinations calls fn with every k-element subset of [0, n) in
// lexicographic order. The slice passed to fn is reused between calls;
// fn must copy it to retain it. Iteration stops early when fn returns false.
//
// For k == 0, fn is called once with an empty slice. For k > n or k < 0,
// fn is never called.
func Combinations(n, k int, fn func(idx []int) bool) {
	if k < 0 || k > n {
		return
	}
	idx := Seq(k)
	for {
		if !fn(idx) {
			return
		}
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// Binomial returns C(n, k), the number of k-element subsets of n elements.
// It returns 0 when k < 0 or k > n.
func Binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	k = min(k, n-k)
	result := 1
	for i := 1; i <= k; i++ {
		result = result * (n - k + i) / i
	}
	return result
}
