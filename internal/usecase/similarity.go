package usecase

// sequenceRatio computes a normalized similarity between two strings as
// 2*M/T, where M is the total number of matching characters found by a
// greedy longest-matching-block recursion and T is the combined length of
// both strings. Identical strings score 1.0 (including two empty strings),
// strings with no characters in common score 0.0. The function is pure and
// deterministic; the fuzzy-match threshold in the matching service is
// calibrated against exactly this formula.
func sequenceRatio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	matches := matchingChars(ra, rb)
	return 2.0 * float64(matches) / float64(total)
}

// matchingChars sums the sizes of all matching blocks between a and b.
// Blocks are found by repeatedly locating the longest common block in the
// current window and recursing into the regions to its left and right.
func matchingChars(a, b []rune) int {
	// Index each rune of b by its positions for O(1) candidate lookup.
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	type window struct{ alo, ahi, blo, bhi int }
	queue := []window{{0, len(a), 0, len(b)}}

	matches := 0
	for len(queue) > 0 {
		w := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		besti, bestj, bestsize := longestMatch(a, b2j, w.alo, w.ahi, w.blo, w.bhi)
		if bestsize == 0 {
			continue
		}
		matches += bestsize
		if w.alo < besti && w.blo < bestj {
			queue = append(queue, window{w.alo, besti, w.blo, bestj})
		}
		if besti+bestsize < w.ahi && bestj+bestsize < w.bhi {
			queue = append(queue, window{besti + bestsize, w.ahi, bestj + bestsize, w.bhi})
		}
	}
	return matches
}

// longestMatch finds the longest block of runes common to a[alo:ahi] and
// b[blo:bhi]. Of all maximal blocks it prefers the one starting earliest in
// a, and of those the one starting earliest in b.
func longestMatch(a []rune, b2j map[rune][]int, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo

	// j2len[j] is the length of the longest match ending at a[i-1], b[j].
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return besti, bestj, bestsize
}
