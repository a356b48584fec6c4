package ranking

// SentinelScore marks an entry as known invalid/past-due. Sentinel-scored
// entries are set aside before sorting and never appear in ranked output.
const SentinelScore = -101

// ScoredEvent pairs a content id with its final score for sorting.
type ScoredEvent struct {
	ContentID int
	Score     float64
}

// sorter tracks comparison work across one sort invocation.
type sorter struct {
	comparisons int64
}

// Sort orders pairs by ascending score using quicksort with a Lomuto
// partition. Entries whose score equals SentinelScore are removed into a
// separate excluded list before partitioning, in input order. The returned
// comparison count increments once per element examined per partition call,
// exposed for diagnostics and benchmarking.
func Sort(pairs []ScoredEvent) (sorted, excluded []ScoredEvent, comparisons int64) {
	sorted = make([]ScoredEvent, 0, len(pairs))
	for _, p := range pairs {
		if p.Score == SentinelScore {
			excluded = append(excluded, p)
			continue
		}
		sorted = append(sorted, p)
	}

	s := &sorter{}
	s.quickSort(sorted, 0, len(sorted)-1)
	return sorted, excluded, s.comparisons
}

func (s *sorter) quickSort(arr []ScoredEvent, start, end int) {
	if end <= start {
		return
	}
	pivot := s.partition(arr, start, end)
	s.quickSort(arr, start, pivot-1)
	s.quickSort(arr, pivot+1, end)
}

// partition is a Lomuto partition around the last element's score.
func (s *sorter) partition(arr []ScoredEvent, start, end int) int {
	pivot := arr[end].Score
	i := start - 1

	for j := start; j < end; j++ {
		s.comparisons++
		if arr[j].Score < pivot {
			i++
			arr[i], arr[j] = arr[j], arr[i]
		}
	}
	i++
	arr[i], arr[end] = arr[end], arr[i]
	return i
}
