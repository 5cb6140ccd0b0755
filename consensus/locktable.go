package consensus

import "sort"

// allowedOutputLockHeights is the consensus index table of lock-height
// values a pay-key-hash-with-lock-height output may declare, kept sorted for binary search.
var allowedOutputLockHeights = []uint32{
	25_920,  // ~90 days at one block per 5 minutes
	51_840,  // ~180 days
	103_680, // ~360 days
	155_520, // ~540 days
	259_200, // ~900 days
}

// isAllowedOutputLockHeight reports whether height is a recognized entry in
// the consensus lock-height table.
func isAllowedOutputLockHeight(height uint32) bool {
	i := sort.Search(len(allowedOutputLockHeights), func(i int) bool {
		return allowedOutputLockHeights[i] >= height
	})
	return i < len(allowedOutputLockHeights) && allowedOutputLockHeights[i] == height
}
