package util

import (
	"crypto/rand"
	"math/big"
	"slices"
	"strconv"
)

// DefaultIDMax is the upper bound for generated entity IDs.
const DefaultIDMax = 999999999

// GenerateID returns a random numeric-string identifier not present in taken.
// IDs are drawn from [max/10, max] so they always have the same digit count.
func GenerateID(taken []string) string {
	return GenerateIDMax(taken, DefaultIDMax)
}

// GenerateIDMax is GenerateID with an explicit upper bound.
func GenerateIDMax(taken []string, max int64) string {
	for {
		id := strconv.FormatInt(randRange(max/10, max), 10)
		if !slices.Contains(taken, id) {
			return id
		}
	}
}

// randRange returns a uniform random int64 in [lo, hi].
func randRange(lo, hi int64) int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(hi-lo+1))
	if err != nil {
		// crypto/rand only fails when the platform source is broken;
		// nothing sensible to do but stop.
		panic(err)
	}

	return lo + n.Int64()
}
