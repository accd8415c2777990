package util

import (
	"crypto/rand"
	"encoding/hex"
	mrand "math/rand"
)

// Shuffle returns a shuffled copy of s.
func Shuffle[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	mrand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Merge concatenates a and b and drops repeated values, keeping the first
// occurrence of each.
func Merge[T comparable](a, b []T) []T {
	return FlatMerge([][]T{a, b})
}

// FlatMerge flattens lists and drops repeated values, keeping the first
// occurrence of each.
func FlatMerge[T comparable](lists [][]T) []T {
	seen := make(map[T]struct{})
	out := make([]T, 0)
	for _, l := range lists {
		for _, v := range l {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// RandomSlice returns up to size randomly chosen elements of s.
// A non-positive size yields an empty slice.
func RandomSlice[T any](s []T, size int) []T {
	if size <= 0 {
		return []T{}
	}
	out := Shuffle(s)
	if size < len(out) {
		out = out[:size]
	}
	return out
}

// RandomHexString returns numBytes random bytes, hex-encoded.
func RandomHexString(numBytes int) (string, error) {
	b := make([]byte, numBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
