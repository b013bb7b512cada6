package utils

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
)

const (
	BaseFare  = 50
	FareRange = 100 // random part is in [0, FareRange)
)

// FarePolicy prices a ride between two named locations.
type FarePolicy func(pickup, drop string) int

// RandomFare charges BaseFare plus a uniform amount below FareRange. A nil
// source uses the global generator.
func RandomFare(src *rand.Rand) FarePolicy {
	if src == nil {
		return func(string, string) int {
			return BaseFare + rand.IntN(FareRange)
		}
	}
	var mu sync.Mutex
	return func(string, string) int {
		mu.Lock()
		defer mu.Unlock()
		return BaseFare + src.IntN(FareRange)
	}
}

func FlatFare(amount int) FarePolicy {
	return func(string, string) int { return amount }
}

// ParseFarePolicy understands "random" and "flat:<amount>".
func ParseFarePolicy(s string) (FarePolicy, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "" || s == "random":
		return RandomFare(nil), nil
	case strings.HasPrefix(s, "flat:"):
		n, err := strconv.Atoi(strings.TrimPrefix(s, "flat:"))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid flat fare %q", s)
		}
		return FlatFare(n), nil
	}
	return nil, fmt.Errorf("unknown fare policy %q", s)
}
