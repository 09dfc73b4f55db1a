// Package workload generates key sequences for driving a tree.
package workload

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/go-faker/faker/v4"
)

// Mode selects the order in which keys are produced.
type Mode string

const (
	// Sequential yields 1..n, the order of the classic reinsertion scenario.
	Sequential Mode = "sequential"
	// Reverse yields n..1.
	Reverse Mode = "reverse"
	// Shuffled yields 1..n in a seeded random order.
	Shuffled Mode = "shuffled"
	// Words yields distinct string keys built from faker words.
	Words Mode = "words"
)

var (
	ErrUnknownMode = errors.New("unknown workload mode")
	ErrInvalidSize = errors.New("workload size must be positive")
)

// Modes lists every supported mode.
func Modes() []Mode {
	return []Mode{Sequential, Reverse, Shuffled, Words}
}

// ParseMode validates s as a mode name.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modes() {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Ints returns n distinct integer keys in the order given by mode. Words is
// not an integer mode.
func Ints(mode Mode, n int, seed int64) ([]int64, error) {
	if n <= 0 {
		return nil, ErrInvalidSize
	}
	keys := make([]int64, n)
	switch mode {
	case Sequential, Shuffled:
		for i := range keys {
			keys[i] = int64(i + 1)
		}
		if mode == Shuffled {
			rnd := rand.New(rand.NewSource(seed))
			rnd.Shuffle(len(keys), func(i, j int) {
				keys[i], keys[j] = keys[j], keys[i]
			})
		}
	case Reverse:
		for i := range keys {
			keys[i] = int64(n - i)
		}
	default:
		return nil, fmt.Errorf("%w: %q has no integer keys", ErrUnknownMode, mode)
	}
	return keys, nil
}

// Strings returns n distinct word keys. Two faker words are joined per key;
// a numeric suffix resolves the collisions the limited vocabulary produces
// on large n.
func Strings(n int) ([]string, error) {
	if n <= 0 {
		return nil, ErrInvalidSize
	}
	seen := make(map[string]struct{}, n)
	keys := make([]string, 0, n)
	for len(keys) < n {
		k := faker.Word() + faker.Word()
		if _, dup := seen[k]; dup {
			k = fmt.Sprintf("%s-%d", k, len(keys))
			if _, dup := seen[k]; dup {
				continue
			}
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys, nil
}
