package notify

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Hungarian alphabet order, digraphs included:
// a á b c cs d dz dzs e é f g gy h i í j k l ly m n ny o ó ö ő p q r s sz
// t ty u ú ü ű v w x y z zs
var hunRank = func() map[string]int {
	order := []string{
		"a", "á", "b", "c", "cs", "d", "dz", "dzs", "e", "é", "f", "g", "gy",
		"h", "i", "í", "j", "k", "l", "ly", "m", "n", "ny", "o", "ó", "ö", "ő",
		"p", "q", "r", "s", "sz", "t", "ty", "u", "ú", "ü", "ű", "v", "w", "x",
		"y", "z", "zs",
	}
	m := make(map[string]int, len(order))
	for i, v := range order {
		m[v] = i
	}
	return m
}()

// digraphs are tried longest first so "dzs" wins over "dz".
var digraphs = []string{"dzs", "cs", "dz", "gy", "ly", "ny", "sz", "ty", "zs"}

// unknownRank sorts characters outside the alphabet after everything else.
const unknownRank = 999

// tokenize splits a lowercased name into collation units.
func tokenize(name string) []string {
	s := strings.ToLower(name)
	var tokens []string
	for i := 0; i < len(s); {
		matched := ""
		for _, dg := range digraphs {
			if strings.HasPrefix(s[i:], dg) {
				matched = dg
				break
			}
		}
		if matched != "" {
			tokens = append(tokens, matched)
			i += len(matched)
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		tokens = append(tokens, string(r))
		i += size
	}
	return tokens
}

func collationKey(name string) []int {
	tokens := tokenize(name)
	key := make([]int, 0, len(tokens))
	for _, t := range tokens {
		if r, ok := hunRank[t]; ok {
			key = append(key, r)
		} else {
			key = append(key, unknownRank)
		}
	}
	return key
}

func keyLess(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// SortHungarian deduplicates the names, keeping the first occurrence, and
// sorts them by the Hungarian alphabet with digraph awareness, so Csák
// collates after Cukor and Szabó after Simon.
func SortHungarian(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}

	keys := make(map[string][]int, len(out))
	for _, n := range out {
		keys[n] = collationKey(n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return keyLess(keys[out[i]], keys[out[j]])
	})
	return out
}
