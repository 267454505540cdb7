// Package sequence holds library-free checks on amino acid sequences:
// input hygiene, composition heuristics and mutant library generation.
package sequence

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Alphabet is the set of the 20 standard amino acids.
const Alphabet = "ACDEFGHIKLMNPQRSTVWY"

// ErrEmpty is returned by Clean when nothing is left after cleaning.
var ErrEmpty = errors.New("sequence is empty after cleaning")

// Clean strips whitespace, uppercases, and rejects characters outside
// Alphabet. The error lists offending characters sorted, once each.
func Clean(seq string) (string, error) {
	clean := strings.ToUpper(strings.Join(strings.Fields(seq), ""))
	if clean == "" {
		return "", ErrEmpty
	}

	bad := map[rune]bool{}
	for _, r := range clean {
		if !strings.ContainsRune(Alphabet, r) {
			bad[r] = true
		}
	}
	if len(bad) > 0 {
		chars := make([]string, 0, len(bad))
		for r := range bad {
			chars = append(chars, string(r))
		}
		sort.Strings(chars)
		return "", fmt.Errorf("sequence contains invalid characters: %s", strings.Join(chars, ""))
	}
	return clean, nil
}

const (
	minFoldLength     = 20
	maxProGlyFraction = 0.3
)

// InferIssues applies composition heuristics and returns warnings for
// sequences unlikely to fold or behave well. An empty sequence yields none.
func InferIssues(seq string) []string {
	issues := []string{}
	n := len(seq)
	if n == 0 {
		return issues
	}

	if n < minFoldLength {
		issues = append(issues, fmt.Sprintf(
			"Length Warning: Sequence is very short (<%d AA), unlikely to form a stable tertiary structure independently.", minFoldLength))
	}

	if cys := strings.Count(seq, "C"); cys%2 != 0 {
		issues = append(issues, fmt.Sprintf(
			"Cysteine Warning: Odd number of Cysteines (%d). This may lead to free thiols or intermolecular disulfide aggregation.", cys))
	}

	proGly := float64(strings.Count(seq, "P")+strings.Count(seq, "G")) / float64(n)
	if proGly > maxProGlyFraction {
		issues = append(issues, fmt.Sprintf(
			"Composition Warning: High Proline/Glycine content (%.1f%%). Suggests potential intrinsic disorder.", proGly*100))
	}

	return issues
}

// AlanineScan returns every single alanine substitution of seq keyed by
// mutation name (e.g. "M1A"). Positions that are already alanine are skipped.
func AlanineScan(seq string) map[string]string {
	variants := make(map[string]string)
	for i := 0; i < len(seq); i++ {
		if seq[i] == 'A' {
			continue
		}
		variants[fmt.Sprintf("%c%dA", seq[i], i+1)] = mutate(seq, i, 'A')
	}
	return variants
}

// SaturationLibrary returns the 19 substitutions at the 1-based position.
func SaturationLibrary(seq string, position int) (map[string]string, error) {
	if position < 1 || position > len(seq) {
		return nil, fmt.Errorf("position %d is out of range (1-%d)", position, len(seq))
	}

	i := position - 1
	orig := seq[i]
	variants := make(map[string]string, len(Alphabet)-1)
	for j := 0; j < len(Alphabet); j++ {
		aa := Alphabet[j]
		if aa == orig {
			continue
		}
		variants[fmt.Sprintf("%c%d%c", orig, position, aa)] = mutate(seq, i, aa)
	}
	return variants, nil
}

func mutate(seq string, i int, aa byte) string {
	b := []byte(seq)
	b[i] = aa
	return string(b)
}

// SortedNames returns the keys of a variant library in stable order.
func SortedNames(variants map[string]string) []string {
	names := make([]string, 0, len(variants))
	for k := range variants {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
