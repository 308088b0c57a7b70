package domain

import "fmt"

// UniqueLabels returns one label per name, pairwise distinct, in input order.
//
// The first occurrence of a name keeps it unchanged. Later occurrences get a
// letter suffix ("1tyl {a}", "1tyl {b}", ...). Once the 26 letters are used
// up the suffix becomes numeric, starting at 27 ("1tyl {27}").
func UniqueLabels(names []string) []string {
	labels := make([]string, 0, len(names))
	taken := make(map[string]bool, len(names))

	for _, name := range names {
		label := name
		if taken[label] {
			label = disambiguate(name, taken)
		}
		taken[label] = true
		labels = append(labels, label)
	}
	return labels
}

func disambiguate(name string, taken map[string]bool) string {
	for letter := 'a'; letter <= 'z'; letter++ {
		candidate := fmt.Sprintf("%s {%c}", name, letter)
		if !taken[candidate] {
			return candidate
		}
	}
	for n := 27; ; n++ {
		candidate := fmt.Sprintf("%s {%d}", name, n)
		if !taken[candidate] {
			return candidate
		}
	}
}
