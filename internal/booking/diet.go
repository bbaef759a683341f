package booking

import "sort"

// AggregateDiets computes the union constraint a restaurant must
// satisfy to serve the whole group: every member's restriction, not
// just any one member's. The result is deduplicated and sorted so the
// downstream query is deterministic. No restrictions anywhere yields an
// empty constraint, which matches any restaurant.
func AggregateDiets(sets ...[]string) []string {
	seen := make(map[string]struct{})
	union := make([]string, 0)
	for _, set := range sets {
		for _, tag := range set {
			if tag == "" {
				continue
			}
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
				union = append(union, tag)
			}
		}
	}
	sort.Strings(union)
	return union
}
