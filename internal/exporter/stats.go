package exporter

import (
	"fmt"
	"sort"

	"goknife/internal/types"
)

// DisplayStats prints token statistics for one tokenized document.
func DisplayStats(stats types.TokenStats) {
	type typeCount struct {
		Type  types.TokenType
		Count int
	}

	var typeCounts []typeCount

	fmt.Println("=== Token Statistics ===")
	fmt.Printf("  File size: %d bytes\n", stats.FileSize)
	fmt.Printf("  Total tokens: %d\n", stats.TotalTokens)
	fmt.Printf("  Total text length: %d\n", stats.TotalTextLength)

	fmt.Println("\n--- Tokens by Type")

	for t, count := range stats.TokensByType {
		typeCounts = append(typeCounts, typeCount{t, count})
	}
	sort.Slice(typeCounts, func(i, j int) bool {
		return typeCounts[i].Count > typeCounts[j].Count
	})

	for _, tc := range typeCounts {
		percentage := float64(tc.Count) / float64(stats.TotalTokens) * 100
		fmt.Printf("  %-20s: %5d (%.1f%%)\n", tc.Type.String(), tc.Count, percentage)
	}

	if len(stats.ElementNames) > 0 {
		fmt.Println("\n--- Most Used Elements")
		displayTopN(stats.ElementNames, 10)
	}
}

func displayTopN(data map[string]int, n int) {
	type entry struct {
		Key   string
		Count int
	}

	var entries []entry
	for k, v := range data {
		entries = append(entries, entry{k, v})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	for i, e := range entries {
		if i >= n {
			break
		}

		fmt.Printf("  %-20s: %5d\n", e.Key, e.Count)
	}
}
