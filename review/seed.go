package review

import "time"

// seedReviews returns the sample reviews the store is seeded with on first use.
func seedReviews() []Review {
	return []Review{
		{
			ID:      1,
			MovieID: 1311031,
			Author:  "Alice",
			Content: "J’ai adoré ce film ! Les scènes d’action sont incroyables.",
			Date:    time.Date(2025, 7, 19, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:      2,
			MovieID: 1311031,
			Author:  "Bob",
			Content: "L’histoire est captivante mais un peu longue.",
			Date:    time.Date(2025, 7, 20, 14, 30, 0, 0, time.UTC),
		},
		{
			ID:      3,
			MovieID: 755898,
			Author:  "Charlie",
			Content: "Pas mon style, mais bien réalisé.",
			Date:    time.Date(2025, 7, 30, 8, 15, 0, 0, time.UTC),
		},
	}
}
