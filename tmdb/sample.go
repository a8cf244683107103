package tmdb

// sampleCatalog returns the bundled movie catalog served when no TMDB API key
// is configured. Returning a fresh slice keeps callers from mutating the seed.
func sampleCatalog() []Movie {
	return []Movie{
		{
			ID:               1311031,
			Title:            "Demon Slayer: Kimetsu no Yaiba Infinity Castle",
			OriginalTitle:    "劇場版「鬼滅の刃」無限城編 第一章 猗窩座再来",
			OriginalLanguage: "ja",
			Overview:         "The Demon Slayer Corps plunge into Infinity Castle to defeat Muzan.",
			ReleaseDate:      "2025-07-18",
			PosterPath:       "/aFRDH3P7TX61FVGpaLhKr6QiOC1.jpg",
			GenreIDs:         []int{16, 28, 14, 53},
			Popularity:       687.43,
			VoteAverage:      7.8,
			VoteCount:        412,
		},
		{
			ID:               755898,
			Title:            "War of the Worlds",
			OriginalTitle:    "War of the Worlds",
			OriginalLanguage: "en",
			Overview:         "A cyber-security analyst discovers a deadly alien invasion through the surveillance systems he monitors.",
			ReleaseDate:      "2025-07-29",
			PosterPath:       "/yvirUYrva23IudARHn3mMGVxWqM.jpg",
			GenreIDs:         []int{878, 53},
			Popularity:       541.12,
			VoteAverage:      4.3,
			VoteCount:        298,
		},
		{
			ID:               603,
			Title:            "The Matrix",
			OriginalTitle:    "The Matrix",
			OriginalLanguage: "en",
			Overview:         "A hacker learns the world he lives in is a simulation and joins the fight against its controllers.",
			ReleaseDate:      "1999-03-31",
			PosterPath:       "/f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg",
			GenreIDs:         []int{28, 878},
			Popularity:       104.7,
			VoteAverage:      8.2,
			VoteCount:        25913,
		},
		{
			ID:               27205,
			Title:            "Inception",
			OriginalTitle:    "Inception",
			OriginalLanguage: "en",
			Overview:         "A thief who steals secrets through dream-sharing technology is given the inverse task of planting an idea.",
			ReleaseDate:      "2010-07-15",
			PosterPath:       "/oYuLEt3zVCKq57qu2F8dT7NIa6f.jpg",
			GenreIDs:         []int{28, 878, 12},
			Popularity:       98.3,
			VoteAverage:      8.4,
			VoteCount:        36544,
		},
		{
			ID:               475557,
			Title:            "Joker",
			OriginalTitle:    "Joker",
			OriginalLanguage: "en",
			Overview:         "A struggling comedian descends into madness in Gotham City.",
			ReleaseDate:      "2019-10-02",
			PosterPath:       "/udDclJoHjfjb8Ekgsd4FDteOkCU.jpg",
			GenreIDs:         []int{80, 53, 18},
			Popularity:       77.9,
			VoteAverage:      8.1,
			VoteCount:        25452,
		},
		{
			ID:               496243,
			Title:            "Parasite",
			OriginalTitle:    "기생충",
			OriginalLanguage: "ko",
			Overview:         "A poor family schemes to become employed by a wealthy household.",
			ReleaseDate:      "2019-05-30",
			PosterPath:       "/7IiTTgloJzvGI1TAYymCfbfl3vT.jpg",
			GenreIDs:         []int{35, 53, 18},
			Popularity:       65.2,
			VoteAverage:      8.5,
			VoteCount:        18602,
		},
		{
			ID:               693134,
			Title:            "Dune: Part Two",
			OriginalTitle:    "Dune: Part Two",
			OriginalLanguage: "en",
			Overview:         "Paul Atreides unites with Chani and the Fremen while seeking revenge against the conspirators who destroyed his family.",
			ReleaseDate:      "2024-02-27",
			PosterPath:       "/1pdfLvkbY9ohJlCjQH2CZjjYVvJ.jpg",
			GenreIDs:         []int{878, 12},
			Popularity:       189.4,
			VoteAverage:      8.2,
			VoteCount:        6803,
		},
		{
			ID:               278,
			Title:            "The Shawshank Redemption",
			OriginalTitle:    "The Shawshank Redemption",
			OriginalLanguage: "en",
			Overview:         "Imprisoned in the 1940s for double murder, a banker befriends a fellow inmate over two decades.",
			ReleaseDate:      "1994-09-23",
			PosterPath:       "/9cqNxx0GxF0bflZmeSMuL5tnGzr.jpg",
			GenreIDs:         []int{18, 80},
			Popularity:       122.5,
			VoteAverage:      8.7,
			VoteCount:        27590,
		},
	}
}
