package dashboard

import "github.com/noa-park/backoffice/internal/normalize"

// Demo fixtures shown when the mandatory fetches fail: exactly one
// sample category and one sample game, so every screen still has
// something to render offline.

func demoCategories() []normalize.Category {
	return []normalize.Category{
		{
			ID:         "1",
			Name:       "Thrill Rides",
			Image:      "https://images.unsplash.com/photo-1513889953751-09e946f82f13?auto=format&fit=crop&q=80&w=400",
			GamesCount: "1",
		},
	}
}

func demoGames() []normalize.Game {
	return []normalize.Game{
		{
			ID:          "1",
			Name:        "Mega Coaster",
			Description: "The real thrill experience at full height",
			Category:    "Thrill Rides",
			Time:        "03:00",
			Status:      "active",
			Price:       "45,000",
			Image:       "https://images.unsplash.com/photo-1513889953751-09e946f82f13?auto=format&fit=crop&q=80&w=400",
		},
	}
}
