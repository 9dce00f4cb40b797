package normalize

import "github.com/noa-park/backoffice/internal/upstream"

// Category and Game pass through mostly unchanged; normalization here
// pins ids to strings and price to the display string the POS parses.

type Category struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Image      string `json:"image,omitempty"`
	GamesCount string `json:"gamesCount"`
}

func CategoryFromRaw(raw upstream.RawCategory) Category {
	return Category{
		ID:         coerceString(raw.ID),
		Name:       raw.Name,
		Image:      raw.Image,
		GamesCount: coerceNumberString(raw.GamesCount, "0"),
	}
}

func CategoryToRaw(c Category) upstream.RawCategory {
	return upstream.RawCategory{
		ID:    c.ID,
		Name:  c.Name,
		Image: c.Image,
	}
}

type Game struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Time        string `json:"time,omitempty"`
	Status      string `json:"status,omitempty"`
	Price       string `json:"price"`
	Image       string `json:"image,omitempty"`
}

func GameFromRaw(raw upstream.RawGame) Game {
	return Game{
		ID:          coerceString(raw.ID),
		Name:        raw.Name,
		Description: raw.Description,
		Category:    raw.Category,
		Time:        raw.Time,
		Status:      raw.Status,
		Price:       coerceNumberString(raw.Price, "0"),
		Image:       raw.Image,
	}
}

func GameToRaw(g Game) upstream.RawGame {
	return upstream.RawGame{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Category:    g.Category,
		Time:        g.Time,
		Status:      g.Status,
		Price:       g.Price,
		Image:       g.Image,
	}
}
