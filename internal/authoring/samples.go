package authoring

import (
	"fmt"
	"time"

	"trivia-service/internal/domain"
)

// SampleQuizzes returns the built-in quizzes used to seed an empty store.
func SampleQuizzes(now time.Time) []domain.Quiz {
	return []domain.Quiz{
		sample("sample-nba-mvps", "NBA MVPs (2000-2024)", domain.DifficultyHard, 360, now, []domain.QuizItem{
			{Prompt: "2000", Answer: "Shaquille O'Neal", Aliases: []string{"Shaq", "Shaquille Oneal"}},
			{Prompt: "2001", Answer: "Allen Iverson", Aliases: []string{"AI"}},
			{Prompt: "2002-2003", Answer: "Tim Duncan"},
			{Prompt: "2004", Answer: "Kevin Garnett", Aliases: []string{"KG"}},
			{Prompt: "2005-2006", Answer: "Steve Nash"},
			{Prompt: "2007", Answer: "Dirk Nowitzki", Aliases: []string{"Dirk"}},
			{Prompt: "2008", Answer: "Kobe Bryant", Aliases: []string{"Kobe"}},
			{Prompt: "2009, 2010, 2012, 2013", Answer: "LeBron James", Aliases: []string{"Lebron"}},
			{Prompt: "2011", Answer: "Derrick Rose", Aliases: []string{"D Rose"}},
			{Prompt: "2014", Answer: "Kevin Durant", Aliases: []string{"KD"}},
			{Prompt: "2015-2016", Answer: "Stephen Curry", Aliases: []string{"Steph Curry"}},
			{Prompt: "2017", Answer: "Russell Westbrook", Aliases: []string{"Russ Westbrook"}},
			{Prompt: "2018", Answer: "James Harden", Aliases: []string{"Harden"}},
			{Prompt: "2019-2020", Answer: "Giannis Antetokounmpo", Aliases: []string{"Giannis"}},
			{Prompt: "2021, 2022, 2024", Answer: "Nikola Jokić", Aliases: []string{"Jokic"}},
			{Prompt: "2023", Answer: "Joel Embiid", Aliases: []string{"Embiid"}},
		}),
		sample("sample-nba-teams", "NBA Teams by City", domain.DifficultyNormal, 240, now, []domain.QuizItem{
			{Prompt: "Boston", Answer: "Celtics", Aliases: []string{"Celts"}},
			{Prompt: "Los Angeles", Answer: "Lakers", Aliases: []string{"LA Lakers"}},
			{Prompt: "Los Angeles (2)", Answer: "Clippers", Aliases: []string{"LA Clippers"}},
			{Prompt: "New York", Answer: "Knicks"},
			{Prompt: "Chicago", Answer: "Bulls"},
			{Prompt: "Miami", Answer: "Heat"},
			{Prompt: "Dallas", Answer: "Mavericks", Aliases: []string{"Mavs"}},
			{Prompt: "Phoenix", Answer: "Suns"},
			{Prompt: "Golden State", Answer: "Warriors", Aliases: []string{"Dubs"}},
			{Prompt: "Denver", Answer: "Nuggets"},
			{Prompt: "Milwaukee", Answer: "Bucks"},
		}),
	}
}

func sample(id, title string, difficulty domain.Difficulty, limit int, now time.Time, items []domain.QuizItem) domain.Quiz {
	for i := range items {
		items[i].ID = fmt.Sprintf("%s-%02d", id, i+1)
	}
	return Prepare(domain.Quiz{
		ID:           id,
		Title:        title,
		Description:  "Type answers fast. Aliases and accents are forgiven.",
		Category:     "NBA",
		Difficulty:   difficulty,
		TimeLimitSec: limit,
		Items:        items,
		AuthorName:   "House",
	}, now)
}
