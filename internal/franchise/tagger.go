// Package franchise labels movies by keyword matching on their titles.
package franchise

import (
	"strings"

	"box-office-lab/internal/domain"
)

// Group is a franchise label with the title keywords that select it.
type Group struct {
	Name     string
	Color    string // hex colour used by charts
	Keywords []string
}

// DefaultGroups are applied in order; a later matching group overrides an
// earlier one, so the most specific groups come last.
var DefaultGroups = []Group{
	{Name: "Pixar", Color: "#00A8E1", Keywords: []string{
		"Toy Story", "Cars", "Finding Nemo", "Finding Dory", "The Incredibles",
		"Monsters, Inc", "Monsters University", "WALL-E", "Up", "Brave", "Inside Out",
		"Coco", "Soul", "Luca", "Turning Red", "Lightyear", "Elemental", "Ratatouille",
		"A Bug's Life", "The Good Dinosaur", "Onward",
	}},
	{Name: "Disney", Color: "#7C4DFF", Keywords: []string{
		"Frozen", "Moana", "Tangled", "Encanto", "Raya and the Last Dragon",
		"Wreck-It Ralph", "Zootopia", "Big Hero 6", "The Lion King", "Aladdin",
		"Beauty and the Beast", "The Little Mermaid", "Mulan", "Pocahontas",
		"Sleeping Beauty", "Snow White", "Cinderella", "The Princess and the Frog",
		"Wish", "Strange World", "Caribbean", "Pirates of the Caribbean",
	}},
	{Name: "Star Wars", Color: "#FFE81F", Keywords: []string{
		"Star Wars", "Rogue One", "Solo: A Star Wars", "The Force Awakens",
		"The Last Jedi", "Rise of Skywalker", "Phantom Menace", "Attack of the Clones",
		"Revenge of the Sith", "A New Hope", "Empire Strikes Back", "Return of the Jedi",
	}},
	{Name: "Harry Potter", Color: "#740001", Keywords: []string{
		"Harry Potter", "Fantastic Beasts", "Secrets of Dumbledore",
		"Crimes of Grindelwald", "Philosopher's Stone", "Chamber of Secrets",
		"Prisoner of Azkaban", "Goblet of Fire", "Order of the Phoenix",
		"Half-Blood Prince", "Deathly Hallows",
	}},
	{Name: "LOTR/Hobbit", Color: "#228B22", Keywords: []string{
		"Lord of the Rings", "The Hobbit", "Fellowship of the Ring",
		"Two Towers", "Return of the King", "Unexpected Journey",
		"Desolation of Smaug", "Battle of the Five Armies",
	}},
	{Name: "Fast & Furious", Color: "#FF6B35", Keywords: []string{
		"Fast & Furious", "Fast and Furious", "The Fast and the Furious",
		"2 Fast 2 Furious", "Tokyo Drift", "Fast Five", "Fast & Furious 6",
		"Furious 7", "Fate of the Furious", "F9", "Fast X", "Hobbs & Shaw",
	}},
	{Name: "James Bond", Color: "#2C3E50", Keywords: []string{
		"James Bond", "007", "Casino Royale", "Quantum of Solace", "Skyfall",
		"Spectre", "No Time to Die", "Die Another Day", "The World Is Not Enough",
		"Tomorrow Never Dies", "GoldenEye",
	}},
	{Name: "Transformers", Color: "#8B4513", Keywords: []string{
		"Transformers", "Bumblebee", "Rise of the Beasts", "The Last Knight",
		"Age of Extinction", "Dark of the Moon", "Revenge of the Fallen",
	}},
	{Name: "Jurassic", Color: "#006400", Keywords: []string{
		"Jurassic Park", "Jurassic World", "The Lost World", "Dominion",
		"Fallen Kingdom", "Jurassic Park III",
	}},
	{Name: "Mission Impossible", Color: "#FF4500", Keywords: []string{
		"Mission: Impossible", "Mission Impossible", "M:I",
		"Ghost Protocol", "Rogue Nation", "Fallout", "Dead Reckoning",
	}},
	{Name: "Marvel", Color: "#ED1D24", Keywords: []string{
		"Marvel", "Avengers", "Iron Man", "Thor", "Captain America", "Spider-Man",
		"Guardians of the Galaxy", "Black Panther", "Doctor Strange", "Ant-Man",
		"Captain Marvel", "Hulk", "X-Men", "Wolverine", "Deadpool", "Fantastic Four",
		"Blade", "Daredevil", "Punisher", "Ghost Rider", "Venom", "Morbius",
		"Eternals", "Shang-Chi", "Black Widow",
	}},
	{Name: "DC", Color: "#0476F2", Keywords: []string{
		"DC", "Batman", "Superman", "Wonder Woman", "Justice League", "Aquaman",
		"Flash", "Green Lantern", "Suicide Squad", "Joker", "Harley Quinn",
		"Shazam", "Birds of Prey", "Man of Steel", "Dark Knight", "Catwoman",
		"Watchmen", "V for Vendetta", "Constantine", "Swamp Thing", "Blue Beetle",
		"Black Adam", "Peacemaker",
	}},
}

// OtherColor is the chart colour for FranchiseOther.
const OtherColor = "#808080"

// Tagger assigns franchise labels.
type Tagger struct {
	groups []compiledGroup
	colors map[string]string
}

type compiledGroup struct {
	name     string
	keywords []string // lower-cased
}

// NewTagger creates a tagger over groups. Nil groups means DefaultGroups.
func NewTagger(groups []Group) *Tagger {
	if groups == nil {
		groups = DefaultGroups
	}

	t := &Tagger{colors: map[string]string{domain.FranchiseOther: OtherColor}}
	for _, g := range groups {
		cg := compiledGroup{name: g.Name}
		for _, kw := range g.Keywords {
			cg.keywords = append(cg.keywords, strings.ToLower(kw))
		}
		t.groups = append(t.groups, cg)
		if g.Color != "" {
			t.colors[g.Name] = g.Color
		}
	}
	return t
}

// Tag returns the label of the last group with a keyword contained in title
// (case-insensitive), or FranchiseOther.
func (t *Tagger) Tag(title string) string {
	lower := strings.ToLower(title)
	label := domain.FranchiseOther
	for _, g := range t.groups {
		for _, kw := range g.keywords {
			if strings.Contains(lower, kw) {
				label = g.name
				break
			}
		}
	}
	return label
}

// TagAll sets Franchise on every record.
func (t *Tagger) TagAll(records []*domain.AdjustedRevenueRecord) {
	for _, r := range records {
		r.Franchise = t.Tag(r.Title)
	}
}

// Color returns the chart colour for a label.
func (t *Tagger) Color(label string) string {
	if c, ok := t.colors[label]; ok {
		return c
	}
	return OtherColor
}
