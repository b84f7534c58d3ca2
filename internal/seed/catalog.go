package seed

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/glebk/playmood/internal/domain"
)

// defaultGenre is the heuristic row used for genres missing from the table
const defaultGenre = "Puzzle"

//go:embed catalog.yaml
var catalogYAML []byte

// GameSpec is a catalog entry before it is stored
type GameSpec struct {
	Name                      string `yaml:"name"`
	Genre                     string `yaml:"genre"`
	Type                      string `yaml:"type"`
	AvgSessionDurationMinutes int    `yaml:"avg_session_duration_minutes"`
	Difficulty                string `yaml:"difficulty"`
}

// NoteKind groups note templates by the kind of mood transition
type NoteKind string

const (
	NoteSame      NoteKind = "same"
	NoteCalming   NoteKind = "calming"
	NoteStressing NoteKind = "stressing"
	NoteExcited   NoteKind = "excited"
	NoteGeneric   NoteKind = "generic"
)

var noteKinds = []NoteKind{NoteSame, NoteCalming, NoteStressing, NoteExcited, NoteGeneric}

// Outcomes is the likely pair of after-states for a baseline and genre
type Outcomes struct {
	Primary   domain.MentalState
	Secondary domain.MentalState
}

// Catalog is everything the seeder draws from
type Catalog struct {
	Genres       []string
	Difficulties []string
	Games        []GameSpec
	Heuristics   map[domain.MentalState]map[string]Outcomes
	MaleNames    []string
	FemaleNames  []string
	LastNames    []string
	Notes        map[NoteKind][]*template.Template
}

type rawCatalog struct {
	Genres       []string                       `yaml:"genres"`
	Difficulties []string                       `yaml:"difficulties"`
	Games        []GameSpec                     `yaml:"games"`
	Heuristics   map[string]map[string][]string `yaml:"heuristics"`
	Names        struct {
		Male   []string `yaml:"male"`
		Female []string `yaml:"female"`
		Last   []string `yaml:"last"`
	} `yaml:"names"`
	Notes map[string][]string `yaml:"notes"`
}

// DefaultCatalog parses the embedded catalog
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(catalogYAML)
}

// ParseCatalog parses and validates a YAML catalog
func ParseCatalog(data []byte) (*Catalog, error) {
	var raw rawCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{
		Genres:       raw.Genres,
		Difficulties: raw.Difficulties,
		Games:        raw.Games,
		Heuristics:   make(map[domain.MentalState]map[string]Outcomes, len(raw.Heuristics)),
		MaleNames:    raw.Names.Male,
		FemaleNames:  raw.Names.Female,
		LastNames:    raw.Names.Last,
		Notes:        make(map[NoteKind][]*template.Template, len(noteKinds)),
	}

	if len(c.Games) == 0 {
		return nil, fmt.Errorf("catalog has no games")
	}
	seen := make(map[string]bool, len(c.Games))
	for _, g := range c.Games {
		if g.Name == "" || g.AvgSessionDurationMinutes <= 0 {
			return nil, fmt.Errorf("invalid catalog game %q", g.Name)
		}
		if seen[g.Name] {
			return nil, fmt.Errorf("duplicate catalog game %q", g.Name)
		}
		seen[g.Name] = true
	}

	if len(c.MaleNames) == 0 || len(c.FemaleNames) == 0 || len(c.LastNames) == 0 {
		return nil, fmt.Errorf("catalog name pools must not be empty")
	}

	for baseline, row := range raw.Heuristics {
		state, err := domain.ParseMentalState(baseline)
		if err != nil {
			return nil, fmt.Errorf("heuristics: %w", err)
		}
		outcomes := make(map[string]Outcomes, len(row))
		for genre, pair := range row {
			if len(pair) != 2 {
				return nil, fmt.Errorf("heuristics %s/%s: want 2 states, got %d", baseline, genre, len(pair))
			}
			primary, err := domain.ParseMentalState(pair[0])
			if err != nil {
				return nil, fmt.Errorf("heuristics %s/%s: %w", baseline, genre, err)
			}
			secondary, err := domain.ParseMentalState(pair[1])
			if err != nil {
				return nil, fmt.Errorf("heuristics %s/%s: %w", baseline, genre, err)
			}
			outcomes[genre] = Outcomes{Primary: primary, Secondary: secondary}
		}
		c.Heuristics[state] = outcomes
	}
	for _, state := range domain.MentalStates {
		if _, ok := c.Heuristics[state][defaultGenre]; !ok {
			return nil, fmt.Errorf("heuristics: missing %s row for %s", defaultGenre, state)
		}
	}

	for _, kind := range noteKinds {
		texts := raw.Notes[string(kind)]
		if len(texts) == 0 {
			return nil, fmt.Errorf("notes: no templates for %q", kind)
		}
		for i, text := range texts {
			tmpl, err := template.New(fmt.Sprintf("%s-%d", kind, i)).Option("missingkey=error").Parse(text)
			if err != nil {
				return nil, fmt.Errorf("notes %s[%d]: %w", kind, i, err)
			}
			c.Notes[kind] = append(c.Notes[kind], tmpl)
		}
	}

	return c, nil
}

// Outcomes returns the heuristic row for a baseline and genre. Genres
// without a row use the Puzzle row.
func (c *Catalog) Outcomes(baseline domain.MentalState, genre string) Outcomes {
	row := c.Heuristics[baseline]
	if o, ok := row[genre]; ok {
		return o
	}
	return row[defaultGenre]
}

type noteData struct {
	Game       string
	Genre      string
	Difficulty string
	Duration   int
	Before     string
	After      string
}

// Note renders the pick-th note template of the kind matching the transition
func (c *Catalog) Note(game *domain.Game, before, after domain.MentalState, duration, pick int) (string, error) {
	templates := c.Notes[NoteKindFor(before, after)]
	tmpl := templates[pick%len(templates)]

	var b strings.Builder
	err := tmpl.Execute(&b, noteData{
		Game:       game.Name,
		Genre:      strings.ToLower(game.Genre),
		Difficulty: strings.ToLower(game.Difficulty),
		Duration:   duration,
		Before:     strings.ToLower(before.String()),
		After:      strings.ToLower(after.String()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render note: %w", err)
	}
	return b.String(), nil
}

// NoteKindFor classifies a transition for note selection
func NoteKindFor(before, after domain.MentalState) NoteKind {
	distressed := before == domain.StateStressed || before == domain.StateAnxious
	settled := before == domain.StateRelaxed || before == domain.StateNeutral

	switch {
	case before == after:
		return NoteSame
	case distressed && (after == domain.StateRelaxed || after == domain.StateNeutral):
		return NoteCalming
	case settled && (after == domain.StateStressed || after == domain.StateAnxious):
		return NoteStressing
	case after == domain.StateExcited:
		return NoteExcited
	default:
		return NoteGeneric
	}
}
