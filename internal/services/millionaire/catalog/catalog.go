// Package catalog loads the question catalogue from YAML.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/louisbranch/millionaire/internal/services/millionaire/domain/question"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// File is the on-disk catalogue layout.
type File struct {
	Version   string  `yaml:"version"`
	Questions []Entry `yaml:"questions"`
}

// Entry is one question as written in YAML. Answers are listed A through D.
type Entry struct {
	ID      string   `yaml:"id"`
	Level   int      `yaml:"level"`
	Text    string   `yaml:"text"`
	Answers []string `yaml:"answers"`
	Correct string   `yaml:"correct"`
}

// Catalog is a validated question set covering every level.
type Catalog struct {
	Version   string
	Questions []question.Question
}

// Default returns the embedded catalogue.
func Default() (Catalog, error) {
	return Parse(defaultYAML)
}

// Load reads a catalogue file, falling back to the embedded one when path is
// empty.
func Load(path string) (Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	cat, err := Parse(b)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes and validates catalogue YAML.
func Parse(b []byte) (Catalog, error) {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	return f.Catalog()
}

// Catalog converts the entries and checks that ids are unique and that each
// level has at least one question.
func (f File) Catalog() (Catalog, error) {
	if len(f.Questions) == 0 {
		return Catalog{}, errors.New("catalog has no questions")
	}
	seen := make(map[string]struct{}, len(f.Questions))
	covered := make(map[int]bool, question.LevelCount)
	questions := make([]question.Question, 0, len(f.Questions))
	for i, e := range f.Questions {
		q, err := e.Question()
		if err != nil {
			return Catalog{}, fmt.Errorf("question %d: %w", i, err)
		}
		if _, dup := seen[q.ID]; dup {
			return Catalog{}, fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = struct{}{}
		covered[q.Level] = true
		questions = append(questions, q)
	}
	if missing := missingLevels(covered); len(missing) > 0 {
		return Catalog{}, fmt.Errorf("%w: levels %v have no questions", question.ErrInsufficientQuestions, missing)
	}
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Level < questions[j].Level
	})
	return Catalog{Version: f.Version, Questions: questions}, nil
}

// Question converts one entry into a validated domain question.
func (e Entry) Question() (question.Question, error) {
	id := strings.TrimSpace(e.ID)
	if id == "" {
		return question.Question{}, errors.New("id is required")
	}
	if len(e.Answers) != question.AnswerCount {
		return question.Question{}, fmt.Errorf("%s: got %d answers, want %d", id, len(e.Answers), question.AnswerCount)
	}
	key, err := question.ParseAnswerKey(e.Correct)
	if err != nil {
		return question.Question{}, fmt.Errorf("%s: %w", id, err)
	}
	q := question.Question{
		ID:      id,
		Level:   e.Level,
		Text:    strings.TrimSpace(e.Text),
		Correct: key,
	}
	for i, answer := range e.Answers {
		q.Answers[i] = strings.TrimSpace(answer)
	}
	if err := q.Validate(); err != nil {
		return question.Question{}, fmt.Errorf("%s: %w", id, err)
	}
	return q, nil
}

// Source exposes the catalogue as an in-memory question source.
func (c Catalog) Source() question.MemorySource {
	return question.NewMemorySource(c.Questions)
}

func missingLevels(covered map[int]bool) []int {
	var missing []int
	for level := question.MinLevel; level <= question.MaxLevel; level++ {
		if !covered[level] {
			missing = append(missing, level)
		}
	}
	return missing
}
