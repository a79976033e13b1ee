package question

import (
	"errors"
	"testing"
)

func TestParseAnswerKey(t *testing.T) {
	tests := []struct {
		raw     string
		want    AnswerKey
		wantErr bool
	}{
		{raw: "A", want: KeyA},
		{raw: "b", want: KeyB},
		{raw: " c ", want: KeyC},
		{raw: "D", want: KeyD},
		{raw: "E", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "AB", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseAnswerKey(tc.raw)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidAnswerKey) {
				t.Errorf("ParseAnswerKey(%q) error = %v, want ErrInvalidAnswerKey", tc.raw, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAnswerKey(%q): %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseAnswerKey(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestAnswerKeyIndex(t *testing.T) {
	for i, key := range Keys {
		got, ok := key.Index()
		if !ok || got != i {
			t.Fatalf("%s index = %d,%v want %d", key, got, ok, i)
		}
	}
	if _, ok := AnswerKey("Z").Index(); ok {
		t.Fatal("expected unknown key")
	}
}

func TestQuestionValidate(t *testing.T) {
	valid := Question{
		ID:      "q-1",
		Text:    "In what year was 2001: A Space Odyssey released?",
		Answers: [AnswerCount]string{"1968", "1970", "1965", "2001"},
		Correct: KeyA,
		Level:   3,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	tests := map[string]func(q *Question){
		"empty text":    func(q *Question) { q.Text = " " },
		"empty answer":  func(q *Question) { q.Answers[2] = "" },
		"bad key":       func(q *Question) { q.Correct = "E" },
		"level too low": func(q *Question) { q.Level = -1 },
		"level too big": func(q *Question) { q.Level = MaxLevel + 1 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			q := valid
			mutate(&q)
			if err := q.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
