package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/louisbranch/millionaire/internal/services/millionaire/domain/game"
	"github.com/louisbranch/millionaire/internal/services/millionaire/domain/question"
	"github.com/louisbranch/millionaire/internal/services/millionaire/storage"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestPutQuestionsInsertsAndCounts(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	seedQuestions(t, store, 2)
	seedQuestions(t, store, 2)
	counts, err := store.CountQuestionsByLevel(ctx)
	if err != nil {
		t.Fatalf("count questions: %v", err)
	}
	if len(counts) != question.LevelCount {
		t.Fatalf("levels = %d, want %d", len(counts), question.LevelCount)
	}
	for level, n := range counts {
		if n != 2 {
			t.Fatalf("level %d count = %d, want 2", level, n)
		}
	}

	added := sampleQuestion("q-3-new", 3)
	if err := store.PutQuestions(ctx, []question.Question{added}); err != nil {
		t.Fatalf("put questions: %v", err)
	}
	got, err := store.QuestionsByLevel(ctx, 3)
	if err != nil {
		t.Fatalf("questions by level: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("level 3 questions = %d, want 3", len(got))
	}
}

func TestPutQuestionsKeepsStoredQuestion(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	seedQuestions(t, store, 1)
	putUser(t, store, "user-1", "Alice")

	g := newGame(t, store, "game-1", "user-1", baseTime)
	if err := store.CreateGame(ctx, g); err != nil {
		t.Fatalf("create game: %v", err)
	}

	edited := sampleQuestion("q-0-0", 7)
	edited.Text = "Edited text"
	edited.Correct = question.KeyD
	if err := store.PutQuestions(ctx, []question.Question{edited}); err != nil {
		t.Fatalf("re-import questions: %v", err)
	}

	got, err := store.GetGame(ctx, "game-1")
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	first := got.Questions[0]
	if first.Question.Level != 0 || first.Question.Correct != question.KeyA {
		t.Fatalf("level 0 question = level %d key %s, want level 0 key A", first.Question.Level, first.Question.Correct)
	}
	if first.Question.Text != "Question q-0-0?" {
		t.Fatalf("level 0 text = %q, want original", first.Question.Text)
	}
	if first.CorrectAnswerKey() != g.Questions[0].CorrectAnswerKey() {
		t.Fatalf("correct key = %s, want %s", first.CorrectAnswerKey(), g.Questions[0].CorrectAnswerKey())
	}

	level7, err := store.QuestionsByLevel(ctx, 7)
	if err != nil {
		t.Fatalf("questions by level: %v", err)
	}
	if len(level7) != 1 || level7[0].ID != "q-7-0" {
		t.Fatalf("level 7 questions = %+v, want only q-7-0", level7)
	}
}

func TestPutQuestionsRejectsInvalidQuestion(t *testing.T) {
	store := openTempStore(t)

	bad := sampleQuestion("q-bad", 2)
	bad.Correct = "E"
	if err := store.PutQuestions(context.Background(), []question.Question{bad}); !errors.Is(err, question.ErrInvalidAnswerKey) {
		t.Fatalf("put invalid question err = %v, want %v", err, question.ErrInvalidAnswerKey)
	}

	noID := sampleQuestion(" ", 2)
	if err := store.PutQuestions(context.Background(), []question.Question{noID}); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestQuestionsByLevelEmpty(t *testing.T) {
	store := openTempStore(t)
	got, err := store.QuestionsByLevel(context.Background(), 7)
	if err != nil {
		t.Fatalf("questions by level: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("questions = %d, want 0", len(got))
	}
}

func TestPutUserKeepsBalance(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	putUser(t, store, "user-1", "Alice")
	if err := store.CreditBalance(ctx, "user-1", 1000); err != nil {
		t.Fatalf("credit balance: %v", err)
	}
	if err := store.PutUser(ctx, storage.User{ID: "user-1", Name: "Alicia", CreatedAt: baseTime}); err != nil {
		t.Fatalf("rename user: %v", err)
	}

	got, err := store.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Name != "Alicia" || got.Balance != 1000 {
		t.Fatalf("user = %+v, want Alicia with balance 1000", got)
	}
	if !got.CreatedAt.Equal(baseTime) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, baseTime)
	}
}

func TestGetUserNotFound(t *testing.T) {
	store := openTempStore(t)
	if _, err := store.GetUser(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get user err = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestCreditBalance(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	putUser(t, store, "user-1", "Alice")

	if err := store.CreditBalance(ctx, "user-1", 0); err == nil {
		t.Fatal("expected error for zero credit")
	}
	if err := store.CreditBalance(ctx, "missing", 100); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("credit missing user err = %v, want %v", err, storage.ErrNotFound)
	}
	for _, amount := range []int64{100, 32000} {
		if err := store.CreditBalance(ctx, "user-1", amount); err != nil {
			t.Fatalf("credit %d: %v", amount, err)
		}
	}
	got, err := store.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Balance != 32100 {
		t.Fatalf("balance = %d, want 32100", got.Balance)
	}
}

func TestListUsersByBalancePages(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	balances := map[string]int64{"u-a": 500, "u-b": 1000, "u-c": 500, "u-d": 0, "u-e": 64000}
	for id, balance := range balances {
		putUser(t, store, id, "Player "+id)
		if balance > 0 {
			if err := store.CreditBalance(ctx, id, balance); err != nil {
				t.Fatalf("credit %s: %v", id, err)
			}
		}
	}

	var ids []string
	token := ""
	pages := 0
	for {
		page, err := store.ListUsersByBalance(ctx, 2, token)
		if err != nil {
			t.Fatalf("list users: %v", err)
		}
		pages++
		for _, u := range page.Users {
			ids = append(ids, u.ID)
		}
		if page.NextPageToken == "" {
			break
		}
		token = page.NextPageToken
	}

	want := []string{"u-e", "u-b", "u-a", "u-c", "u-d"}
	if fmt.Sprint(ids) != fmt.Sprint(want) {
		t.Fatalf("order = %v, want %v", ids, want)
	}
	if pages != 3 {
		t.Fatalf("pages = %d, want 3", pages)
	}
}

func TestListUsersByBalanceRejectsBadInput(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	if _, err := store.ListUsersByBalance(ctx, 0, ""); err == nil {
		t.Fatal("expected error for zero page size")
	}
	for _, token := range []string{"garbage", "x:user-1", "100:"} {
		if _, err := store.ListUsersByBalance(ctx, 10, token); !errors.Is(err, storage.ErrInvalidPageToken) {
			t.Fatalf("token %q err = %v, want %v", token, err, storage.ErrInvalidPageToken)
		}
	}
}

func TestCreateAndGetGame(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	seedQuestions(t, store, 1)
	putUser(t, store, "user-1", "Alice")

	g := newGame(t, store, "game-1", "user-1", baseTime)
	if err := store.CreateGame(ctx, g); err != nil {
		t.Fatalf("create game: %v", err)
	}

	got, err := store.GetGame(ctx, "game-1")
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if got.UserID != "user-1" || got.CurrentLevel != 0 || got.Finished() {
		t.Fatalf("game = %+v, want fresh game for user-1", got)
	}
	if !got.CreatedAt.Equal(baseTime) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, baseTime)
	}
	if len(got.Questions) != question.LevelCount {
		t.Fatalf("questions = %d, want %d", len(got.Questions), question.LevelCount)
	}
	for i, gq := range got.Questions {
		if gq.Level != i || gq.Question.Level != i {
			t.Fatalf("question %d level = %d/%d", i, gq.Level, gq.Question.Level)
		}
		if gq.Order != g.Questions[i].Order {
			t.Fatalf("question %d order = %v, want %v", i, gq.Order, g.Questions[i].Order)
		}
		if gq.CorrectAnswerKey() != g.Questions[i].CorrectAnswerKey() {
			t.Fatalf("question %d correct key = %s, want %s", i, gq.CorrectAnswerKey(), g.Questions[i].CorrectAnswerKey())
		}
	}

	active, err := store.ActiveGame(ctx, "user-1")
	if err != nil {
		t.Fatalf("active game: %v", err)
	}
	if active.ID != "game-1" {
		t.Fatalf("active game = %s, want game-1", active.ID)
	}
}

func TestGetGameNotFound(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	if _, err := store.GetGame(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get game err = %v, want %v", err, storage.ErrNotFound)
	}
	if _, err := store.ActiveGame(ctx, "nobody"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("active game err = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestCreateGameRejectsSecondActiveGame(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	seedQuestions(t, store, 1)
	putUser(t, store, "user-1", "Alice")

	if err := store.CreateGame(ctx, newGame(t, store, "game-1", "user-1", baseTime)); err != nil {
		t.Fatalf("create game: %v", err)
	}
	err := store.CreateGame(ctx, newGame(t, store, "game-2", "user-1", baseTime.Add(time.Minute)))
	if !errors.Is(err, storage.ErrActiveGameExists) {
		t.Fatalf("second game err = %v, want %v", err, storage.ErrActiveGameExists)
	}
	if _, err := store.GetGame(ctx, "game-2"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("rejected game should not persist, err = %v", err)
	}
}

func TestUpdateGameFinishesAndFreesSlot(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	seedQuestions(t, store, 1)
	putUser(t, store, "user-1", "Alice")

	g := newGame(t, store, "game-1", "user-1", baseTime)
	if err := store.CreateGame(ctx, g); err != nil {
		t.Fatalf("create game: %v", err)
	}
	rules := game.DefaultRules()
	outcome, err := rules.TakeMoney(g, baseTime.Add(time.Minute))
	if err != nil {
		t.Fatalf("take money: %v", err)
	}
	if err := store.UpdateGame(ctx, outcome.Game); err != nil {
		t.Fatalf("update game: %v", err)
	}

	got, err := store.GetGame(ctx, "game-1")
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if !got.Finished() || !got.FinishedAt.Equal(baseTime.Add(time.Minute)) {
		t.Fatalf("finished_at = %v, want %v", got.FinishedAt, baseTime.Add(time.Minute))
	}
	if rules.Status(got) != game.StatusMoney {
		t.Fatalf("status = %s, want %s", rules.Status(got), game.StatusMoney)
	}

	if err := store.CreateGame(ctx, newGame(t, store, "game-2", "user-1", baseTime.Add(2*time.Minute))); err != nil {
		t.Fatalf("create after finish: %v", err)
	}
	if err := store.UpdateGame(ctx, game.Game{ID: "missing"}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("update missing err = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestListUserGamesNewestFirst(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	seedQuestions(t, store, 1)
	putUser(t, store, "user-1", "Alice")
	putUser(t, store, "user-2", "Bob")

	rules := game.DefaultRules()
	for i := 0; i < 3; i++ {
		created := baseTime.Add(time.Duration(i) * time.Hour)
		g := newGame(t, store, fmt.Sprintf("game-%d", i), "user-1", created)
		if err := store.CreateGame(ctx, g); err != nil {
			t.Fatalf("create game %d: %v", i, err)
		}
		if i < 2 {
			outcome, err := rules.TakeMoney(g, created.Add(time.Minute))
			if err != nil {
				t.Fatalf("take money: %v", err)
			}
			if err := store.UpdateGame(ctx, outcome.Game); err != nil {
				t.Fatalf("update game: %v", err)
			}
		}
	}
	if err := store.CreateGame(ctx, newGame(t, store, "other", "user-2", baseTime)); err != nil {
		t.Fatalf("create other game: %v", err)
	}

	games, err := store.ListUserGames(ctx, "user-1")
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	var ids []string
	for _, g := range games {
		ids = append(ids, g.ID)
		if len(g.Questions) != question.LevelCount {
			t.Fatalf("game %s questions = %d", g.ID, len(g.Questions))
		}
	}
	if fmt.Sprint(ids) != "[game-2 game-1 game-0]" {
		t.Fatalf("games = %v, want [game-2 game-1 game-0]", ids)
	}
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	putUser(t, store, "user-1", "Alice")

	boom := errors.New("boom")
	err := store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		if err := tx.CreditBalance(ctx, "user-1", 500); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("within tx err = %v, want %v", err, boom)
	}
	got, err := store.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Balance != 0 {
		t.Fatalf("balance = %d, want rollback to 0", got.Balance)
	}
}

func TestWithinTxSerializesWriters(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	putUser(t, store, "user-1", "Alice")

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
				u, err := tx.GetUser(ctx, "user-1")
				if err != nil {
					return err
				}
				if u.Balance < 0 {
					return fmt.Errorf("negative balance")
				}
				return tx.CreditBalance(ctx, "user-1", 100)
			})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("within tx: %v", err)
		}
	}
	got, err := store.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Balance != 1000 {
		t.Fatalf("balance = %d, want 1000", got.Balance)
	}
}

func TestEncodeDecodeOrder(t *testing.T) {
	order := [question.AnswerCount]int{2, 0, 3, 1}
	raw := encodeOrder(order)
	if raw != "2031" {
		t.Fatalf("encoded = %q, want 2031", raw)
	}
	got, err := decodeOrder(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != order {
		t.Fatalf("decoded = %v, want %v", got, order)
	}
	for _, bad := range []string{"", "012", "0012", "01234", "01x3"} {
		if _, err := decodeOrder(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestStoreNilSafety(t *testing.T) {
	var s *Store
	if err := s.Close(); err != nil {
		t.Fatalf("close nil store: %v", err)
	}
	if _, err := s.GetUser(context.Background(), "user-1"); err == nil {
		t.Fatal("expected error for nil store")
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "millionaire.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func sampleQuestion(id string, level int) question.Question {
	return question.Question{
		ID:      id,
		Level:   level,
		Text:    fmt.Sprintf("Question %s?", id),
		Answers: [question.AnswerCount]string{"right", "wrong 1", "wrong 2", "wrong 3"},
		Correct: question.KeyA,
	}
}

func seedQuestions(t *testing.T, store *Store, perLevel int) {
	t.Helper()
	var questions []question.Question
	for level := question.MinLevel; level <= question.MaxLevel; level++ {
		for i := 0; i < perLevel; i++ {
			questions = append(questions, sampleQuestion(fmt.Sprintf("q-%d-%d", level, i), level))
		}
	}
	if err := store.PutQuestions(context.Background(), questions); err != nil {
		t.Fatalf("seed questions: %v", err)
	}
}

func putUser(t *testing.T, store *Store, id, name string) {
	t.Helper()
	if err := store.PutUser(context.Background(), storage.User{ID: id, Name: name, CreatedAt: baseTime}); err != nil {
		t.Fatalf("put user %s: %v", id, err)
	}
}

type reverse struct{}

func (reverse) Perm(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = n - 1 - i
	}
	return out
}

type firstPicker struct{}

func (firstPicker) IntN(int) int { return 0 }

func newGame(t *testing.T, store *Store, id, userID string, now time.Time) game.Game {
	t.Helper()
	picks, err := question.Select(context.Background(), store, question.LevelCount, firstPicker{})
	if err != nil {
		t.Fatalf("select questions: %v", err)
	}
	g, err := game.DefaultRules().Start(id, userID, picks, reverse{}, now)
	if err != nil {
		t.Fatalf("start game: %v", err)
	}
	return g
}
