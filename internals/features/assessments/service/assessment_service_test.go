package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"okoce_backend/internals/features/assessments/dto"
	assessmentModel "okoce_backend/internals/features/assessments/model"
	eventModel "okoce_backend/internals/features/events/events/model"
	questionModel "okoce_backend/internals/features/events/questions/model"
	"okoce_backend/internals/helpers/clock"
)

func fiveQuestions() []questionModel.EventQuestionModel {
	keys := []string{"A", "B", "C", "D", "A"}
	qs := make([]questionModel.EventQuestionModel, 0, len(keys))
	for i, k := range keys {
		qs = append(qs, questionModel.EventQuestionModel{
			ID:             uint(i + 1),
			EventID:        1,
			QuestionNumber: i + 1,
			QuestionText:   "Soal",
			OptionA:        "a", OptionB: "b", OptionC: "c", OptionD: "d",
			CorrectAnswer: k,
		})
	}
	return qs
}

func TestScore(t *testing.T) {
	t.Parallel()

	qs := fiveQuestions()
	cases := []struct {
		name    string
		answers map[string]string
		want    int
	}{
		{"all correct", map[string]string{"1": "A", "2": "B", "3": "C", "4": "D", "5": "A"}, 100},
		{"nothing answered", map[string]string{}, 0},
		{"nil answers", nil, 0},
		{"two correct", map[string]string{"1": "A", "2": "B", "3": "A"}, 40},
		{"lowercase is wrong", map[string]string{"1": "a"}, 0},
		{"unknown keys ignored", map[string]string{"9": "A", "1": "A"}, 20},
	}
	for _, tc := range cases {
		if got := Score(qs, tc.answers); got != tc.want {
			t.Fatalf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}

	three := qs[:3]
	if got := Score(three, map[string]string{"1": "A"}); got != 33 {
		t.Fatalf("floor: got %d, want 33", got)
	}
}

func TestEvaluateStatus(t *testing.T) {
	t.Parallel()

	end := time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)
	ev := &eventModel.EventModel{HasPrePostTest: true, TglMulaiEvent: end.Add(-3 * time.Hour), TglSelesaiEvent: end}
	pre := 60
	post := 90
	preOnly := &assessmentModel.UserTestScoreModel{PreTestScore: &pre}

	if st := EvaluateStatus(&eventModel.EventModel{}, nil, end); st.Status != dto.StatusNoTest {
		t.Fatalf("expected NO_TEST, got %s", st.Status)
	}
	if st := EvaluateStatus(ev, nil, end); st.Status != dto.StatusPreTestNeeded {
		t.Fatalf("expected PRE_TEST_NEEDED, got %s", st.Status)
	}

	st := EvaluateStatus(ev, preOnly, end.Add(-40*time.Minute))
	if st.Status != dto.StatusPostTestLocked {
		t.Fatalf("E-40m: expected POST_TEST_LOCKED, got %s", st.Status)
	}
	if st.OpenAt == nil || !st.OpenAt.Equal(end.Add(-30*time.Minute)) {
		t.Fatalf("expected open_at E-30m, got %v", st.OpenAt)
	}

	if st := EvaluateStatus(ev, preOnly, end.Add(-20*time.Minute)); st.Status != dto.StatusPostTestAvailable {
		t.Fatalf("E-20m: expected POST_TEST_AVAILABLE, got %s", st.Status)
	}
	if st := EvaluateStatus(ev, preOnly, end.Add(-30*time.Minute)); st.Status != dto.StatusPostTestAvailable {
		t.Fatalf("E-30m boundary: expected POST_TEST_AVAILABLE, got %s", st.Status)
	}

	manual := *ev
	manual.IsPostTestOpenManually = true
	if st := EvaluateStatus(&manual, preOnly, end.Add(-5*time.Hour)); st.Status != dto.StatusPostTestAvailable {
		t.Fatalf("manual override: expected POST_TEST_AVAILABLE, got %s", st.Status)
	}

	done := &assessmentModel.UserTestScoreModel{PreTestScore: &pre, PostTestScore: &post}
	st = EvaluateStatus(ev, done, end)
	if st.Status != dto.StatusCompleted || *st.PreScore != 60 || *st.PostScore != 90 {
		t.Fatalf("unexpected completed status %+v", st)
	}
}

func TestAssessmentService_Submit(t *testing.T) {
	t.Parallel()

	end := time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)
	user := uuid.New()
	allRight := map[string]string{"1": "A", "2": "B", "3": "C", "4": "D", "5": "A"}

	newRepo := func() *fakeAssessmentRepo {
		return &fakeAssessmentRepo{
			event: &eventModel.EventModel{
				ID:              1,
				HasPrePostTest:  true,
				TglMulaiEvent:   end.Add(-3 * time.Hour),
				TglSelesaiEvent: end,
			},
			questions: fiveQuestions(),
		}
	}

	t.Run("pre then post then rejected", func(t *testing.T) {
		repo := newRepo()
		svc := NewAssessmentService(repo, clock.NewFixed(end.Add(-2*time.Hour)))

		res, err := svc.Submit(context.Background(), user, 1, map[string]string{})
		if err != nil {
			t.Fatalf("pre-test: %v", err)
		}
		if res.Type != dto.TypePreTest || res.Score != 0 {
			t.Fatalf("unexpected pre-test result %+v", res)
		}

		_, err = svc.Submit(context.Background(), user, 1, allRight)
		if !errors.Is(err, ErrPostTestLocked) {
			t.Fatalf("post before gate: expected ErrPostTestLocked, got %v", err)
		}

		svc = NewAssessmentService(repo, clock.NewFixed(end.Add(-10*time.Minute)))
		res, err = svc.Submit(context.Background(), user, 1, allRight)
		if err != nil {
			t.Fatalf("post-test: %v", err)
		}
		if res.Type != dto.TypePostTest || res.Score != 100 {
			t.Fatalf("unexpected post-test result %+v", res)
		}

		_, err = svc.Submit(context.Background(), user, 1, map[string]string{})
		if !errors.Is(err, ErrAlreadyCompleted) {
			t.Fatalf("third submission: expected ErrAlreadyCompleted, got %v", err)
		}
		if *repo.score.PostTestScore != 100 {
			t.Fatalf("post score must not be overwritten, got %d", *repo.score.PostTestScore)
		}
	})

	t.Run("event without test or questions", func(t *testing.T) {
		repo := newRepo()
		repo.questions = nil
		svc := NewAssessmentService(repo, clock.NewFixed(end))
		if _, err := svc.Submit(context.Background(), user, 1, allRight); !errors.Is(err, ErrNoQuestions) {
			t.Fatalf("expected ErrNoQuestions, got %v", err)
		}
		if _, err := svc.Questions(context.Background(), 1); !errors.Is(err, ErrNoQuestions) {
			t.Fatalf("expected ErrNoQuestions from Questions, got %v", err)
		}

		repo = newRepo()
		repo.event.HasPrePostTest = false
		svc = NewAssessmentService(repo, clock.NewFixed(end))
		if _, err := svc.Submit(context.Background(), user, 1, allRight); !errors.Is(err, ErrNoTest) {
			t.Fatalf("expected ErrNoTest, got %v", err)
		}
	})

	t.Run("only ticket holders can submit", func(t *testing.T) {
		repo := newRepo()
		repo.noTicket = true
		svc := NewAssessmentService(repo, clock.NewFixed(end.Add(-2*time.Hour)))
		if _, err := svc.Submit(context.Background(), user, 1, allRight); !errors.Is(err, ErrNotRegistered) {
			t.Fatalf("expected ErrNotRegistered, got %v", err)
		}
		if repo.score != nil {
			t.Fatalf("no score row may be written for a non-holder")
		}
	})

	t.Run("manual open unlocks the post-test", func(t *testing.T) {
		repo := newRepo()
		svc := NewAssessmentService(repo, clock.NewFixed(end.Add(-2*time.Hour)))
		if _, err := svc.Submit(context.Background(), user, 1, allRight); err != nil {
			t.Fatalf("pre-test: %v", err)
		}
		if err := svc.OpenPostTest(context.Background(), 1); err != nil {
			t.Fatalf("open post-test: %v", err)
		}
		st, err := svc.Status(context.Background(), user, 1)
		if err != nil || st.Status != dto.StatusPostTestAvailable {
			t.Fatalf("expected POST_TEST_AVAILABLE, got %+v %v", st, err)
		}
		if _, err := svc.Submit(context.Background(), user, 1, allRight); err != nil {
			t.Fatalf("post-test after manual open: %v", err)
		}
		if err := svc.OpenPostTest(context.Background(), 42); !errors.Is(err, ErrEventNotFound) {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
	})

	t.Run("questions hide the answer key", func(t *testing.T) {
		svc := NewAssessmentService(newRepo(), clock.NewFixed(end))
		qs, err := svc.Questions(context.Background(), 1)
		if err != nil {
			t.Fatalf("questions: %v", err)
		}
		if len(qs) != 5 || qs[0].Number != 1 || qs[0].Options.A != "a" {
			t.Fatalf("unexpected questions %+v", qs)
		}
	})
}

/* ===================== fakes ===================== */

type fakeAssessmentRepo struct {
	event     *eventModel.EventModel
	noTicket  bool
	questions []questionModel.EventQuestionModel
	score     *assessmentModel.UserTestScoreModel
}

func (f *fakeAssessmentRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeAssessmentRepo) GetEvent(_ context.Context, id uint) (*eventModel.EventModel, error) {
	if f.event == nil || f.event.ID != id {
		return nil, nil
	}
	cp := *f.event
	return &cp, nil
}

func (f *fakeAssessmentRepo) ListQuestions(_ context.Context, _ uint) ([]questionModel.EventQuestionModel, error) {
	return f.questions, nil
}

func (f *fakeAssessmentRepo) HasTicket(_ context.Context, _ uuid.UUID, _ uint) (bool, error) {
	return !f.noTicket, nil
}

func (f *fakeAssessmentRepo) FindScore(_ context.Context, _ uuid.UUID, _ uint) (*assessmentModel.UserTestScoreModel, error) {
	if f.score == nil {
		return nil, nil
	}
	cp := *f.score
	return &cp, nil
}

func (f *fakeAssessmentRepo) CreateScore(_ context.Context, s *assessmentModel.UserTestScoreModel) error {
	if f.score != nil {
		return ErrDuplicatePreTest
	}
	s.ID = 1
	cp := *s
	f.score = &cp
	return nil
}

func (f *fakeAssessmentRepo) SetPostScore(_ context.Context, _ uint, score int, at time.Time, answers datatypes.JSON) (bool, error) {
	if f.score.PostTestScore != nil {
		return false, nil
	}
	f.score.PostTestScore = &score
	f.score.PostTestSubmittedAt = &at
	f.score.PostTestAnswers = answers
	return true, nil
}

func (f *fakeAssessmentRepo) OpenPostTest(_ context.Context, id uint) (bool, error) {
	if f.event == nil || f.event.ID != id {
		return false, nil
	}
	f.event.IsPostTestOpenManually = true
	return true, nil
}
