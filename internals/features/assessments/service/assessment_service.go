package service

import (
	"context"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"okoce_backend/internals/features/assessments/dto"
	assessmentModel "okoce_backend/internals/features/assessments/model"
	eventModel "okoce_backend/internals/features/events/events/model"
	questionModel "okoce_backend/internals/features/events/questions/model"
	"okoce_backend/internals/helpers/clock"
)

// PostTestLead: post-test terbuka otomatis 30 menit sebelum event selesai.
const PostTestLead = 30 * time.Minute

type AssessmentRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	GetEvent(ctx context.Context, eventID uint) (*eventModel.EventModel, error)
	ListQuestions(ctx context.Context, eventID uint) ([]questionModel.EventQuestionModel, error)
	HasTicket(ctx context.Context, userID uuid.UUID, eventID uint) (bool, error)
	FindScore(ctx context.Context, userID uuid.UUID, eventID uint) (*assessmentModel.UserTestScoreModel, error)

	// CreateScore mengembalikan ErrDuplicatePreTest kalau baris (user, event) sudah ada.
	CreateScore(ctx context.Context, s *assessmentModel.UserTestScoreModel) error
	// SetPostScore hanya mengisi kalau post_test_score masih NULL. false = sudah terisi.
	SetPostScore(ctx context.Context, scoreID uint, score int, at time.Time, answers datatypes.JSON) (bool, error)
	// OpenPostTest: false kalau event tidak ada.
	OpenPostTest(ctx context.Context, eventID uint) (bool, error)
}

type AssessmentService struct {
	repo  AssessmentRepository
	clock clock.Clock
}

func NewAssessmentService(repo AssessmentRepository, clk clock.Clock) *AssessmentService {
	return &AssessmentService{repo: repo, clock: clk}
}

/* ============================================================
   PURE HELPERS
============================================================ */

// PostTestOpen: now >= selesai - 30 menit, atau dibuka manual oleh panitia.
func PostTestOpen(ev *eventModel.EventModel, now time.Time) bool {
	return ev.IsPostTestOpenManually || !now.Before(ev.TglSelesaiEvent.Add(-PostTestLead))
}

// EvaluateStatus dihitung ulang setiap query, tidak di-cache.
func EvaluateStatus(ev *eventModel.EventModel, score *assessmentModel.UserTestScoreModel, now time.Time) dto.TestStatus {
	if !ev.HasPrePostTest {
		return dto.TestStatus{Status: dto.StatusNoTest}
	}
	if score == nil {
		return dto.TestStatus{
			Status:  dto.StatusPreTestNeeded,
			Message: "Silakan isi Pre-Test sebelum melanjutkan.",
		}
	}
	if score.PostTestScore == nil {
		if PostTestOpen(ev, now) {
			return dto.TestStatus{
				Status:  dto.StatusPostTestAvailable,
				Message: "Post-Test telah dibuka.",
			}
		}
		openAt := ev.TglSelesaiEvent.Add(-PostTestLead).UTC()
		return dto.TestStatus{
			Status:  dto.StatusPostTestLocked,
			Message: "Post-Test belum dibuka.",
			OpenAt:  &openAt,
		}
	}
	return dto.TestStatus{
		Status:    dto.StatusCompleted,
		PreScore:  score.PreTestScore,
		PostScore: score.PostTestScore,
		Message:   "Anda telah menyelesaikan semua tes.",
	}
}

// Score = floor(benar * 100 / total). Jawaban benar hanya jika sama persis dengan kunci.
func Score(questions []questionModel.EventQuestionModel, answers map[string]string) int {
	if len(questions) == 0 {
		return 0
	}
	correct := 0
	for _, q := range questions {
		ans, ok := answers[strconv.Itoa(q.QuestionNumber)]
		if ok && ans != "" && ans == q.CorrectAnswer {
			correct++
		}
	}
	return correct * 100 / len(questions)
}

/* ============================================================
   USE CASES
============================================================ */

func (s *AssessmentService) Status(ctx context.Context, userID uuid.UUID, eventID uint) (dto.TestStatus, error) {
	ev, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return dto.TestStatus{}, err
	}
	if ev == nil {
		return dto.TestStatus{}, ErrEventNotFound
	}
	if !ev.HasPrePostTest {
		return EvaluateStatus(ev, nil, s.clock.Now()), nil
	}
	score, err := s.repo.FindScore(ctx, userID, eventID)
	if err != nil {
		return dto.TestStatus{}, err
	}
	return EvaluateStatus(ev, score, s.clock.Now().UTC()), nil
}

func (s *AssessmentService) Questions(ctx context.Context, eventID uint) ([]dto.QuestionView, error) {
	qs, err := s.repo.ListQuestions(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(qs) == 0 {
		return nil, ErrNoQuestions
	}
	out := make([]dto.QuestionView, 0, len(qs))
	for _, q := range qs {
		out = append(out, dto.QuestionView{
			ID:     q.ID,
			Number: q.QuestionNumber,
			Text:   q.QuestionText,
			Options: dto.QuestionOptions{
				A: q.OptionA,
				B: q.OptionB,
				C: q.OptionC,
				D: q.OptionD,
			},
		})
	}
	return out, nil
}

// Submit hanya untuk pemegang tiket event.
// Belum ada baris -> Pre-Test; ada tanpa post -> Post-Test (butuh gerbang terbuka);
// keduanya terisi -> ditolak 409.
func (s *AssessmentService) Submit(ctx context.Context, userID uuid.UUID, eventID uint, answers map[string]string) (dto.SubmitResult, error) {
	if answers == nil {
		answers = map[string]string{}
	}
	now := s.clock.Now().UTC()
	var res dto.SubmitResult

	snapshot, err := sonic.Marshal(answers)
	if err != nil {
		return dto.SubmitResult{}, err
	}

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		ev, err := s.repo.GetEvent(txCtx, eventID)
		if err != nil {
			return err
		}
		if ev == nil {
			return ErrEventNotFound
		}
		if !ev.HasPrePostTest {
			return ErrNoTest
		}

		registered, err := s.repo.HasTicket(txCtx, userID, eventID)
		if err != nil {
			return err
		}
		if !registered {
			return ErrNotRegistered
		}

		qs, err := s.repo.ListQuestions(txCtx, eventID)
		if err != nil {
			return err
		}
		if len(qs) == 0 {
			return ErrNoQuestions
		}
		final := Score(qs, answers)

		rec, err := s.repo.FindScore(txCtx, userID, eventID)
		if err != nil {
			return err
		}

		switch {
		case rec == nil:
			if err := s.repo.CreateScore(txCtx, &assessmentModel.UserTestScoreModel{
				UserID:             userID,
				EventID:            eventID,
				PreTestScore:       &final,
				PreTestSubmittedAt: &now,
				PreTestAnswers:     datatypes.JSON(snapshot),
			}); err != nil {
				return err
			}
			res = dto.SubmitResult{Score: final, Type: dto.TypePreTest}

		case rec.PostTestScore == nil:
			if !PostTestOpen(ev, now) {
				return ErrPostTestLocked
			}
			ok, err := s.repo.SetPostScore(txCtx, rec.ID, final, now, datatypes.JSON(snapshot))
			if err != nil {
				return err
			}
			if !ok {
				return ErrAlreadyCompleted
			}
			res = dto.SubmitResult{Score: final, Type: dto.TypePostTest}

		default:
			return ErrAlreadyCompleted
		}
		return nil
	})
	if err != nil {
		return dto.SubmitResult{}, err
	}
	return res, nil
}

// OpenPostTest: panitia membuka post-test untuk semua peserta.
func (s *AssessmentService) OpenPostTest(ctx context.Context, eventID uint) error {
	ok, err := s.repo.OpenPostTest(ctx, eventID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrEventNotFound
	}
	return nil
}
