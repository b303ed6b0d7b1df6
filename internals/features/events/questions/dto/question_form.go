package dto

import (
	"fmt"
	"strings"

	"okoce_backend/internals/features/events/questions/model"
)

// FormValue membaca satu field form (mis. c.FormValue).
type FormValue func(key string) string

// QuestionInput: satu soal dari form admin (q_{i}_text, q_{i}_a..d, q_{i}_answer).
type QuestionInput struct {
	Number  int    `json:"question_number"`
	Text    string `json:"question_text"`
	A       string `json:"option_a"`
	B       string `json:"option_b"`
	C       string `json:"option_c"`
	D       string `json:"option_d"`
	Correct string `json:"correct_answer"`
}

// ParseQuestionForm membaca soal 1..5. Nomor tanpa teks soal dilewati.
func ParseQuestionForm(get FormValue) ([]QuestionInput, error) {
	out := make([]QuestionInput, 0, model.MaxQuestions)
	for i := 1; i <= model.MaxQuestions; i++ {
		key := func(s string) string { return fmt.Sprintf("q_%d_%s", i, s) }
		text := strings.TrimSpace(get(key("text")))
		if text == "" {
			continue
		}
		q := QuestionInput{
			Number:  i,
			Text:    text,
			A:       strings.TrimSpace(get(key("a"))),
			B:       strings.TrimSpace(get(key("b"))),
			C:       strings.TrimSpace(get(key("c"))),
			D:       strings.TrimSpace(get(key("d"))),
			Correct: strings.ToUpper(strings.TrimSpace(get(key("answer")))),
		}
		if q.A == "" || q.B == "" || q.C == "" || q.D == "" {
			return nil, fmt.Errorf("soal nomor %d: semua opsi A-D wajib diisi", i)
		}
		switch q.Correct {
		case "A", "B", "C", "D":
		default:
			return nil, fmt.Errorf("soal nomor %d: kunci jawaban harus A, B, C, atau D", i)
		}
		out = append(out, q)
	}
	return out, nil
}

func (q QuestionInput) ToModel(eventID uint) model.EventQuestionModel {
	return model.EventQuestionModel{
		EventID:        eventID,
		QuestionNumber: q.Number,
		QuestionText:   q.Text,
		OptionA:        q.A,
		OptionB:        q.B,
		OptionC:        q.C,
		OptionD:        q.D,
		CorrectAnswer:  q.Correct,
	}
}

// FromModel dipakai form edit admin (kunci jawaban ikut ditampilkan).
func FromModel(m model.EventQuestionModel) QuestionInput {
	return QuestionInput{
		Number:  m.QuestionNumber,
		Text:    m.QuestionText,
		A:       m.OptionA,
		B:       m.OptionB,
		C:       m.OptionC,
		D:       m.OptionD,
		Correct: m.CorrectAnswer,
	}
}
