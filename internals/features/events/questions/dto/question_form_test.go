package dto

import "testing"

func TestParseQuestionForm(t *testing.T) {
	t.Parallel()

	form := map[string]string{
		"q_1_text": "Apa itu UMKM?", "q_1_a": "a", "q_1_b": "b", "q_1_c": "c", "q_1_d": "d", "q_1_answer": "b",
		"q_3_text": "Soal tiga", "q_3_a": "a", "q_3_b": "b", "q_3_c": "c", "q_3_d": "d", "q_3_answer": "D",
	}
	get := func(k string) string { return form[k] }

	qs, err := ParseQuestionForm(get)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(qs) != 2 || qs[0].Number != 1 || qs[1].Number != 3 {
		t.Fatalf("unexpected questions %+v", qs)
	}
	if qs[0].Correct != "B" {
		t.Fatalf("answer must be upper-cased, got %q", qs[0].Correct)
	}
	if m := qs[1].ToModel(7); m.EventID != 7 || m.QuestionNumber != 3 || m.CorrectAnswer != "D" {
		t.Fatalf("unexpected model %+v", m)
	}

	form["q_3_answer"] = "E"
	if _, err := ParseQuestionForm(get); err == nil {
		t.Fatalf("expected error for answer E")
	}
	form["q_3_answer"] = "A"
	form["q_3_c"] = ""
	if _, err := ParseQuestionForm(get); err == nil {
		t.Fatalf("expected error for missing option")
	}
}
