package services

import (
	"math"

	courseModels "academia/models/course"
)

// Answer is one submitted answer keyed by question id. Choice questions
// carry selected option ids; short_text questions carry free text.
type Answer struct {
	QuestionID        uint   `json:"question_id"`
	SelectedOptionIDs []uint `json:"selected_option_ids,omitempty"`
	Text              string `json:"text,omitempty"`
}

// GradedQuestion is the per-question outcome included in a grade result
type GradedQuestion struct {
	QuestionID  uint   `json:"question_id"`
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation,omitempty"`
}

// GradeResult is the outcome of scoring one submission
type GradeResult struct {
	Score     int              `json:"score"` // 0-100
	Passed    bool             `json:"passed"`
	Total     int              `json:"total_questions"`
	Correct   int              `json:"correct_questions"`
	Questions []GradedQuestion `json:"questions"`
}

// Grade scores a submission against a question set. Missing answers are
// simply incorrect, never an error, and a zero-question assessment
// scores 0. The pass threshold is inclusive.
func Grade(questions []courseModels.Question, options map[uint][]courseModels.Option, answers []Answer, passScore int) GradeResult {
	byQuestion := make(map[uint]Answer, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}

	result := GradeResult{Total: len(questions)}
	for _, q := range questions {
		answer, answered := byQuestion[q.ID]
		correct := answered && gradeQuestion(q, options[q.ID], answer)
		if correct {
			result.Correct++
		}
		result.Questions = append(result.Questions, GradedQuestion{
			QuestionID:  q.ID,
			Correct:     correct,
			Explanation: q.Explanation,
		})
	}

	if result.Total > 0 {
		result.Score = int(math.Round(100 * float64(result.Correct) / float64(result.Total)))
	}
	if result.Score < 0 {
		result.Score = 0
	} else if result.Score > 100 {
		result.Score = 100
	}
	result.Passed = result.Score >= passScore
	return result
}

func gradeQuestion(q courseModels.Question, opts []courseModels.Option, answer Answer) bool {
	switch q.Type {
	case courseModels.QuestionSingle, courseModels.QuestionTrueFalse:
		if len(answer.SelectedOptionIDs) != 1 {
			return false
		}
		for _, opt := range opts {
			if opt.ID == answer.SelectedOptionIDs[0] {
				return opt.IsCorrect
			}
		}
		return false

	case courseModels.QuestionMultiple:
		// The selected set must match the correct set exactly. A superset
		// or subset of the correct options earns no partial credit.
		selected := make(map[uint]bool, len(answer.SelectedOptionIDs))
		for _, id := range answer.SelectedOptionIDs {
			selected[id] = true
		}
		correctCount := 0
		for _, opt := range opts {
			if opt.IsCorrect {
				correctCount++
				if !selected[opt.ID] {
					return false
				}
			} else if selected[opt.ID] {
				return false
			}
		}
		return correctCount > 0 && len(selected) == correctCount

	case courseModels.QuestionShortText:
		// Short-text answers are never auto-scored; they stay in the
		// attempt payload for manual instructor review.
		return false
	}
	return false
}
