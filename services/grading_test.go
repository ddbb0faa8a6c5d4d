package services

import (
	"testing"

	courseModels "academia/models/course"

	"github.com/stretchr/testify/assert"
)

func question(id uint, qType string) courseModels.Question {
	q := courseModels.Question{Type: qType}
	q.ID = id
	return q
}

func option(id uint, correct bool) courseModels.Option {
	o := courseModels.Option{IsCorrect: correct}
	o.ID = id
	return o
}

func TestGradeMultipleChoiceExactness(t *testing.T) {
	// Options: A(1, correct), B(2, correct), C(3, wrong)
	questions := []courseModels.Question{question(1, courseModels.QuestionMultiple)}
	options := map[uint][]courseModels.Option{
		1: {option(1, true), option(2, true), option(3, false)},
	}

	cases := []struct {
		name     string
		selected []uint
		correct  bool
	}{
		{"exact match", []uint{1, 2}, true},
		{"subset", []uint{1}, false},
		{"superset", []uint{1, 2, 3}, false},
		{"mixed", []uint{1, 3}, false},
		{"empty", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			answers := []Answer{{QuestionID: 1, SelectedOptionIDs: tc.selected}}
			result := Grade(questions, options, answers, 100)
			assert.Equal(t, tc.correct, result.Questions[0].Correct)
		})
	}
}

func TestGradeSingleChoice(t *testing.T) {
	questions := []courseModels.Question{question(1, courseModels.QuestionSingle)}
	options := map[uint][]courseModels.Option{
		1: {option(1, true), option(2, false)},
	}

	result := Grade(questions, options, []Answer{{QuestionID: 1, SelectedOptionIDs: []uint{1}}}, 50)
	assert.Equal(t, 100, result.Score)
	assert.True(t, result.Passed)

	result = Grade(questions, options, []Answer{{QuestionID: 1, SelectedOptionIDs: []uint{2}}}, 50)
	assert.Equal(t, 0, result.Score)
	assert.False(t, result.Passed)

	// Selecting two options on a single-choice question is wrong
	result = Grade(questions, options, []Answer{{QuestionID: 1, SelectedOptionIDs: []uint{1, 2}}}, 50)
	assert.Equal(t, 0, result.Score)

	// Unknown option id is wrong, not an error
	result = Grade(questions, options, []Answer{{QuestionID: 1, SelectedOptionIDs: []uint{99}}}, 50)
	assert.Equal(t, 0, result.Score)
}

func TestGradeMissingAnswerIsIncorrect(t *testing.T) {
	questions := []courseModels.Question{
		question(1, courseModels.QuestionSingle),
		question(2, courseModels.QuestionTrueFalse),
	}
	options := map[uint][]courseModels.Option{
		1: {option(1, true), option(2, false)},
		2: {option(3, true), option(4, false)},
	}

	result := Grade(questions, options, []Answer{{QuestionID: 2, SelectedOptionIDs: []uint{3}}}, 50)
	assert.Equal(t, 50, result.Score)
	assert.Equal(t, 1, result.Correct)
	assert.True(t, result.Passed)
}

func TestGradeScoreAndThreshold(t *testing.T) {
	// 4 single-choice questions, 3 answered correctly: score 75
	var questions []courseModels.Question
	options := make(map[uint][]courseModels.Option)
	var answers []Answer
	for i := uint(1); i <= 4; i++ {
		questions = append(questions, question(i, courseModels.QuestionSingle))
		correctID := i * 10
		options[i] = []courseModels.Option{option(correctID, true), option(correctID+1, false)}
		selected := correctID
		if i == 4 {
			selected = correctID + 1 // miss the last one
		}
		answers = append(answers, Answer{QuestionID: i, SelectedOptionIDs: []uint{selected}})
	}

	result := Grade(questions, options, answers, 70)
	assert.Equal(t, 75, result.Score)
	assert.True(t, result.Passed)

	result = Grade(questions, options, answers, 80)
	assert.Equal(t, 75, result.Score)
	assert.False(t, result.Passed)

	// Threshold is inclusive
	result = Grade(questions, options, answers, 75)
	assert.True(t, result.Passed)
}

func TestGradeZeroQuestions(t *testing.T) {
	result := Grade(nil, nil, nil, 70)
	assert.Equal(t, 0, result.Score)
	assert.False(t, result.Passed)

	result = Grade(nil, nil, nil, 0)
	assert.Equal(t, 0, result.Score)
	assert.True(t, result.Passed)
}

func TestGradeShortTextNeverAutoScores(t *testing.T) {
	questions := []courseModels.Question{question(1, courseModels.QuestionShortText)}

	result := Grade(questions, nil, []Answer{{QuestionID: 1, Text: "a thoughtful essay"}}, 50)
	assert.Equal(t, 0, result.Score)
	assert.False(t, result.Questions[0].Correct)
}

func TestGradeTrueFalse(t *testing.T) {
	questions := []courseModels.Question{question(1, courseModels.QuestionTrueFalse)}
	options := map[uint][]courseModels.Option{
		1: {option(1, true), option(2, false)},
	}

	result := Grade(questions, options, []Answer{{QuestionID: 1, SelectedOptionIDs: []uint{1}}}, 100)
	assert.Equal(t, 100, result.Score)
	assert.True(t, result.Passed)
}
