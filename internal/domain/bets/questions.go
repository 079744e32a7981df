package bets

import (
	"time"

	"github.com/birreros/porra/internal/domain/model"
)

// AssignQuestionOwner hands the question sheet of a race to one
// participant. An empty name clears the assignment.
func AssignQuestionOwner(s model.State, eventKey, name string) model.State {
	next := s.Clone()
	if name == "" {
		delete(next.QuestionOwner, eventKey)
		return next
	}
	if next.QuestionOwner == nil {
		next.QuestionOwner = map[string]string{}
	}
	next.QuestionOwner[eventKey] = name
	return next
}

// SetRaceQuestions stores the free-text questions of a race.
func SetRaceQuestions(s model.State, eventKey string, questions []string) model.State {
	next := s.Clone()
	if next.Questions == nil {
		next.Questions = map[string][]string{}
	}
	next.Questions[eventKey] = pad(questions)
	return next
}

// PublishRaceQuestions marks a race's question sheet as published by its
// author. Republishing an already-published sheet only refreshes the
// update time.
func PublishRaceQuestions(s model.State, eventKey, author string, at time.Time) model.State {
	next := s.Clone()
	if next.QuestionsStatus == nil {
		next.QuestionsStatus = map[string]model.QuestionStatus{}
	}
	status := next.QuestionsStatus[eventKey]
	if status.Published {
		ts := at
		status.UpdatedAt = &ts
	} else {
		ts := at
		status.Published = true
		status.Author = author
		status.PublishedAt = &ts
	}
	next.QuestionsStatus[eventKey] = status
	return next
}

// LockRaceQuestions freezes or unfreezes a race's question sheet against
// further author edits.
func LockRaceQuestions(s model.State, eventKey string, locked bool) model.State {
	next := s.Clone()
	if next.QuestionsStatus == nil {
		next.QuestionsStatus = map[string]model.QuestionStatus{}
	}
	status := next.QuestionsStatus[eventKey]
	status.Locked = locked
	next.QuestionsStatus[eventKey] = status
	return next
}
