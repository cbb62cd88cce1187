package quiz

import "github.com/abhisek/aptiz/internal/question"

// questionMsg carries the outcome of a fetch tagged with the generation
// it was started for.
type questionMsg struct {
	generation uint64
	question   *question.Question
	err        error
}

// timerTickMsg is a one-second countdown tick for the countdown with the
// given id.
type timerTickMsg struct {
	id int
}
