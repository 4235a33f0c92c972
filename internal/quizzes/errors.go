package quizzes

import "errors"

// ErrNoQuiz means no quiz has been generated for the document yet.
var ErrNoQuiz = errors.New("no quiz available")
