package quiz

import "fmt"

const (
	// QuestionCount and OptionCount are fixed by the episode format: five
	// comprehension questions with four choices each.
	QuestionCount = 5
	OptionCount   = 4
)

type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

type Quiz struct {
	Questions []Question `json:"questions"`
}

// Validate enforces the quiz shape at parse time: wrong arity or a correct
// answer outside its own options is a schema violation, not a usable quiz.
func (q *Quiz) Validate() error {
	if len(q.Questions) != QuestionCount {
		return fmt.Errorf("got %d questions, want %d", len(q.Questions), QuestionCount)
	}

	for i, question := range q.Questions {
		if question.Question == "" {
			return fmt.Errorf("question %d: missing question text", i+1)
		}
		if len(question.Options) != OptionCount {
			return fmt.Errorf("question %d: got %d options, want %d", i+1, len(question.Options), OptionCount)
		}
		if !contains(question.Options, question.CorrectAnswer) {
			return fmt.Errorf("question %d: correct answer %q is not one of the options", i+1, question.CorrectAnswer)
		}
	}

	return nil
}

func contains(options []string, answer string) bool {
	for _, opt := range options {
		if opt == answer {
			return true
		}
	}
	return false
}
