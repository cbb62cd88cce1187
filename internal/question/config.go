package question

// Config controls the behavior of the LLMProvider.
type Config struct {
	// Validators run in order on every decoded question; the first
	// failure rejects it.
	Validators []Validator

	// MaxTokens is the token budget for the model response.
	MaxTokens int

	// Temperature controls output randomness.
	Temperature float64

	// MaxPriorQuestions is how many recent prompts per category are
	// listed in the request so the model avoids repeating them.
	// Zero disables the list.
	MaxPriorQuestions int
}

// DefaultValidators is the standard validator chain.
func DefaultValidators() []Validator {
	return []Validator{
		&StructuralValidator{},
		&AnswerValidator{},
		&ChartValidator{},
	}
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators:        DefaultValidators(),
		MaxTokens:         2048,
		Temperature:       1.0,
		MaxPriorQuestions: 8,
	}
}
