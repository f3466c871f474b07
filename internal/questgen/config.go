package questgen

// Config controls quest design.
type Config struct {
	// Validators run in order on every design; the first failure stops
	// the pipeline.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxAttempts bounds regeneration after a retryable validation failure.
	MaxAttempts int
}

// DefaultConfig returns the standard validator chain and defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{MinItems: 3, MaxItems: 10},
			&DuplicateValidator{},
		},
		MaxTokens:   2048,
		Temperature: 0.7,
		MaxAttempts: 2,
	}
}

// StoryConfig controls story generation.
type StoryConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultStoryConfig returns sensible defaults for story intros.
func DefaultStoryConfig() StoryConfig {
	return StoryConfig{MaxTokens: 512, Temperature: 0.9}
}
