package pipeline

// Settings carries the per-run values applied to blocks without a Points or
// Topic field. Callers fill it from configuration.
type Settings struct {
	DefaultPoints int
	DefaultTopic  string
}

// Header holds the exam metadata lines. Absent markers leave empty strings.
type Header struct {
	Title        string `yaml:"title"`
	Subtitle     string `yaml:"subtitle"`
	Instructions string `yaml:"instructions"`
}

// Record is a parsed question block before numbering and lettering.
type Record struct {
	Question string   `yaml:"question"`
	Answers  []string `yaml:"answers"`
	Points   int      `yaml:"points"`
	Topic    string   `yaml:"topic"`
}

// Choice is one lettered answer of a formatted question.
type Choice struct {
	Letter  string `yaml:"letter"`
	Text    string `yaml:"text"`
	Correct bool   `yaml:"correct"`
	Fixed   bool   `yaml:"fixed,omitempty"`
}

// Formatted is a numbered question ready for serialization.
// Answers holds the display lines ("a) 3", "*b) 4"); Choices holds the same
// answers structurally, including the fixed-position flag.
type Formatted struct {
	Number   int      `yaml:"number"`
	Question string   `yaml:"question"`
	Answers  []string `yaml:"answers"`
	Choices  []Choice `yaml:"choices,omitempty"`
	Points   int      `yaml:"points"`
	Topic    string   `yaml:"topic"`
}

// Essay reports whether the question has no answers and is rendered as a
// free-response prompt.
func (f Formatted) Essay() bool {
	return len(f.Answers) == 0
}
