package domain

// AllCategories is the quiz category id that selects questions from every category.
const AllCategories int64 = 0

// Category is a question grouping shown to players, e.g. "Science".
type Category struct {
	ID   int64
	Type string
}

// Question is a single trivia question.
// Category is expected to reference an existing Category.ID but is not enforced.
type Question struct {
	ID         int64
	Question   string
	Answer     string
	Category   int64
	Difficulty int
}

// NewQuestion creates a new Question instance without an ID.
func NewQuestion(question, answer string, category int64, difficulty int) *Question {
	return &Question{
		Question:   question,
		Answer:     answer,
		Category:   category,
		Difficulty: difficulty,
	}
}

// CategoryTypes maps category ids to their display label.
func CategoryTypes(categories []*Category) map[int64]string {
	types := make(map[int64]string, len(categories))
	for _, c := range categories {
		types[c.ID] = c.Type
	}
	return types
}
