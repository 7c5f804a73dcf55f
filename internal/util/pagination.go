package util

// QuestionsPerPage is the fixed page size of question listings.
const QuestionsPerPage = 10

// Paginate returns the 1-based page of items. Pages below 1 or past the end are empty.
func Paginate[T any](items []T, page int) []T {
	// Compare page numbers before multiplying so huge pages cannot overflow.
	if page < 1 || page-1 >= (len(items)+QuestionsPerPage-1)/QuestionsPerPage {
		return []T{}
	}
	start := (page - 1) * QuestionsPerPage
	end := min(start+QuestionsPerPage, len(items))
	return items[start:end]
}
