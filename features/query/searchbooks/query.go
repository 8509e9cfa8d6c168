package searchbooks

const (
	queryType = "SearchBooks"
)

// Query represents the intent to search the catalog. Text matches title,
// description and ISBN as a case-insensitive substring; Genre and Author are
// optional narrowing filters. All filters empty lists the whole catalog page
// by page.
type Query struct {
	Text     string
	Genre    string
	Author   string
	Page     int
	PageSize int
}

// BuildQuery creates a new Query with the provided filters and page window.
func BuildQuery(text string, genre string, author string, page int, pageSize int) Query {
	return Query{
		Text:     text,
		Genre:    genre,
		Author:   author,
		Page:     page,
		PageSize: pageSize,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
