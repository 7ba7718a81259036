package token

// directive keywords; dated ones follow a Date, undated ones start a line.
var keywords = map[string]bool{
	"txn":       true,
	"balance":   true,
	"open":      true,
	"close":     true,
	"commodity": true,
	"pad":       true,
	"note":      true,
	"document":  true,
	"price":     true,
	"event":     true,
	"query":     true,
	"custom":    true,
	"option":    true,
	"include":   true,
	"plugin":    true,
	"pushtag":   true,
	"poptag":    true,
	"pushmeta":  true,
	"popmeta":   true,
}

// IsKeyword сообщает, является ли слово ключевым словом директивы.
// Регистрозависимо: распознаются только lowercase формы.
func IsKeyword(word string) bool {
	return keywords[word]
}
