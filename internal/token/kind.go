package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Date     // 2024-01-01, 2024/01/01
	String   // "Foo \"bar\""
	Account  // Assets:Cash
	Number   // 10, 1,000.50, .5
	Currency // USD, VBTLX
	Flag     // ! and * in flag position
	Tag      // #trip
	Link     // ^invoice-42
	Comment  // ; anything
	Newline  // \n
	Indent   // leading whitespace of a non-blank line
	Punct    // + - * / ( ) { } {{ }} @ @@ , ~ :
	Keyword  // open, balance, txn, option ...
	Key      // invoice: (metadata key including the colon)
	Ident    // other lowercase word
	Section  // * Heading at column 0, whole line
)

var kindNames = [...]string{
	Invalid:  "Invalid",
	EOF:      "EOF",
	Date:     "Date",
	String:   "String",
	Account:  "Account",
	Number:   "Number",
	Currency: "Currency",
	Flag:     "Flag",
	Tag:      "Tag",
	Link:     "Link",
	Comment:  "Comment",
	Newline:  "Newline",
	Indent:   "Indent",
	Punct:    "Punct",
	Keyword:  "Keyword",
	Key:      "Key",
	Ident:    "Ident",
	Section:  "Section",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}
