// Package token defines the lexeme model produced by pkg/lexer.
package token

import "fmt"

// Kind tags the variant a Token carries.
type Kind int

const (
	// Value-bearing variants.
	Number Kind = iota
	Id
	String
	Char

	// Keywords.
	Class
	Return
	If
	Else
	Def
	Print
	And
	Or
	Not
	None
	True
	False

	// Structural.
	Newline
	Indent
	Dedent
	Eof

	// Comparisons.
	Eq
	NotEq
	LessOrEq
	GreaterOrEq
)

var kindNames = map[Kind]string{
	Number:      "Number",
	Id:          "Id",
	String:      "String",
	Char:        "Char",
	Class:       "Class",
	Return:      "Return",
	If:          "If",
	Else:        "Else",
	Def:         "Def",
	Print:       "Print",
	And:         "And",
	Or:          "Or",
	Not:         "Not",
	None:        "None",
	True:        "True",
	False:       "False",
	Newline:     "Newline",
	Indent:      "Indent",
	Dedent:      "Dedent",
	Eof:         "Eof",
	Eq:          "Eq",
	NotEq:       "NotEq",
	LessOrEq:    "LessOrEq",
	GreaterOrEq: "GreaterOrEq",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown_kind_%d", int(k))
}

// Keywords maps identifier lexemes to their keyword Kind.
var Keywords = map[string]Kind{
	"class":  Class,
	"return": Return,
	"if":     If,
	"else":   Else,
	"def":    Def,
	"print":  Print,
	"and":    And,
	"or":     Or,
	"not":    Not,
	"None":   None,
	"True":   True,
	"False":  False,
}

// Token is a tagged variant over every lexeme the lexer produces.
// Value-bearing kinds populate the matching field; nullary kinds leave
// every payload field at its zero value.
type Token struct {
	Kind   Kind
	Number int64
	Text   string // Id, String
	Char   rune
}

// Equal compares the variant tag and, for value-bearing variants, the payload.
func (t Token) Equal(other Token) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case Number:
		return t.Number == other.Number
	case Id, String:
		return t.Text == other.Text
	case Char:
		return t.Char == other.Char
	default:
		return true
	}
}

func (t Token) String() string {
	switch t.Kind {
	case Number:
		return fmt.Sprintf("Number{%d}", t.Number)
	case Id:
		return fmt.Sprintf("Id{%s}", t.Text)
	case String:
		return fmt.Sprintf("String{%q}", t.Text)
	case Char:
		return fmt.Sprintf("Char{%c}", t.Char)
	default:
		return t.Kind.String()
	}
}

// Constructors for the nullary variants (New) and the value-bearing
// variants, used by both the lexer and tests.

func New(kind Kind) Token             { return Token{Kind: kind} }
func NewNumber(value int64) Token     { return Token{Kind: Number, Number: value} }
func NewId(value string) Token        { return Token{Kind: Id, Text: value} }
func NewString(value string) Token    { return Token{Kind: String, Text: value} }
func NewChar(value rune) Token        { return Token{Kind: Char, Char: value} }
