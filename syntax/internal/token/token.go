package token

import (
	"unicode"

	"github.com/genfn/genfn/errors"
)

type Kind int

const (
	EOF Kind = iota

	Ident
	Int
	Float
	String
	Rune

	KwFn
	KwLet
	KwIf
	KwElse
	KwWhile
	KwFor
	KwIn
	KwYield
	KwReturn
	KwBreak
	KwContinue
	KwTrue
	KwFalse

	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semi
	Colon
	Dot
	DotDot
	Ellipsis
	Question
	Hash

	Star
	Plus
	Minus
	Slash
	Percent
	Amp
	Pipe
	Caret
	Shl
	Shr
	Not
	AndAnd
	OrOr
	Eq
	EqEq
	NotEq
	Lt
	LtEq
	Gt
	GtEq
	PlusEq
	MinusEq
	StarEq
	SlashEq
)

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown token"
}

var kindNames = map[Kind]string{
	EOF: "end of input", Ident: "identifier", Int: "integer literal",
	Float: "float literal", String: "string literal", Rune: "rune literal",
	KwFn: "`fn`", KwLet: "`let`", KwIf: "`if`", KwElse: "`else`",
	KwWhile: "`while`", KwFor: "`for`", KwIn: "`in`", KwYield: "`yield`",
	KwReturn: "`return`", KwBreak: "`break`", KwContinue: "`continue`",
	KwTrue: "`true`", KwFalse: "`false`",
	LParen: "'('", RParen: "')'", LBrace: "'{'", RBrace: "'}'",
	LBracket: "'['", RBracket: "']'", Comma: "','", Semi: "';'",
	Colon: "':'", Dot: "'.'", DotDot: "'..'", Ellipsis: "'...'",
	Question: "'?'", Hash: "'#'", Star: "'*'", Plus: "'+'", Minus: "'-'",
	Slash: "'/'", Percent: "'%'", Amp: "'&'", Pipe: "'|'", Caret: "'^'",
	Shl: "'<<'", Shr: "'>>'", Not: "'!'", AndAnd: "'&&'", OrOr: "'||'",
	Eq: "'='", EqEq: "'=='", NotEq: "'!='", Lt: "'<'", LtEq: "'<='",
	Gt: "'>'", GtEq: "'>='", PlusEq: "'+='", MinusEq: "'-='",
	StarEq: "'*='", SlashEq: "'/='",
}

var keywords = map[string]Kind{
	"fn": KwFn, "let": KwLet, "if": KwIf, "else": KwElse, "while": KwWhile,
	"for": KwFor, "in": KwIn, "yield": KwYield, "return": KwReturn,
	"break": KwBreak, "continue": KwContinue, "true": KwTrue, "false": KwFalse,
}

// Note: `yields` is deliberately not a keyword. It is contextual, recognized
// by the parser only in signature position, so bodies may still use it as an
// ordinary identifier.

type Token struct {
	Value string
	Kind  Kind
	Span  errors.Span
}

type lexer struct {
	src  []rune
	pos  int
	line int
	col  int

	startLine, startCol int
	start               int
}

// Tokenize scans src into a token stream terminated by an EOF token. Line
// and column numbers in spans are zero-indexed.
func Tokenize(src string) ([]Token, error) {
	l := &lexer{src: []rune(src)}
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks, nil
		}
	}
}

func (l *lexer) next() (Token, error) {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.bump()
		case c == '/' && l.peekAt(1) == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.bump()
			}
		case c == '/' && l.peekAt(1) == '*':
			l.bump()
			l.bump()
			for l.pos < len(l.src) {
				if l.src[l.pos] == '*' && l.peekAt(1) == '/' {
					l.bump()
					l.bump()
					break
				}
				l.bump()
			}
		default:
			return l.lexToken()
		}
	}
	l.mark()
	return Token{Kind: EOF, Span: l.span()}, nil
}

func (l *lexer) lexToken() (Token, error) {
	l.mark()
	c := l.src[l.pos]

	switch {
	case unicode.IsLetter(c) || c == '_':
		return l.lexIdentOrKeyword(), nil
	case unicode.IsDigit(c):
		return l.lexNumber(), nil
	case c == '"':
		return l.lexString()
	case c == '\'':
		return l.lexRune()
	default:
		return l.lexPunct()
	}
}

func (l *lexer) lexIdentOrKeyword() Token {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' {
			break
		}
		l.bump()
	}
	value := string(l.src[l.start:l.pos])
	kind := Ident
	if k, ok := keywords[value]; ok {
		kind = k
	}
	return l.make(kind)
}

func (l *lexer) lexNumber() Token {
	kind := Int
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if unicode.IsDigit(c) || c == '_' {
			l.bump()
			continue
		}
		// A '.' starts a fraction only when not a range operator.
		if c == '.' && l.peekAt(1) != '.' && kind == Int && unicode.IsDigit(l.peekAt(1)) {
			kind = Float
			l.bump()
			continue
		}
		break
	}
	return l.make(kind)
}

func (l *lexer) lexString() (Token, error) {
	l.bump() // opening quote
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\\' {
			l.bump()
			if l.pos < len(l.src) {
				l.bump()
			}
			continue
		}
		if c == '\n' {
			return Token{}, errors.MalformedBody(l.span(), "string literal cannot contain a newline")
		}
		if c == '"' {
			l.bump()
			return l.make(String), nil
		}
		l.bump()
	}
	return Token{}, errors.MalformedBody(l.span(), "unclosed string literal")
}

func (l *lexer) lexRune() (Token, error) {
	l.bump() // opening quote
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\\' {
			l.bump()
			if l.pos < len(l.src) {
				l.bump()
			}
			continue
		}
		if c == '\'' {
			l.bump()
			return l.make(Rune), nil
		}
		l.bump()
	}
	return Token{}, errors.MalformedBody(l.span(), "unclosed rune literal")
}

var puncts = []struct {
	text string
	kind Kind
}{
	// Longest match first.
	{"...", Ellipsis},
	{"<<", Shl}, {">>", Shr}, {"&&", AndAnd}, {"||", OrOr},
	{"==", EqEq}, {"!=", NotEq}, {"<=", LtEq}, {">=", GtEq},
	{"+=", PlusEq}, {"-=", MinusEq}, {"*=", StarEq}, {"/=", SlashEq},
	{"..", DotDot},
	{"(", LParen}, {")", RParen}, {"{", LBrace}, {"}", RBrace},
	{"[", LBracket}, {"]", RBracket}, {",", Comma}, {";", Semi},
	{":", Colon}, {".", Dot}, {"?", Question}, {"#", Hash},
	{"*", Star}, {"+", Plus}, {"-", Minus}, {"/", Slash}, {"%", Percent},
	{"&", Amp}, {"|", Pipe}, {"^", Caret}, {"!", Not}, {"=", Eq},
	{"<", Lt}, {">", Gt},
}

func (l *lexer) lexPunct() (Token, error) {
	rest := l.src[l.pos:]
	for _, p := range puncts {
		if matchRunes(rest, p.text) {
			for range p.text {
				l.bump()
			}
			return l.make(p.kind), nil
		}
	}
	ch := l.src[l.pos]
	l.bump()
	return Token{}, errors.MalformedBody(l.span(), "unexpected character %q", string(ch))
}

func matchRunes(src []rune, text string) bool {
	i := 0
	for _, c := range text {
		if i >= len(src) || src[i] != c {
			return false
		}
		i++
	}
	return true
}

// ----------------------------------------------------------------------------

func (l *lexer) mark() {
	l.start = l.pos
	l.startLine = l.line
	l.startCol = l.col
}

// peekAt returns the rune off positions ahead of the cursor, or 0 at the
// end of input.
func (l *lexer) peekAt(off int) rune {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *lexer) bump() {
	if l.src[l.pos] == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	l.pos++
}

func (l *lexer) make(kind Kind) Token {
	return Token{
		Kind:  kind,
		Value: string(l.src[l.start:l.pos]),
		Span:  l.span(),
	}
}

func (l *lexer) span() errors.Span {
	endLine, endCol := l.line, l.col
	if endCol > 0 {
		endCol--
	}
	return errors.Span{
		StartLine: l.startLine,
		StartCol:  l.startCol,
		EndLine:   endLine,
		EndCol:    endCol,
	}
}
