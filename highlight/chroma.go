package highlight

import (
	"log/slog"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Tags reported by ChromaTokenizer.
const (
	TagKeyword     = "tok-keyword"
	TagType        = "tok-type"
	TagConstant    = "tok-constant"
	TagBuiltin     = "tok-builtin"
	TagFunction    = "tok-function"
	TagComment     = "tok-comment"
	TagString      = "tok-string"
	TagNumber      = "tok-number"
	TagOperator    = "tok-operator"
	TagPunctuation = "tok-punctuation"
)

// ChromaTokenizer tokenizes text with a chroma lexer.
type ChromaTokenizer struct {
	language string
	lexer    chroma.Lexer
	log      *slog.Logger
}

type ChromaOption func(*ChromaTokenizer)

// WithLogger sets the logger used to report lexing failures.
func WithLogger(l *slog.Logger) ChromaOption {
	return func(c *ChromaTokenizer) {
		if l != nil {
			c.log = l
		}
	}
}

// NewChromaTokenizer returns a tokenizer for language. Unknown languages fall
// back to chroma's plaintext lexer, which yields no tagged tokens.
func NewChromaTokenizer(language string, opts ...ChromaOption) *ChromaTokenizer {
	c := &ChromaTokenizer{language: language, log: slog.Default()}
	for _, o := range opts {
		o(c)
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		c.log.Debug("highlight: unknown language, using plaintext", "language", language)
		lexer = lexers.Fallback
	} else {
		c.language = lexer.Config().Name
	}
	c.lexer = chroma.Coalesce(lexer)
	return c
}

// Language reports the resolved lexer name.
func (c *ChromaTokenizer) Language() string { return c.language }

func (c *ChromaTokenizer) Tokenize(text string) []Token {
	if text == "" {
		return nil
	}
	// EnsureLF stays off: rewriting CRLF would shift every later offset.
	it, err := c.lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, text)
	if err != nil {
		c.log.Warn("highlight: tokenise failed", "language", c.language, "err", err)
		return nil
	}

	var out []Token
	pos := 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		n := utf8.RuneCountInString(tok.Value)
		if n == 0 {
			continue
		}
		if tag := tagForType(tok.Type); tag != "" {
			out = append(out, Token{Start: pos, End: pos + n - 1, Tags: Tags{tag}})
		}
		pos += n
	}
	return out
}

func tagForType(tt chroma.TokenType) string {
	switch {
	case tt == chroma.KeywordType:
		return TagType
	case tt == chroma.KeywordConstant:
		return TagConstant
	case tt.InCategory(chroma.Keyword):
		return TagKeyword
	case tt.InSubCategory(chroma.NameBuiltin):
		return TagBuiltin
	case tt == chroma.NameFunction, tt == chroma.NameFunctionMagic:
		return TagFunction
	case tt == chroma.NameClass:
		return TagType
	case tt.InCategory(chroma.Comment):
		return TagComment
	case tt.InSubCategory(chroma.LiteralString):
		return TagString
	case tt.InSubCategory(chroma.LiteralNumber):
		return TagNumber
	case tt.InCategory(chroma.Operator):
		return TagOperator
	case tt.InCategory(chroma.Punctuation):
		return TagPunctuation
	default:
		return ""
	}
}
