package highlight

// Token is one lexical unit reported by a Tokenizer.
//
// Start and End are rune offsets; End is inclusive.
type Token struct {
	Start int
	End   int
	Tags  Tags
}

// Len returns the number of runes the token covers, or 0 for an inverted
// token.
func (t Token) Len() int {
	if t.End < t.Start {
		return 0
	}
	return t.End - t.Start + 1
}

// Tokenizer maps a full buffer text to an ordered token list.
//
// Implementations must not retain text. A failing tokenizer returns no
// tokens; the caller treats that as "no highlighting".
type Tokenizer interface {
	Tokenize(text string) []Token
}

// TokenizerFunc adapts a plain function to Tokenizer.
type TokenizerFunc func(text string) []Token

func (f TokenizerFunc) Tokenize(text string) []Token { return f(text) }
