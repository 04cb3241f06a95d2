package parser

import "testing"

func TestLexerTokens(t *testing.T) {
	l := NewLexer(`a + 1.5 * "hi" and not b[0] // True False None`)

	want := []TokenType{
		TOKEN_IDENTIFIER, TOKEN_PLUS, TOKEN_FLOAT, TOKEN_STAR, TOKEN_STRING,
		TOKEN_AND, TOKEN_NOT, TOKEN_IDENTIFIER, TOKEN_LBRACKET, TOKEN_INT,
		TOKEN_RBRACKET, TOKEN_DSLASH, TOKEN_TRUE, TOKEN_FALSE, TOKEN_NONE,
		TOKEN_EOF,
	}

	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w {
			t.Fatalf("token %d: got %s, want %s (value %q)", i, tok.Type, w, tok.Value)
		}
	}
}

func TestLexerStringEscape(t *testing.T) {
	l := NewLexer(`"a\"b"`)
	tok := l.NextToken()
	if tok.Type != TOKEN_STRING {
		t.Fatalf("got %s, want STRING", tok.Type)
	}
	if tok.Value != `a\"b` {
		t.Errorf("raw value = %q, want %q", tok.Value, `a\"b`)
	}
}
