package token

import "testing"

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexerBasicForms(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		kinds []Kind
	}{
		{"register-R", "R1", []Kind{Reg, EOF}},
		{"register-dollar", "$1", []Kind{Reg, EOF}},
		{"memory-M", "M2", []Kind{Memory, EOF}},
		{"memory-hash", "#2", []Kind{Memory, EOF}},
		{"port-name", "%TEXT", []Kind{Port, EOF}},
		{"port-num", "%5", []Kind{PortNum, EOF}},
		{"label", ".end", []Kind{Label, EOF}},
		{"macro", "@max", []Kind{Macro, EOF}},
		{"relative", "~-2", []Kind{Relative, EOF}},
		{"hex-int", "0x1F", []Kind{Int, EOF}},
		{"dec-int", "42", []Kind{Int, EOF}},
		{"brackets", "[ ]", []Kind{LeftSquare, White, RightSquare, EOF}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := kinds(NewLexer(tc.src).Tokenize())
			if len(got) != len(tc.kinds) {
				t.Fatalf("%s: got %v, want %v", tc.src, got, tc.kinds)
			}
			for i := range got {
				if got[i] != tc.kinds[i] {
					t.Fatalf("%s: token %d got %v, want %v", tc.src, i, got[i], tc.kinds[i])
				}
			}
		})
	}
}

func TestLexerRelativeValue(t *testing.T) {
	toks := NewLexer("~+3").Tokenize()
	if toks[0].Value != 3 {
		t.Fatalf("want 3, got %d", toks[0].Value)
	}
	toks = NewLexer("~-3").Tokenize()
	if toks[0].Value != -3 {
		t.Fatalf("want -3, got %d", toks[0].Value)
	}
}

func TestLexerCharLiteral(t *testing.T) {
	toks := NewLexer(`'a'`).Tokenize()
	want := []Kind{Char, Text, Char, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %v", kinds(toks))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: got %v want %v", i, toks[i].Kind, k)
		}
	}
}

func TestLexerEscapedChar(t *testing.T) {
	toks := NewLexer(`'\n'`).Tokenize()
	want := []Kind{Char, Escape, Char, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %v", kinds(toks))
	}
	if toks[1].Value != int64('n') {
		t.Fatalf("escape value = %d, want %d", toks[1].Value, 'n')
	}
}

func TestLexerString(t *testing.T) {
	toks := NewLexer(`"ab"`).Tokenize()
	want := []Kind{String, Text, String, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %v", kinds(toks))
	}
	if toks[1].Text != "ab" {
		t.Fatalf("text = %q", toks[1].Text)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	toks := NewLexer(`"ab`).Tokenize()
	if toks[len(toks)-1].Kind != EOF {
		t.Fatalf("expected trailing EOF, got %v", kinds(toks))
	}
	for _, tok := range toks {
		if tok.Kind == String && tok.Pos.Col > 1 {
			t.Fatalf("unexpected closing String token: %v", toks)
		}
	}
}

func TestLexerLineFeedStopsOnNewline(t *testing.T) {
	toks := NewLexer("JMP .end\nHLT").Tokenize()
	foundLF := false
	for _, tok := range toks {
		if tok.Kind == LineFeed {
			foundLF = true
		}
	}
	if !foundLF {
		t.Fatalf("expected a LineFeed token, got %v", kinds(toks))
	}
}
