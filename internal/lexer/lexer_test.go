package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `var x, y: integer;
	x := x + 10;
	`

	tests := []struct {
		expectedLiteral string
		expectedType    TokenType
	}{
		{"var", VAR},
		{"x", IDENT},
		{",", COMMA},
		{"y", IDENT},
		{":", COLON},
		{"integer", INT},
		{";", SCOLON},
		{"x", IDENT},
		{":=", ASSIGN},
		{"x", IDENT},
		{"+", PLUS},
		{"10", INTCONST},
		{";", SCOLON},
		{"", EOF},
	}

	l := New(input)
	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s (literal=%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := `program procedure var integer begin end if then else while do repeat until read write and or`

	tests := []TokenType{
		PROG, PROC, VAR, INT, BEGIN, END, IF, THEN, ELSE,
		WHILE, DO, REPEAT, UNTIL, READ, WRITE, AND, OR, EOF,
	}

	l := New(input)
	for i, expected := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if tok.Type != expected {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s", i, expected, tok.Type)
		}
	}
}

func TestCaseInsensitiveKeywords(t *testing.T) {
	input := `BEGIN End IF Then WHILE WhILe`

	tests := []TokenType{BEGIN, END, IF, THEN, WHILE, WHILE}

	l := New(input)
	for i, expected := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if tok.Type != expected {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s", i, expected, tok.Type)
		}
	}
}

func TestMultiCharOperators(t *testing.T) {
	input := `:= <= >= <> < > = : ;`

	tests := []struct {
		literal string
		typ     TokenType
	}{
		{":=", ASSIGN},
		{"<=", LE},
		{">=", GE},
		{"<>", NE},
		{"<", LT},
		{">", GT},
		{"=", EQ},
		{":", COLON},
		{";", SCOLON},
	}

	l := New(input)
	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if tok.Type != tt.typ || tok.Literal != tt.literal {
			t.Fatalf("tests[%d] - expected %s(%q), got %s(%q)", i, tt.typ, tt.literal, tok.Type, tok.Literal)
		}
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New("x := 1 & 2;")

	for {
		tok, err := l.NextToken()
		if err != nil {
			lexErr, ok := err.(*LexError)
			if !ok {
				t.Fatalf("expected *LexError, got %T", err)
			}
			if lexErr.Char != '&' {
				t.Fatalf("expected illegal char '&', got %q", lexErr.Char)
			}
			return
		}
		if tok.Type == EOF {
			t.Fatal("reached EOF without encountering the illegal character")
		}
	}
}

func TestPositionTracking(t *testing.T) {
	input := "x\ny"

	l := New(input)

	tok, err := l.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Pos.Line != 1 || tok.Pos.Column != 1 {
		t.Fatalf("expected 1:1, got %s", tok.Pos)
	}

	tok, err = l.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Pos.Line != 2 || tok.Pos.Column != 1 {
		t.Fatalf("expected 2:1, got %s", tok.Pos)
	}
}

func TestBOMStripped(t *testing.T) {
	input := "\xEF\xBB\xBFx"
	l := New(input)

	tok, err := l.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Type != IDENT || tok.Literal != "x" {
		t.Fatalf("expected IDENT(x), got %s(%q)", tok.Type, tok.Literal)
	}
}
