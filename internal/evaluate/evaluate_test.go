package evaluate

import "testing"

func TestLexicalIdenticalText(t *testing.T) {
	s := Lexical("The answer is 4.", "The answer is 4.", 0.7)
	if s.Ratio != 1.0 {
		t.Errorf("Ratio = %v, want 1.0", s.Ratio)
	}
	if !s.Agree {
		t.Error("identical text must agree for any threshold < 1.0")
	}
}

func TestLexicalDisjointStrings(t *testing.T) {
	s := Lexical("abc", "xyz", 0.1)
	if s.Ratio != 0.0 {
		t.Errorf("Ratio = %v, want 0.0", s.Ratio)
	}
	if s.Agree {
		t.Error("disjoint strings must not agree")
	}
}

func TestLexicalShortAnswerInsideFullSentence(t *testing.T) {
	// A bare "4" against "The answer is 4." counts as agreement: the short
	// form aligns perfectly inside the fuller sentence.
	s := Lexical("4", "The answer is 4. Basic arithmetic.", 0.7)
	if s.Ratio != 1.0 {
		t.Errorf("Ratio = %v, want 1.0", s.Ratio)
	}
	if !s.Agree {
		t.Error("embedded short answer should register as agreement")
	}
}

func TestLexicalUsesFirstSentenceOnly(t *testing.T) {
	a := "Yes. Everything after the first period is ignored."
	b := "yes. Completely different elaboration follows here."
	s := Lexical(a, b, 0.7)
	if s.Ratio != 1.0 {
		t.Errorf("Ratio = %v, want 1.0 (first sentences both reduce to %q)", s.Ratio, "yes")
	}
}

func TestLexicalNormalizesCase(t *testing.T) {
	if s := Lexical("FOUR", "four", 0.7); s.Ratio != 1.0 {
		t.Errorf("Ratio = %v, want 1.0", s.Ratio)
	}
}

func TestLexicalThresholdIsExclusive(t *testing.T) {
	// "ab" vs "ax" scores exactly 0.5; the verdict must fail when the ratio
	// equals the threshold.
	if s := Lexical("ab", "ax", 0.5); s.Ratio != 0.5 || s.Agree {
		t.Errorf("got ratio %v agree %v, want 0.5 and no agreement", s.Ratio, s.Agree)
	}
	if s := Lexical("ab", "ax", 0.49); !s.Agree {
		t.Error("ratio above threshold should agree")
	}
}

func TestLexicalEmptyInputs(t *testing.T) {
	if s := Lexical("", "", 0.7); s.Ratio != 1.0 {
		t.Errorf("both empty: Ratio = %v, want 1.0", s.Ratio)
	}
	if s := Lexical("", "something", 0.1); s.Ratio != 0.0 || s.Agree {
		t.Errorf("one empty: got ratio %v agree %v, want 0.0 and no agreement", s.Ratio, s.Agree)
	}
}

func TestRatioSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"the answer is 4", "4"},
		{"kitten", "sitting"},
		{"alpha beta", "beta alpha"},
	}
	for _, p := range pairs {
		if Ratio(p[0], p[1]) != Ratio(p[1], p[0]) {
			t.Errorf("Ratio(%q, %q) not symmetric", p[0], p[1])
		}
	}
}
