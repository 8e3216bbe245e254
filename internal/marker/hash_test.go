package marker

import "testing"

func TestSumDeterministic(t *testing.T) {
	body := "use tabs\nindent with care\n"
	if Sum(body) != Sum(body) {
		t.Error("same body hashed differently across calls")
	}
}

func TestSumIgnoresLineEndings(t *testing.T) {
	unix := "use tabs\nindent with care\n"
	windows := "use tabs\r\nindent with care\r\n"
	if Sum(unix) != Sum(windows) {
		t.Errorf("CRLF body hashed differently: %s vs %s", Sum(unix), Sum(windows))
	}
}

func TestSumIgnoresTrailingWhitespace(t *testing.T) {
	plain := "use tabs\nindent\n"
	padded := "use tabs   \nindent\t\n\n\n"
	if Sum(plain) != Sum(padded) {
		t.Error("trailing whitespace registered as drift")
	}
}

func TestSumOfRenderedBodyMatchesCanonical(t *testing.T) {
	// A canonical body wrapped for rendering between markers must hash
	// the same as the bare canonical content.
	canonical := "use tabs\nindent with care\n"
	if Sum(NewBody(canonical)) != Sum(canonical) {
		t.Error("wrapping a body for rendering changed its hash")
	}
}

func TestSumDistinguishesBodies(t *testing.T) {
	if Sum("use tabs") == Sum("use spaces") {
		t.Error("different bodies hashed equal")
	}
}

func TestSumLength(t *testing.T) {
	if got := len(Sum("anything")); got != HashLen {
		t.Errorf("digest length = %d, want %d", got, HashLen)
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"a\r\nb\r\n", "a\nb"},
		{"a  \nb\t\n", "a\nb"},
		{"a\n\n\n", "a"},
		{"\n\na\n", "a"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
