package xsd

import "testing"

func TestBooleanCodec(t *testing.T) {
	if SerializeBoolean(true) != "true" {
		t.Fatal("true must serialise to \"true\"")
	}
	if SerializeBoolean(false) != "false" {
		t.Fatal("false must serialise to \"false\"")
	}

	cases := []struct {
		input string
		value bool
		ok    bool
	}{
		{"true", true, true},
		{"false", false, true},
		{"1", true, true},
		{"0", false, true},
		{"yes", false, false},
		{"TRUE", false, false},
		{"True", false, false},
		{"", false, false},
		{"2", false, false},
	}
	for _, c := range cases {
		value, ok := DeserializeBoolean(c.input)
		if ok != c.ok || value != c.value {
			t.Fatalf("DeserializeBoolean(%q) = (%v, %v), want (%v, %v)", c.input, value, ok, c.value, c.ok)
		}
	}
}

func TestIntegerCodec(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 42, -1337, 9007199254740991} {
		lexical := SerializeInteger(v)
		parsed, ok := DeserializeInteger(lexical)
		if !ok || parsed != v {
			t.Fatalf("integer round trip failed for %d: got (%d, %v)", v, parsed, ok)
		}
	}
	if _, ok := DeserializeInteger("not a number"); ok {
		t.Fatal("expected no value for malformed integer")
	}
	if _, ok := DeserializeInteger("13.37"); ok {
		t.Fatal("expected no value for decimal lexical form")
	}
}

func TestDecimalCodec(t *testing.T) {
	for _, v := range []float64{0, 13.37, -0.5, 1e-3, 12345.6789} {
		lexical := SerializeDecimal(v)
		parsed, ok := DeserializeDecimal(lexical)
		if !ok || parsed != v {
			t.Fatalf("decimal round trip failed for %v: got (%v, %v)", v, parsed, ok)
		}
	}
	if SerializeDecimal(0.001) != "0.001" {
		t.Fatalf("decimal must serialise without exponent, got %s", SerializeDecimal(0.001))
	}
	if _, ok := DeserializeDecimal("not a number"); ok {
		t.Fatal("expected no value for malformed decimal")
	}
}

func TestNormalizeLocale(t *testing.T) {
	if NormalizeLocale("en-GB") != "en-gb" {
		t.Fatalf("unexpected normalisation: %s", NormalizeLocale("en-GB"))
	}
	if NormalizeLocale("nl") != "nl" {
		t.Fatal("lower-case tags must pass through")
	}
}
