package locale

import (
	"testing"

	"golang.org/x/text/language"
)

func TestDefaultCatalogTokens(t *testing.T) {
	c := Default()
	cases := map[MessageID]string{
		MsgGlobalNamespace: "<global namespace>",
		MsgError:           "<error>",
		MsgNull:            "<null>",
		MsgVoid:            "void",
		MsgMethodGroup:     "method group",
		MsgArgList:         "__arglist",
	}
	for id, want := range cases {
		if got := c.Token(id); got != want {
			t.Fatalf("Token(%s) = %q, want %q", id, got, want)
		}
	}
}

func TestMatchRegionalTag(t *testing.T) {
	c, err := Match("ru-RU")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if c.Tag() != language.Russian {
		t.Fatalf("expected russian catalog, got %v", c.Tag())
	}
	if got := c.Token(MsgError); got != "<ошибка>" {
		t.Fatalf("unexpected error marker %q", got)
	}
}

func TestMatchUnsupportedFallsBackToEnglish(t *testing.T) {
	c, err := Match("ja")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if c.Tag() != language.English {
		t.Fatalf("expected english fallback, got %v", c.Tag())
	}
}

func TestMatchInvalidTag(t *testing.T) {
	if _, err := Match("not a tag!"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestEveryMessageHasTranslations(t *testing.T) {
	for tag, table := range tables {
		for id := MsgInvalid + 1; id < msgCount; id++ {
			if _, ok := table[id]; !ok {
				t.Fatalf("%v: missing text for %s", tag, id)
			}
		}
	}
}

func TestParseMessageIDRoundTrip(t *testing.T) {
	for id := MsgInvalid + 1; id < msgCount; id++ {
		got, ok := ParseMessageID(id.String())
		if !ok || got != id {
			t.Fatalf("ParseMessageID(%q) = %v, %v", id.String(), got, ok)
		}
	}
	if _, ok := ParseMessageID("nope"); ok {
		t.Fatalf("unexpected match for unknown key")
	}
}
