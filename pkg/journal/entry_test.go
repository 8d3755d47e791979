package journal

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestKeyRoundTrip(t *testing.T) {
	for _, date := range []string{"2024-03-01", "1999-12-31", "2024-02-29"} {
		got, ok := DateFromKey(Key(date))
		if !ok || got != date {
			t.Errorf("DateFromKey(Key(%q)) = %q, %v", date, got, ok)
		}
	}
	if _, ok := DateFromKey("settings-theme"); ok {
		t.Error("expected foreign key to be rejected")
	}
}

func TestLegacyImageMirror(t *testing.T) {
	e := Entry{Date: "2024-03-01", Title: "t", Text: "x", Images: []string{"uri1", "uri2"}}
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	raw := map[string]any{}
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if raw["image"] != "uri1" {
		t.Fatalf("expected image mirror uri1, got %v", raw["image"])
	}
	if _, ok := raw["date"]; ok {
		t.Fatal("date is carried by the key, not the record")
	}

	legacy := Entry{}
	if err := json.Unmarshal([]byte(`{"text":"old","image":"uriX"}`), &legacy); err != nil {
		t.Fatalf("unmarshal legacy: %v", err)
	}
	if len(legacy.Images) != 1 || legacy.Images[0] != "uriX" {
		t.Fatalf("expected images [uriX], got %v", legacy.Images)
	}
}

func TestNoImagesWritesNullMirror(t *testing.T) {
	b, err := json.Marshal(Entry{Title: "t", Text: "x"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"image":null`) || !strings.Contains(string(b), `"images":[]`) {
		t.Fatalf("unexpected record %s", b)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		entry Entry
		want  Reason
	}{
		{"blank title", Entry{Date: "2024-03-01", Title: "  ", Text: "x"}, EmptyTitle},
		{"blank text", Entry{Date: "2024-03-01", Title: "t", Text: "\n"}, EmptyBody},
		{"long title", Entry{Date: "2024-03-01", Title: strings.Repeat("é", 51), Text: "x"}, TitleTooLong},
		{"bad date", Entry{Date: "2024-02-30", Title: "t", Text: "x"}, InvalidDate},
		{"bad format", Entry{Date: "03/01/2024", Title: "t", Text: "x"}, InvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := Validate(tc.entry); !IsReason(err, tc.want) {
				t.Fatalf("expected %s, got %v", tc.want, err)
			}
		})
	}
	if err := Validate(Entry{Date: "2024-03-01", Title: strings.Repeat("a", 50), Text: "x"}); err != nil {
		t.Fatalf("expected 50 character title to pass: %v", err)
	}
}

func TestPrepareDefaultsTitle(t *testing.T) {
	e := Prepare(Entry{Date: "2024-03-01", Text: "x"})
	if e.Title != "Journal Entry - 2024-03-01" {
		t.Fatalf("unexpected title %q", e.Title)
	}
	kept := Prepare(Entry{Date: "2024-03-01", Title: "Morning"})
	if kept.Title != "Morning" {
		t.Fatalf("title should be kept, got %q", kept.Title)
	}
}

func TestNextDay(t *testing.T) {
	got, err := NextDay("2024-02-28")
	if err != nil || got != "2024-02-29" {
		t.Fatalf("NextDay = %q, %v", got, err)
	}
	got, _ = NextDay("2023-12-31")
	if got != "2024-01-01" {
		t.Fatalf("NextDay across year = %q", got)
	}
	if _, err := NextDay("nope"); !IsReason(err, InvalidDate) {
		t.Fatalf("expected InvalidDate, got %v", err)
	}
}

func TestEqualComparesImagesByValue(t *testing.T) {
	a := Entry{Date: "d", Images: []string{"x"}}
	b := Entry{Date: "d", Images: append([]string{}, "x")}
	if !a.Equal(b) {
		t.Fatal("expected equal entries")
	}
	b.Images[0] = "y"
	if a.Equal(b) {
		t.Fatal("expected different entries")
	}
	if !(Entry{}).Equal(Entry{Images: []string{}}) {
		t.Fatal("nil and empty image lists should compare equal")
	}
}
