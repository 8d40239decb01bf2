package config

import (
	"strings"
	"testing"
)

func TestParseLines(t *testing.T) {
	input := "# header comment\n" +
		"width = 80   # trailing comment\r\n" +
		"\n" +
		"   \t\n" +
		"no equals sign here\n" +
		" = orphan value\n" +
		"\tsprite_player\t=\t@ \n" +
		"audio_map=a:b:1;c:d\n" +
		"empty =\n"

	entries, err := ParseLines(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseLines() error: %v", err)
	}

	expected := []Entry{
		{Line: 2, Key: "width", Value: "80"},
		{Line: 7, Key: "sprite_player", Value: "@"},
		{Line: 8, Key: "audio_map", Value: "a:b:1;c:d"},
		{Line: 9, Key: "empty", Value: ""},
	}

	if len(entries) != len(expected) {
		t.Fatalf("got %d entries, expected %d: %+v", len(entries), len(expected), entries)
	}
	for i := range expected {
		if entries[i] != expected[i] {
			t.Errorf("entry %d = %+v, expected %+v", i, entries[i], expected[i])
		}
	}
}

func TestParseLinesValueKeepsEquals(t *testing.T) {
	entries, err := ParseLines(strings.NewReader("greeting = a=b\n"))
	if err != nil {
		t.Fatalf("ParseLines() error: %v", err)
	}
	if len(entries) != 1 || entries[0].Value != "a=b" {
		t.Errorf("entries = %+v, expected value %q", entries, "a=b")
	}
}

func TestParseLinesLongLineKeepsRest(t *testing.T) {
	input := "width=80\n" +
		"obstacles = " + strings.Repeat("10,10 ", 12000) + "\n" +
		"height=30\n" +
		"lang=en\n"

	entries, err := ParseLines(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseLines() error: %v", err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	expected := []string{"width", "obstacles", "height", "lang"}
	if strings.Join(keys, ",") != strings.Join(expected, ",") {
		t.Errorf("ParseLines() keys = %v, expected %v", keys, expected)
	}
}
