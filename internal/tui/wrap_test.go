package tui

import (
	"reflect"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestWrapWordsBreaksOnSpaces(t *testing.T) {
	got := wrapWords("el límite de tu lenguaje es el límite", 12)
	want := []string{"el límite de", "tu lenguaje", "es el límite"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapWordsSplitsLongWords(t *testing.T) {
	got := wrapWords("abcdefghij xy", 4)
	want := []string{"abcd", "efgh", "ij", "xy"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapWordsRespectsWideRunes(t *testing.T) {
	for _, line := range wrapWords("日本語 の 練習 を 毎日", 6) {
		if runewidth.StringWidth(line) > 6 {
			t.Fatalf("line %q wider than 6 cells", line)
		}
	}
}

func TestWrapWordsNoWidth(t *testing.T) {
	if got := wrapWords("a b", 0); len(got) != 1 || got[0] != "a b" {
		t.Fatalf("expected unwrapped text, got %q", got)
	}
}
