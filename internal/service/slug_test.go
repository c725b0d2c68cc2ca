package service

import "testing"

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Hello World", want: "hello world"},
		{input: "hello world", want: "hello world"},
		{input: "Hello-World", want: "hello world"},
		{input: "hello_world", want: "hello world"},
		{input: "  Hello   World  ", want: "hello world"},
		{input: "helloWorld", want: "hello world"},
		{input: "XMLHttpRequest", want: "xml http request"},
		{input: "Day 1", want: "day 1"},
		{input: "day1", want: "day 1"},
		{input: "Don't Stop", want: "dont stop"},
		{input: "Crème Brûlée", want: "creme brulee"},
		{input: "--foo--bar--", want: "foo bar"},
		{input: "", want: ""},
		{input: "!!!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeTitle(tt.input); got != tt.want {
				t.Fatalf("NormalizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlugifyRoundTrips(t *testing.T) {
	titles := []string{"Hello World", "My First Post", "Crème Brûlée", "Go 1.22 Release Notes"}
	for _, title := range titles {
		slug := Slugify(title)
		if NormalizeTitle(slug) != NormalizeTitle(title) {
			t.Fatalf("slug %q for %q does not normalize back (%q vs %q)", slug, title, NormalizeTitle(slug), NormalizeTitle(title))
		}
	}

	if got := Slugify("My First Post"); got != "my-first-post" {
		t.Fatalf("Slugify = %q, want %q", got, "my-first-post")
	}
}
