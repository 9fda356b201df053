package main

import (
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "bare command",
			text: "/check",
			want: "/check",
		},
		{
			name: "group mention suffix",
			text: "/check@HackFinderBot",
			want: "/check",
		},
		{
			name: "trailing argument",
			text: "/check now",
			want: "/check",
		},
		{
			name: "surrounding whitespace",
			text: "  /active  ",
			want: "/active",
		},
		{
			name: "plain chatter keeps first word",
			text: "hello there",
			want: "hello",
		},
		{
			name: "empty message",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseCommand(tt.text); got != tt.want {
				t.Errorf("parseCommand(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
