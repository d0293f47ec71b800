// Package command splits inbound chat text into a bot command and its seed.
package command

import (
	"strings"
	"unicode"
)

const (
	// Prefix marks text as a command.
	Prefix = "/"
	// Help is the usage command. It is recognized before style lookup.
	Help = "/help"
)

// Kind classifies a piece of inbound text.
type Kind int

const (
	// Empty text is ignored without a reply.
	Empty Kind = iota
	// HelpRequested is any /help invocation, trailing argument included.
	HelpRequested
	// PlainText does not start with Prefix.
	PlainText
	// Command is a prefixed token with an optional seed.
	Command
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case HelpRequested:
		return "help"
	case PlainText:
		return "plain_text"
	case Command:
		return "command"
	default:
		return "invalid"
	}
}

// Parsed is the result of Parse. Name and Seed are only set for Command
// (Name is also set for HelpRequested). An empty Seed means no seed was given.
type Parsed struct {
	Kind Kind
	Name string
	Seed string
}

// HasSeed reports whether a non-blank seed followed the command.
func (p Parsed) HasSeed() bool { return p.Seed != "" }

// Parse classifies text. The command token ends at the first whitespace run;
// the rest, trimmed, is the seed with its inner spacing kept verbatim.
//
// botUsername, when non-empty, lets group-style "/cmd@botname" tokens resolve
// to "/cmd". Tokens addressed to another bot are left untouched.
func Parse(text, botUsername string) Parsed {
	text = strings.TrimSpace(text)
	if text == "" {
		return Parsed{Kind: Empty}
	}
	if !strings.HasPrefix(text, Prefix) {
		return Parsed{Kind: PlainText}
	}

	name, rest := text, ""
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		name, rest = text[:i], text[i:]
	}
	name = stripMention(name, botUsername)

	if name == Help {
		return Parsed{Kind: HelpRequested, Name: name}
	}
	return Parsed{Kind: Command, Name: name, Seed: strings.TrimSpace(rest)}
}

func stripMention(name, botUsername string) string {
	if botUsername == "" {
		return name
	}
	at := strings.LastIndexByte(name, '@')
	if at <= 0 {
		return name
	}
	if strings.EqualFold(name[at+1:], strings.TrimPrefix(botUsername, "@")) {
		return name[:at]
	}
	return name
}
