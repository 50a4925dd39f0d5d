package stream

import (
	"regexp"
	"strings"

	"github.com/slashgen-ai/slashgen/pkg/types"
)

// fencedBlock matches fenced code blocks tagged with a shell language.
var fencedBlock = regexp.MustCompile("(?s)```(?:bash|sh|shell|zsh)[ \t]*\n(.*?)```")

// ExtractCommands pulls discrete command strings out of accumulated response
// text. The fenced-block strategy runs first; the marker-line fallback is
// used only when it finds zero matches. Order follows first occurrence in
// the source text and duplicates are preserved.
func ExtractCommands(text string) []string {
	if commands := ExtractFenced(text); len(commands) > 0 {
		return commands
	}
	return ExtractMarkerLines(text)
}

// ExtractFenced returns the trimmed inner text of every shell-tagged fenced
// code block, in source order.
func ExtractFenced(text string) []string {
	matches := fencedBlock.FindAllStringSubmatch(text, -1)
	commands := make([]string, 0, len(matches))
	for _, m := range matches {
		if command := strings.TrimSpace(m[1]); command != "" {
			commands = append(commands, command)
		}
	}
	return commands
}

// ExtractMarkerLines returns every line that starts with the command marker
// and carries at least one double-dash flag token.
func ExtractMarkerLines(text string) []string {
	var commands []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, types.CommandMarker) && strings.Contains(line, "--") {
			commands = append(commands, line)
		}
	}
	return commands
}
