package host

import "strings"

// Subcommands are the Plug subcommands offered by completion.
var Subcommands = []string{"update", "list", "load"}

// Complete returns completions for the Plug command. text is everything typed
// after "Plug" and word is the word under the cursor. Until a subcommand has
// been typed, subcommands are offered; after it, plugin names.
func Complete(text, word string, names []string) []string {
	fields := strings.Fields(text)
	if len(fields) > 0 && isSubcommand(fields[0]) && (len(fields) > 1 || word == "") {
		return withPrefix(names, word)
	}
	return withPrefix(Subcommands, word)
}

func isSubcommand(s string) bool {
	for _, sub := range Subcommands {
		if s == sub {
			return true
		}
	}
	return false
}

func withPrefix(candidates []string, prefix string) []string {
	out := []string{}
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}
