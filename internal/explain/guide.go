package explain

// GuideEntry is one line of the syntax cheat sheet.
type GuideEntry struct {
	Syntax  string
	Meaning string
	Example string
}

// GuideSection groups related cheat sheet entries.
type GuideSection struct {
	Title   string
	Entries []GuideEntry
}

var guide = []GuideSection{
	{
		Title: "Basic metacharacters",
		Entries: []GuideEntry{
			{".", "Any character except newline", "`a.c` matches \"abc\", \"adc\", \"a1c\""},
			{"^", "Start of string", "`^hello` matches \"hello world\" but not \"say hello\""},
			{"$", "End of string", "`world$` matches \"hello world\" but not \"world peace\""},
			{"*", "Zero or more occurrences", "`ab*c` matches \"ac\", \"abc\", \"abbc\""},
			{"+", "One or more occurrences", "`ab+c` matches \"abc\", \"abbc\" but not \"ac\""},
			{"?", "Zero or one occurrence", "`colou?r` matches \"color\" and \"colour\""},
			{"{n}", "Exactly n occurrences", "`a{3}` matches \"aaa\" but not \"aa\""},
			{"{n,}", "At least n occurrences", "`a{2,}` matches \"aa\", \"aaa\" but not \"a\""},
			{"{n,m}", "Between n and m occurrences", "`a{2,4}` matches \"aa\" to \"aaaa\""},
		},
	},
	{
		Title: "Character classes",
		Entries: []GuideEntry{
			{"[abc]", "One of a, b or c", "`[aeiou]` matches any vowel"},
			{"[^abc]", "Any character except a, b and c", "`[^0-9]` matches any non-digit"},
			{"[a-z]", "Any character between a and z", "`[a-z]` matches a lowercase letter"},
			{`\d`, "Digit ([0-9])", "`\\d{3}` matches \"123\""},
			{`\D`, "Non-digit", "`\\D+` matches a run without digits"},
			{`\w`, "Word character ([0-9A-Za-z_])", "`\\w+` matches \"example_123\""},
			{`\W`, "Non-word character", "`\\W` matches \"!\", \"@\", \"#\""},
			{`\s`, "Whitespace", "`word\\snext` matches \"word next\""},
			{`\S`, "Non-whitespace", "`\\S+` matches a run without spaces"},
		},
	},
	{
		Title: "Groups and alternation",
		Entries: []GuideEntry{
			{"(...)", "Capturing group", "`(\\d{2})-(\\d{2})-(\\d{4})` captures day, month and year"},
			{"(?:...)", "Non-capturing group", "`(?:https?://)?example\\.com`"},
			{"(?P<name>...)", "Named group", "`(?P<day>\\d{2})-(?P<month>\\d{2})`"},
			{"a|b", "a or b", "`cat|dog` matches \"cat\" or \"dog\""},
		},
	},
	{
		Title: "Flags",
		Entries: []GuideEntry{
			{"i", "Ignore case", "`abc` also matches \"ABC\" and \"Abc\""},
			{"m", "Multiline: ^ and $ match at line boundaries", "`^\\d+$` matches each numeric line of a block"},
			{"s", "Dot matches newline", "`a.b` matches \"a\\nb\""},
			{"x", "Verbose: whitespace and # comments are ignored", "`\\d{2} # day` is `\\d{2}`"},
		},
	},
}

// Guide returns the syntax cheat sheet. The result is a copy.
func Guide() []GuideSection {
	out := make([]GuideSection, len(guide))
	for i, s := range guide {
		out[i] = GuideSection{Title: s.Title, Entries: append([]GuideEntry(nil), s.Entries...)}
	}
	return out
}
