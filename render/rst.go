package render

import "strings"

// heading writes a reference line. The "aa-bb" marker lets a later LaTeX pass
// split the line into left and right parts.
func (s *session) heading(text string) {
	s.out.line("aa-bb **" + text + "**")
}

// rule writes a heading followed by a horizontal rule.
func (s *session) rule(text string) {
	s.heading(text)
	s.out.line("")
	s.raw(`\vspace{-1mm}`, `\hrulefill`)
}

func (s *session) math(tex string) {
	s.out.line("", ".. math::", "", "  "+tex, "")
}

// raw writes LaTeX commands passed through to the typesetter.
func (s *session) raw(cmds ...string) {
	s.out.line("", ".. raw:: latex", "")

	for _, c := range cmds {
		s.out.line("   "+c, "")
	}
}

// literal writes a literal block.
func (s *session) literal(lines ...string) {
	s.out.line("", "::", "")
	s.out.line(lines...)
	s.out.line("")
}

// blank writes vertical space.
func (s *session) blank() {
	s.raw(`\vspace{4mm}`)
}

// text passes content through; content starting with "#" is a comment.
func (s *session) text(content string) {
	content = strings.TrimSpace(content)
	if content == "" || strings.HasPrefix(content, "#") {
		return
	}

	s.out.line(content)
}

// indent prefixes every line of s.
func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
