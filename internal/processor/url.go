package processor

import "regexp"

// Template variables shared by every request URL
const (
	SchemeVariable = "scheme"
	HostVariable   = "host"
	PortVariable   = "port"

	// URLPrefix is the templated scheme and authority of a request URL
	URLPrefix = "{{" + SchemeVariable + "}}://{{" + HostVariable + "}}:{{" + PortVariable + "}}"
)

var (
	schemeRe    = regexp.MustCompile(`[hH][tT][tT][pP][sS]?://`)
	authorityRe = regexp.MustCompile(`://[^/]*`)
)

// TemplateURL rewrites the scheme of an absolute URL to {{scheme}} and its
// authority to {{host}}:{{port}}. URLs that do not match are left partially
// rewritten or untouched.
func TemplateURL(url string) string {
	url = replaceFirst(schemeRe, url, "{{"+SchemeVariable+"}}://")
	url = replaceFirst(authorityRe, url, "://{{"+HostVariable+"}}:{{"+PortVariable+"}}")
	return url
}

// replaceFirst replaces the leftmost match of re in s with the literal repl
func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}
