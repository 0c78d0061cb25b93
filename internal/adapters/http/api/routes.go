// Package api declares HTTP contracts and route registration helpers.
package api

import "strings"

// splitActivityPath parses "/activities/{name}/{action}" into its name and
// action parts. The split is on the last slash so activity names containing
// slashes are the one shape this cannot represent; names with spaces or
// punctuation pass through untouched (ServeMux hands us the decoded path).
func splitActivityPath(path string) (name, action string, ok bool) {
	rest := strings.TrimPrefix(path, "/activities/")
	i := strings.LastIndex(rest, "/")
	if i <= 0 || i == len(rest)-1 {
		return "", "", false
	}
	return rest[:i], rest[i+1:], true
}
