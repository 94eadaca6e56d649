package vtest

import (
	"strings"
	"testing"
)

// ExpectMarkup fails the test unless the node's markup matches want exactly.
func ExpectMarkup(t *testing.T, n *Node, want string) {
	t.Helper()
	if got := n.Markup(); got != want {
		t.Errorf("markup mismatch:\n  got:  %s\n  want: %s", got, want)
	}
}

// ExpectContains fails the test unless the node's markup contains substr.
func ExpectContains(t *testing.T, n *Node, substr string) {
	t.Helper()
	if got := n.Markup(); !strings.Contains(got, substr) {
		t.Errorf("markup %q does not contain %q", got, substr)
	}
}

// ExpectNotContains fails the test if the node's markup contains substr.
func ExpectNotContains(t *testing.T, n *Node, substr string) {
	t.Helper()
	if got := n.Markup(); strings.Contains(got, substr) {
		t.Errorf("markup %q should not contain %q", got, substr)
	}
}
