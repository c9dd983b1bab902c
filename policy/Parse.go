package policy

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samuelfneumann/gridmdp/environment/gridworld"
)

// Parse reads a policy. Rows follow the same rules as map rows; each
// character selects an action: N, E, S, and W move the agent and any
// other character selects no action. The dimensions of the policy are
// not checked against any map here.
func Parse(r io.Reader) (*Policy, error) {
	rows, err := gridworld.ScanRows(r, "parse policy")
	if err != nil {
		return nil, err
	}

	width, height := len(rows[0]), len(rows)
	actions := make([]gridworld.Action, 0, width*height)
	for _, row := range rows {
		for _, char := range row {
			actions = append(actions, gridworld.ActionOf(char))
		}
	}

	return New(actions, width, height), nil
}

// ParseString parses a policy from a string
func ParseString(s string) (*Policy, error) {
	return Parse(strings.NewReader(s))
}

// Load parses the policy stored in a file
func Load(path string) (*Policy, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load policy: %w", err)
	}
	defer file.Close()

	return Parse(file)
}
