// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"fmt"
	"strings"
)

// Answer is a parsed yes/no response.
type Answer int

const (
	AnswerUnknown Answer = iota
	AnswerYes
	AnswerNo
)

func (a Answer) String() string {
	switch a {
	case AnswerYes:
		return "yes"
	case AnswerNo:
		return "no"
	default:
		return "unknown"
	}
}

// Policy decides which responses count as "yes".
type Policy int

const (
	// PolicyRelaxed accepts y/yes in any letter case.
	PolicyRelaxed Policy = iota
	// PolicyStrict accepts only a lowercase "y".
	PolicyStrict
)

// ParsePolicy maps the configuration names "relaxed" and "strict".
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "relaxed":
		return PolicyRelaxed, nil
	case "strict":
		return PolicyStrict, nil
	default:
		return PolicyRelaxed, fmt.Errorf("unknown confirmation policy %q", name)
	}
}

// ParseAnswer classifies a response under the policy.
func (p Policy) ParseAnswer(response string) Answer {
	response = strings.TrimSpace(response)
	if p == PolicyStrict {
		switch response {
		case "y":
			return AnswerYes
		case "n":
			return AnswerNo
		default:
			return AnswerUnknown
		}
	}

	switch strings.ToLower(response) {
	case "y", "yes":
		return AnswerYes
	case "n", "no":
		return AnswerNo
	default:
		return AnswerUnknown
	}
}

// Affirmative reports whether response is a "yes". Anything that is not
// a yes, including unrecognised input, is a decline.
func (p Policy) Affirmative(response string) bool {
	return p.ParseAnswer(response) == AnswerYes
}
