// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// args.go - Argument parsing for the installer commands.

package cli

import (
	"fmt"
	"strings"
)

// =============================================================================
// FLAG DEFINITIONS
// =============================================================================

// flagDef describes one accepted flag.
type flagDef struct {
	long   string
	short  string
	isBool bool
	cmds   []Command // nil: accepted by every command
}

func (d flagDef) allowedFor(cmd Command) bool {
	if d.cmds == nil {
		return true
	}
	for _, c := range d.cmds {
		if c == cmd {
			return true
		}
	}
	return false
}

var flagDefs = []flagDef{
	// Global
	{long: "config"},
	{long: "log-level"},
	{long: "no-registry", isBool: true},
	{long: "help", short: "h", isBool: true},
	{long: "version", isBool: true},

	// install
	{long: "file", short: "f", cmds: []Command{CmdInstall}},
	{long: "description", short: "d", cmds: []Command{CmdInstall}},
	{long: "icon", short: "i", cmds: []Command{CmdInstall}},
	{long: "target", short: "t", cmds: []Command{CmdInstall}},
	{long: "category", short: "c", cmds: []Command{CmdInstall}},
	{long: "on-conflict", cmds: []Command{CmdInstall}},
	{long: "dry-run", isBool: true, cmds: []Command{CmdInstall}},
	{long: "tui", isBool: true, cmds: []Command{CmdInstall, CmdUninstall}},

	// install + uninstall
	{long: "name", short: "n", cmds: []Command{CmdInstall, CmdUninstall}},
	{long: "yes", short: "y", isBool: true, cmds: []Command{CmdInstall, CmdUninstall}},

	// uninstall
	{long: "keep-bundle", isBool: true, cmds: []Command{CmdUninstall}},

	// list
	{long: "json", isBool: true, cmds: []Command{CmdList}},
}

func lookupFlag(name string) (flagDef, bool) {
	for _, d := range flagDefs {
		if d.long == name || (d.short != "" && d.short == name) {
			return d, true
		}
	}
	return flagDef{}, false
}

// =============================================================================
// ARG PARSER
// =============================================================================

// ArgParser holds parsed command-line arguments.
//
// Supported forms:
//
//	--flag value     long flag with a value
//	--flag=value     long flag with an inline value
//	-f value         short flag
//	--flag           boolean flag
//	--               end of flags
//
// Flags are stored under their long name, so Flag("n") and Flag("name")
// are the same lookup.
type ArgParser struct {
	flags      map[string]string
	boolFlags  map[string]bool
	positional []string
}

// NewArgParser parses raw. Unknown flags and value flags without a value
// are usage errors.
func NewArgParser(raw []string) (*ArgParser, error) {
	p := &ArgParser{
		flags:     make(map[string]string),
		boolFlags: make(map[string]bool),
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]

		if arg == "--" {
			p.positional = append(p.positional, raw[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			p.positional = append(p.positional, arg)
			continue
		}

		name := strings.TrimLeft(arg, "-")
		value, hasValue := "", false
		if idx := strings.IndexByte(name, '='); idx >= 0 {
			name, value, hasValue = name[:idx], name[idx+1:], true
		}

		def, ok := lookupFlag(name)
		if !ok {
			return nil, usageErrorf("unknown flag: %s", arg)
		}

		if def.isBool {
			b := true
			if hasValue {
				parsed, err := ParseBoolString(value)
				if err != nil {
					return nil, usageErrorf("invalid value for --%s: %q", def.long, value)
				}
				b = parsed
			}
			p.boolFlags[def.long] = b
			continue
		}

		if !hasValue {
			if i+1 >= len(raw) {
				return nil, usageErrorf("flag --%s needs a value", def.long)
			}
			i++
			value = raw[i]
		}
		p.flags[def.long] = value
	}

	return p, nil
}

// Flag returns the value of a string flag, or "" if absent.
func (p *ArgParser) Flag(name string) string {
	v, _ := p.Lookup(name)
	return v
}

// Lookup returns a string flag and whether it was given at all, so an
// explicit empty value can be told apart from a missing flag.
func (p *ArgParser) Lookup(name string) (string, bool) {
	if def, ok := lookupFlag(strings.TrimLeft(name, "-")); ok {
		name = def.long
	}
	v, ok := p.flags[name]
	return v, ok
}

// OptionalFlag returns a pointer to the flag value, or nil if absent.
func (p *ArgParser) OptionalFlag(name string) *string {
	if v, ok := p.Lookup(name); ok {
		return &v
	}
	return nil
}

// BoolFlag returns the value of a boolean flag, false if absent.
func (p *ArgParser) BoolFlag(name string) bool {
	if def, ok := lookupFlag(strings.TrimLeft(name, "-")); ok {
		name = def.long
	}
	return p.boolFlags[name]
}

// Positional returns the positional argument at index, or "".
func (p *ArgParser) Positional(index int) string {
	if index < 0 || index >= len(p.positional) {
		return ""
	}
	return p.positional[index]
}

// PositionalCount returns the number of positional arguments.
func (p *ArgParser) PositionalCount() int {
	return len(p.positional)
}

// checkAllowed rejects flags that do not apply to cmd.
func (p *ArgParser) checkAllowed(cmd Command) error {
	check := func(name string) error {
		def, _ := lookupFlag(name)
		if !def.allowedFor(cmd) {
			return usageErrorf("flag --%s is not valid for %s", name, cmd)
		}
		return nil
	}
	for name := range p.flags {
		if err := check(name); err != nil {
			return err
		}
	}
	for name := range p.boolFlags {
		if err := check(name); err != nil {
			return err
		}
	}
	return nil
}

// ParseBoolString parses true/false, yes/no, y/n, 1/0, on/off.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "on":
		return true, nil
	case "false", "no", "n", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value: %s", s)
	}
}
