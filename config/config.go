/*
 * AGC - Configuration file parser.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package config parses the simulator's line-oriented configuration file:
// '#' starts a comment, blank lines are ignored, everything else is a
// "key = value" pair. A condensed form of the line-oriented convention
// used by the bigger S/370 config parser, cut down to the handful of
// settings this simulator needs.
package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Config holds the simulator's run-time settings.
type Config struct {
	Program          string // path to the binary program image
	LogFile          string // path to the log file, "" for stderr
	LogLevel         string // one of debug, info, warn, error
	FixedBank        uint8  // fixed bank the program loads into
	InstructionDelay int    // nanoseconds of delay injected between steps, 0 for none
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{LogLevel: "info"}
}

// Parse reads key = value lines from r into a copy of base.
func Parse(r io.Reader, base Config) (Config, error) {
	cfg := base
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return cfg, fmt.Errorf("config: line %d: missing '=' in %q", lineNumber, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if err := cfg.set(key, value); err != nil {
			return cfg, fmt.Errorf("config: line %d: %w", lineNumber, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) set(key, value string) error {
	switch key {
	case "program":
		c.Program = value
	case "logfile":
		c.LogFile = value
	case "loglevel":
		switch value {
		case "debug", "info", "warn", "error":
			c.LogLevel = value
		default:
			return fmt.Errorf("unrecognized loglevel %q", value)
		}
	case "fixedbank":
		n, err := strconv.ParseUint(value, 0, 8)
		if err != nil {
			return fmt.Errorf("bad fixedbank %q: %w", value, err)
		}
		c.FixedBank = uint8(n)
	case "instructiondelay":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("bad instructiondelay %q: %w", value, err)
		}
		c.InstructionDelay = n
	default:
		return fmt.Errorf("unrecognized option %q", key)
	}
	return nil
}
