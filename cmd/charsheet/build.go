package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/avrellant/internal/content"
	"github.com/cory-johannsen/avrellant/internal/game/attribute"
	"github.com/cory-johannsen/avrellant/internal/game/character"
)

// choices are the selections a user makes on the command line.
type choices struct {
	Name       string
	Race       string
	Class      string
	Background string
	Level      int
	ArrayID    int
	Assign     string
	Skills     string
	Talents    string
}

// parsePairs splits "a=1, b=2" into an ordered list of key/int pairs.
func parsePairs(s string) ([]string, []int, error) {
	var keys []string
	var vals []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			return nil, nil, fmt.Errorf("%q: want key=value", part)
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, nil, fmt.Errorf("%q: %w", part, err)
		}
		keys = append(keys, strings.TrimSpace(k))
		vals = append(vals, n)
	}
	return keys, vals, nil
}

// build assembles a character from ch, resolving content names against lib.
// Unknown content names are errors; everything else is applied through the
// character helpers so invalid values are rejected the same way.
func build(ch choices, lib *content.Library, arrays []attribute.Array) (*character.Character, error) {
	c := character.New(ch.Name)
	var errs []error

	if ch.Race != "" {
		r, ok := lib.FindRace(ch.Race)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown race %q", ch.Race))
		}
		c = c.WithRace(r)
	}
	if ch.Class != "" {
		cl, ok := lib.FindClass(ch.Class)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown class %q", ch.Class))
		}
		c = c.WithClass(cl)
	}
	if ch.Background != "" {
		bg, ok := lib.FindBackground(ch.Background)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown background %q", ch.Background))
		}
		c = c.WithBackground(bg)
	}

	if ch.Level > 0 {
		next, err := c.WithLevel(ch.Level)
		if err != nil {
			errs = append(errs, err)
		} else {
			c = next
		}
	}

	if ch.ArrayID > 0 {
		arr, ok := attribute.FindArray(arrays, ch.ArrayID)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown attribute array %d", ch.ArrayID))
		} else {
			keys, idx, err := parsePairs(ch.Assign)
			if err != nil {
				errs = append(errs, fmt.Errorf("assign: %w", err))
			} else {
				assignment := make(map[attribute.Key]int, len(keys))
				for i, k := range keys {
					key, _ := attribute.FromName(k)
					assignment[key] = idx[i]
				}
				base, err := arr.Assign(assignment)
				if err != nil {
					errs = append(errs, err)
				} else {
					c = c.WithBaseAttributes(base)
				}
			}
		}
	}

	names, points, err := parsePairs(ch.Skills)
	if err != nil {
		errs = append(errs, fmt.Errorf("skills: %w", err))
	}
	for i, n := range names {
		next, err := c.WithSkill(n, points[i])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		c = next
	}

	for _, n := range strings.Split(ch.Talents, ",") {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		t, ok := lib.FindTalent(n)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown talent %q", n))
			continue
		}
		c = c.WithTalent(*t)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}
