package random

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	dieTermPattern  = regexp.MustCompile(`^([1-9][0-9]*)?d([1-9][0-9]*)$`)
	constantPattern = regexp.MustCompile(`^[1-9][0-9]*$`)
	tokenPattern    = regexp.MustCompile(`[+-]?[^+-]+`)
)

// DieTerm is one NdM group of a dice expression.
type DieTerm struct {
	Count int
	Sides int
}

// Dice is a parsed expression such as "d6", "2d4+1", "3d6+d4-2".
type Dice struct {
	Expression string
	Terms      []DieTerm
	Modifier   int
}

// ParseDice parses a signed sum of NdM terms with an optional trailing
// constant. Each die size may appear once and the expression must never be
// able to produce a negative result.
func ParseDice(expression string) (Dice, error) {
	expr := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(expression), " ", ""))
	if expr == "" {
		return Dice{}, fmt.Errorf("empty dice expression")
	}

	tokens := tokenPattern.FindAllString(expr, -1)
	if strings.Join(tokens, "") != expr {
		return Dice{}, fmt.Errorf("malformed dice expression %q", expression)
	}

	d := Dice{Expression: expression}
	seen := make(map[int]bool)
	for i, token := range tokens {
		sign := 1
		body := token
		switch token[0] {
		case '+':
			body = token[1:]
			if i == 0 {
				return Dice{}, fmt.Errorf("dice expression %q cannot start with a sign", expression)
			}
		case '-':
			body = token[1:]
			sign = -1
			if i == 0 {
				return Dice{}, fmt.Errorf("dice expression %q cannot start with a sign", expression)
			}
		}

		if m := dieTermPattern.FindStringSubmatch(body); m != nil {
			if sign < 0 {
				return Dice{}, fmt.Errorf("dice expression %q subtracts dice", expression)
			}
			if d.Modifier != 0 {
				return Dice{}, fmt.Errorf("dice expression %q has dice after its constant", expression)
			}
			count := 1
			if m[1] != "" {
				count, _ = strconv.Atoi(m[1])
			}
			sides, _ := strconv.Atoi(m[2])
			if seen[sides] {
				return Dice{}, fmt.Errorf("dice expression %q uses d%d more than once", expression, sides)
			}
			seen[sides] = true
			d.Terms = append(d.Terms, DieTerm{Count: count, Sides: sides})
			continue
		}

		if constantPattern.MatchString(body) {
			if i == 0 || i != len(tokens)-1 {
				return Dice{}, fmt.Errorf("dice expression %q: constant must close the expression", expression)
			}
			value, _ := strconv.Atoi(body)
			d.Modifier = sign * value
			continue
		}

		return Dice{}, fmt.Errorf("invalid dice term %q in %q", body, expression)
	}

	if d.Min() < 0 {
		return Dice{}, fmt.Errorf("dice expression %q can roll below zero", expression)
	}
	return d, nil
}

// MustParseDice is ParseDice for expressions known at compile time.
func MustParseDice(expression string) Dice {
	d, err := ParseDice(expression)
	if err != nil {
		panic(err)
	}
	return d
}

// Min returns the smallest value the expression can produce.
func (d Dice) Min() int {
	total := d.Modifier
	for _, t := range d.Terms {
		total += t.Count
	}
	return total
}

// Max returns the largest value the expression can produce.
func (d Dice) Max() int {
	total := d.Modifier
	for _, t := range d.Terms {
		total += t.Count * t.Sides
	}
	return total
}

// Roll draws the expression from s.
func (d Dice) Roll(s *Source) int {
	total := d.Modifier
	for _, t := range d.Terms {
		for i := 0; i < t.Count; i++ {
			total += s.Range(1, t.Sides)
		}
	}
	return total
}

// Roll parses and draws a dice expression in one step.
func (s *Source) Roll(expression string) (int, error) {
	d, err := ParseDice(expression)
	if err != nil {
		return 0, err
	}
	return d.Roll(s), nil
}
