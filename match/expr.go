package match

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const (
	// RequiresOne items match any token of the sentence.
	RequiresOne = iota

	// RequiresNear items match a token at most Near tokens after the token
	// matched by the previous item.
	RequiresNear

	// RequiresNone items (negated lemma) must not match any token.
	RequiresNone
)

const (
	negation    = "!"
	orSeparator = "|"
)

// Expr is a sequence of token patterns, f.ex.
//
//	die 2 NN feat=case:nominative
//
// matches sentences with a token of lemma "die" followed, within two tokens,
// by a NN token with nominative case.
type Expr []Item

// Item is a token pattern. Empty fields match everything. A field with '|'
// matches any of the alternatives.
type Item struct {
	Near  int    `json:"near,omitempty"`
	Form  string `json:"form,omitempty"`
	Lemma string `json:"lemma,omitempty"`
	CPOS  string `json:"cpos,omitempty"`
	POS   string `json:"pos,omitempty"`
	Dep   string `json:"dep,omitempty"`

	// Feat is a feature key or key:value.
	Feat string `json:"feat,omitempty"`
}

func (m Expr) String() string {
	sl := []string{}
	for _, item := range m {
		if item.Near > 0 {
			sl = append(sl, strconv.Itoa(item.Near))
		}
		sl = append(sl, item.String())
	}

	return strings.Join(sl, " ")
}

// String returns the item in the syntax of Parse, without Near.
func (m Item) String() string {
	var sl []string
	add := func(key, value string) {
		if value != "" {
			sl = append(sl, key+"="+value)
		}
	}

	add("form", m.Form)
	add("lemma", m.Lemma)
	add("cpos", m.CPOS)
	add("pos", m.POS)
	add("dep", m.Dep)
	add("feat", m.Feat)

	return strings.Join(sl, " ")
}

// Lemmas returns all unique lemmas that every matching sentence must contain.
// Negated and alternative lemmas are excluded because they cannot be used for
// indexed candidate retrieval in storage; they are handled by the Matcher.
func (m Expr) Lemmas() []string {
	seen := make(map[string]bool)
	var lemmas []string
	for _, item := range m {
		l := item.Lemma
		if l == "" || strings.HasPrefix(l, negation) || strings.Contains(l, orSeparator) {
			continue
		}

		if !seen[l] {
			seen[l] = true
			lemmas = append(lemmas, l)
		}
	}
	return lemmas
}

func (m Item) Requirement() int {
	if strings.HasPrefix(m.Lemma, negation) {
		return RequiresNone
	}

	if m.Near > 0 {
		return RequiresNear
	}

	return RequiresOne
}

// Parse parses the user input and converts to an Expr.
//
// A bare word is a lemma, or a fine POS tag if it is all uppercase. Other
// columns use key=value with key one of form, lemma, cpos, pos, dep and
// feat. A number n binds the next item to at most n tokens after the
// previous one. A lemma starting with '!' must not appear in the sentence.
func Parse(args []string) (Expr, error) {
	var expr Expr
	lastNear := 0
	isLastInt := false

	for idx, arg := range args {
		near, err := strconv.Atoi(arg)
		if err == nil {
			if idx == 0 {
				return nil, errors.New("first expression argument can not be a number")
			}

			if isLastInt {
				return nil, errors.New("can not parse two consecutive numbers in the expression")
			}

			if near <= 0 {
				return nil, fmt.Errorf("distance must be positive: %d", near)
			}

			lastNear = near
			isLastInt = true
			continue
		}

		item, err := parseItem(arg)
		if err != nil {
			return nil, err
		}
		item.Near = lastNear

		if item.Near > 0 {
			if item.Requirement() == RequiresNone {
				return nil, fmt.Errorf("negated lemma %q can not have a distance", item.Lemma)
			}
			if expr[len(expr)-1].Requirement() == RequiresNone {
				return nil, fmt.Errorf("distance %d follows a negated lemma", item.Near)
			}
		}

		expr = append(expr, item)
		lastNear = 0
		isLastInt = false
	}

	if isLastInt {
		return nil, errors.New("expression can not end with a number")
	}

	if len(expr) == 0 {
		return nil, errors.New("empty expression")
	}

	return expr, nil
}

func parseItem(arg string) (Item, error) {
	key, value, found := strings.Cut(arg, "=")
	if !found {
		if isTag(arg) {
			return Item{POS: arg}, nil
		}
		return Item{Lemma: arg}, nil
	}

	if value == "" {
		return Item{}, fmt.Errorf("empty value in %q", arg)
	}

	var item Item
	switch key {
	case "form":
		item.Form = value
	case "lemma":
		item.Lemma = value
	case "cpos":
		item.CPOS = value
	case "pos":
		item.POS = value
	case "dep":
		item.Dep = value
	case "feat":
		item.Feat = value
	default:
		return Item{}, fmt.Errorf("unknown field %q in %q", key, arg)
	}

	return item, nil
}

// isTag reports whether s has letters and all of them are uppercase.
func isTag(s string) bool {
	hasLetter := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		hasLetter = true
	}
	return hasLetter
}

// EqualExpr determines if two expresions are the same.
// the Equality requires slice order:
//
//	itemA, itemB != itemB, itemA
func EqualExpr(a, b Expr) bool {
	if len(a) != len(b) {
		return false
	}

	for i, v := range a {
		if v != b[i] {
			return false
		}
	}
	return true
}
