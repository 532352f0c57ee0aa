package sentence

import (
	"encoding/json"
	"fmt"
)

// Token represents a word of the sentence, one row of a treebank.
//
// Token is immutable, use a TokenBuilder to create one. The zero value of the
// optional columns is "absent", and two tokens are equal (==) if all their
// columns are equal.
type Token struct {
	form  string
	lemma string
	cpos  string
	pos   string

	features    Features
	hasFeatures bool

	head    int
	hasHead bool

	headRel    string
	hasHeadRel bool

	pHead    int
	hasPHead bool

	pHeadRel    string
	hasPHeadRel bool
}

// Form returns the unmodified word.
func (t Token) Form() string { return t.form }

// Lemma returns the lemma of the word.
func (t Token) Lemma() string { return t.lemma }

// CPOS returns the coarse-grained part of speech.
func (t Token) CPOS() string { return t.cpos }

// POS returns the fine-grained part of speech.
func (t Token) POS() string { return t.pos }

// Features returns the feature annotation. ok is false if the column was
// absent, which is not the same as a present but empty annotation.
func (t Token) Features() (Features, bool) { return t.features, t.hasFeatures }

// Head returns the 1-based index of the dependency head, 0 for the root.
func (t Token) Head() (int, bool) { return t.head, t.hasHead }

// HeadRel returns the dependency relation to the head.
func (t Token) HeadRel() (string, bool) { return t.headRel, t.hasHeadRel }

// PHead returns the projective head.
func (t Token) PHead() (int, bool) { return t.pHead, t.hasPHead }

// PHeadRel returns the dependency relation to the projective head.
func (t Token) PHeadRel() (string, bool) { return t.pHeadRel, t.hasPHeadRel }

// IsRoot reports whether the token hangs from the artificial root.
func (t Token) IsRoot() bool {
	return t.hasHead && t.head == 0
}

type tokenJSON struct {
	Form     string  `json:"form"`
	Lemma    string  `json:"lemma"`
	CPOS     string  `json:"cpos"`
	POS      string  `json:"pos"`
	Features *string `json:"feats,omitempty"`
	Head     *int    `json:"head,omitempty"`
	HeadRel  *string `json:"deprel,omitempty"`
	PHead    *int    `json:"phead,omitempty"`
	PHeadRel *string `json:"pdeprel,omitempty"`
}

// MarshalJSON encodes the token as an object. Absent columns are omitted.
func (t Token) MarshalJSON() ([]byte, error) {
	tj := tokenJSON{
		Form:  t.form,
		Lemma: t.lemma,
		CPOS:  t.cpos,
		POS:   t.pos,
	}

	if t.hasFeatures {
		raw := t.features.String()
		tj.Features = &raw
	}
	if t.hasHead {
		tj.Head = &t.head
	}
	if t.hasHeadRel {
		tj.HeadRel = &t.headRel
	}
	if t.hasPHead {
		tj.PHead = &t.pHead
	}
	if t.hasPHeadRel {
		tj.PHeadRel = &t.pHeadRel
	}

	return json.Marshal(tj)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (t *Token) UnmarshalJSON(data []byte) error {
	var tj tokenJSON
	if err := json.Unmarshal(data, &tj); err != nil {
		return err
	}

	if tj.Head != nil && *tj.Head < 0 {
		return fmt.Errorf("negative head %d", *tj.Head)
	}
	if tj.PHead != nil && *tj.PHead < 0 {
		return fmt.Errorf("negative projective head %d", *tj.PHead)
	}

	b := NewTokenBuilder().Form(tj.Form).Lemma(tj.Lemma).CPOS(tj.CPOS).POS(tj.POS)
	if tj.Features != nil {
		b.Features(NewFeatures(*tj.Features))
	}
	if tj.Head != nil {
		b.Head(*tj.Head)
	}
	if tj.HeadRel != nil {
		b.HeadRel(*tj.HeadRel)
	}
	if tj.PHead != nil {
		b.PHead(*tj.PHead)
	}
	if tj.PHeadRel != nil {
		b.PHeadRel(*tj.PHeadRel)
	}

	*t = b.Token()
	return nil
}

// TokenBuilder creates Tokens column by column. No column is mandatory:
// textual columns default to the empty string, the rest to absent. Values
// are not checked here; a negative head is rejected when the token is
// written.
//
//	tok := NewTokenBuilder().Form("Die").Lemma("die").Head(2).HeadRel("DET").Token()
type TokenBuilder struct {
	t Token
}

func NewTokenBuilder() *TokenBuilder {
	return &TokenBuilder{}
}

func (b *TokenBuilder) Form(form string) *TokenBuilder {
	b.t.form = form
	return b
}

func (b *TokenBuilder) Lemma(lemma string) *TokenBuilder {
	b.t.lemma = lemma
	return b
}

func (b *TokenBuilder) CPOS(cpos string) *TokenBuilder {
	b.t.cpos = cpos
	return b
}

func (b *TokenBuilder) POS(pos string) *TokenBuilder {
	b.t.pos = pos
	return b
}

func (b *TokenBuilder) Features(f Features) *TokenBuilder {
	b.t.features = f
	b.t.hasFeatures = true
	return b
}

func (b *TokenBuilder) Head(head int) *TokenBuilder {
	b.t.head = head
	b.t.hasHead = true
	return b
}

func (b *TokenBuilder) HeadRel(rel string) *TokenBuilder {
	b.t.headRel = rel
	b.t.hasHeadRel = true
	return b
}

func (b *TokenBuilder) PHead(head int) *TokenBuilder {
	b.t.pHead = head
	b.t.hasPHead = true
	return b
}

func (b *TokenBuilder) PHeadRel(rel string) *TokenBuilder {
	b.t.pHeadRel = rel
	b.t.hasPHeadRel = true
	return b
}

// Token returns the built token. The builder can be reused afterwards; the
// returned token does not change.
func (b *TokenBuilder) Token() Token {
	return b.t
}
