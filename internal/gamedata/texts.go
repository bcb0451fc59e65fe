package gamedata

import (
	"errors"

	"github.com/samdwyer/delve/internal/random"
)

// Texts holds the writing generators scatter around: headstone epitaphs,
// floor graffiti and the creatures statues depict.
type Texts struct {
	Headstones []string `json:"headstones"`
	Graffiti   []string `json:"graffiti"`
	Statues    []string `json:"statues"`
}

// LoadTexts loads the embedded texts.json.
func LoadTexts() (*Texts, error) {
	texts, err := Load[Texts]("texts.json")
	if err != nil {
		return nil, err
	}
	if len(texts.Headstones) == 0 || len(texts.Graffiti) == 0 || len(texts.Statues) == 0 {
		return nil, errors.New("texts.json has an empty section")
	}
	return &texts, nil
}

// MustLoadTexts loads the texts, panicking on error.
func MustLoadTexts() *Texts {
	texts, err := LoadTexts()
	if err != nil {
		panic(err)
	}
	return texts
}

// Headstone draws an epitaph.
func (t *Texts) Headstone(src *random.Source) string {
	return pick(src, t.Headstones)
}

// Graffito draws a floor engraving.
func (t *Texts) Graffito(src *random.Source) string {
	return pick(src, t.Graffiti)
}

// Statue draws the subject of a statue.
func (t *Texts) Statue(src *random.Source) string {
	return pick(src, t.Statues)
}

func pick(src *random.Source, list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[src.Intn(len(list))]
}
