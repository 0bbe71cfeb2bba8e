// Package benchmark holds the fixed reference tables the engines compare
// against: industry benchmark bands with seasonality factors, regional
// cost-of-living multipliers and legal-form founding-cost bands. The tables
// are embedded YAML, parsed once at package init into immutable values.
package benchmark

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	yaml "gopkg.in/yaml.v2"
)

//go:embed data/branchen.yaml
var branchenYAML []byte

//go:embed data/staedte.yaml
var staedteYAML []byte

//go:embed data/rechtsformen.yaml
var rechtsformenYAML []byte

// BranchenProfil is the benchmark band of one industry
type BranchenProfil struct {
	Key                   string
	Name                  string
	RohertragsmargeMin    decimal.Decimal
	RohertragsmargeMax    decimal.Decimal
	UmsatzrenditeMin      decimal.Decimal
	UmsatzrenditeMax      decimal.Decimal
	BreakEvenMonatTypisch int
	// Saisonfaktoren are the quarterly revenue multipliers Q1..Q4
	Saisonfaktoren [4]decimal.Decimal
}

// Saisonfaktor returns the seasonality multiplier for the 1-based month m
func (b *BranchenProfil) Saisonfaktor(m int) decimal.Decimal {
	if m < 1 {
		return decimal.NewFromInt(1)
	}
	return b.Saisonfaktoren[((m-1)/3)%4]
}

// StadtProfil holds the regional multipliers and subsistence floor of a city
type StadtProfil struct {
	Key             string
	Wohnen          decimal.Decimal
	Sonstige        decimal.Decimal
	Existenzminimum decimal.Decimal
}

// RechtsformProfil is the realistic founding-cost band of a legal form
type RechtsformProfil struct {
	Key                 string
	GruendungskostenMin decimal.Decimal
	GruendungskostenMax decimal.Decimal
}

var (
	branchen     map[string]BranchenProfil
	staedte      map[string]StadtProfil
	rechtsformen map[string]RechtsformProfil
)

type brancheYAML struct {
	Name                  string   `yaml:"name"`
	RohertragsmargeMin    string   `yaml:"rohertragsmargeMin"`
	RohertragsmargeMax    string   `yaml:"rohertragsmargeMax"`
	UmsatzrenditeMin      string   `yaml:"umsatzrenditeMin"`
	UmsatzrenditeMax      string   `yaml:"umsatzrenditeMax"`
	BreakEvenMonatTypisch int      `yaml:"breakEvenMonatTypisch"`
	Saisonfaktoren        []string `yaml:"saisonfaktoren"`
}

type stadtYAML struct {
	Wohnen          string `yaml:"wohnen"`
	Sonstige        string `yaml:"sonstige"`
	Existenzminimum string `yaml:"existenzminimum"`
}

type rechtsformYAML struct {
	GruendungskostenMin string `yaml:"gruendungskostenMin"`
	GruendungskostenMax string `yaml:"gruendungskostenMax"`
}

func init() {
	branchen = loadBranchen(branchenYAML)
	staedte = loadStaedte(staedteYAML)
	rechtsformen = loadRechtsformen(rechtsformenYAML)
}

func loadBranchen(raw []byte) map[string]BranchenProfil {
	var parsed map[string]brancheYAML
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		panic(fmt.Sprintf("benchmark: invalid branchen.yaml: %v", err))
	}
	out := make(map[string]BranchenProfil, len(parsed))
	for key, b := range parsed {
		if len(b.Saisonfaktoren) != 4 {
			panic(fmt.Sprintf("benchmark: branche %q needs 4 quarterly factors", key))
		}
		profil := BranchenProfil{
			Key:                   key,
			Name:                  b.Name,
			RohertragsmargeMin:    mustDecimal(b.RohertragsmargeMin),
			RohertragsmargeMax:    mustDecimal(b.RohertragsmargeMax),
			UmsatzrenditeMin:      mustDecimal(b.UmsatzrenditeMin),
			UmsatzrenditeMax:      mustDecimal(b.UmsatzrenditeMax),
			BreakEvenMonatTypisch: b.BreakEvenMonatTypisch,
		}
		for i, f := range b.Saisonfaktoren {
			profil.Saisonfaktoren[i] = mustDecimal(f)
		}
		out[key] = profil
	}
	return out
}

func loadStaedte(raw []byte) map[string]StadtProfil {
	var parsed map[string]stadtYAML
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		panic(fmt.Sprintf("benchmark: invalid staedte.yaml: %v", err))
	}
	out := make(map[string]StadtProfil, len(parsed))
	for key, s := range parsed {
		out[key] = StadtProfil{
			Key:             key,
			Wohnen:          mustDecimal(s.Wohnen),
			Sonstige:        mustDecimal(s.Sonstige),
			Existenzminimum: mustDecimal(s.Existenzminimum),
		}
	}
	if _, ok := out["default"]; !ok {
		panic("benchmark: staedte.yaml must define a default profile")
	}
	return out
}

func loadRechtsformen(raw []byte) map[string]RechtsformProfil {
	var parsed map[string]rechtsformYAML
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		panic(fmt.Sprintf("benchmark: invalid rechtsformen.yaml: %v", err))
	}
	out := make(map[string]RechtsformProfil, len(parsed))
	for key, r := range parsed {
		out[key] = RechtsformProfil{
			Key:                 key,
			GruendungskostenMin: mustDecimal(r.GruendungskostenMin),
			GruendungskostenMax: mustDecimal(r.GruendungskostenMax),
		}
	}
	return out
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(fmt.Sprintf("benchmark: invalid decimal %q", s))
	}
	return d
}

// Branche looks up an industry profile by key (case-insensitive)
func Branche(key string) (BranchenProfil, bool) {
	b, ok := branchen[normalize(key)]
	return b, ok
}

// Stadt looks up the regional profile for a city name. Unknown cities fall
// back to the national default profile.
func Stadt(name string) StadtProfil {
	if s, ok := staedte[normalize(name)]; ok {
		return s
	}
	return staedte["default"]
}

// Rechtsform looks up the founding-cost band for a legal form key
func Rechtsform(key string) (RechtsformProfil, bool) {
	r, ok := rechtsformen[normalize(key)]
	return r, ok
}

var umlautReplacer = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
	"Ä", "ae", "Ö", "oe", "Ü", "ue",
	" ", "", "-", "",
)

func normalize(s string) string {
	return umlautReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
}
