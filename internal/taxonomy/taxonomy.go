// Package taxonomy loads the static scoring tables: the skill taxonomy, alias clusters,
// degree, institution and company prestige tables, soft-skill keywords and macro regions.
// The default tables are JSON files embedded at compile time; any of them can be
// replaced by a JSON or YAML file of the same base name in an override directory.
package taxonomy

import "strings"

// SkillTaxonomy maps domains to categories to canonical skill terms.
type SkillTaxonomy struct {
	Domains []Domain `json:"domains" yaml:"domains" validate:"required,min=1,dive"`
}

// Domain is a top-level area such as technology or healthcare.
type Domain struct {
	Name       string     `json:"name" yaml:"name" validate:"required"`
	Categories []Category `json:"categories" yaml:"categories" validate:"required,min=1,dive"`
}

// Category is a group of related canonical skill terms.
type Category struct {
	Name   string   `json:"name" yaml:"name" validate:"required"`
	Skills []string `json:"skills" yaml:"skills" validate:"required,min=1,dive,required,lowercase"`
}

// Degree is one entry of the degree table.
type Degree struct {
	Keyword string `json:"keyword" yaml:"keyword" validate:"required,lowercase"`
	Score   int    `json:"score" yaml:"score" validate:"min=0,max=100"`
	Level   string `json:"level" yaml:"level" validate:"required"`
}

// Scored is a named entry of a prestige table.
type Scored struct {
	Name  string `json:"name" yaml:"name" validate:"required,lowercase"`
	Score int    `json:"score" yaml:"score" validate:"min=0,max=100"`
}

// SoftSkill is a soft-skill category and the keywords that flag it.
type SoftSkill struct {
	Category string   `json:"category" yaml:"category" validate:"required"`
	Keywords []string `json:"keywords" yaml:"keywords" validate:"required,min=1,dive,required,lowercase"`
}

// Tables holds every static table the scoring engine reads. A loaded Tables value is
// never mutated.
type Tables struct {
	Skills       SkillTaxonomy       `validate:"required"`
	Aliases      map[string][]string `validate:"dive,keys,required,endkeys,dive,required"`
	Degrees      []Degree            `validate:"required,min=1,dive"`
	Institutions []Scored            `validate:"dive"`
	Companies    []Scored            `validate:"dive"`
	SoftSkills   []SoftSkill         `validate:"dive"`
	Regions      []string            `validate:"dive,required,lowercase"`
}

// SkillTerms returns every canonical skill in taxonomy order, without duplicates.
func (t *Tables) SkillTerms() []string {
	seen := make(map[string]bool)
	terms := make([]string, 0, 200)
	for _, domain := range t.Skills.Domains {
		for _, category := range domain.Categories {
			for _, skill := range category.Skills {
				if seen[skill] {
					continue
				}
				seen[skill] = true
				terms = append(terms, skill)
			}
		}
	}
	return terms
}

// DomainOf returns the domain a canonical skill first appears in, or "".
func (t *Tables) DomainOf(skill string) string {
	for _, domain := range t.Skills.Domains {
		for _, category := range domain.Categories {
			for _, s := range category.Skills {
				if s == skill {
					return domain.Name
				}
			}
		}
	}
	return ""
}

// AliasKey is the lookup key of the alias table: the term lower-cased with all
// spaces removed.
func AliasKey(term string) string {
	return strings.ReplaceAll(strings.ToLower(term), " ", "")
}

// Counts reports the size of each table, keyed by table name.
func (t *Tables) Counts() map[string]int {
	return map[string]int{
		"skills":       len(t.SkillTerms()),
		"domains":      len(t.Skills.Domains),
		"aliases":      len(t.Aliases),
		"degrees":      len(t.Degrees),
		"institutions": len(t.Institutions),
		"companies":    len(t.Companies),
		"soft_skills":  len(t.SoftSkills),
		"regions":      len(t.Regions),
	}
}
