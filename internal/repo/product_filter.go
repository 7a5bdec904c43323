package repo

import (
	"strings"

	"github.com/rogerio-castellano/product-store/internal/models"
)

// NameMatch selects products by name. The match is exact unless Prefix is set.
type NameMatch struct {
	Name   string
	Prefix bool
}

func (m NameMatch) validate() error {
	if m.Prefix && m.Name == "" {
		return ErrEmptyMatch
	}
	return nil
}

func (m NameMatch) matches(p models.Product) bool {
	if m.Prefix {
		return hasPrefixFold(p.Name, m.Name)
	}
	return p.Name == m.Name
}

func hasPrefixFold(s, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
}

// likePrefix turns a user supplied prefix into a LIKE pattern where % and _
// match literally.
func likePrefix(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}
