// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"strings"

	"gorm.io/gorm"
)

// fullIDLength is the canonical string length of a uuid identifier. A
// reference of exactly this length is looked up directly; anything shorter
// is treated as an id prefix.
const fullIDLength = 36

// refMatchLimit fetches one row more than needed so ambiguity is detectable
// without counting the whole table.
const refMatchLimit = 2

// likeEscaper neutralizes LIKE metacharacters so a reference such as "____"
// matches those literal characters instead of arbitrary ids.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// scopeRef narrows a query to the rows a full-id or prefix reference can
// match. The caller must already have scoped the query to the owning
// account; prefix search never crosses account boundaries.
func scopeRef(q *gorm.DB, ref string) *gorm.DB {
	if len(ref) >= fullIDLength {
		return q.Where("id = ?", ref)
	}
	return q.Where(`id LIKE ? ESCAPE '\'`, likeEscaper.Replace(ref)+"%")
}
