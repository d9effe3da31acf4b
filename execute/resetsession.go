package execute

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/leftmike/setsession/property"
	"github.com/leftmike/setsession/sql"
)

// PropertyResetter is the part of a session which RESET SESSION changes.
type PropertyResetter interface {
	ResetProperty(key string) bool
}

type ResetSession struct {
	Name sql.QualifiedName
}

func (stmt *ResetSession) String() string {
	return fmt.Sprintf("RESET SESSION %s", stmt.Name)
}

// Execute removes the value set for the property, so that its default applies again. The
// property must exist, but it need not have been set.
func (stmt *ResetSession) Execute(ctx context.Context, lkup property.Lookup,
	pr PropertyResetter) error {

	if err := ctx.Err(); err != nil {
		return err
	}

	_, key, err := property.Resolve(lkup, stmt.Name)
	if err != nil {
		return err
	}

	if pr.ResetProperty(key) {
		log.WithFields(log.Fields{
			"session":  pr,
			"property": key,
		}).Debug("reset session")
	}
	return nil
}
