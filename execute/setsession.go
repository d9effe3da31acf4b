package execute

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/leftmike/setsession/expr"
	"github.com/leftmike/setsession/property"
	"github.com/leftmike/setsession/sql"
)

// PropertySetter is the part of a session which SET SESSION changes.
type PropertySetter interface {
	SetProperty(key, val string)
}

type SetSession struct {
	Name  sql.QualifiedName
	Value expr.Expr
}

func (stmt *SetSession) String() string {
	return fmt.Sprintf("SET SESSION %s = %s", stmt.Name, stmt.Value)
}

// Execute resolves the property, evaluates the value, and converts and validates it for the
// property. Only if all of those succeed is the property set; on failure ps is unchanged.
// Failures are returned as *sql.Error, except for a canceled ctx, which returns ctx.Err().
func (stmt *SetSession) Execute(ctx context.Context, lkup property.Lookup, ps PropertySetter,
	params []*expr.Literal) error {

	err := stmt.execute(ctx, lkup, ps, params)
	if err != nil {
		log.WithFields(log.Fields{
			"session":  ps,
			"property": stmt.Name.String(),
			"kind":     sql.KindOf(err).String(),
		}).WithError(err).Info("set session failed")
	}
	return err
}

func (stmt *SetSession) execute(ctx context.Context, lkup property.Lookup, ps PropertySetter,
	params []*expr.Literal) error {

	if err := ctx.Err(); err != nil {
		return err
	}

	md, key, err := property.Resolve(lkup, stmt.Name)
	if err != nil {
		return err
	}

	if stmt.Value.HasRef() {
		return sql.Errorf(sql.ExpressionNotConstant,
			"expected a constant expression; got %s", stmt.Value)
	}

	v, err := expr.Eval(stmt.Value, params)
	if err != nil {
		return err
	}

	val, err := property.Coerce(md, v)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	ps.SetProperty(key, val)

	log.WithFields(log.Fields{
		"session":  ps,
		"property": key,
		"value":    val,
	}).Debug("set session")
	return nil
}

// Start runs stmt on exec and returns a Future which completes when it is done.
func (stmt *SetSession) Start(ctx context.Context, exec Executor, lkup property.Lookup,
	ps PropertySetter, params []*expr.Literal) *Future {

	return Submit(exec,
		func() error {
			return stmt.Execute(ctx, lkup, ps, params)
		})
}
