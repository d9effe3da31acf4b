package execute

import (
	"fmt"
)

// Stmt is a parsed session statement: *SetSession, *ResetSession, or *ShowSession.
type Stmt interface {
	fmt.Stringer
	stmt()
}

func (_ *SetSession) stmt()   {}
func (_ *ResetSession) stmt() {}
func (_ *ShowSession) stmt()  {}
