package property

import (
	"errors"
	"fmt"

	"github.com/leftmike/setsession/sql"
)

// Range returns a validator which requires a numeric value to be at least min and at most
// max; either bound may be nil. If msg is not empty, it is the message of every failure.
func Range(min, max sql.Value, msg string) Validator {
	return func(v sql.Value) error {
		if min != nil {
			cmp, err := v.Compare(min)
			if err != nil {
				return err
			}
			if cmp < 0 {
				if msg != "" {
					return errors.New(msg)
				}
				return fmt.Errorf("value must be at least %s", min)
			}
		}
		if max != nil {
			cmp, err := v.Compare(max)
			if err != nil {
				return err
			}
			if cmp > 0 {
				if msg != "" {
					return errors.New(msg)
				}
				return fmt.Errorf("value must be at most %s", max)
			}
		}
		return nil
	}
}
