package sql_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/leftmike/setsession/sql"
)

func TestError(t *testing.T) {
	err := sql.Errorf(sql.InvalidEnumValue, "Invalid value [%s]. Valid values: [%s]", "XL",
		"SMALL")
	if err.Error() != "Invalid value [XL]. Valid values: [SMALL]" {
		t.Errorf("Errorf().Error() got %s", err)
	}
	if sql.KindOf(err) != sql.InvalidEnumValue {
		t.Errorf("KindOf(%s) got %s want %s", err, sql.KindOf(err), sql.InvalidEnumValue)
	}

	wrapped := fmt.Errorf("set session: %w", err)
	if sql.KindOf(wrapped) != sql.InvalidEnumValue {
		t.Errorf("KindOf(%s) got %s want %s", wrapped, sql.KindOf(wrapped), sql.InvalidEnumValue)
	}

	plain := errors.New("plain")
	if sql.KindOf(plain) != sql.UnknownError {
		t.Errorf("KindOf(%s) got %s want %s", plain, sql.KindOf(plain), sql.UnknownError)
	}
	if sql.KindOf(nil) != sql.UnknownError {
		t.Errorf("KindOf(nil) got %s want %s", sql.KindOf(nil), sql.UnknownError)
	}

	if s := sql.ErrorKind(99).String(); s != "ErrorKind(99)" {
		t.Errorf("ErrorKind(99).String() got %s", s)
	}
}
