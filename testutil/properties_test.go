package testutil_test

import (
	"testing"

	"github.com/leftmike/setsession/testutil"
)

func TestDiffProperties(t *testing.T) {
	cases := []struct {
		got, want map[string]string
		s         string
	}{
		{s: ""},
		{got: map[string]string{}, want: nil, s: ""},
		{
			got:  map[string]string{"foo.bar": "baz"},
			want: map[string]string{"foo.bar": "baz"},
			s:    "",
		},
		{
			got:  map[string]string{"foo.bar": "baz"},
			want: map[string]string{},
			s:    `extra foo.bar="baz"`,
		},
		{
			got:  nil,
			want: map[string]string{"foo.bar": "baz"},
			s:    `missing foo.bar="baz"`,
		},
		{
			got:  map[string]string{"a": "1", "foo.bar": "qux"},
			want: map[string]string{"b": "2", "foo.bar": "baz"},
			s:    `extra a="1"; missing b="2"; foo.bar: got "qux" want "baz"`,
		},
	}

	for _, c := range cases {
		s := testutil.DiffProperties(c.got, c.want)
		if s != c.s {
			t.Errorf("DiffProperties(%v, %v) got %q want %q", c.got, c.want, s, c.s)
		}
	}
}
