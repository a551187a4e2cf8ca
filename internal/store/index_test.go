package store

import (
	"errors"
	"testing"
)

func TestResolveIndex(t *testing.T) {
	cases := []struct {
		arg  string
		n    int
		want int
		err  error
	}{
		{arg: "1", n: 3, want: 0},
		{arg: "3", n: 3, want: 2},
		{arg: "", n: 3, err: ErrMissingIndex},
		{arg: "0", n: 3, err: ErrIndexOutOfRange},
		{arg: "4", n: 3, err: ErrIndexOutOfRange},
		{arg: "1", n: 0, err: ErrIndexOutOfRange},
		{arg: "-1", n: 3, err: ErrInvalidIndex},
		{arg: "+1", n: 3, err: ErrInvalidIndex},
		{arg: "two", n: 3, err: ErrInvalidIndex},
		{arg: "1.5", n: 3, err: ErrInvalidIndex},
		{arg: "99999999999999999999999", n: 3, err: ErrInvalidIndex},
	}
	for _, tc := range cases {
		got, err := ResolveIndex(tc.arg, tc.n)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Fatalf("ResolveIndex(%q, %d): expected %v, got %v", tc.arg, tc.n, tc.err, err)
			}
			var ie *IndexError
			if !errors.As(err, &ie) {
				t.Fatalf("ResolveIndex(%q, %d): expected *IndexError, got %T", tc.arg, tc.n, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ResolveIndex(%q, %d): unexpected error %v", tc.arg, tc.n, err)
		}
		if got != tc.want {
			t.Fatalf("ResolveIndex(%q, %d): expected %d, got %d", tc.arg, tc.n, tc.want, got)
		}
	}
}

func TestIndexArgMissing(t *testing.T) {
	_, err := IndexArg(nil, 2)
	if !errors.Is(err, ErrMissingIndex) {
		t.Fatalf("expected ErrMissingIndex, got %v", err)
	}
	got, err := IndexArg([]string{"2", "ignored"}, 2)
	if err != nil || got != 1 {
		t.Fatalf("expected 1, got %d (%v)", got, err)
	}
}

func TestIndexErrorMessage(t *testing.T) {
	_, err := ResolveIndex("5", 2)
	want := "item index out of range: 5 (list has 2 items)"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
