package errors

import (
	stderrors "errors"

	"github.com/vango-dev/patchwork/pkg/vdom"
)

// FromApply maps an error returned by a patch applier to its code: E001
// for a missing target index, E002 for an attribute kind mismatch and
// E003 for a shape mismatch or any other failure.
func FromApply(err error) *Error {
	if err == nil {
		return nil
	}
	code := "E003"
	switch {
	case stderrors.Is(err, vdom.ErrIndexNotFound):
		code = "E001"
	case stderrors.Is(err, vdom.ErrAttributeKindMismatch):
		code = "E002"
	}
	e := New(code).Wrap(err)

	var ae *vdom.ApplyError
	if stderrors.As(err, &ae) {
		e.WithDetailf("%s at index %d failed; patches before it were applied.", ae.Op, ae.Index)
	}
	return e
}
