package diag_test

import (
	"bytes"
	"testing"

	"github.com/kylelemons/godebug/diff"

	"github.com/folidity-lang/folidity/internal/diag"
	"github.com/folidity-lang/folidity/internal/source"
)

func TestPresentRendersSpanAndNestedNotes(t *testing.T) {
	src := "model Account {\n  balance: int\n} st [balance > 0]\n"
	report := diag.VerificationError(source.Span{Start: 37, End: 44}, "this set of bounds is not satisfiable").
		WithNotes(diag.VerificationError(source.Span{Start: 37, End: 44}, "this bound contributes to the contradiction"))

	var buf bytes.Buffer
	diag.Present(&buf, src, "account.fol", []diag.Report{report})

	want := `error: verification: account.fol:3:7: this set of bounds is not satisfiable
} st [balance > 0]
      ^^^^^^^
  error: verification: account.fol:3:7: this bound contributes to the contradiction
`
	if d := diff.Diff(buf.String(), want); d != "" {
		t.Errorf("rendered output differs:\n%s", d)
	}
}
