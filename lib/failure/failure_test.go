package failure_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fosdem/glstage/lib/failure"
	"github.com/fosdem/glstage/lib/test"
)

type rootErr struct{}

func (rootErr) Error() string { return "0:3(1): error: syntax error, unexpected end of file" }

func TestChain(t *testing.T) {
	err := fmt.Errorf("could not build draw program: %w",
		fmt.Errorf("could not compile triangle.frag: %w", rootErr{}))

	parts := failure.Chain(err)
	test.DemandEquality(t, len(parts), 3)
	test.ExpectEquality(t, parts[0], "could not build draw program")
	test.ExpectEquality(t, parts[1], "could not compile triangle.frag")
	test.ExpectEquality(t, parts[2], rootErr{}.Error())
}

func TestChainSkipsBareWrapping(t *testing.T) {
	err := fmt.Errorf("%w", errors.New("window closed"))
	parts := failure.Chain(err)
	test.DemandEquality(t, len(parts), 1)
	test.ExpectEquality(t, parts[0], "window closed")
}

func TestChainNil(t *testing.T) {
	test.ExpectEquality(t, len(failure.Chain(nil)), 0)
	test.ExpectEquality(t, failure.Report(nil), "")
}

func TestReportStartsFromRootCause(t *testing.T) {
	err := fmt.Errorf("outer: %w", fmt.Errorf("middle: %w", errors.New("inner")))

	expected := "inner\n" +
		"   Which caused the following issue:\n" +
		"middle\n" +
		"   Which caused the following issue:\n" +
		"outer\n"
	test.ExpectEquality(t, failure.Report(err), expected)
}

func TestReportSingle(t *testing.T) {
	test.ExpectEquality(t, failure.Report(errors.New("boom")), "boom\n")
}
