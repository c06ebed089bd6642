package libregexp_test

import (
	"testing"

	"github.com/kaa-lang/kaa/kaatest"
)

func TestModule(t *testing.T) {
	r := &kaatest.Runner{}
	r.RunTestFile(t, "regexp_test.lisp")
}
