package libjson_test

import (
	"testing"

	"github.com/kaa-lang/kaa/kaatest"
)

func TestModule(t *testing.T) {
	r := &kaatest.Runner{}
	r.RunTestFile(t, "json_test.lisp")
}
