package bridge

import (
	"reflect"
	"testing"
)

func TestInvoke(t *testing.T) {
	if got := InvokeNoArgs(func() int { return 7 }); got != 7 {
		t.Errorf("InvokeNoArgs = %d", got)
	}
	if got := InvokeWithBool(Func[bool, bool](func(b bool) bool { return !b }), true); got {
		t.Errorf("InvokeWithBool = %v", got)
	}
	type item struct{ Value string }
	if got := InvokeWithObject(Func[item, string](func(i item) string { return i.Value }), item{"NG"}); got != "NG" {
		t.Errorf("InvokeWithObject = %q", got)
	}
	if got := InvokeWithString(Func[string, int](func(s string) int { return len(s) }), "JP"); got != 2 {
		t.Errorf("InvokeWithString = %d", got)
	}
	in := []string{"NG", "JP"}
	got := InvokeWithStrings(Func[[]string, []string](func(v []string) []string { return v }), in)
	if !reflect.DeepEqual(got, in) {
		t.Errorf("InvokeWithStrings = %v", got)
	}
}
