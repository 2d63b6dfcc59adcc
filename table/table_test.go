package table

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ardnew/calcrst/calc"
)

func TestBuildLiteral(t *testing.T) {
	tab, err := Build(calc.New(), Spec{
		Statement: "y = [10, 20, 30]",
		Range1:    "i = [0, 1, 2]",
		Label1:    "x",
		Precision: 2,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if want := []string{"x=0", "x=1", "x=2"}; !reflect.DeepEqual(tab.Headers, want) {
		t.Errorf("headers = %q, want %q", tab.Headers, want)
	}

	if len(tab.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(tab.Rows))
	}

	want := "" +
		"=====  =====  =====\n" +
		"  x=0    x=1    x=2\n" +
		"=====  =====  =====\n" +
		"   10     20     30\n" +
		"=====  =====  =====\n"

	if got := tab.String(); got != want {
		t.Errorf("String:\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildArray(t *testing.T) {
	env := calc.New()

	tab, err := Build(env, Spec{
		Statement: "v = arange(3) * 2",
		Range1:    "i = arange(3)",
		Label1:    "i",
		Precision: 1,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if want := []string{"i=0.0", "i=1.0", "i=2.0"}; !reflect.DeepEqual(tab.Headers, want) {
		t.Errorf("headers = %q, want %q", tab.Headers, want)
	}

	var sb strings.Builder
	if err := tab.Write(&sb); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("lines = %d, want 5:\n%s", len(lines), sb.String())
	}

	if want := "    0.0      2.0      4.0"; lines[3] != want {
		t.Errorf("body = %q, want %q", lines[3], want)
	}

	if _, ok := env.Lookup("v"); !ok {
		t.Error("statement binding not kept in the environment")
	}
}

func TestBuildGrid(t *testing.T) {
	tab, err := Build(calc.New(), Spec{
		Statement: "z = x + y",
		Range1:    "x = [1, 2]",
		Range2:    "y = [10, 20]",
		Label1:    "x",
		Label2:    "y",
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if want := []string{"y", "x=1", "x=2"}; !reflect.DeepEqual(tab.Headers, want) {
		t.Errorf("headers = %q, want %q", tab.Headers, want)
	}

	want := [][]any{{"10", 11, 12}, {"20", 21, 22}}
	if !reflect.DeepEqual(tab.Rows, want) {
		t.Errorf("rows = %v, want %v", tab.Rows, want)
	}
}

func TestBuildGridLiteral(t *testing.T) {
	tab, err := Build(calc.New(), Spec{
		Statement: "z = [[1, 2], [3, 4]]",
		Range1:    "a = [0, 1]",
		Range2:    "b = [5, 6]",
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := [][]any{{"5", 1, 2}, {"6", 3, 4}}
	if !reflect.DeepEqual(tab.Rows, want) {
		t.Errorf("rows = %v, want %v", tab.Rows, want)
	}
}

func TestBuildRangeOverlap(t *testing.T) {
	for _, r2 := range []string{"x = [1]", "xx = [1]"} {
		_, err := Build(calc.New(), Spec{
			Statement: "z = x * 2",
			Range1:    "x = [1, 2]",
			Range2:    r2,
		})
		if !errors.Is(err, ErrRangeOverlap) {
			t.Errorf("%s: err = %v, want ErrRangeOverlap", r2, err)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build(calc.New(), Spec{Statement: "y = 1", Range1: "i = nope"}); !errors.Is(err, ErrRange) {
		t.Errorf("bad range: err = %v, want ErrRange", err)
	}

	if _, err := Build(calc.New(), Spec{Statement: "y = nope", Range1: "i = [1]"}); !errors.Is(err, ErrStatement) {
		t.Errorf("bad statement: err = %v, want ErrStatement", err)
	}
}

func TestStringText(t *testing.T) {
	tab := &Table{
		Headers: []string{"name", "value"},
		Rows:    [][]any{{"alpha", 1.5}, {"b", 2}},
	}

	want := "" +
		"======  =======\n" +
		"name      value\n" +
		"======  =======\n" +
		"alpha         2\n" +
		"b             2\n" +
		"======  =======\n"

	if got := tab.String(); got != want {
		t.Errorf("String:\n%s\nwant:\n%s", got, want)
	}
}
