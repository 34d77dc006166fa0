package selftests

import (
	"errors"

	"github.com/dhemodules/dheunit/framework/expect"
	"github.com/dhemodules/dheunit/framework/format"
	"github.com/dhemodules/dheunit/framework/unit"
)

type formatCase struct {
	name   string
	action func() (string, error)
	want   string
}

func joinedCase(name, want string, args ...interface{}) formatCase {
	return formatCase{name, func() (string, error) { return format.Joined(args...), nil }, want}
}

func formattedCase(name, want, template string, args ...interface{}) formatCase {
	return formatCase{name, func() (string, error) { return format.Formatted(template, args...) }, want}
}

var joinedCases = []formatCase{ //nolint:gochecknoglobals
	joinedCase("0 args", ""),
	joinedCase("1 arg", "1", 1),
	joinedCase("2 args", "1 2", 1, 2),
	joinedCase("n args", "1 2 3 4 5", 1, 2, 3, 4, 5),
	joinedCase("various types", "true 1 2.3 three", true, 1, float32(2.3), "three"),
}

var formattedCases = []formatCase{ //nolint:gochecknoglobals
	formattedCase("empty format", "", ""),
	formattedCase("0 anchors", "0 anchors", "0 anchors"),
	formattedCase("1 anchor", "1 anchor", "{} anchor", 1),
	formattedCase("2 anchors", "one:1 two:2", "one:{} two:{}", 1, 2),
	formattedCase("n anchors", "values 1+2+3+4+5", "values {}+{}+{}+{}+{}", 1, 2, 3, 4, 5),
	formattedCase("various types", "bool:true int:1 float:2.3 string:three",
		"bool:{} int:{} float:{} string:{}", true, 1, float32(2.3), "three"),
	formattedCase("unpaired brace", "{arg1foo", "{{}foo", "arg1"),
	formattedCase("closing brace only", "a}b", "a}b"),
}

func runFormatCases(t *unit.T, cases []formatCase) {
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *unit.T) {
			got, err := c.action()
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			if got != c.want {
				t.Errorf(`Got "{}", want "{}"`, got, c.want)
			}
		})
	}
}

func formatSuite(add unit.AddTestFunc) {
	add("Joined()", func(t *unit.T) { runFormatCases(t, joinedCases) })
	add("Formatted()", func(t *unit.T) { runFormatCases(t, formattedCases) })

	add("Formatted() errors", func(t *unit.T) {
		t.Run("too few arguments", func(t *unit.T) {
			_, err := format.Formatted("{} {}", 1)
			expect.That(t, errors.Is(err, format.ErrNotEnoughArguments), expect.IsTrue)
		})
		t.Run("too many arguments", func(t *unit.T) {
			_, err := format.Formatted("{}", 1, 2)
			expect.That(t, errors.Is(err, format.ErrTooManyArguments), expect.IsTrue)
		})
		t.Run("error names the template", func(t *unit.T) {
			_, err := format.Formatted("x{}", 1, 2)
			var fe format.FormatError
			expect.ThatF(t, errors.As(err, &fe), expect.IsTrue)
			expect.That(t, fe.Template, expect.IsEqualTo("x{}"))
		})
	})
}
