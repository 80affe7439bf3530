package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/papersrc/papersrc/store"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseNumber(t *testing.T) {
	Convey("ParseNumber", t, func() {
		So(ParseNumber("3.7"), ShouldEqual, 3.7)
		So(ParseNumber("-5"), ShouldEqual, -5)
		So(ParseNumber(" 12 days"), ShouldEqual, 12)
		So(ParseNumber("abc"), ShouldEqual, 0)
		So(ParseNumber(""), ShouldEqual, 0)
		So(ParseNumber(".5"), ShouldEqual, 0.5)
	})
}

func TestValues(t *testing.T) {
	Convey("Values accessors", t, func() {
		v := Values{
			"languages":  []string{"en", "fr"},
			"thumbnail":  []any{"512"},
			"data_saver": true,
			"amount":     7.0,
			"days":       "3",
		}

		So(v.Strings("languages"), ShouldResemble, []string{"en", "fr"})
		So(v.First("thumbnail"), ShouldEqual, "512")
		So(v.First("missing"), ShouldEqual, "")
		So(v.Bool("data_saver"), ShouldBeTrue)
		So(v.Bool("missing"), ShouldBeFalse)
		So(v.Int("amount"), ShouldEqual, 7)
		So(v.String("days"), ShouldEqual, "3")
		So(v.String("languages"), ShouldEqual, "en,fr")
	})
}

func TestForm(t *testing.T) {
	Convey("Given a form with a select and a stepper", t, func() {
		var submitted Values
		form := &Form{
			ID: "test",
			Sections: Static(Section{ID: "main", Rows: []Row{
				Select("languages", "Languages", []string{"en", "ja"}, nil, []string{"en"}, true, 1),
				Stepper("amount", "Amount", 5, 1, 15, 1),
			}}),
			Submit: func(_ context.Context, values Values) error {
				submitted = values
				return nil
			},
		}

		Convey("Valid values should be submitted", func() {
			err := form.Apply(context.Background(), Values{"languages": []string{"ja"}, "amount": 3})
			So(err, ShouldBeNil)
			So(submitted.Strings("languages"), ShouldResemble, []string{"ja"})
		})

		Convey("Rows left out of a submit should keep their current value", func() {
			err := form.Apply(context.Background(), Values{"amount": 3})
			So(err, ShouldBeNil)
			So(submitted.Strings("languages"), ShouldResemble, []string{"en"})
			So(submitted.Int("amount"), ShouldEqual, 3)
		})

		Convey("An empty required selection should be rejected", func() {
			err := form.Apply(context.Background(), Values{"languages": []string{}})
			So(err, ShouldNotBeNil)
			So(submitted, ShouldBeNil)
		})

		Convey("An unknown option should be rejected", func() {
			So(form.Validate(Values{"languages": []string{"xx"}}), ShouldNotBeNil)
		})

		Convey("A stepper out of bounds should be rejected", func() {
			So(form.Validate(Values{"amount": 16}), ShouldNotBeNil)
		})

		Convey("A read-only form cannot be applied", func() {
			readOnly := &Form{ID: "info", Sections: Static()}
			So(errors.Is(readOnly.Apply(context.Background(), Values{}), ErrNoSubmit), ShouldBeTrue)
		})
	})
}

type failingStore struct {
	*store.Memory
	failOn string
}

func (f failingStore) Store(key string, value any) error {
	if key == f.failOn {
		return errors.New("disk full")
	}
	return f.Memory.Store(key, value)
}

func TestStoreAll(t *testing.T) {
	Convey("Given a store failing on one key", t, func() {
		s := failingStore{Memory: store.NewMemory(), failOn: "b"}

		Convey("The other writes should still land", func() {
			err := StoreAll(s, Write{"a", 1}, Write{"b", 2}, Write{"c", 3})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "store b")

			a, _ := store.Get[int](s.Memory, "a")
			c, _ := store.Get[int](s.Memory, "c")
			So(a.MustGet(), ShouldEqual, 1)
			So(c.MustGet(), ShouldEqual, 3)
		})

		Convey("Clear should remove every key", func() {
			So(StoreAll(s, Write{"a", 1}, Write{"c", 3}), ShouldBeNil)
			So(Clear(s, "a", "c"), ShouldBeNil)
			So(s.Memory.Keys(), ShouldBeEmpty)
		})
	})
}
