package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/okian/discography/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTimestampJSON(t *testing.T) {
	Convey("Given timestamps with short fractions", t, func() {
		cases := map[string]time.Time{
			`"2021-01-01T00:00:00.000Z"`: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
			`"2024-05-01T12:30:15.120Z"`: time.Date(2024, 5, 1, 12, 30, 15, 120*int(time.Millisecond), time.UTC),
		}

		Convey("Then they are written with three fraction digits", func() {
			for want, at := range cases {
				raw, err := json.Marshal(model.Stamp(at))
				So(err, ShouldBeNil)
				So(string(raw), ShouldEqual, want)
			}
		})

		Convey("And reading them back gives the same text", func() {
			for text := range cases {
				var ts model.Timestamp
				So(json.Unmarshal([]byte(text), &ts), ShouldBeNil)

				raw, err := json.Marshal(ts)
				So(err, ShouldBeNil)
				So(string(raw), ShouldEqual, text)
			}
		})
	})

	Convey("Given a value that is not a timestamp", t, func() {
		var ts model.Timestamp

		Convey("Then decoding fails", func() {
			So(json.Unmarshal([]byte(`12`), &ts), ShouldNotBeNil)
			So(json.Unmarshal([]byte(`"yesterday"`), &ts), ShouldNotBeNil)
		})
	})
}
