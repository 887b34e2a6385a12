package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/okian/discography/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestViewsJSON(t *testing.T) {
	Convey("Given an artist view", t, func() {
		created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		view := model.ArtistView{
			Artist: model.Artist{ArtistID: 1, Name: "Red Hot Chili Peppers", CreatedAt: model.Stamp(created)},
			Albums: []model.Album{},
		}

		Convey("When it is encoded", func() {
			raw, err := json.Marshal(view)
			So(err, ShouldBeNil)

			var decoded map[string]any
			So(json.Unmarshal(raw, &decoded), ShouldBeNil)

			Convey("Then the artist fields are flattened next to the albums", func() {
				So(decoded["artistId"], ShouldEqual, 1.0)
				So(decoded["name"], ShouldEqual, "Red Hot Chili Peppers")
				So(decoded["createdAt"], ShouldEqual, "2024-01-02T03:04:05.000Z")
				So(decoded["albums"], ShouldResemble, []any{})
			})

			Convey("And unset timestamps are omitted", func() {
				_, ok := decoded["updatedAt"]
				So(ok, ShouldBeFalse)
			})
		})
	})

	Convey("Given a song view with a missing album", t, func() {
		view := model.SongView{Song: model.Song{SongID: 3, AlbumID: 9}}

		Convey("Then the summaries are left out of the document", func() {
			raw, err := json.Marshal(view)
			So(err, ShouldBeNil)
			So(string(raw), ShouldNotContainSubstring, `"album"`)
			So(string(raw), ShouldNotContainSubstring, `"artist"`)
		})
	})
}

func TestSummaries(t *testing.T) {
	Convey("Given stored entities", t, func() {
		artist := model.Artist{ArtistID: 4, Name: "Nirvana"}
		album := model.Album{AlbumID: 7, Name: "Nevermind", ArtistID: 4}

		Convey("Then their summaries keep only the embedded fields", func() {
			So(*artist.Summary(), ShouldResemble, model.ArtistSummary{Name: "Nirvana", ArtistID: 4})
			So(*album.Summary(), ShouldResemble, model.AlbumSummary{Name: "Nevermind", AlbumID: 7, ArtistID: 4})
		})
	})
}
