package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/okian/discography/internal/config"
	"github.com/okian/discography/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
	"github.com/urfave/cli/v2"
)

func init() {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
}

func writeSeeds(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"artists.json": `{"1": {"artistId": 1, "name": "Red Hot Chili Peppers"}}`,
		"albums.json":  `{"1": {"albumId": 1, "name": "Stadium Arcadium", "artistId": 1}}`,
		"songs.json":   `{"1": {"songId": 1, "name": "Dani California", "trackNumber": 1, "albumId": 1, "lyrics": "Getting born"}}`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestNewHandler(t *testing.T) {
	convey.Convey("Given a seeds directory", t, func() {
		ctx := context.Background()
		cfg := config.New()
		cfg.SeedsDir = writeSeeds(t)

		handler, err := newHandler(ctx, cfg)
		convey.So(err, convey.ShouldBeNil)

		get := func(path string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			return w
		}

		convey.Convey("Then the catalog is served from the seeds", func() {
			w := get("/songs/1")
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)

			var song map[string]any
			convey.So(json.Unmarshal(w.Body.Bytes(), &song), convey.ShouldBeNil)
			convey.So(song["name"], convey.ShouldEqual, "Dani California")
			convey.So(song["artist"], convey.ShouldResemble, map[string]any{"name": "Red Hot Chili Peppers", "artistId": 1.0})
		})

		convey.Convey("And the operational routes are mounted", func() {
			convey.So(get("/healthz").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/stats").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api-docs").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("And every response carries a request id", func() {
			convey.So(get("/nonexistent").Header().Get("X-Request-ID"), convey.ShouldNotBeEmpty)
		})

		convey.Convey("And new artists continue after the seeded ids", func() {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/artists", strings.NewReader(`{"name":"Queen"}`))
			req.Header.Set("Content-Type", "application/json")
			handler.ServeHTTP(w, req)

			convey.So(w.Code, convey.ShouldEqual, http.StatusCreated)
			convey.So(w.Body.String(), convey.ShouldContainSubstring, `"artistId":2`)
		})
	})

	convey.Convey("Given a malformed seed file", t, func() {
		dir := t.TempDir()
		convey.So(os.WriteFile(filepath.Join(dir, "artists.json"), []byte(`{`), 0o600), convey.ShouldBeNil)

		cfg := config.New()
		cfg.SeedsDir = dir

		convey.Convey("Then the handler cannot be built", func() {
			handler, err := newHandler(context.Background(), cfg)
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(handler, convey.ShouldBeNil)
		})
	})
}

func TestShippedSeedsRoundTrip(t *testing.T) {
	convey.Convey("Given the seeds shipped with the service", t, func() {
		cfg := config.New()
		cfg.SeedsDir = filepath.Join("..", "seeds")

		handler, err := newHandler(context.Background(), cfg)
		convey.So(err, convey.ShouldBeNil)

		collections := map[string]string{"artists": "artistId", "albums": "albumId", "songs": "songId"}
		for collection, idField := range collections {
			convey.Convey("Then GET /"+collection+" returns exactly the seed entries", func() {
				raw, err := os.ReadFile(filepath.Join(cfg.SeedsDir, collection+".json"))
				convey.So(err, convey.ShouldBeNil)

				var seeded map[string]map[string]any
				convey.So(json.Unmarshal(raw, &seeded), convey.ShouldBeNil)

				w := httptest.NewRecorder()
				handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/"+collection, nil))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)

				var served []map[string]any
				convey.So(json.Unmarshal(w.Body.Bytes(), &served), convey.ShouldBeNil)
				convey.So(served, convey.ShouldHaveLength, len(seeded))

				for _, item := range served {
					id, ok := item[idField].(float64)
					convey.So(ok, convey.ShouldBeTrue)
					convey.So(item, convey.ShouldResemble, seeded[strconv.Itoa(int(id))])
				}
			})
		}
	})
}

func TestNewApp(t *testing.T) {
	convey.Convey("Given the command line app", t, func() {
		app := newApp()

		convey.Convey("Then it declares the expected flags", func() {
			names := make([]string, 0, len(app.Flags))
			for _, f := range app.Flags {
				names = append(names, f.Names()[0])
			}
			convey.So(names, convey.ShouldResemble, []string{flagConfig, flagAddr, flagSeedsDir})
		})

		convey.Convey("And the config flag reads its path from the environment", func() {
			flag, ok := app.Flags[0].(*cli.StringFlag)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(flag.EnvVars, convey.ShouldResemble, []string{config.EnvConfig})
		})
	})
}

func TestSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("Then a single update does not panic", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})

		convey.Convey("Then the loop stops with its context", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			done := make(chan struct{})
			go func() {
				startSystemMetricsUpdater(ctx)
				close(done)
			}()

			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("metrics updater did not stop")
			}
		})
	})
}
