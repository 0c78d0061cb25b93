package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/mergington/activities/internal/adapters/http/api"
	repository "github.com/mergington/activities/internal/adapters/repository"
	service "github.com/mergington/activities/internal/app"
	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// mockRegistry implements api.Dependencies with scripted results.
type mockRegistry struct {
	activities    map[string]model.Activity
	signupErr     error
	unregisterErr error
	resets        int
}

func (m *mockRegistry) ListActivities(_ context.Context) map[string]model.Activity {
	return m.activities
}

func (m *mockRegistry) Signup(_ context.Context, _, _ string) error {
	return m.signupErr
}

func (m *mockRegistry) Unregister(_ context.Context, _, _ string) error {
	return m.unregisterErr
}

func (m *mockRegistry) ResetActivities(_ context.Context) {
	m.resets++
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newTestMux(deps api.Dependencies, testEndpoints bool) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}}, testEndpoints)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func doRequest(mux *http.ServeMux, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func signupURL(activity, email string) string {
	return "/activities/" + url.PathEscape(activity) + "/signup?email=" + url.QueryEscape(email)
}

func unregisterURL(activity, email string) string {
	return "/activities/" + url.PathEscape(activity) + "/unregister?email=" + url.QueryEscape(email)
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockRegistry{activities: map[string]model.Activity{}}
		mux := newTestMux(deps, false)

		Convey("Then the health endpoint serves metrics", func() {
			w := doRequest(mux, http.MethodGet, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And the stats endpoint is accessible", func() {
			w := doRequest(mux, http.MethodGet, "/stats")
			So(w.Code, ShouldEqual, http.StatusOK)

			var stats map[string]interface{}
			So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
			So(stats["started"], ShouldEqual, true)
		})

		Convey("And the test-only reset route is absent by default", func() {
			w := doRequest(mux, http.MethodPost, "/test/reset-activities")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("And responses carry a request id", func() {
			w := doRequest(mux, http.MethodGet, "/activities")
			So(w.Header().Get("X-Request-ID"), ShouldNotBeEmpty)
		})
	})
}

func TestActivitiesHandler_List(t *testing.T) {
	Convey("Given a registry with activities", t, func() {
		deps := &mockRegistry{activities: map[string]model.Activity{
			"Chess Club": {
				Description:     "Learn strategies",
				Schedule:        "Fridays, 3:30 PM - 5:00 PM",
				MaxParticipants: 12,
				Participants:    []string{"michael@mergington.edu"},
			},
		}}
		mux := newTestMux(deps, false)

		Convey("When listing activities", func() {
			w := doRequest(mux, http.MethodGet, "/activities")

			Convey("Then the full registry is returned as a name-to-record mapping", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var got map[string]model.Activity
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got, ShouldContainKey, "Chess Club")
				So(got["Chess Club"].MaxParticipants, ShouldEqual, 12)
				So(got["Chess Club"].Participants, ShouldResemble, []string{"michael@mergington.edu"})
			})
		})

		Convey("When using the wrong method", func() {
			w := doRequest(mux, http.MethodPost, "/activities")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestSignupHandler(t *testing.T) {
	Convey("Given an API server", t, func() {
		deps := &mockRegistry{}
		mux := newTestMux(deps, false)

		Convey("When signing up with a valid email", func() {
			w := doRequest(mux, http.MethodPost, signupURL("Chess Club", "new@mergington.edu"))

			Convey("Then 200 with a confirmation message", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["message"], ShouldContainSubstring, "Signed up new@mergington.edu")
				So(body["message"], ShouldContainSubstring, "Chess Club")
			})
		})

		Convey("When the activity does not exist", func() {
			deps.signupErr = repository.ErrActivityNotFound
			w := doRequest(mux, http.MethodPost, signupURL("Nonexistent Club", "x@mergington.edu"))

			Convey("Then 404 with the literal detail string", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				var body map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["detail"], ShouldContainSubstring, "Activity not found")
			})
		})

		Convey("When the email is already enrolled", func() {
			deps.signupErr = repository.ErrAlreadySignedUp
			w := doRequest(mux, http.MethodPost, signupURL("Tennis Club", "sarah@mergington.edu"))

			Convey("Then 400 and the detail mentions already signed up", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				var body map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["detail"], ShouldContainSubstring, "already signed up")
			})
		})

		Convey("When the email parameter is missing", func() {
			w := doRequest(mux, http.MethodPost, "/activities/Chess%20Club/signup")

			Convey("Then 400 before the registry is consulted", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				var body map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["detail"], ShouldContainSubstring, "email is required")
			})
		})

		Convey("When using the wrong method", func() {
			w := doRequest(mux, http.MethodGet, signupURL("Chess Club", "x@mergington.edu"))
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestUnregisterHandler(t *testing.T) {
	Convey("Given an API server", t, func() {
		deps := &mockRegistry{}
		mux := newTestMux(deps, false)

		Convey("When unregistering an enrolled email", func() {
			w := doRequest(mux, http.MethodDelete, unregisterURL("Chess Club", "gone@mergington.edu"))

			Convey("Then 200 with a confirmation message", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["message"], ShouldContainSubstring, "Unregistered gone@mergington.edu")
			})
		})

		Convey("When the activity does not exist", func() {
			deps.unregisterErr = repository.ErrActivityNotFound
			w := doRequest(mux, http.MethodDelete, unregisterURL("Nonexistent Club", "x@mergington.edu"))

			Convey("Then 404 with the literal detail string", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				var body map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["detail"], ShouldContainSubstring, "Activity not found")
			})
		})

		Convey("When the email is not enrolled", func() {
			deps.unregisterErr = repository.ErrNotSignedUp
			w := doRequest(mux, http.MethodDelete, unregisterURL("Drama Club", "stranger@mergington.edu"))

			Convey("Then 400 and the detail mentions not signed up", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				var body map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["detail"], ShouldContainSubstring, "not signed up for this activity")
			})
		})

		Convey("When the email parameter is missing", func() {
			w := doRequest(mux, http.MethodDelete, "/activities/Chess%20Club/unregister")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestResetHandler(t *testing.T) {
	Convey("Given an API server with test endpoints enabled", t, func() {
		deps := &mockRegistry{}
		mux := newTestMux(deps, true)

		Convey("When posting to the reset route", func() {
			w := doRequest(mux, http.MethodPost, "/test/reset-activities")

			Convey("Then the registry is reset", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.resets, ShouldEqual, 1)
			})
		})

		Convey("When using the wrong method", func() {
			w := doRequest(mux, http.MethodGet, "/test/reset-activities")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestRouteActivityAction(t *testing.T) {
	Convey("Given an API server", t, func() {
		deps := &mockRegistry{}
		mux := newTestMux(deps, false)

		Convey("Unknown actions under /activities/ are 404", func() {
			w := doRequest(mux, http.MethodPost, "/activities/Chess%20Club/enroll?email=x@mergington.edu")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("A bare activity path is 404", func() {
			w := doRequest(mux, http.MethodGet, "/activities/Chess%20Club")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

// Full-stack scenarios over the real service and registry, matching the
// behavior the web frontend depends on.
func TestScenarios_FullStack(t *testing.T) {
	newStack := func() *http.ServeMux {
		svc := service.New(service.WithLogger(logger.Get()))
		So(svc.Start(context.Background()), ShouldBeNil)
		return newTestMux(svc, true)
	}

	listActivities := func(mux *http.ServeMux) map[string]model.Activity {
		w := doRequest(mux, http.MethodGet, "/activities")
		So(w.Code, ShouldEqual, http.StatusOK)
		var got map[string]model.Activity
		So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
		return got
	}

	Convey("Scenario: new student joins the Baseball Team", t, func() {
		mux := newStack()
		w := doRequest(mux, http.MethodPost, signupURL("Baseball Team", "newstudent@mergington.edu"))

		So(w.Code, ShouldEqual, http.StatusOK)
		var body map[string]string
		So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
		So(body["message"], ShouldContainSubstring, "Signed up newstudent@mergington.edu")

		So(listActivities(mux)["Baseball Team"].Participants, ShouldContain, "newstudent@mergington.edu")
	})

	Convey("Scenario: sarah signs up for Tennis Club twice", t, func() {
		mux := newStack()
		w := doRequest(mux, http.MethodPost, signupURL("Tennis Club", "sarah@mergington.edu"))

		So(w.Code, ShouldEqual, http.StatusBadRequest)
		var body map[string]string
		So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
		So(body["detail"], ShouldContainSubstring, "already signed up")
	})

	Convey("Scenario: three Science Club signups, middle one unregisters", t, func() {
		mux := newStack()
		emails := []string{
			"student1@mergington.edu",
			"student2@mergington.edu",
			"student3@mergington.edu",
		}
		for _, e := range emails {
			w := doRequest(mux, http.MethodPost, signupURL("Science Club", e))
			So(w.Code, ShouldEqual, http.StatusOK)
		}

		w := doRequest(mux, http.MethodDelete, unregisterURL("Science Club", emails[1]))
		So(w.Code, ShouldEqual, http.StatusOK)

		roster := listActivities(mux)["Science Club"].Participants
		So(roster, ShouldContain, emails[0])
		So(roster, ShouldNotContain, emails[1])
		So(roster, ShouldContain, emails[2])

		// Relative order of the survivors is unchanged
		i0 := indexOf(roster, emails[0])
		i2 := indexOf(roster, emails[2])
		So(i0, ShouldBeLessThan, i2)
	})

	Convey("Scenario: reset restores the seed roster", t, func() {
		mux := newStack()
		before := listActivities(mux)["Chess Club"].Participants

		w := doRequest(mux, http.MethodPost, signupURL("Chess Club", "resetme@mergington.edu"))
		So(w.Code, ShouldEqual, http.StatusOK)

		w = doRequest(mux, http.MethodPost, "/test/reset-activities")
		So(w.Code, ShouldEqual, http.StatusOK)

		So(listActivities(mux)["Chess Club"].Participants, ShouldResemble, before)
	})
}

func indexOf(xs []string, want string) int {
	for i, x := range xs {
		if x == want {
			return i
		}
	}
	return -1
}
