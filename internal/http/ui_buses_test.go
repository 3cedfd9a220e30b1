package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/eduride/eduride-ui/internal/domain/auth"
	apperrors "github.com/eduride/eduride-ui/internal/errors"
	"github.com/eduride/eduride-ui/internal/service"
)

func fleetBackend(t *testing.T) *stubBackend {
	t.Helper()
	return &stubBackend{
		FetchRecordsFunc: func(_ context.Context, path string) ([]service.Record, error) {
			assert.Equal(t, "/buses/agency/42", path)
			return []service.Record{
				{"id": float64(1), "busNumber": "KA-01-1111", "capacity": float64(40), "schoolName": "Green Valley", "driverName": "Ravi"},
				{"id": float64(2), "busNumber": "KA-01-2222", "capacity": float64(30), "schoolName": "Hill View"},
				{"id": float64(3), "busNumber": "KA-01-3333", "capacity": float64(52), "schoolName": "Green Valley", "driverName": "Sunil"},
			}, nil
		},
	}
}

func busesRequest(target string, role domainauth.Role) *http.Request {
	return requestWithSession(httptest.NewRequest(http.MethodGet, target, nil), testSession(role))
}

func TestBusesPageRendersFleet(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, nil, fleetBackend(t), nil)
	w := doRequest(http.HandlerFunc(h.BusesPage), busesRequest("/buses", domainauth.RoleAgency))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "KA-01-1111")
	assert.Contains(t, body, "KA-01-2222")
	assert.Contains(t, body, "KA-01-3333")
	assert.Contains(t, body, "Unassigned")
	assert.Contains(t, body, "/buses/1/edit", "agency sees row actions")
}

func TestBusesPageSchoolHidesAgencyActions(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{
		FetchRecordsFunc: func(_ context.Context, path string) ([]service.Record, error) {
			assert.Equal(t, "/buses/school/42", path)
			return []service.Record{
				{"id": float64(1), "busNumber": "KA-01-1111", "capacity": float64(40)},
			}, nil
		},
	}
	h := newTestHandlers(t, nil, backend, nil)
	w := doRequest(http.HandlerFunc(h.BusesPage), busesRequest("/buses", domainauth.RoleSchool))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "KA-01-1111")
	assert.NotContains(t, body, "/buses/1/edit")
	assert.NotContains(t, body, "Delete bus")
}

func TestBusesPageSearchNarrowsRows(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, nil, fleetBackend(t), nil)
	w := doRequest(http.HandlerFunc(h.BusesPage), busesRequest("/buses?q=2222", domainauth.RoleAgency))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "KA-01-2222")
	assert.NotContains(t, body, "KA-01-1111")
}

func TestBusesPageFilterWithoutDriver(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, nil, fleetBackend(t), nil)
	w := doRequest(http.HandlerFunc(h.BusesPage),
		busesRequest("/buses?filter=WITHOUT_DRIVER", domainauth.RoleAgency))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "KA-01-2222", "only the driverless bus remains")
	assert.NotContains(t, body, "KA-01-1111")
	assert.NotContains(t, body, "KA-01-3333")
}

func TestBusesPageNoMatchesOffersClearFilters(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, nil, fleetBackend(t), nil)
	w := doRequest(http.HandlerFunc(h.BusesPage), busesRequest("/buses?q=nosuchbus", domainauth.RoleAgency))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "No buses match")
	assert.Contains(t, body, "Clear filters")
}

func TestBusesPageEmptyBackendShowsNoData(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, nil, &stubBackend{}, nil)
	w := doRequest(http.HandlerFunc(h.BusesPage), busesRequest("/buses", domainauth.RoleAgency))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No buses yet.")
}

func TestBusesPageBackendFailureRendersRetry(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{
		FetchRecordsFunc: func(context.Context, string) ([]service.Record, error) {
			return nil, apperrors.Backendf("Fleet service unavailable")
		},
	}
	h := newTestHandlers(t, nil, backend, nil)
	h.Logger = discardLogger()

	w := doRequest(http.HandlerFunc(h.BusesPage), busesRequest("/buses", domainauth.RoleAgency))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Fleet service unavailable")
}

func TestBusesPageRejectedTokenRestartsAtLogin(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{
		FetchRecordsFunc: func(context.Context, string) ([]service.Record, error) {
			return nil, apperrors.ErrUnauthenticated
		},
	}
	auth := newStubAuth()
	h := newTestHandlers(t, auth, backend, nil)

	r := busesRequest("/buses", domainauth.RoleAgency)
	r.AddCookie(sessionCookie("sess-1"))
	w := doRequest(http.HandlerFunc(h.BusesPage), r)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Equal(t, []string{"sess-1"}, auth.ForcedLogouts)
}

func TestExportBusesWritesFilteredCSV(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, nil, fleetBackend(t), nil)
	w := doRequest(http.HandlerFunc(h.ExportBuses),
		busesRequest("/buses/export.csv?filter=WITHOUT_DRIVER", domainauth.RoleAgency))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="buses.csv"`, w.Header().Get("Content-Disposition"))

	body := w.Body.String()
	assert.Contains(t, body, "Bus Number,Capacity,Assigned School,Driver\n")
	assert.Contains(t, body, "KA-01-2222,30,Hill View,\n")
	assert.NotContains(t, body, "KA-01-1111")
}

func TestSaveBusCreateRedirectsWithToast(t *testing.T) {
	t.Parallel()

	var created busForm
	backend := &stubBackend{
		CreateBusFunc: func(_ context.Context, payload any) error {
			form, ok := payload.(busForm)
			require.True(t, ok)
			created = form
			return nil
		},
	}
	h := newTestHandlers(t, nil, backend, nil)

	r := requestWithSession(postForm("/buses", url.Values{
		"busNumber": {"KA-01-9999"},
		"capacity":  {"45"},
		"schoolId":  {"7"},
	}), testSession(domainauth.RoleAgency))
	w := doRequest(http.HandlerFunc(h.SaveBus), r)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/buses", w.Header().Get("Location"))
	assert.Equal(t, "Bus saved.", flashFromResponse(t, w).Message)
	assert.Equal(t, busForm{BusNumber: "KA-01-9999", Capacity: 45, SchoolID: 7}, created)
}

func TestSaveBusValidationRerendersForm(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, nil, &stubBackend{}, nil)

	r := requestWithSession(postForm("/buses", url.Values{
		"busNumber": {""},
		"capacity":  {"0"},
	}), testSession(domainauth.RoleAgency))
	w := doRequest(http.HandlerFunc(h.SaveBus), r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), errMsgFixBelow)
}

func TestDeleteBusFailureTurnsIntoToast(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{
		DeleteBusFunc: func(_ context.Context, busID int64) error {
			assert.EqualValues(t, 3, busID)
			return apperrors.Backendf("Bus has students assigned")
		},
	}
	h := newTestHandlers(t, nil, backend, nil)

	r := requestWithSession(postForm("/buses/3/delete", url.Values{}), testSession(domainauth.RoleAgency))
	r.SetPathValue("id", "3")
	w := doRequest(http.HandlerFunc(h.DeleteBus), r)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/buses", w.Header().Get("Location"))
	flash := flashFromResponse(t, w)
	assert.Equal(t, "Bus has students assigned", flash.Message)
	assert.Equal(t, flashError, flash.Kind)
}

func TestUnassignDriverSuccessToast(t *testing.T) {
	t.Parallel()

	unassigned := int64(0)
	backend := &stubBackend{
		UnassignDriverFunc: func(_ context.Context, busID int64) error {
			unassigned = busID
			return nil
		},
	}
	h := newTestHandlers(t, nil, backend, nil)

	r := requestWithSession(postForm("/buses/5/unassign-driver", url.Values{}), testSession(domainauth.RoleAgency))
	r.SetPathValue("id", "5")
	w := doRequest(http.HandlerFunc(h.UnassignDriver), r)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.EqualValues(t, 5, unassigned)
	assert.Equal(t, "Driver unassigned.", flashFromResponse(t, w).Message)
}

func TestEditBusPagePrefillsFromQuery(t *testing.T) {
	t.Parallel()

	h := newTestHandlers(t, nil, &stubBackend{}, nil)

	r := busesRequest("/buses/4/edit?busNumber=KA-01-4444&capacity=38", domainauth.RoleAgency)
	r.SetPathValue("id", "4")
	w := doRequest(http.HandlerFunc(h.EditBusPage), r)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `value="KA-01-4444"`)
	assert.Contains(t, body, `value="38"`)
	assert.Contains(t, body, `action="/buses/4"`)
}
