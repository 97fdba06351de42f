package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmravi/erpcli/internal/client/models"
)

func newTestClient(baseURL string) *HTTPClient {
	return NewHTTPClient(baseURL, 5*time.Second, "device-1", 100, 100)
}

func TestResolveAccounts_ParsesAccountsAndCoercesNumbers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/Login/GetUserAccounts", r.URL.Path)
		assert.Equal(t, "jdoe", r.URL.Query().Get("username"))
		assert.Equal(t, "device-1", r.Header.Get("X-Device-Id"))

		// Identifiers arrive as numbers; the client must coerce to strings.
		w.Write([]byte(`{"success":true,"data":[
			{"Global_User_ID":101,"Global_Id":"G1","Local_Id":5,"Company_Name":"Acme Ltd","Web_Api":"https://acme.example"}
		]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	accounts, err := c.ResolveAccounts(context.Background(), "jdoe")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, models.Account{
		GlobalUserID: "101",
		GlobalID:     "G1",
		LocalID:      "5",
		CompanyName:  "Acme Ltd",
		WebAPI:       "https://acme.example",
	}, accounts[0])
}

func TestResolveAccounts_RejectedCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"User does not exist"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.ResolveAccounts(context.Background(), "ghost")
	var rej *RejectedError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "User does not exist", rej.Message)
}

func TestResolveAccounts_EmptyResultIsRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.ResolveAccounts(context.Background(), "jdoe")
	var rej *RejectedError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, genericRejection, rej.Message)
}

func TestResolveAccounts_TransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := newTestClient(srv.URL)
	_, err := c.ResolveAccounts(context.Background(), "jdoe")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestResolveAccounts_MalformedBodyIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway error</html>`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.ResolveAccounts(context.Background(), "jdoe")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestLogin_SendsBackendFieldNames(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/Login/AuthenticateUser", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"success":true,"data":{"Autheticate_Id":"AID-42"}}`))
	}))
	defer srv.Close()

	acc := models.Account{
		GlobalUserID: "101", GlobalID: "G1", LocalID: "5",
		CompanyName: "Acme Ltd", WebAPI: "https://acme.example",
	}

	c := newTestClient(srv.URL)
	id, err := c.Login(context.Background(), acc, "jdoe", "ENCRYPTED")
	require.NoError(t, err)
	assert.Equal(t, "AID-42", id)

	// The wire format is the backend's, misspellings included.
	assert.Equal(t, "101", got["Global_User_ID"])
	assert.Equal(t, "jdoe", got["username"])
	assert.Equal(t, "ENCRYPTED", got["Password"])
	assert.Equal(t, "Acme Ltd", got["Company_Name"])
	assert.Equal(t, "G1", got["Global_Id"])
	assert.Equal(t, "5", got["Local_Id"])
	assert.Equal(t, "https://acme.example", got["Web_Api"])
}

func TestLogin_RejectedCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"Invalid password"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Login(context.Background(), models.Account{}, "jdoe", "ENC")
	var rej *RejectedError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "Invalid password", rej.Message)
}

func TestLogin_MissingAuthenticateIDIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Login(context.Background(), models.Account{}, "jdoe", "ENC")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchAuthUser_SendsRawAuthorizationAndMapsUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/Login/GetAuthUser", r.URL.Path)
		// Raw id, no bearer prefix.
		assert.Equal(t, "AID-42", r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true,"user":{
			"Autheticate_Id":"TOKEN-9","UserId":7,"Company_id":3,"Company_Name":"Acme Ltd",
			"UserName":"jdoe","Name":"John Doe","UserType":"Admin","UserTypeId":1,
			"BranchId":12,"BranchName":"Main"
		}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	user, err := c.FetchAuthUser(context.Background(), "AID-42")
	require.NoError(t, err)
	assert.Equal(t, &models.AuthUser{
		AuthenticateID: "TOKEN-9",
		UserID:         "7",
		CompanyID:      "3",
		CompanyName:    "Acme Ltd",
		UserName:       "jdoe",
		Name:           "John Doe",
		UserType:       "Admin",
		UserTypeID:     "1",
		BranchID:       "12",
		BranchName:     "Main",
	}, user)
}

func TestSetBackend_RepointsSubsequentRequests(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"Autheticate_Id":"AID"}}`))
	}))
	defer primary.Close()

	var secondaryHits int
	secondary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secondaryHits++
		w.Write([]byte(`{"success":true,"user":{"Autheticate_Id":"T"}}`))
	}))
	defer secondary.Close()

	c := newTestClient(primary.URL)
	_, err := c.Login(context.Background(), models.Account{}, "jdoe", "ENC")
	require.NoError(t, err)

	c.SetBackend(secondary.URL)
	assert.Equal(t, secondary.URL, c.Backend())

	_, err = c.FetchAuthUser(context.Background(), "AID")
	require.NoError(t, err)
	assert.Equal(t, 1, secondaryHits)
}

func TestSetBackend_TrimsTrailingSlash(t *testing.T) {
	c := newTestClient("https://a.example/")
	assert.Equal(t, "https://a.example", c.Backend())

	c.SetBackend("https://b.example/")
	assert.Equal(t, "https://b.example", c.Backend())
}
