package client_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	. "github.com/fivetwenty-io/giantswarm/internal/client"
	"github.com/fivetwenty-io/giantswarm/internal/constants"
	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const membershipsRoute = "GET /user/me/memberships"

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := New(nil)
		require.ErrorIs(t, err, constants.ErrConfigRequired)
	})

	t.Run("requires endpoint", func(t *testing.T) {
		t.Parallel()

		_, err := New(&giantswarm.Config{})
		require.ErrorIs(t, err, constants.ErrEndpointRequired)
	})

	t.Run("restores token without network call", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t)
		client, _, _ := newClient(t, server, "restored")

		assert.True(t, client.IsLoggedIn())
		assert.Empty(t, server.recorded())
	})

	t.Run("default environment store starts empty", func(t *testing.T) {
		t.Parallel()

		client, err := New(&giantswarm.Config{Endpoint: "http://127.0.0.1:1", Token: "tok"})
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })

		ctx := context.Background()
		assert.Empty(t, client.GetEnvironments(ctx))
		assert.False(t, client.HasEnvironments(ctx))
		assert.Empty(t, client.GetAllApplications(ctx))
	})
}

func TestClient_Login(t *testing.T) {
	t.Parallel()

	t.Run("stores token and sends it on later requests", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t)
		server.on("POST /user/dev@example.com/login", okReply(10000, `{"Id":"tok-1"}`))
		server.on(membershipsRoute, okReply(10000, `["acme"]`))

		client, _, _ := newClient(t, server, "")

		require.True(t, client.Login(context.Background(), "dev@example.com", "secret"))
		assert.True(t, client.IsLoggedIn())
		assert.Equal(t, []string{"acme"}, client.GetCompanies(context.Background()))

		requests := server.recorded()
		require.Len(t, requests, 2)
		assert.JSONEq(t, `{"password":"c2VjcmV0"}`, requests[0].Body)
		assert.Empty(t, requests[0].Authorization)
		assert.Equal(t, "giantswarm tok-1", requests[1].Authorization)
	})

	t.Run("already logged in", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t)
		client, _, logger := newClient(t, server, "existing")

		assert.False(t, client.Login(context.Background(), "dev@example.com", "secret"))
		assert.True(t, client.IsLoggedIn())
		assert.Empty(t, server.recorded())
		assert.Equal(t, []string{"logout_required"}, logger.kinds())
	})

	t.Run("wrong envelope leaves session empty", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t)
		server.on("POST /user/dev@example.com/login", okReply(10003, `{"Id":"tok-1"}`))

		client, reg, _ := newClient(t, server, "")

		assert.False(t, client.Login(context.Background(), "dev@example.com", "secret"))
		assert.False(t, client.IsLoggedIn())

		count, err := testutil.GatherAndCount(reg, "giantswarm_envelope_mismatches_total")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("rejected credentials", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t)
		server.on("POST /user/dev@example.com/login", reply{status: http.StatusUnauthorized, body: `{}`})

		client, _, logger := newClient(t, server, "")

		assert.False(t, client.Login(context.Background(), "dev@example.com", "wrong"))
		assert.False(t, client.IsLoggedIn())
		assert.Equal(t, []string{"client_error"}, logger.kinds())
	})
}

func TestClient_Logout(t *testing.T) {
	t.Parallel()

	t.Run("not logged in", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t)
		client, _, _ := newClient(t, server, "")

		assert.False(t, client.Logout(context.Background()))
		assert.Empty(t, server.recorded())
	})

	t.Run("clears token and cache", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t)
		server.on("POST /token/logout", okReply(10000, `null`))
		server.on(membershipsRoute, okReply(10000, `["acme"]`))

		client, _, _ := newClient(t, server, "tok")
		ctx := context.Background()

		client.GetCompanies(ctx)
		require.True(t, client.Logout(ctx))
		assert.False(t, client.IsLoggedIn())

		client.SetToken("tok")
		client.GetCompanies(ctx)
		assert.Equal(t, 2, server.count(membershipsRoute))
	})
}

func TestClient_LoginRequired(t *testing.T) {
	t.Parallel()

	server := newAPIServer(t)
	client, _, logger := newClient(t, server, "")
	ctx := context.Background()
	target := giantswarm.ComponentRef{Company: "acme", Environment: "prod", Application: "shop", Service: "web", Component: "nginx"}

	assert.Empty(t, client.GetCompanies(ctx))
	assert.False(t, client.HasCompanies(ctx))
	assert.False(t, client.CreateCompany(ctx, "acme"))
	assert.False(t, client.DeleteCompany(ctx, "acme"))
	assert.Empty(t, client.GetCompanyUsers(ctx, "acme"))
	assert.False(t, client.AddUserToCompany(ctx, "acme", "bob"))
	assert.False(t, client.RemoveUserFromCompany(ctx, "acme", "bob"))
	assert.Empty(t, client.GetApplications(ctx, "acme", "prod"))
	assert.Empty(t, client.GetAllApplications(ctx))
	assert.Equal(t, giantswarm.ApplicationStatus{}, client.GetApplicationStatus(ctx, "acme", "prod", "shop"))
	assert.False(t, client.StartApplication(ctx, "acme", "prod", "shop"))
	assert.False(t, client.StopApplication(ctx, "acme", "prod", "shop"))
	assert.False(t, client.ScaleApplicationUp(ctx, target))
	assert.False(t, client.ScaleApplicationDown(ctx, target))
	assert.Equal(t, giantswarm.InstanceStatistics{}, client.GetInstanceStatistics(ctx, "acme", "i-1"))
	assert.Equal(t, giantswarm.User{}, client.GetUser(ctx))
	assert.False(t, client.UpdateEmail(ctx, "new@example.com"))
	assert.False(t, client.UpdatePassword(ctx, "old", "new"))

	assert.Empty(t, server.recorded())

	for _, kind := range logger.kinds() {
		assert.Equal(t, "login_required", kind)
	}
}

func TestClient_CreateCompany(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t)
		server.on("POST /company", reply{status: http.StatusCreated, body: envelope(10003, `null`)})

		client, _, _ := newClient(t, server, "tok")

		require.True(t, client.CreateCompany(context.Background(), "acme"))

		requests := server.recorded()
		require.Len(t, requests, 1)
		assert.JSONEq(t, `{"company_id":"YWNtZQ=="}`, requests[0].Body)
		assert.Equal(t, "giantswarm tok", requests[0].Authorization)
	})

	t.Run("envelope mismatch", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t)
		server.on("POST /company", reply{status: http.StatusCreated, body: envelope(10006, `null`)})

		client, reg, logger := newClient(t, server, "tok")

		assert.False(t, client.CreateCompany(context.Background(), "acme"))
		assert.Equal(t, []string{"response_status_mismatch"}, logger.kinds())

		count, err := testutil.GatherAndCount(reg, "giantswarm_envelope_mismatches_total")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("forbidden", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t)
		server.on("POST /company", reply{status: http.StatusForbidden, body: `{}`})

		client, _, logger := newClient(t, server, "tok")

		assert.False(t, client.CreateCompany(context.Background(), "acme"))
		assert.Equal(t, []string{"not_allowed_to_request_uri"}, logger.kinds())
	})

	t.Run("invalidates company list", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t)
		server.on(membershipsRoute, okReply(10000, `[]`), okReply(10000, `["acme"]`))
		server.on("POST /company", okReply(10003, `null`))

		client, _, _ := newClient(t, server, "tok")
		ctx := context.Background()

		assert.False(t, client.HasCompanies(ctx))
		require.True(t, client.CreateCompany(ctx, "acme"))
		assert.Equal(t, []string{"acme"}, client.GetCompanies(ctx))
	})
}

func TestClient_GetCompanies(t *testing.T) {
	t.Parallel()

	t.Run("served from cache", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t)
		server.on(membershipsRoute, okReply(10000, `["acme","globex"]`))

		client, _, _ := newClient(t, server, "tok")
		ctx := context.Background()

		assert.Equal(t, []string{"acme", "globex"}, client.GetCompanies(ctx))
		assert.Equal(t, []string{"acme", "globex"}, client.GetCompanies(ctx))
		assert.True(t, client.HasCompanies(ctx))
		assert.Equal(t, 1, server.count(membershipsRoute))
	})

	t.Run("wrong envelope is not cached", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t)
		server.on(membershipsRoute, okReply(10001, `["acme"]`))

		client, _, _ := newClient(t, server, "tok")
		ctx := context.Background()

		assert.Empty(t, client.GetCompanies(ctx))
		assert.Empty(t, client.GetCompanies(ctx))
		assert.Equal(t, 2, server.count(membershipsRoute))
	})

	t.Run("server error", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t)
		server.on(membershipsRoute, reply{status: http.StatusInternalServerError, body: `oops`})

		client, _, logger := newClient(t, server, "tok")

		companies := client.GetCompanies(context.Background())
		assert.NotNil(t, companies)
		assert.Empty(t, companies)
		assert.Equal(t, []string{"server_error"}, logger.kinds())
	})
}

func TestClient_DeleteCompany(t *testing.T) {
	t.Parallel()

	server := newAPIServer(t)
	server.on("DELETE /company/acme", okReply(10007, `null`))

	client, _, _ := newClient(t, server, "tok")
	ctx := context.Background()

	require.True(t, client.CreateEnvironment(ctx, "acme", "prod"))
	require.True(t, client.CreateEnvironment(ctx, "globex", "prod"))
	require.True(t, client.DeleteCompany(ctx, "acme"))

	assert.Equal(t, []giantswarm.Environment{{Name: "prod", CompanyName: "globex"}}, client.GetEnvironments(ctx))
}

func TestClient_CompanyUsers(t *testing.T) {
	t.Parallel()

	server := newAPIServer(t)
	server.on("GET /company/acme",
		okReply(10000, `{"members":["alice"]}`),
		okReply(10000, `{"members":["alice","bob"]}`))
	server.on("POST /company/acme/members/add", okReply(10006, `null`))
	server.on("POST /company/acme/members/remove", okReply(10000, `null`))

	client, _, _ := newClient(t, server, "tok")
	ctx := context.Background()

	assert.Equal(t, []string{"alice"}, client.GetCompanyUsers(ctx, "acme"))
	require.True(t, client.AddUserToCompany(ctx, "acme", "bob"))
	assert.Equal(t, []string{"alice", "bob"}, client.GetCompanyUsers(ctx, "acme"))
	assert.False(t, client.RemoveUserFromCompany(ctx, "acme", "bob"))

	for _, req := range server.recorded() {
		if req.Path == "/company/acme/members/add" {
			assert.JSONEq(t, `{"username":"Ym9i"}`, req.Body)
		}
	}
}

func TestClient_CreateEnvironmentConcurrently(t *testing.T) {
	t.Parallel()

	server := newAPIServer(t)
	client, _, _ := newClient(t, server, "")
	ctx := context.Background()

	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			assert.True(t, client.CreateEnvironment(ctx, "acme", "prod"))
		}()
	}

	wg.Wait()

	assert.Equal(t, []giantswarm.Environment{{Name: "prod", CompanyName: "acme"}}, client.GetEnvironments(ctx))
}

func TestClient_Environments(t *testing.T) {
	t.Parallel()

	server := newAPIServer(t)
	client, _, _ := newClient(t, server, "")
	ctx := context.Background()

	environments := client.GetEnvironments(ctx)
	assert.NotNil(t, environments)
	assert.Empty(t, environments)
	assert.False(t, client.HasEnvironments(ctx))

	require.True(t, client.CreateEnvironment(ctx, "acme", "prod"))
	require.True(t, client.CreateEnvironment(ctx, "acme", "prod"))
	require.True(t, client.CreateEnvironment(ctx, "acme", "dev"))

	assert.True(t, client.HasEnvironments(ctx))
	assert.True(t, client.HasEnvironment(ctx, "acme", "prod"))
	assert.False(t, client.HasEnvironment(ctx, "globex", "prod"))
	assert.Equal(t, []giantswarm.Environment{
		{Name: "dev", CompanyName: "acme"},
		{Name: "prod", CompanyName: "acme"},
	}, client.GetEnvironments(ctx))

	require.True(t, client.DeleteEnvironment(ctx, "acme", "prod"))
	assert.False(t, client.HasEnvironment(ctx, "acme", "prod"))

	assert.Empty(t, server.recorded())
}

func TestClient_Applications(t *testing.T) {
	t.Parallel()

	t.Run("list one environment", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t)
		server.on("GET /company/acme/env/prod/app/",
			okReply(10000, `[{"company":"acme","env":"prod","app":"shop","created":"2015-01-02"}]`))

		client, _, _ := newClient(t, server, "tok")
		ctx := context.Background()

		expected := []giantswarm.Application{
			{Company: "acme", Environment: "prod", Application: "shop", CreatedAt: "2015-01-02"},
		}
		assert.Equal(t, expected, client.GetApplications(ctx, "acme", "prod"))
		assert.Equal(t, expected, client.GetApplications(ctx, "acme", "prod"))
		assert.Equal(t, 1, server.count("GET /company/acme/env/prod/app/"))
	})

	t.Run("names containing the key separator get their own cache entry", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t)
		server.on("GET /company/a:b/env/c/app/",
			okReply(10000, `[{"company":"a:b","env":"c","app":"first","created":"2015-01-02"}]`))
		server.on("GET /company/a/env/b:c/app/",
			okReply(10000, `[{"company":"a","env":"b:c","app":"second","created":"2015-01-02"}]`))

		client, _, _ := newClient(t, server, "tok")
		ctx := context.Background()

		first := client.GetApplications(ctx, "a:b", "c")
		second := client.GetApplications(ctx, "a", "b:c")

		require.Len(t, first, 1)
		require.Len(t, second, 1)
		assert.Equal(t, "first", first[0].Application)
		assert.Equal(t, "second", second[0].Application)
		assert.Equal(t, 1, server.count("GET /company/a:b/env/c/app/"))
		assert.Equal(t, 1, server.count("GET /company/a/env/b:c/app/"))
	})

	t.Run("list all keeps partial results", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t)
		server.on(membershipsRoute, okReply(10000, `["acme"]`))
		server.on("GET /company/acme/env/prod/app/",
			okReply(10000, `[{"company":"acme","env":"prod","app":"shop","created":"2015-01-02"}]`))
		server.on("GET /company/acme/env/dev/app/", reply{status: http.StatusInternalServerError, body: `{}`})

		client, _, logger := newClient(t, server, "tok")
		ctx := context.Background()

		require.True(t, client.CreateEnvironment(ctx, "acme", "prod"))
		require.True(t, client.CreateEnvironment(ctx, "acme", "dev"))

		applications := client.GetAllApplications(ctx)
		require.Len(t, applications, 1)
		assert.Equal(t, "shop", applications[0].Application)
		assert.Equal(t, []string{"server_error"}, logger.kinds())
	})

	t.Run("status tree", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t)
		server.on("GET /company/acme/env/prod/app/shop/status", okReply(10000, `{
			"name": "shop",
			"status": "up",
			"services": [{
				"name": "web",
				"status": "up",
				"max": 3,
				"min": 1,
				"components": [{
					"name": "nginx",
					"status": "up",
					"max": 3,
					"min": 1,
					"instances": [{"id": "i-1", "status": "up", "image": "nginx:1.7", "create_date": "2015-01-02"}]
				}]
			}]
		}`))

		client, _, _ := newClient(t, server, "tok")

		status := client.GetApplicationStatus(context.Background(), "acme", "prod", "shop")
		assert.Equal(t, "shop", status.Name)
		require.Len(t, status.Services, 1)
		assert.Equal(t, 3, status.Services[0].Maximum)
		require.Len(t, status.Services[0].Components, 1)
		require.Len(t, status.Services[0].Components[0].Instances, 1)
		assert.Equal(t, giantswarm.InstanceStatus{
			ID:        "i-1",
			Status:    "up",
			Image:     "nginx:1.7",
			CreatedAt: "2015-01-02",
		}, status.Services[0].Components[0].Instances[0])
	})

	t.Run("start and stop", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t)
		server.on("POST /company/acme/env/prod/app/shop/start", okReply(10004, `null`))
		server.on("POST /company/acme/env/prod/app/shop/stop", okReply(10004, `null`))

		client, _, _ := newClient(t, server, "tok")
		ctx := context.Background()

		assert.True(t, client.StartApplication(ctx, "acme", "prod", "shop"))
		assert.False(t, client.StopApplication(ctx, "acme", "prod", "shop"))
	})
}

func TestClient_Scale(t *testing.T) {
	t.Parallel()

	target := giantswarm.ComponentRef{
		Company:     "acme",
		Environment: "prod",
		Application: "shop",
		Service:     "web",
		Component:   "nginx",
	}
	base := "POST /company/acme/env/prod/app/shop/service/web/component/nginx"

	server := newAPIServer(t)
	server.on(base+"/scaleup/1", okReply(10006, `null`))
	server.on(base+"/scaleup/3", okReply(10006, `null`))
	server.on(base+"/scaledown/1", okReply(10007, `null`))
	server.on(base+"/scaledown/2", okReply(10006, `null`))

	client, _, _ := newClient(t, server, "tok")
	ctx := context.Background()

	assert.True(t, client.ScaleApplicationUp(ctx, target))
	assert.True(t, client.ScaleApplicationUpBy(ctx, target, 3))
	assert.True(t, client.ScaleApplicationDown(ctx, target))
	assert.False(t, client.ScaleApplicationDownBy(ctx, target, 2))
	assert.False(t, client.ScaleApplicationUpBy(ctx, target, 0))

	assert.Len(t, server.recorded(), 4)
}

func TestClient_InstanceStatistics(t *testing.T) {
	t.Parallel()

	server := newAPIServer(t)
	server.on("GET /company/acme/instance/i-1/stats", okReply(10000, `{
		"ComponentName": "nginx",
		"MemoryUsageMb": 12.5,
		"MemoryCapacityMb": 256,
		"MemoryUsagePercent": 4.88,
		"CpuUsagePercent": 1.5
	}`))

	client, _, _ := newClient(t, server, "tok")

	assert.Equal(t, giantswarm.InstanceStatistics{
		Component:          "nginx",
		MemoryUsageMB:      12.5,
		MemoryCapacityMB:   256,
		MemoryUsagePercent: 4.88,
		CPUUsagePercent:    1.5,
	}, client.GetInstanceStatistics(context.Background(), "acme", "i-1"))
}

func TestClient_Account(t *testing.T) {
	t.Parallel()

	server := newAPIServer(t)
	server.on("GET /user/me",
		okReply(10000, `{"username":"dev","email":"old@example.com"}`),
		okReply(10000, `{"username":"dev","email":"new@example.com"}`))
	server.on("POST /user/me/email/update", okReply(10006, `null`))
	server.on("POST /user/me/password/update", okReply(10006, `null`))

	client, _, _ := newClient(t, server, "tok")
	ctx := context.Background()

	assert.Equal(t, giantswarm.User{Name: "dev", Email: "old@example.com"}, client.GetUser(ctx))
	require.True(t, client.UpdateEmail(ctx, "new@example.com"))
	assert.Equal(t, "new@example.com", client.GetUser(ctx).Email)
	require.True(t, client.UpdatePassword(ctx, "old", "new"))

	for _, req := range server.recorded() {
		switch req.Path {
		case "/user/me/email/update":
			assert.JSONEq(t, `{"old_email":"old@example.com","new_email":"new@example.com"}`, req.Body)
		case "/user/me/password/update":
			assert.JSONEq(t, `{"old_password":"b2xk","new_password":"bmV3"}`, req.Body)
		}
	}

	assert.Equal(t, 2, server.count("GET /user/me"))
}

func TestClient_Ping(t *testing.T) {
	t.Parallel()

	t.Run("ok without session", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t)
		server.on("GET /ping", reply{status: http.StatusOK, body: `"OK"`})

		client, _, _ := newClient(t, server, "")

		assert.True(t, client.Ping(context.Background()))
		assert.Empty(t, server.recorded()[0].Authorization)
	})

	t.Run("unexpected body", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t)
		server.on("GET /ping", reply{status: http.StatusOK, body: `"maintenance"`})

		client, _, _ := newClient(t, server, "")

		assert.False(t, client.Ping(context.Background()))
	})

	t.Run("unreachable", func(t *testing.T) {
		t.Parallel()

		server := newAPIServer(t)
		client, _, _ := newClient(t, server, "")
		server.Close()

		assert.False(t, client.Ping(context.Background()))
	})
}
