package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unionmaster/crm-console/internal/api"
	"github.com/unionmaster/crm-console/internal/domain"
)

type fixedTokens struct{ token string }

func (f fixedTokens) Token() string { return f.token }

func newBackend(t *testing.T, setup func(engine *gin.Engine)) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	setup(engine)
	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)
	return server
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := api.NewClient(api.ClientConfig{})
	assert.Error(t, err)
}

func TestRequestsCarryBearerTokenAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	server := newBackend(t, func(engine *gin.Engine) {
		engine.GET("/leads", func(c *gin.Context) {
			gotAuth = c.GetHeader("Authorization")
			gotRequestID = c.GetHeader("X-Request-ID")
			c.JSON(http.StatusOK, []domain.Lead{})
		})
	})

	client, err := api.NewClient(api.ClientConfig{
		BaseURL: server.URL,
		Tokens:  fixedTokens{token: "token-abc"},
	})
	require.NoError(t, err)

	_, err = client.ListLeads(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-abc", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestUnauthenticatedRequestsOmitAuthorizationHeader(t *testing.T) {
	var sawHeader bool
	server := newBackend(t, func(engine *gin.Engine) {
		engine.GET("/leads", func(c *gin.Context) {
			_, sawHeader = c.Request.Header["Authorization"]
			c.JSON(http.StatusOK, []domain.Lead{})
		})
	})

	client, err := api.NewClient(api.ClientConfig{
		BaseURL: server.URL,
		Tokens:  fixedTokens{token: ""},
	})
	require.NoError(t, err)

	_, err = client.ListLeads(context.Background())
	require.NoError(t, err)
	assert.False(t, sawHeader)
}

func TestErrorResponseBecomesHTTPError(t *testing.T) {
	server := newBackend(t, func(engine *gin.Engine) {
		engine.GET("/leads", func(c *gin.Context) {
			c.JSON(http.StatusForbidden, gin.H{"message": "insufficient role"})
		})
		engine.GET("/users", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database unavailable"})
		})
		engine.GET("/notifications", func(c *gin.Context) {
			c.String(http.StatusBadGateway, "upstream burp")
		})
	})

	client, err := api.NewClient(api.ClientConfig{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.ListLeads(context.Background())
	var httpErr *api.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Status)
	assert.Equal(t, "insufficient role", httpErr.Message)

	_, err = client.ListUsers(context.Background())
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "database unavailable", httpErr.Message)

	// Non-JSON error bodies fall back to the status text.
	_, err = client.ListNotifications(context.Background())
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), httpErr.Message)
}

func TestCanceledContextAbortsRequest(t *testing.T) {
	started := make(chan struct{})
	server := newBackend(t, func(engine *gin.Engine) {
		engine.GET("/leads", func(c *gin.Context) {
			close(started)
			select {
			case <-c.Request.Context().Done():
			case <-time.After(5 * time.Second):
			}
			c.JSON(http.StatusOK, []domain.Lead{})
		})
	})

	client, err := api.NewClient(api.ClientConfig{BaseURL: server.URL})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err = client.ListLeads(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCreateLeadValidatesDraftBeforeSending(t *testing.T) {
	requests := 0
	server := newBackend(t, func(engine *gin.Engine) {
		engine.POST("/leads", func(c *gin.Context) {
			requests++
			c.JSON(http.StatusCreated, domain.Lead{ID: 1})
		})
	})

	client, err := api.NewClient(api.ClientConfig{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.CreateLead(context.Background(), domain.LeadDraft{
		Name:   "",
		Email:  "not-an-email",
		Status: "imaginary",
	})

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "Name")
	assert.Contains(t, validationErr.Fields, "Email")
	assert.Contains(t, validationErr.Fields, "Status")
	assert.Zero(t, requests, "invalid draft must never reach the backend")
}

func TestLeadEndpointsUseExpectedRoutes(t *testing.T) {
	server := newBackend(t, func(engine *gin.Engine) {
		engine.POST("/leads", func(c *gin.Context) {
			var draft domain.LeadDraft
			require.NoError(t, c.ShouldBindJSON(&draft))
			c.JSON(http.StatusCreated, domain.Lead{ID: 1, Name: draft.Name, Status: domain.LeadStatusPending, Version: 1})
		})
		engine.PUT("/leads/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, domain.Lead{ID: 1, Status: domain.LeadStatusConverted, Version: 2})
		})
		engine.DELETE("/leads/:id", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		engine.GET("/activities/lead/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, []domain.Activity{{ID: 3, LeadID: 1, Type: domain.ActivityTypeNote, Description: "hello"}})
		})
	})

	client, err := api.NewClient(api.ClientConfig{BaseURL: server.URL})
	require.NoError(t, err)
	ctx := context.Background()

	created, err := client.CreateLead(ctx, domain.LeadDraft{Name: "Acme", Email: "sales@acme.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Acme", created.Name)

	updated, err := client.UpdateLeadStatus(ctx, 1, domain.LeadStatusConverted)
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusConverted, updated.Status)
	assert.Equal(t, int64(2), updated.Version)

	require.NoError(t, client.DeleteLead(ctx, 1))

	activities, err := client.ListLeadActivities(ctx, 1)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, int64(3), activities[0].ID)
}
