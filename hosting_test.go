package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBranch(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"name": "ros_comm", "default_branch": "noetic-devel"}`))
	}))
	defer srv.Close()

	client := NewHostingClient(srv.URL+"/", "secret")
	branch := client.DefaultBranch(context.Background(), "ros", "ros_comm")

	assert.Equal(t, "noetic-devel", branch)
	assert.Equal(t, "/repos/ros/ros_comm", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
}

func TestDefaultBranchWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"default_branch": "rolling"}`))
	}))
	defer srv.Close()

	branch := NewHostingClient(srv.URL, "").DefaultBranch(context.Background(), "ros2", "rclcpp")
	assert.Equal(t, "rolling", branch)
	assert.Equal(t, "", gotAuth)
}

func TestDefaultBranchFallback(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			},
		},
		{
			name: "missing field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{}`))
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			ctx := zerolog.Nop().WithContext(context.Background())
			assert.Equal(t, DefaultBranch, NewHostingClient(srv.URL, "").DefaultBranch(ctx, "o", "r"))
		})
	}
}

func TestFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewHostingClient(srv.URL, "").Fetch(context.Background(), srv.URL+"/x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestFetchDoesNotSendToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	body, err := NewHostingClient(srv.URL, "secret").Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, "", gotAuth)
}
