// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/taskdeck/taskdeck/lib/tasks"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.Handler, tokens TokenProvider) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		BaseURL: server.URL,
		Tokens:  tokens,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Error("NewClient accepted an empty BaseURL")
	}
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`[]`))
	})

	client := newTestClient(t, handler, staticToken("tok-xyz"))
	if _, err := client.ListTasks(context.Background()); err != nil {
		t.Fatalf("ListTasks: %v", err)
	}

	if auth := got.Get("Authorization"); auth != "Bearer tok-xyz" {
		t.Errorf("Authorization = %q, want Bearer tok-xyz", auth)
	}
	if got.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestAnonymousRequestHasNoBearer(t *testing.T) {
	var got http.Header
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`[]`))
	})

	client := newTestClient(t, handler, staticToken(""))
	if _, err := client.ListTasks(context.Background()); err != nil {
		t.Fatalf("ListTasks: %v", err)
	}

	if auth := got.Get("Authorization"); auth != "" {
		t.Errorf("Authorization = %q, want unset for anonymous client", auth)
	}
}

func TestServerErrorCarriesMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	})

	client := newTestClient(t, handler, nil)
	_, err := client.ListTasks(context.Background())

	var serverError *Error
	if !errors.As(err, &serverError) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if serverError.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", serverError.StatusCode)
	}
	if serverError.Message != "Invalid credentials" {
		t.Errorf("Message = %q, want Invalid credentials", serverError.Message)
	}
}

func TestTransportErrorIsNotServerError(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "http://127.0.0.1:1"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.ListTasks(context.Background())
	if err == nil {
		t.Fatal("expected a transport error")
	}
	var serverError *Error
	if errors.As(err, &serverError) {
		t.Errorf("transport failure surfaced as *Error: %v", err)
	}
}

func TestLoginUser(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "a@b.c" || body["password"] != "pw" {
			t.Errorf("unexpected credentials %v", body)
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
	})

	client := newTestClient(t, handler, nil)
	token, err := client.LoginUser(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if token != "tok-1" {
		t.Errorf("token = %q, want tok-1", token)
	}
}

func TestLoginUserTokenlessSuccessIsRejection(t *testing.T) {
	// A 200 whose body has a message but no token is still a failed
	// login.
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "Account locked"})
	})

	client := newTestClient(t, handler, nil)
	_, err := client.LoginUser(context.Background(), "a@b.c", "pw")

	var serverError *Error
	if !errors.As(err, &serverError) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if serverError.Message != "Account locked" {
		t.Errorf("Message = %q, want Account locked", serverError.Message)
	}
}

func TestSignupReturnsMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/signup" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "User registered successfully"})
	})

	client := newTestClient(t, handler, nil)
	message, err := client.Signup(context.Background(), "Ada", "a@b.c", "pw")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if message != "User registered successfully" {
		t.Errorf("message = %q", message)
	}
}

func TestSignupExistingUser(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "User already exists"})
	})

	client := newTestClient(t, handler, nil)
	_, err := client.Signup(context.Background(), "Ada", "a@b.c", "pw")

	var serverError *Error
	if !errors.As(err, &serverError) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if serverError.Message != "User already exists" {
		t.Errorf("Message = %q, want User already exists", serverError.Message)
	}
}

func TestTaskCRUDPaths(t *testing.T) {
	task := map[string]any{"_id": "t-1", "title": "Ship it"}

	var gotMethod, gotPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case http.MethodGet:
			if r.URL.Path == "/tasks" {
				json.NewEncoder(w).Encode([]any{task})
				return
			}
			json.NewEncoder(w).Encode(task)
		default:
			json.NewEncoder(w).Encode(task)
		}
	})

	client := newTestClient(t, handler, staticToken("tok"))
	ctx := context.Background()
	draft := tasks.Draft{Title: "Ship it", Description: "d"}

	steps := []struct {
		name       string
		call       func() error
		wantMethod string
		wantPath   string
	}{
		{"list", func() error { _, err := client.ListTasks(ctx); return err }, "GET", "/tasks"},
		{"get", func() error { _, err := client.GetTask(ctx, "t-1"); return err }, "GET", "/tasks/t-1"},
		{"create", func() error { _, err := client.CreateTask(ctx, draft); return err }, "POST", "/tasks"},
		{"update", func() error { _, err := client.UpdateTask(ctx, "t-1", draft); return err }, "PUT", "/tasks/t-1"},
		{"delete", func() error { return client.DeleteTask(ctx, "t-1") }, "DELETE", "/tasks/t-1"},
	}

	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			if err := step.call(); err != nil {
				t.Fatalf("%s: %v", step.name, err)
			}
			if gotMethod != step.wantMethod || gotPath != step.wantPath {
				t.Errorf("request = %s %s, want %s %s", gotMethod, gotPath, step.wantMethod, step.wantPath)
			}
		})
	}
}

func TestMalformedTaskRejected(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Missing _id.
		json.NewEncoder(w).Encode(map[string]string{"title": "orphan"})
	})

	client := newTestClient(t, handler, nil)
	if _, err := client.GetTask(context.Background(), "x"); !errors.Is(err, ErrBadResponse) {
		t.Errorf("GetTask error = %v, want ErrBadResponse", err)
	}
}

func TestMalformedListEntryRejected(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]string{
			{"_id": "t-1", "title": "ok"},
			{"_id": "t-2"}, // missing title
		})
	})

	client := newTestClient(t, handler, nil)
	if _, err := client.ListTasks(context.Background()); !errors.Is(err, ErrBadResponse) {
		t.Errorf("ListTasks error = %v, want ErrBadResponse", err)
	}
}
