package httpapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"todo/internal/backend/httpapi"
	"todo/internal/config"
	"todo/internal/service"
	"todo/internal/testutil"
)

func newClient(srv *httptest.Server) *httpapi.Client {
	return httpapi.NewWithHTTPClient(srv.URL, srv.Client())
}

func requireAPIError(t *testing.T, err error, status int, message string) {
	t.Helper()
	apiErr, ok := service.AsAPIError(err)
	if !ok {
		t.Fatalf("expected *service.APIError, got %T: %v", err, err)
	}
	if apiErr.Status != status {
		t.Errorf("expected status %d, got %d", status, apiErr.Status)
	}
	if message != "" && apiErr.Message != message {
		t.Errorf("expected message %q, got %q", message, apiErr.Message)
	}
}

func TestClient_CRUDAgainstFakeAPI(t *testing.T) {
	srv := testutil.NewFakeAPI(t, testutil.NewFakeService())
	c := newClient(srv)
	ctx := context.Background()

	tasks, err := c.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list: unexpected error: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Fatalf("expected empty list, got %#v", tasks)
	}

	created, err := c.CreateTask(ctx, service.CreateTaskRequest{Title: "Buy milk", Color: service.ColorBlue})
	if err != nil {
		t.Fatalf("create: unexpected error: %v", err)
	}
	if created.ID != 1 || created.Title != "Buy milk" || created.Color != service.ColorBlue {
		t.Errorf("unexpected created task %+v", created)
	}
	if created.CreatedAt != "2024-01-02T03:04:05Z" {
		t.Errorf("unexpected createdAt %q", created.CreatedAt)
	}

	got, err := c.GetTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: unexpected error: %v", err)
	}
	if got != created {
		t.Errorf("expected %+v, got %+v", created, got)
	}

	toggled, err := c.ToggleTask(ctx, created.ID, true)
	if err != nil {
		t.Fatalf("toggle: unexpected error: %v", err)
	}
	if !toggled.Completed || toggled.Title != "Buy milk" {
		t.Errorf("unexpected toggled task %+v", toggled)
	}

	title := "Buy oat milk"
	updated, err := c.UpdateTask(ctx, created.ID, service.UpdateTaskRequest{Title: &title})
	if err != nil {
		t.Fatalf("update: unexpected error: %v", err)
	}
	if updated.Title != title || !updated.Completed || updated.Color != service.ColorBlue {
		t.Errorf("expected partial update, got %+v", updated)
	}

	if err := c.DeleteTask(ctx, created.ID); err != nil {
		t.Fatalf("delete: unexpected error: %v", err)
	}
	_, err = c.GetTask(ctx, created.ID)
	requireAPIError(t, err, http.StatusNotFound, "Task not found")
	if !service.IsNotFound(err) {
		t.Error("expected IsNotFound")
	}
}

func TestClient_CreateValidationError(t *testing.T) {
	srv := testutil.NewFakeAPI(t, testutil.NewFakeService())

	_, err := newClient(srv).CreateTask(context.Background(), service.CreateTaskRequest{Title: ""})

	requireAPIError(t, err, http.StatusBadRequest, "Title is required")
}

func TestClient_ServerErrorBody(t *testing.T) {
	srv := testutil.NewStaticAPI(t, http.StatusInternalServerError, `{"error":"boom"}`)

	_, err := newClient(srv).UpdateTask(context.Background(), 3, service.CompletedOnly(true))

	requireAPIError(t, err, http.StatusInternalServerError, "boom")
}

func TestClient_ErrorWithoutBody(t *testing.T) {
	srv := testutil.NewStaticAPI(t, http.StatusNotFound, "")

	_, err := newClient(srv).GetTask(context.Background(), 7)

	requireAPIError(t, err, http.StatusNotFound, "HTTP 404: Not Found")
}

func TestClient_ErrorWithUnparsableBody(t *testing.T) {
	srv := testutil.NewStaticAPI(t, http.StatusBadGateway, `<html>bad gateway</html>`)

	_, err := newClient(srv).ListTasks(context.Background())

	requireAPIError(t, err, http.StatusBadGateway, "HTTP 502: Bad Gateway")
}

func TestClient_ErrorBodyWithoutErrorField(t *testing.T) {
	srv := testutil.NewStaticAPI(t, http.StatusConflict, `{"message":"ignored"}`)

	err := newClient(srv).DeleteTask(context.Background(), 1)

	requireAPIError(t, err, http.StatusConflict, "HTTP 409: Conflict")
}

func TestClient_NoContentIsSuccess(t *testing.T) {
	srv := testutil.NewStaticAPI(t, http.StatusNoContent, "")

	if err := newClient(srv).DeleteTask(context.Background(), 5); err != nil {
		t.Errorf("expected success on 204, got %v", err)
	}
}

func TestClient_MalformedSuccessBody(t *testing.T) {
	srv := testutil.NewStaticAPI(t, http.StatusOK, `{"id":`)

	_, err := newClient(srv).GetTask(context.Background(), 1)

	requireAPIError(t, err, service.StatusTransport, "")
	if !strings.HasPrefix(err.Error(), "Network error: ") {
		t.Errorf("expected network error message, got %q", err.Error())
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := httpapi.NewWithHTTPClient(url, nil).ListTasks(context.Background())

	requireAPIError(t, err, service.StatusTransport, "")
	if !strings.HasPrefix(err.Error(), "Network error: ") {
		t.Errorf("expected network error message, got %q", err.Error())
	}
}

func TestClient_CancelledContext(t *testing.T) {
	srv := testutil.NewFakeAPI(t, testutil.NewFakeService())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newClient(srv).ListTasks(ctx)

	requireAPIError(t, err, service.StatusTransport, "")
}

type recordedRequest struct {
	method      string
	path        string
	contentType string
	requestID   string
	body        map[string]any
}

func recordingServer(t *testing.T, status int, response string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var reqs []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{
			method:      r.Method,
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			requestID:   r.Header.Get(httpapi.RequestIDHeader),
		}
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			if err := json.Unmarshal(data, &rec.body); err != nil {
				t.Errorf("request body is not JSON: %q", data)
			}
		}
		reqs = append(reqs, rec)
		w.WriteHeader(status)
		io.WriteString(w, response) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)
	return srv, &reqs
}

func TestClient_RequestShape(t *testing.T) {
	srv, reqs := recordingServer(t, http.StatusOK, `{"id":4,"title":"x","completed":true,"createdAt":"a","updatedAt":"b"}`)
	c := newClient(srv)

	if _, err := c.ToggleTask(context.Background(), 4, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.GetTask(context.Background(), 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(*reqs) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(*reqs))
	}
	put := (*reqs)[0]
	if put.method != http.MethodPut || put.path != "/tasks/4" {
		t.Errorf("unexpected request %s %s", put.method, put.path)
	}
	if len(put.body) != 1 || put.body["completed"] != true {
		t.Errorf("expected only completed in body, got %v", put.body)
	}
	for _, r := range *reqs {
		if r.contentType != "application/json" {
			t.Errorf("expected JSON content type on %s, got %q", r.method, r.contentType)
		}
		if r.requestID == "" {
			t.Errorf("expected request id on %s", r.method)
		}
	}
	if (*reqs)[0].requestID == (*reqs)[1].requestID {
		t.Error("expected distinct request ids")
	}
}

func TestClient_CreateOmitsEmptyColor(t *testing.T) {
	srv, reqs := recordingServer(t, http.StatusCreated, `{"id":1,"title":"Test","completed":false,"createdAt":"a","updatedAt":"b"}`)

	task, err := newClient(srv).CreateTask(context.Background(), service.CreateTaskRequest{Title: "Test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != 1 || task.Color != "" {
		t.Errorf("unexpected task %+v", task)
	}

	post := (*reqs)[0]
	if post.method != http.MethodPost || post.path != "/tasks" {
		t.Errorf("unexpected request %s %s", post.method, post.path)
	}
	if _, ok := post.body["color"]; ok {
		t.Errorf("expected no color field, got %v", post.body)
	}
	if post.body["title"] != "Test" {
		t.Errorf("expected title, got %v", post.body)
	}
}

func TestNew_UsesConfig(t *testing.T) {
	srv := testutil.NewFakeAPI(t, testutil.NewFakeService())

	c := httpapi.New(&config.Config{APIURL: srv.URL + "/"})
	if _, err := c.ListTasks(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
