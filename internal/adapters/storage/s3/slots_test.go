package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"

	"digital-garden/internal/ports/kv"
)

// fakeS3 es un subset mínimo de S3 (GET/PUT con sobrescritura) para no salir a la red.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	failPut bool
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}

	switch req.Method {
	case http.MethodPut:
		if f.failPut {
			return xmlResponse(http.StatusForbidden, "<Error><Code>AccessDenied</Code><Message>denied</Message></Error>"), nil
		}
		body, _ := io.ReadAll(req.Body)
		if strings.Contains(req.Header.Get("Content-Encoding"), "aws-chunked") {
			if dec, ok := decodeChunked(body); ok {
				body = dec
			}
		}
		f.objects[key] = body
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{"ETag": {`"etag"`}}}, nil
	case http.MethodGet:
		b, ok := f.objects[key]
		if !ok {
			return xmlResponse(http.StatusNotFound, "<Error><Code>NoSuchKey</Code><Message>missing</Message></Error>"), nil
		}
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(b)), Header: http.Header{
			"Content-Length": {strconv.Itoa(len(b))},
			"Content-Type":   {"application/json"},
		}, ContentLength: int64(len(b))}, nil
	}
	return &http.Response{StatusCode: http.StatusNotImplemented, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{}}, nil
}

func xmlResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": {"application/xml"}},
	}
}

// decodeChunked entiende un payload aws-chunked de un solo chunk: <hex>[;ext]\r\n<body>\r\n0\r\n...
func decodeChunked(b []byte) ([]byte, bool) {
	parts := strings.Split(string(b), "\r\n")
	if len(parts) < 3 {
		return nil, false
	}
	sizeHex, _, _ := strings.Cut(parts[0], ";")
	sz, err := strconv.ParseInt(sizeHex, 16, 64)
	if err != nil || int64(len(parts[1])) != sz {
		return nil, false
	}
	if zero, _, _ := strings.Cut(parts[2], ";"); zero != "0" {
		return nil, false
	}
	return []byte(parts[1]), true
}

func newTestSlots(t *testing.T, prefix string) (*Slots, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: map[string][]byte{}}
	s, err := New(context.Background(), Config{
		Bucket:          "garden-bucket",
		Region:          "us-east-1",
		Endpoint:        "https://mock.s3.local",
		Prefix:          prefix,
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		PathStyle:       true,
		HTTPClient:      &http.Client{Transport: fake},
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return s, fake
}

func TestSlots_PutGetOverwrite(t *testing.T) {
	ctx := context.Background()
	s, fake := newTestSlots(t, "garden")

	if _, err := s.Get(ctx, "plantas"); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Put(ctx, "plantas", []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, "plantas", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	b, err := s.Get(ctx, "plantas")
	if err != nil || string(b) != "[]" {
		t.Fatalf("expected overwrite, got %s %v", b, err)
	}
	if _, ok := fake.objects["garden/plantas.json"]; !ok {
		t.Fatalf("expected object under prefix, got %v", fake.objects)
	}
}

func TestSlots_PutFailure(t *testing.T) {
	s, fake := newTestSlots(t, "")
	fake.failPut = true

	err := s.Put(context.Background(), "plantas", []byte("[]"))
	if err == nil || errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestNew_RequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected error without bucket")
	}
}
