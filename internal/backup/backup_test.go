package backup

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

type fakeExporter struct {
	columns []string
	rows    [][]any
	err     error
}

func (f *fakeExporter) ExportAll(_ context.Context) ([]string, [][]any, error) {
	return f.columns, f.rows, f.err
}

type fakePutter struct {
	key  string
	body string
	err  error
}

func (f *fakePutter) PutObject(key string, reader io.Reader, _ ...oss.Option) error {
	if f.err != nil {
		return f.err
	}
	b, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.key = key
	f.body = string(b)
	return nil
}

func TestRun(t *testing.T) {
	exp := &fakeExporter{
		columns: []string{"nev", "email"},
		rows:    [][]any{{"Minta Elek", "e@x.hu"}},
	}
	put := &fakePutter{}

	s := NewService(exp, put, "30 2 * * *")
	s.now = func() time.Time {
		return time.Date(2025, 3, 9, 2, 30, 0, 0, time.UTC)
	}

	key, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if key != "d1_backup_2025-03-09T02:30:00Z.csv" {
		t.Errorf("key = %q", key)
	}
	if put.key != key {
		t.Errorf("uploaded key = %q, want %q", put.key, key)
	}
	if want := "nev,email\nMinta Elek,e@x.hu\n"; put.body != want {
		t.Errorf("uploaded body = %q, want %q", put.body, want)
	}
}

func TestRun_EmptyTable(t *testing.T) {
	put := &fakePutter{}
	s := NewService(&fakeExporter{}, put, "30 2 * * *")

	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if put.body != "id\n" {
		t.Errorf("empty snapshot body = %q, want %q", put.body, "id\n")
	}
}

func TestRun_ExportFailure(t *testing.T) {
	exp := &fakeExporter{err: errors.New("no connection")}
	put := &fakePutter{}
	s := NewService(exp, put, "30 2 * * *")

	_, err := s.Run(context.Background())
	if err == nil {
		t.Fatal("want error when export fails")
	}
	if put.key != "" {
		t.Error("nothing may be uploaded when export fails")
	}
}

func TestRun_UploadFailure(t *testing.T) {
	exp := &fakeExporter{columns: []string{"id"}}
	put := &fakePutter{err: errors.New("access denied")}
	s := NewService(exp, put, "30 2 * * *")

	_, err := s.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "access denied") {
		t.Fatalf("err = %v, want wrapped upload error", err)
	}
}

func TestRun_AfterRunHook(t *testing.T) {
	exp := &fakeExporter{columns: []string{"id"}}
	s := NewService(exp, &fakePutter{}, "30 2 * * *")

	called := 0
	s.AfterRun(func(context.Context) { called++ })

	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if called != 1 {
		t.Errorf("hook called %d times, want 1", called)
	}

	// The hook must not fire when the run fails.
	exp.err = errors.New("boom")
	s.Run(context.Background())
	if called != 1 {
		t.Errorf("hook called %d times after failed run, want still 1", called)
	}
}

func TestStart_BadSchedule(t *testing.T) {
	s := NewService(&fakeExporter{}, &fakePutter{}, "not a schedule")
	if err := s.Start(); err == nil {
		t.Fatal("want error for invalid cron expression")
	}
}

func TestStop_BeforeStart(t *testing.T) {
	s := NewService(&fakeExporter{}, &fakePutter{}, "30 2 * * *")
	select {
	case <-s.Stop().Done():
	case <-time.After(time.Second):
		t.Fatal("Stop before Start must return a done context")
	}
}
