package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/AmanLovesCats/RCC-Bot/ingest"
	"github.com/AmanLovesCats/RCC-Bot/models"
	"github.com/AmanLovesCats/RCC-Bot/store"
)

type stubFetcher struct {
	files map[string][]byte
}

func (f *stubFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	data, ok := f.files[url]
	if !ok {
		return nil, errors.New("attachment missing")
	}
	return data, nil
}

func newUploadService(t *testing.T, wait time.Duration, fetcher ingest.Fetcher) (*UploadService, *store.FileStore) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()
	st := store.New(filepath.Join(dir, "data.json"), filepath.Join(dir, "backup.json"), logger)
	return NewUploadService(wait, ingest.New(logger), fetcher, st, nil, logger), st
}

func TestOpenRejectsLiveSession(t *testing.T) {
	s, _ := newUploadService(t, time.Minute, &stubFetcher{})

	if _, err := s.Open("u1"); err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := s.Open("u1"); !errors.Is(err, ErrUploadSessionOpen) {
		t.Fatalf("second open = %v, want ErrUploadSessionOpen", err)
	}
	if _, err := s.Open("u2"); err != nil {
		t.Errorf("sessions are per-principal: %v", err)
	}
}

func TestOpenReplacesExpiredSession(t *testing.T) {
	s, _ := newUploadService(t, -time.Second, &stubFetcher{})

	if _, err := s.Open("u1"); err != nil {
		t.Fatalf("first open: %v", err)
	}
	// Сессия с отрицательным ожиданием истекает сразу.
	if _, err := s.Open("u1"); err != nil {
		t.Fatalf("reopen after expiry: %v", err)
	}
}

func TestHandleAttachmentsWithoutSession(t *testing.T) {
	s, _ := newUploadService(t, time.Minute, &stubFetcher{})

	_, err := s.HandleAttachments(context.Background(), models.AttachmentMessage{
		PrincipalID: "u1",
		Attachments: []models.Attachment{{Name: "data.csv", URL: "https://files/data.csv"}},
	})
	if !errors.Is(err, ErrNoUploadSession) {
		t.Fatalf("err = %v, want ErrNoUploadSession", err)
	}
}

func TestHandleAttachmentsNoValidFiles(t *testing.T) {
	s, _ := newUploadService(t, time.Minute, &stubFetcher{})
	if _, err := s.Open("u1"); err != nil {
		t.Fatalf("open: %v", err)
	}

	_, err := s.HandleAttachments(context.Background(), models.AttachmentMessage{
		PrincipalID: "u1",
		Attachments: []models.Attachment{{Name: "selfie.png", URL: "https://files/selfie.png"}},
	})
	if !errors.Is(err, ErrNoValidFiles) {
		t.Fatalf("err = %v, want ErrNoValidFiles", err)
	}
}

func TestHandleAttachmentsBatch(t *testing.T) {
	good := "Tournament,Participant,ID,Kills\nSummer Cup,alpha,100,9\n,beta,200,5\n"
	fetcher := &stubFetcher{files: map[string][]byte{
		"https://files/good.csv": []byte(good),
		"https://files/bad.csv":  []byte("just a note, not a roster\n"),
	}}
	s, st := newUploadService(t, time.Minute, fetcher)
	if _, err := s.Open("u1"); err != nil {
		t.Fatalf("open: %v", err)
	}

	summary, err := s.HandleAttachments(context.Background(), models.AttachmentMessage{
		PrincipalID: "u1",
		Attachments: []models.Attachment{
			{Name: "good.csv", URL: "https://files/good.csv"},
			{Name: "bad.csv", URL: "https://files/bad.csv"},
			{Name: "gone.csv", URL: "https://files/gone.csv"},
		},
	})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if summary.Files != 3 || summary.Updated != 1 || summary.Errors != 2 {
		t.Fatalf("summary = %+v", summary)
	}
	if len(summary.Failures) != 2 {
		t.Fatalf("failures = %+v", summary.Failures)
	}
	// Причина отказа именная: файл и чего не хватило.
	joined := strings.Join(summary.Failures, "\n")
	if !strings.Contains(joined, "bad.csv") || !strings.Contains(joined, "missing required columns") {
		t.Errorf("failures = %+v", summary.Failures)
	}
	if !strings.Contains(joined, "gone.csv") {
		t.Errorf("fetch failure must be named too: %+v", summary.Failures)
	}

	if st.Load().Get("Summer Cup") == nil {
		t.Error("good file must be persisted despite the bad ones")
	}

	// Сессия одноразовая: следующее сообщение уже не обрабатывается.
	_, err = s.HandleAttachments(context.Background(), models.AttachmentMessage{
		PrincipalID: "u1",
		Attachments: []models.Attachment{{Name: "good.csv", URL: "https://files/good.csv"}},
	})
	if !errors.Is(err, ErrNoUploadSession) {
		t.Fatalf("second batch err = %v, want ErrNoUploadSession", err)
	}
}
