package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/AmanLovesCats/RCC-Bot/ingest"
	"github.com/AmanLovesCats/RCC-Bot/models"
	"github.com/AmanLovesCats/RCC-Bot/store"
	"github.com/AmanLovesCats/RCC-Bot/storage"
)

// maxSessions ограничивает карту сессий; дальше чистим истёкшие принудительно.
const maxSessions = 256

// BatchSummary — итог одного сообщения с вложениями. Failures хранит
// по-файловую причину отказа (имя файла и ошибка), чтобы админ видел, чего
// именно не хватило в таблице, а не голое число.
type BatchSummary struct {
	Files    int              `json:"files"`
	Updated  int              `json:"updated"`
	Errors   int              `json:"errors"`
	Failures []string         `json:"failures,omitempty"`
	Reports  []*ingest.Report `json:"reports"`
}

type uploadSession struct {
	id      string
	expires time.Time
}

// UploadService держит состояние "жду файл" на принципала. Сессия
// самоотменяется по таймауту; состояние явное и ограниченное, не глобальное.
type UploadService struct {
	mu       sync.Mutex
	sessions map[string]uploadSession

	wait     time.Duration
	pipeline *ingest.Pipeline
	fetcher  ingest.Fetcher
	st       *store.FileStore
	archive  storage.FileUploader // nil, если R2 не настроен
	logger   *slog.Logger
}

func NewUploadService(wait time.Duration, pipeline *ingest.Pipeline, fetcher ingest.Fetcher, st *store.FileStore, archive storage.FileUploader, logger *slog.Logger) *UploadService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadService{
		sessions: make(map[string]uploadSession),
		wait:     wait,
		pipeline: pipeline,
		fetcher:  fetcher,
		st:       st,
		archive:  archive,
		logger:   logger,
	}
}

// Open открывает сессию ожидания файла для принципала. Повторное открытие
// живой сессии — ошибка, истёкшая сессия молча заменяется.
func (s *UploadService) Open(principalID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[principalID]; ok && time.Now().Before(sess.expires) {
		return "", ErrUploadSessionOpen
	}
	if len(s.sessions) >= maxSessions {
		s.evictExpiredLocked()
	}
	sess := uploadSession{id: uuid.NewString(), expires: time.Now().Add(s.wait)}
	s.sessions[principalID] = sess
	return sess.id, nil
}

// take потребляет живую сессию принципала.
func (s *UploadService) take(principalID string) (uploadSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[principalID]
	if !ok {
		return uploadSession{}, false
	}
	delete(s.sessions, principalID)
	if time.Now().After(sess.expires) {
		return uploadSession{}, false
	}
	return sess, true
}

// Sweep выбрасывает истёкшие сессии. Дёргается планировщиком.
func (s *UploadService) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked()
}

func (s *UploadService) evictExpiredLocked() {
	now := time.Now()
	for principal, sess := range s.sessions {
		if now.After(sess.expires) {
			delete(s.sessions, principal)
		}
	}
}

type fetchedFile struct {
	name  string
	table [][]string
	err   error
}

// HandleAttachments обрабатывает сообщение с файлами: скачивает и разбирает
// вложения параллельно, затем последовательно вливает таблицы в один
// load→mutate→save цикл. Без открытой сессии — ErrNoUploadSession.
func (s *UploadService) HandleAttachments(ctx context.Context, msg models.AttachmentMessage) (*BatchSummary, error) {
	sess, ok := s.take(msg.PrincipalID)
	if !ok {
		return nil, ErrNoUploadSession
	}

	var sheets []models.Attachment
	for _, att := range msg.Attachments {
		switch strings.ToLower(path.Ext(att.Name)) {
		case ".xlsx", ".xls", ".csv":
			sheets = append(sheets, att)
		}
	}
	if len(sheets) == 0 {
		return nil, ErrNoValidFiles
	}

	files := make([]fetchedFile, len(sheets))
	g, gCtx := errgroup.WithContext(ctx)
	for i, att := range sheets {
		i, att := i, att
		g.Go(func() error {
			files[i].name = att.Name
			data, err := s.fetcher.Fetch(gCtx, att.URL)
			if err != nil {
				files[i].err = err
				return nil // ошибка одного файла не валит остальные
			}
			s.archiveFile(gCtx, sess.id, att.Name, data)
			files[i].table, files[i].err = ingest.DecodeTable(att.Name, data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &BatchSummary{Files: len(files)}
	doc := s.st.Load()
	dirty := false
	for _, f := range files {
		if f.err != nil {
			s.logger.Error("failed to process attachment",
				slog.String("file", f.name), slog.Any("error", f.err))
			summary.Errors++
			summary.Failures = append(summary.Failures, fmt.Sprintf("%s: %v", f.name, f.err))
			continue
		}
		report, err := s.pipeline.Ingest(f.table, doc)
		if err != nil {
			s.logger.Error("failed to ingest attachment",
				slog.String("file", f.name), slog.Any("error", err))
			summary.Errors++
			summary.Failures = append(summary.Failures, fmt.Sprintf("%s: %v", f.name, err))
			continue
		}
		summary.Updated++
		summary.Reports = append(summary.Reports, report)
		dirty = true
	}

	if dirty {
		if err := s.st.Save(doc); err != nil {
			return nil, fmt.Errorf("failed to persist ingested document: %w", err)
		}
	}
	return summary, nil
}

// archiveFile складывает исходник таблицы в объектное хранилище, если оно
// настроено. Ошибка архива не мешает самой загрузке.
func (s *UploadService) archiveFile(ctx context.Context, batchID, name string, data []byte) {
	if s.archive == nil {
		return
	}
	key := fmt.Sprintf("uploads/%s/%s", batchID, path.Base(name))
	if _, err := s.archive.Upload(ctx, key, "application/octet-stream", bytes.NewReader(data)); err != nil {
		s.logger.Error("failed to archive uploaded sheet",
			slog.String("key", key), slog.Any("error", err))
	}
}
