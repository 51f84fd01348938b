// Package store — флат-файловое хранилище документа базы киберспорта.
// Документ целиком читается в начале каждой операции и целиком
// перезаписывается при сохранении; долгоживущего кеша нет, поэтому рестарты
// и несколько инстансов процесса не видят устаревших данных.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/AmanLovesCats/RCC-Bot/models"
)

// FileStore пишет основной файл и его резервную копию. Никакой блокировки
// вокруг load→mutate→save нет: одновременные записи гонятся по принципу
// «последний победил» целиком, это осознанное ограничение при малом числе
// админов.
type FileStore struct {
	path       string
	backupPath string
	logger     *slog.Logger
}

func New(path, backupPath string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{
		path:       path,
		backupPath: backupPath,
		logger:     logger,
	}
}

// Path returns the primary file location.
func (s *FileStore) Path() string { return s.path }

// Load читает документ с диска. Отсутствующий или битый файл — это пустой
// документ, а не ошибка: доступность важнее всплытия повреждения, сам факт
// логируется.
func (s *FileStore) Load() *models.Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error("failed to read store file, starting empty",
				slog.String("path", s.path), slog.Any("error", err))
		}
		return models.NewDocument()
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err == nil && doc.Tournaments != nil {
		normalize(&doc)
		return &doc
	}

	// Файлы первого поколения — плоская карта имя -> турнир, без версии схемы.
	var legacy map[string]*models.Tournament
	if err := json.Unmarshal(data, &legacy); err == nil && legacy != nil {
		s.logger.Info("migrated legacy store file", slog.String("path", s.path))
		doc = models.Document{SchemaVersion: models.SchemaVersion, Tournaments: legacy}
		normalize(&doc)
		return &doc
	}

	s.logger.Error("store file is corrupt, starting empty", slog.String("path", s.path))
	return models.NewDocument()
}

// Save сериализует документ и пишет его целиком: сначала основной файл, затем
// идентичную резервную копию. Резервная копия — единственный механизм
// восстановления.
func (s *FileStore) Save(doc *models.Document) error {
	doc.SchemaVersion = models.SchemaVersion

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize store document: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.WriteFile(s.backupPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// normalize чинит инварианты после десериализации: ключ карты всегда равен
// Tournament.Name, participants не nil.
func normalize(doc *models.Document) {
	for name, t := range doc.Tournaments {
		if t == nil {
			delete(doc.Tournaments, name)
			continue
		}
		t.Name = name
		if t.Participants == nil {
			t.Participants = []models.Participant{}
		}
	}
}
