package store

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/AmanLovesCats/RCC-Bot/storage"
)

// Snapshot загружает текущий основной файл в объектное хранилище под ключом
// с отметкой времени. Вызывается планировщиком; пустое или отсутствующее
// хранилище — не повод для снапшота.
func (s *FileStore) Snapshot(ctx context.Context, uploader storage.FileUploader) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read store file for snapshot: %w", err)
	}

	key := fmt.Sprintf("snapshots/esports-%s.json", time.Now().UTC().Format("20060102T150405"))
	result, err := uploader.Upload(ctx, key, "application/json", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot: %w", err)
	}
	return result.Key, nil
}
