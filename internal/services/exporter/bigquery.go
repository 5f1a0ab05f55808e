package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/option"

	"github.com/olasslabs/olass-backend/internal/config"
)

// NewBigQueryInserter создает вставку в таблицу cfg.UserTable вида
// "dataset.table". Ключ сервисного аккаунта берется из переменной окружения,
// при ее отсутствии используется окружение по умолчанию.
func NewBigQueryInserter(ctx context.Context, cfg config.BigQuery) (*bigquery.Inserter, func() error, error) {
	const op = "exporter.NewBigQueryInserter"

	var opts []option.ClientOption
	if keyJSON := os.Getenv(cfg.CredentialsEnvVar); keyJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(keyJSON)))
	}

	client, err := bigquery.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	parts := strings.SplitN(cfg.UserTable, ".", 2)
	if len(parts) != 2 {
		_ = client.Close()
		return nil, nil, fmt.Errorf("%s: user table must be dataset.table, got %q", op, cfg.UserTable)
	}

	return client.Dataset(parts[0]).Table(parts[1]).Inserter(), client.Close, nil
}
