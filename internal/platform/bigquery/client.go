// Package bigquery はBigQueryクライアントの生成とテーブル参照を提供します。
package bigquery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gbq "cloud.google.com/go/bigquery"
)

// TableRef は project.dataset.table の3つ組でテーブルを指定します。
type TableRef struct {
	ProjectID string
	DatasetID string
	TableID   string
}

// String は完全修飾テーブルID（project.dataset.table）を返します。
func (t TableRef) String() string {
	return fmt.Sprintf("%s.%s.%s", t.ProjectID, t.DatasetID, t.TableID)
}

// Validate は3つの要素がすべて設定されているかを確認します。
func (t TableRef) Validate() error {
	var missing []string
	if t.ProjectID == "" {
		missing = append(missing, "project")
	}
	if t.DatasetID == "" {
		missing = append(missing, "dataset")
	}
	if t.TableID == "" {
		missing = append(missing, "table")
	}
	if len(missing) > 0 {
		return errors.New("bigquery table reference is missing " + strings.Join(missing, ", "))
	}
	return nil
}

// NewClient はADCを使用してBigQueryクライアントを生成します。
func NewClient(ctx context.Context, ref TableRef) (*gbq.Client, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	client, err := gbq.NewClient(ctx, ref.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create bigquery client: %w", err)
	}
	return client, nil
}
