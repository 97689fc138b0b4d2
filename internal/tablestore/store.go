// Package tablestore 报告表格的存储后端。
//
// 所有后端都只暴露"整表读取 + 末尾追加"两种操作：第 0 行为表头，
// 其后每行一条报告，行顺序即追加顺序。
package tablestore

import (
	"context"
	"time"
)

// Store 表格存储接口
type Store interface {
	// Append 在表尾追加一行
	Append(ctx context.Context, row []string) error
	// ReadAll 读取整张表（含表头）；完全空的表返回长度为 0 的切片
	ReadAll(ctx context.Context) ([][]string, error)
}

// WithTimeout 为每次调用附加超时；d <= 0 时原样返回
func WithTimeout(s Store, d time.Duration) Store {
	if d <= 0 {
		return s
	}
	return &timeoutStore{next: s, timeout: d}
}

type timeoutStore struct {
	next    Store
	timeout time.Duration
}

func (t *timeoutStore) Append(ctx context.Context, row []string) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Append(ctx, row)
}

func (t *timeoutStore) ReadAll(ctx context.Context) ([][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.ReadAll(ctx)
}
