package tablestore

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// sheetColumns 报告占用的列范围 A..G
const sheetColumns = "A:G"

// SheetsStore 基于 Google Sheets 的表格存储
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
	readRange     string
}

// NewSheetsStore 使用服务账号凭据创建 Sheets 客户端
func NewSheetsStore(ctx context.Context, credentialsJSON []byte, spreadsheetID, sheetName string) (*SheetsStore, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("初始化 Sheets 客户端失败: %w", err)
	}
	return &SheetsStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		readRange:     fmt.Sprintf("'%s'!%s", sheetName, sheetColumns),
	}, nil
}

func (s *SheetsStore) Append(ctx context.Context, row []string) error {
	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}

	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, s.readRange, &sheets.ValueRange{Values: [][]interface{}{values}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("追加 Sheets 行失败: %w", err)
	}
	return nil
}

func (s *SheetsStore) ReadAll(ctx context.Context) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("读取 Sheets 失败: %w", err)
	}
	return stringRows(resp.Values), nil
}

// stringRows Sheets 返回的单元格是 interface{}，统一转成字符串
func stringRows(values [][]interface{}) [][]string {
	rows := make([][]string, 0, len(values))
	for _, raw := range values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			if cell != nil {
				row[i] = fmt.Sprint(cell)
			}
		}
		rows = append(rows, row)
	}
	return rows
}
