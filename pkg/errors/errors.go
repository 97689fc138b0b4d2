// Package errors 定义跨层共享的业务错误分类。
// 下层用 fmt.Errorf("...: %w", ErrXxx) 包装，Handler 层用 errors.Is 映射 HTTP 状态码。
package errors

import "errors"

var (
	// ErrUpstreamUnavailable 表格或图片服务不可用（网络、鉴权、配额等）
	ErrUpstreamUnavailable = errors.New("上游服务不可用")

	// ErrNotFound 报告编号超出当前表格范围
	ErrNotFound = errors.New("报告不存在")

	// ErrValidationMissing 必填的表单字段缺失
	ErrValidationMissing = errors.New("缺少必填字段")

	// ErrFetchFailed 拉取图片字节失败
	ErrFetchFailed = errors.New("获取图片失败")
)
